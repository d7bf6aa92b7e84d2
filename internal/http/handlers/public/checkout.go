package public

import (
	"github.com/gamevault-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 整车结算请求
type CheckoutRequest struct {
	CouponCode string `json:"coupon_code"`
}

// Checkout 整车结算
func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	receipt, err := h.CheckoutService.Checkout(userID, req.CouponCode)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.Success(c, receipt)
}

// PurchaseGameRequest 单件直购请求
type PurchaseGameRequest struct {
	GameID     uint   `json:"game_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

// PurchaseGame 单件直购（不经过购物车）
func (h *Handler) PurchaseGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req PurchaseGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	receipt, err := h.CheckoutService.PurchaseGame(userID, req.GameID, req.CouponCode)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.Success(c, receipt)
}

// CouponPreviewRequest 优惠码试算请求
type CouponPreviewRequest struct {
	Code string `json:"code" binding:"required"`
}

// PreviewCoupon 基于当前购物车试算优惠码折扣
func (h *Handler) PreviewCoupon(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CouponPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	summary, err := h.CartService.ListByUser(userID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	preview, err := h.CouponService.Preview(req.Code, userID, summary)
	if err != nil {
		respondCouponError(c, err)
		return
	}

	response.Success(c, preview)
}
