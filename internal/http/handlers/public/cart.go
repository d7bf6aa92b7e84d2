package public

import (
	"strconv"

	"github.com/gamevault-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCart 获取当前用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	summary, err := h.CartService.ListByUser(userID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, summary)
}

// CartAddRequest 加入购物车请求
type CartAddRequest struct {
	GameID uint `json:"game_id" binding:"required"`
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.AddItem(userID, req.GameID); err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"added": true})
}

// CartQuantityRequest 购物车数量调整请求
type CartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCartItemQuantity 调整购物车项数量（0 表示移除）
func (h *Handler) UpdateCartItemQuantity(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	gameID, err := strconv.ParseUint(c.Param("game_id"), 10, 64)
	if err != nil || gameID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.UpdateQuantity(userID, uint(gameID), *req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"updated": true})
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	gameID, err := strconv.ParseUint(c.Param("game_id"), 10, 64)
	if err != nil || gameID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.CartService.RemoveItem(userID, uint(gameID)); err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"removed": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(userID); err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"cleared": true})
}
