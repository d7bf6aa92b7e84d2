package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gamevault-next/internal/http/response"
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"
	"github.com/gamevault-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponRequest 创建/更新优惠码请求
type CouponRequest struct {
	Code          string  `json:"code" binding:"required"`
	DiscountType  string  `json:"discount_type" binding:"required"`
	DiscountValue float64 `json:"discount_value" binding:"required"`
	ExpiryDate    string  `json:"expiry_date"`
	MaxUses       *int    `json:"max_uses"`
	IsActive      *bool   `json:"is_active"`
}

func (r CouponRequest) toServiceInput() (service.CouponInput, error) {
	expiryDate, err := parseTimeNullable(r.ExpiryDate)
	if err != nil {
		return service.CouponInput{}, err
	}
	return service.CouponInput{
		Code:          r.Code,
		DiscountType:  r.DiscountType,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.DiscountValue)),
		ExpiryDate:    expiryDate,
		MaxUses:       r.MaxUses,
		IsActive:      r.IsActive,
	}, nil
}

// CreateCoupon 创建优惠码
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(input)
	if err != nil {
		respondCouponAdminError(c, err)
		return
	}

	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠码
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	coupon, err := h.CouponAdminService.Update(uint(couponID), input)
	if err != nil {
		respondCouponAdminError(c, err)
		return
	}

	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠码
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CouponAdminService.Delete(uint(couponID)); err != nil {
		respondCouponAdminError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ListCoupons 优惠码列表
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, coupons, response.BuildPagination(page, pageSize, total))
}

// ListCouponUsages 优惠码使用记录列表
func (h *Handler) ListCouponUsages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	couponID, _ := strconv.ParseUint(c.Query("coupon_id"), 10, 64)

	usages, total, err := h.CouponAdminService.ListUsages(repository.CouponUsageListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uint(userID),
		CouponID: uint(couponID),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, usages, response.BuildPagination(page, pageSize, total))
}

func respondCouponAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCouponCodeTaken):
		respondError(c, response.CodeConflict, "error.coupon_code_taken", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.not_found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
