package service

import (
	"strings"
	"time"

	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService 优惠码后台管理服务
type CouponAdminService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
}

// NewCouponAdminService 创建优惠码后台管理服务
func NewCouponAdminService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponAdminService {
	return &CouponAdminService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
	}
}

// CouponInput 优惠码创建/更新输入
type CouponInput struct {
	Code          string
	DiscountType  string
	DiscountValue models.Money
	ExpiryDate    *time.Time
	MaxUses       *int
	IsActive      *bool
}

// Create 创建优惠码（优惠码统一以大写形式存储）
func (s *CouponAdminService) Create(input CouponInput) (*models.Coupon, error) {
	code := NormalizeCouponCode(input.Code)
	if code == "" {
		return nil, ErrInvalidInput
	}
	if err := validateCouponInput(input); err != nil {
		return nil, err
	}

	existing, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeTaken
	}

	coupon := &models.Coupon{
		Code:          code,
		DiscountType:  strings.ToLower(strings.TrimSpace(input.DiscountType)),
		DiscountValue: input.DiscountValue,
		ExpiryDate:    input.ExpiryDate,
		MaxUses:       input.MaxUses,
		IsActive:      true,
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠码
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrNotFound
	}
	if err := validateCouponInput(input); err != nil {
		return nil, err
	}

	if code := NormalizeCouponCode(input.Code); code != "" && code != coupon.Code {
		existing, err := s.couponRepo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCouponCodeTaken
		}
		coupon.Code = code
	}
	coupon.DiscountType = strings.ToLower(strings.TrimSpace(input.DiscountType))
	coupon.DiscountValue = input.DiscountValue
	coupon.ExpiryDate = input.ExpiryDate
	coupon.MaxUses = input.MaxUses
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠码
func (s *CouponAdminService) Delete(id uint) error {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrNotFound
	}
	return s.couponRepo.Delete(id)
}

// List 优惠码列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// ListUsages 优惠码使用记录
func (s *CouponAdminService) ListUsages(filter repository.CouponUsageListFilter) ([]models.CouponUsage, int64, error) {
	return s.usageRepo.ListByUser(filter)
}

func validateCouponInput(input CouponInput) error {
	switch strings.ToLower(strings.TrimSpace(input.DiscountType)) {
	case models.CouponTypeFixed:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidInput
		}
	case models.CouponTypePercent:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) ||
			input.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return ErrInvalidInput
		}
	default:
		return ErrInvalidInput
	}
	if input.MaxUses != nil && *input.MaxUses <= 0 {
		return ErrInvalidInput
	}
	return nil
}
