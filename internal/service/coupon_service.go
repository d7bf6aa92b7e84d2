package service

import (
	"strings"
	"time"

	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"

	"gorm.io/gorm"
)

// CouponService 优惠码校验服务
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
}

// NewCouponService 创建优惠码校验服务
func NewCouponService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
	}
}

// WithTx 绑定事务
func (s *CouponService) WithTx(tx *gorm.DB) *CouponService {
	if tx == nil {
		return s
	}
	return &CouponService{
		couponRepo: s.couponRepo.WithTx(tx),
		usageRepo:  s.usageRepo.WithTx(tx),
	}
}

// CouponPreview 优惠码试算结果
type CouponPreview struct {
	Code          string       `json:"code"`
	Subtotal      models.Money `json:"subtotal"`
	Discount      models.Money `json:"discount"`
	Total         models.Money `json:"total"`
	RemainingUses *int         `json:"remaining_uses"` // nil 表示不限次
}

// NormalizeCouponCode 归一化优惠码（去空白并统一大写，存储与匹配均走该形式）
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve 校验优惠码（只读，不加锁，用于试算）
//
// 校验顺序固定：存在且启用 → 未过期 → 次数未用尽 → 该用户未用过，
// 命中第一个失败项即返回对应错误。
func (s *CouponService) Resolve(code string, userID uint) (*models.Coupon, error) {
	return s.resolve(code, userID, false)
}

// ResolveForUpdate 校验优惠码（加行锁，结算事务内使用）
func (s *CouponService) ResolveForUpdate(code string, userID uint) (*models.Coupon, error) {
	return s.resolve(code, userID, true)
}

func (s *CouponService) resolve(code string, userID uint, forUpdate bool) (*models.Coupon, error) {
	normalized := NormalizeCouponCode(code)
	if normalized == "" {
		return nil, ErrCouponInvalid
	}

	var coupon *models.Coupon
	var err error
	if forUpdate {
		coupon, err = s.couponRepo.GetActiveByCodeForUpdate(normalized)
	} else {
		coupon, err = s.couponRepo.GetByCode(normalized)
		if err == nil && coupon != nil && !coupon.IsActive {
			coupon = nil
		}
	}
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponInvalid
	}

	if coupon.ExpiredAt(time.Now()) {
		return nil, ErrCouponExpired
	}
	if coupon.Exhausted() {
		return nil, ErrCouponExhausted
	}

	if userID != 0 {
		count, err := s.usageRepo.CountByUser(coupon.ID, userID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCouponAlreadyUsed
		}
	}

	return coupon, nil
}

// Preview 基于购物车汇总试算折扣（空购物车直接拒绝）
func (s *CouponService) Preview(code string, userID uint, summary *CartSummary) (*CouponPreview, error) {
	if summary == nil || len(summary.Items) == 0 {
		return nil, ErrCartEmpty
	}
	coupon, err := s.Resolve(code, userID)
	if err != nil {
		return nil, err
	}
	discount, err := CalculateDiscount(coupon, summary.Subtotal)
	if err != nil {
		return nil, err
	}
	preview := &CouponPreview{
		Code:     coupon.Code,
		Subtotal: summary.Subtotal,
		Discount: discount,
		Total:    summary.Subtotal.Sub(discount),
	}
	if coupon.MaxUses != nil {
		remaining := *coupon.MaxUses
		preview.RemainingUses = &remaining
	}
	return preview, nil
}

// Consume 核销优惠码（结算事务内调用，前提是已通过 ResolveForUpdate）
//
// 限次码剩余 1 次时整行删除，使用记录级联清理；否则扣减剩余次数并写入使用记录。
func (s *CouponService) Consume(coupon *models.Coupon, userID uint) error {
	if coupon == nil {
		return nil
	}
	if coupon.MaxUses != nil && *coupon.MaxUses <= 1 {
		return s.couponRepo.Delete(coupon.ID)
	}
	if coupon.MaxUses != nil {
		if err := s.couponRepo.DecrementMaxUses(coupon.ID); err != nil {
			return err
		}
	}
	return s.usageRepo.Create(&models.CouponUsage{
		CouponID: coupon.ID,
		UserID:   userID,
	})
}
