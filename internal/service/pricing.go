package service

import (
	"strings"
	"time"

	"github.com/gamevault-next/internal/models"

	"github.com/shopspring/decimal"
)

// CalculateDiscount 计算整单折扣金额（结果钳制在 [0, subtotal]）
func CalculateDiscount(coupon *models.Coupon, subtotal models.Money) (models.Money, error) {
	if coupon == nil {
		return models.ZeroMoney(), nil
	}
	if coupon.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
		return models.Money{}, ErrCouponInvalid
	}

	var discount decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(coupon.DiscountType)) {
	case models.CouponTypeFixed:
		discount = coupon.DiscountValue.Decimal
	case models.CouponTypePercent:
		percent := coupon.DiscountValue.Decimal.Div(decimal.NewFromInt(100))
		discount = subtotal.Decimal.Mul(percent)
	default:
		return models.Money{}, ErrCouponInvalid
	}

	if discount.GreaterThan(subtotal.Decimal) {
		discount = subtotal.Decimal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discount), nil
}

// DisplayPrice 计算促销折后展示价（无生效促销时返回原价）
//
// 促销只影响展示价，结算始终按原价扣款。多个促销同时生效时取折扣最大的一个。
func DisplayPrice(game *models.Game, now time.Time) models.Money {
	if game == nil {
		return models.ZeroMoney()
	}
	best := 0
	for i := range game.Promotions {
		p := &game.Promotions[i]
		if !p.EffectiveAt(now) {
			continue
		}
		if p.DiscountPercent <= 0 || p.DiscountPercent >= 100 {
			continue
		}
		if p.DiscountPercent > best {
			best = p.DiscountPercent
		}
	}
	if best == 0 {
		return game.Price
	}
	factor := decimal.NewFromInt(int64(100 - best)).Div(decimal.NewFromInt(100))
	return models.NewMoneyFromDecimal(game.Price.Decimal.Mul(factor))
}
