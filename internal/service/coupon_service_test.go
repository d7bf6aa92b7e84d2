package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Coupon{},
		&models.CouponUsage{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	couponRepo := repository.NewCouponRepository(db)
	usageRepo := repository.NewCouponUsageRepository(db)
	return NewCouponService(couponRepo, usageRepo), db
}

func createTestCoupon(t *testing.T, db *gorm.DB, code string, mutate func(*models.Coupon)) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		Code:          code,
		DiscountType:  models.CouponTypeFixed,
		DiscountValue: models.NewMoneyFromFloat(10),
		IsActive:      true,
	}
	if mutate != nil {
		mutate(coupon)
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

func TestCouponServiceResolveUnknownCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	if _, err := svc.Resolve("NOPE", 1); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid, got %v", err)
	}
}

func TestCouponServiceResolveCaseInsensitive(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "SAVE20", nil)

	coupon, err := svc.Resolve("save20", 1)
	if err != nil {
		t.Fatalf("resolve lowercase code failed: %v", err)
	}
	if coupon.Code != "SAVE20" {
		t.Fatalf("expected code SAVE20, got %s", coupon.Code)
	}
	if _, err := svc.Resolve("  Save20 ", 1); err != nil {
		t.Fatalf("resolve mixed-case code failed: %v", err)
	}
	if _, err := svc.ResolveForUpdate("save20", 1); err != nil {
		t.Fatalf("resolve for update lowercase code failed: %v", err)
	}
}

func TestCouponServiceResolveInactive(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "OFF", func(c *models.Coupon) { c.IsActive = false })
	if _, err := svc.Resolve("OFF", 1); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid, got %v", err)
	}
}

func TestCouponServiceResolveExpired(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	past := time.Now().Add(-time.Hour)
	createTestCoupon(t, db, "LATE", func(c *models.Coupon) { c.ExpiryDate = &past })
	if _, err := svc.Resolve("LATE", 1); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
}

func TestCouponServiceResolveExhausted(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	zero := 0
	createTestCoupon(t, db, "GONE", func(c *models.Coupon) { c.MaxUses = &zero })
	if _, err := svc.Resolve("GONE", 1); !errors.Is(err, ErrCouponExhausted) {
		t.Fatalf("expected ErrCouponExhausted, got %v", err)
	}
}

func TestCouponServiceResolveFirstFailureWins(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	past := time.Now().Add(-time.Hour)
	zero := 0

	// 同时过期且用尽：过期在前
	createTestCoupon(t, db, "STALE", func(c *models.Coupon) {
		c.ExpiryDate = &past
		c.MaxUses = &zero
	})
	if _, err := svc.Resolve("STALE", 1); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}

	// 停用优先于其他所有失败项
	createTestCoupon(t, db, "DEAD", func(c *models.Coupon) {
		c.IsActive = false
		c.ExpiryDate = &past
		c.MaxUses = &zero
	})
	if _, err := svc.Resolve("DEAD", 1); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid, got %v", err)
	}

	// 用尽且该用户已用过：用尽在前
	used := createTestCoupon(t, db, "DRAINED", func(c *models.Coupon) { c.MaxUses = &zero })
	if err := db.Create(&models.CouponUsage{CouponID: used.ID, UserID: 6}).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}
	if _, err := svc.Resolve("DRAINED", 6); !errors.Is(err, ErrCouponExhausted) {
		t.Fatalf("expected ErrCouponExhausted, got %v", err)
	}
}

func TestCouponServiceResolveAlreadyUsed(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createTestCoupon(t, db, "ONCE", nil)
	if err := db.Create(&models.CouponUsage{CouponID: coupon.ID, UserID: 7}).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}

	if _, err := svc.Resolve("ONCE", 7); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}
	// 其他用户不受影响
	if _, err := svc.Resolve("ONCE", 8); err != nil {
		t.Fatalf("resolve for other user failed: %v", err)
	}
}

func previewCartSummary(subtotal float64) *CartSummary {
	return &CartSummary{
		Items:    []CartItemDetail{{GameID: 1, Quantity: 1}},
		Subtotal: models.NewMoneyFromFloat(subtotal),
	}
}

func TestCouponServicePreview(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "SAVE15", func(c *models.Coupon) {
		c.DiscountType = models.CouponTypePercent
		c.DiscountValue = models.NewMoneyFromFloat(15)
	})

	preview, err := svc.Preview("SAVE15", 1, previewCartSummary(80))
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if preview.Code != "SAVE15" {
		t.Fatalf("expected code SAVE15, got %s", preview.Code)
	}
	if preview.Discount.Decimal.String() != "12" {
		t.Fatalf("expected discount 12, got %s", preview.Discount.Decimal)
	}
	if preview.Total.Decimal.String() != "68" {
		t.Fatalf("expected total 68, got %s", preview.Total.Decimal)
	}
	if preview.RemainingUses != nil {
		t.Fatalf("expected nil remaining uses for unlimited coupon, got %v", preview.RemainingUses)
	}
}

func TestCouponServicePreviewEmptyCart(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "SAVE20", nil)

	if _, err := svc.Preview("SAVE20", 1, &CartSummary{Subtotal: models.ZeroMoney()}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if _, err := svc.Preview("SAVE20", 1, nil); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty for nil summary, got %v", err)
	}
}

func TestCouponServicePreviewRemainingUses(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	three := 3
	createTestCoupon(t, db, "TRIO", func(c *models.Coupon) { c.MaxUses = &three })

	preview, err := svc.Preview("TRIO", 1, previewCartSummary(50))
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if preview.RemainingUses == nil || *preview.RemainingUses != 3 {
		t.Fatalf("expected remaining uses 3, got %v", preview.RemainingUses)
	}
}

func TestCouponServiceConsumeLastUseDeletesCoupon(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	one := 1
	coupon := createTestCoupon(t, db, "FINAL", func(c *models.Coupon) { c.MaxUses = &one })

	if err := svc.Consume(coupon, 3); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.Coupon{}).Where("code = ?", "FINAL").Count(&count).Error; err != nil {
		t.Fatalf("count coupons failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected coupon row deleted, found %d", count)
	}
	if _, err := svc.Resolve("FINAL", 4); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid after deletion, got %v", err)
	}
}

func TestCouponServiceConsumeDecrementsAndRecordsUsage(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	three := 3
	coupon := createTestCoupon(t, db, "MULTI", func(c *models.Coupon) { c.MaxUses = &three })

	if err := svc.Consume(coupon, 5); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	var stored models.Coupon
	if err := db.Where("code = ?", "MULTI").First(&stored).Error; err != nil {
		t.Fatalf("load coupon failed: %v", err)
	}
	if stored.MaxUses == nil || *stored.MaxUses != 2 {
		t.Fatalf("expected max_uses 2, got %v", stored.MaxUses)
	}

	var usages int64
	if err := db.Model(&models.CouponUsage{}).Where("coupon_id = ? AND user_id = ?", coupon.ID, 5).Count(&usages).Error; err != nil {
		t.Fatalf("count usages failed: %v", err)
	}
	if usages != 1 {
		t.Fatalf("expected 1 usage row, got %d", usages)
	}
	if _, err := svc.Resolve("MULTI", 5); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed after consume, got %v", err)
	}
}

func TestCouponServiceConsumeUnlimited(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createTestCoupon(t, db, "FOREVER", nil)

	if err := svc.Consume(coupon, 9); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	var stored models.Coupon
	if err := db.Where("code = ?", "FOREVER").First(&stored).Error; err != nil {
		t.Fatalf("load coupon failed: %v", err)
	}
	if stored.MaxUses != nil {
		t.Fatalf("expected max_uses to stay nil, got %v", stored.MaxUses)
	}

	var usages int64
	if err := db.Model(&models.CouponUsage{}).Where("coupon_id = ?", coupon.ID).Count(&usages).Error; err != nil {
		t.Fatalf("count usages failed: %v", err)
	}
	if usages != 1 {
		t.Fatalf("expected 1 usage row, got %d", usages)
	}
}
