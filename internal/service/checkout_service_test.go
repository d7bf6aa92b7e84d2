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

type recordingNotifier struct {
	calls int
}

func (n *recordingNotifier) NotifySalesChanged() {
	n.calls++
}

type checkoutTestEnv struct {
	svc      *CheckoutService
	cart     *CartService
	notifier *recordingNotifier
	db       *gorm.DB
}

func setupCheckoutServiceTest(t *testing.T) *checkoutTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Game{},
		&models.Promotion{},
		&models.CartItem{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.GamePurchase{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	cartRepo := repository.NewCartRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	usageRepo := repository.NewCouponUsageRepository(db)

	couponService := NewCouponService(couponRepo, usageRepo)
	notifier := &recordingNotifier{}
	svc := NewCheckoutService(userRepo, cartRepo, gameRepo, purchaseRepo, couponService, notifier)
	cart := NewCartService(cartRepo, gameRepo, purchaseRepo)
	return &checkoutTestEnv{svc: svc, cart: cart, notifier: notifier, db: db}
}

func createCheckoutUser(t *testing.T, db *gorm.DB, wallet float64) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "buyer",
		Email:        fmt.Sprintf("buyer_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         models.RoleUser,
		Wallet:       models.NewMoneyFromFloat(wallet),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createCheckoutGame(t *testing.T, db *gorm.DB, title string, price float64) *models.Game {
	t.Helper()
	game := &models.Game{
		Title:    title,
		Price:    models.NewMoneyFromFloat(price),
		IsActive: true,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	return game
}

func createCheckoutCoupon(t *testing.T, db *gorm.DB, code, discountType string, value float64, maxUses *int) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: models.NewMoneyFromFloat(value),
		MaxUses:       maxUses,
		IsActive:      true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

func walletBalance(t *testing.T, db *gorm.DB, userID uint) string {
	t.Helper()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	return user.Wallet.Decimal.StringFixed(2)
}

func TestCheckoutWithFixedCoupon(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 100)
	first := createCheckoutGame(t, env.db, "Starfall Odyssey", 40)
	second := createCheckoutGame(t, env.db, "Harvest Lane", 20)
	uses := 5
	createCheckoutCoupon(t, env.db, "SAVE20", models.CouponTypeFixed, 20, &uses)

	if err := env.cart.AddItem(user.ID, first.ID); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if err := env.cart.AddItem(user.ID, second.ID); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	receipt, err := env.svc.Checkout(user.ID, "SAVE20")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if receipt.Subtotal.Decimal.StringFixed(2) != "60.00" {
		t.Fatalf("expected subtotal 60.00, got %s", receipt.Subtotal.Decimal.StringFixed(2))
	}
	if receipt.Discount.Decimal.StringFixed(2) != "20.00" {
		t.Fatalf("expected discount 20.00, got %s", receipt.Discount.Decimal.StringFixed(2))
	}
	if receipt.Total.Decimal.StringFixed(2) != "40.00" {
		t.Fatalf("expected total 40.00, got %s", receipt.Total.Decimal.StringFixed(2))
	}
	if receipt.CouponCode != "SAVE20" {
		t.Fatalf("expected coupon code on receipt, got %q", receipt.CouponCode)
	}
	if receipt.Wallet.Decimal.StringFixed(2) != "60.00" {
		t.Fatalf("expected receipt wallet 60.00, got %s", receipt.Wallet.Decimal.StringFixed(2))
	}
	if got := walletBalance(t, env.db, user.ID); got != "60.00" {
		t.Fatalf("expected wallet 60.00, got %s", got)
	}

	var purchases []models.GamePurchase
	if err := env.db.Where("user_id = ?", user.ID).Order("game_id ASC").Find(&purchases).Error; err != nil {
		t.Fatalf("load purchases failed: %v", err)
	}
	if len(purchases) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(purchases))
	}
	// 同一次结算共用同一时间戳，单件记录原价
	if !purchases[0].PurchasedAt.Equal(purchases[1].PurchasedAt) {
		t.Fatalf("expected shared purchase timestamp, got %v and %v", purchases[0].PurchasedAt, purchases[1].PurchasedAt)
	}
	if purchases[0].PricePaid.Decimal.StringFixed(2) != "40.00" {
		t.Fatalf("expected price paid 40.00, got %s", purchases[0].PricePaid.Decimal.StringFixed(2))
	}
	if purchases[0].CouponCode != "SAVE20" || purchases[1].CouponCode != "SAVE20" {
		t.Fatalf("expected coupon code recorded on purchases")
	}

	var cartCount int64
	if err := env.db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, found %d rows", cartCount)
	}

	var stored models.Coupon
	if err := env.db.Where("code = ?", "SAVE20").First(&stored).Error; err != nil {
		t.Fatalf("load coupon failed: %v", err)
	}
	if stored.MaxUses == nil || *stored.MaxUses != 4 {
		t.Fatalf("expected max_uses 4 after consume, got %v", stored.MaxUses)
	}

	if env.notifier.calls != 1 {
		t.Fatalf("expected 1 sales notification, got %d", env.notifier.calls)
	}
}

func TestCheckoutWithLowercaseCouponCode(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 100)
	game := createCheckoutGame(t, env.db, "Ember Keep", 50)
	uses := 5
	createCheckoutCoupon(t, env.db, "SAVE20", models.CouponTypeFixed, 20, &uses)

	if err := env.cart.AddItem(user.ID, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	receipt, err := env.svc.Checkout(user.ID, "save20")
	if err != nil {
		t.Fatalf("checkout with lowercase code failed: %v", err)
	}
	if receipt.Discount.Decimal.StringFixed(2) != "20.00" {
		t.Fatalf("expected discount 20.00, got %s", receipt.Discount.Decimal.StringFixed(2))
	}
	// 记录的是归一化后的码
	if receipt.CouponCode != "SAVE20" {
		t.Fatalf("expected coupon code SAVE20, got %q", receipt.CouponCode)
	}
	if got := walletBalance(t, env.db, user.ID); got != "70.00" {
		t.Fatalf("expected wallet 70.00, got %s", got)
	}
}

func TestCheckoutWithPercentCoupon(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 100)
	game := createCheckoutGame(t, env.db, "Iron Vanguard", 80)
	createCheckoutCoupon(t, env.db, "QUARTER", models.CouponTypePercent, 25, nil)

	if err := env.cart.AddItem(user.ID, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	receipt, err := env.svc.Checkout(user.ID, "QUARTER")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if receipt.Discount.Decimal.StringFixed(2) != "20.00" {
		t.Fatalf("expected discount 20.00, got %s", receipt.Discount.Decimal.StringFixed(2))
	}
	if got := walletBalance(t, env.db, user.ID); got != "40.00" {
		t.Fatalf("expected wallet 40.00, got %s", got)
	}
}

func TestCheckoutDiscountClampedToZeroTotal(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 5)
	game := createCheckoutGame(t, env.db, "Harvest Lane", 20)
	createCheckoutCoupon(t, env.db, "BIG", models.CouponTypeFixed, 100, nil)

	if err := env.cart.AddItem(user.ID, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	receipt, err := env.svc.Checkout(user.ID, "BIG")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if receipt.Discount.Decimal.StringFixed(2) != "20.00" {
		t.Fatalf("expected discount clamped to 20.00, got %s", receipt.Discount.Decimal.StringFixed(2))
	}
	if !receipt.Total.Decimal.IsZero() {
		t.Fatalf("expected total 0, got %s", receipt.Total.Decimal)
	}
	if got := walletBalance(t, env.db, user.ID); got != "5.00" {
		t.Fatalf("expected wallet unchanged at 5.00, got %s", got)
	}
}

func TestCheckoutInsufficientFundsRollsBack(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 10)
	game := createCheckoutGame(t, env.db, "Starfall Odyssey", 59.99)
	uses := 1
	createCheckoutCoupon(t, env.db, "LASTUSE", models.CouponTypeFixed, 5, &uses)

	if err := env.cart.AddItem(user.ID, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if _, err := env.svc.Checkout(user.ID, "LASTUSE"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := walletBalance(t, env.db, user.ID); got != "10.00" {
		t.Fatalf("expected wallet untouched at 10.00, got %s", got)
	}
	var purchases int64
	if err := env.db.Model(&models.GamePurchase{}).Where("user_id = ?", user.ID).Count(&purchases).Error; err != nil {
		t.Fatalf("count purchases failed: %v", err)
	}
	if purchases != 0 {
		t.Fatalf("expected no purchases, got %d", purchases)
	}
	var cartCount int64
	if err := env.db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 1 {
		t.Fatalf("expected cart intact, found %d rows", cartCount)
	}
	var coupons int64
	if err := env.db.Model(&models.Coupon{}).Where("code = ?", "LASTUSE").Count(&coupons).Error; err != nil {
		t.Fatalf("count coupons failed: %v", err)
	}
	if coupons != 1 {
		t.Fatalf("expected coupon intact, found %d rows", coupons)
	}
	if env.notifier.calls != 0 {
		t.Fatalf("expected no sales notification on failure, got %d", env.notifier.calls)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 50)

	if _, err := env.svc.Checkout(user.ID, ""); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutRejectsUsedCoupon(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 200)
	first := createCheckoutGame(t, env.db, "Starfall Odyssey", 40)
	second := createCheckoutGame(t, env.db, "Iron Vanguard", 40)
	uses := 10
	createCheckoutCoupon(t, env.db, "REPEAT", models.CouponTypeFixed, 10, &uses)

	if err := env.cart.AddItem(user.ID, first.ID); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if _, err := env.svc.Checkout(user.ID, "REPEAT"); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	if err := env.cart.AddItem(user.ID, second.ID); err != nil {
		t.Fatalf("add second failed: %v", err)
	}
	if _, err := env.svc.Checkout(user.ID, "REPEAT"); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}
}

func TestCheckoutLastCouponUseDeletesCoupon(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 100)
	game := createCheckoutGame(t, env.db, "Neon Drift", 24.99)
	uses := 1
	createCheckoutCoupon(t, env.db, "FINALRUN", models.CouponTypeFixed, 5, &uses)

	if err := env.cart.AddItem(user.ID, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := env.svc.Checkout(user.ID, "FINALRUN"); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	var count int64
	if err := env.db.Model(&models.Coupon{}).Where("code = ?", "FINALRUN").Count(&count).Error; err != nil {
		t.Fatalf("count coupons failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected coupon deleted after last use, found %d rows", count)
	}
}

func TestCheckoutChargesRawPriceDuringPromotion(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 100)
	game := createCheckoutGame(t, env.db, "Neon Drift", 24.99)
	past := time.Now().Add(-time.Hour)
	promo := models.Promotion{
		GameID:          game.ID,
		Title:           "Launch Month Sale",
		DiscountPercent: 20,
		StartsAt:        &past,
		IsActive:        true,
	}
	if err := env.db.Create(&promo).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	if err := env.cart.AddItem(user.ID, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	receipt, err := env.svc.Checkout(user.ID, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	// 促销只作用于展示价
	if receipt.Total.Decimal.StringFixed(2) != "24.99" {
		t.Fatalf("expected total 24.99, got %s", receipt.Total.Decimal.StringFixed(2))
	}
	if got := walletBalance(t, env.db, user.ID); got != "75.01" {
		t.Fatalf("expected wallet 75.01, got %s", got)
	}
}

func TestPurchaseGameRemovesCartRow(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 100)
	game := createCheckoutGame(t, env.db, "Harvest Lane", 19.99)

	if err := env.cart.AddItem(user.ID, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	receipt, err := env.svc.PurchaseGame(user.ID, game.ID, "")
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if len(receipt.Items) != 1 || receipt.Items[0].GameID != game.ID {
		t.Fatalf("unexpected receipt items: %+v", receipt.Items)
	}
	if got := walletBalance(t, env.db, user.ID); got != "80.01" {
		t.Fatalf("expected wallet 80.01, got %s", got)
	}

	var cartCount int64
	if err := env.db.Model(&models.CartItem{}).Where("user_id = ? AND game_id = ?", user.ID, game.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart row removed, found %d", cartCount)
	}
}

func TestPurchaseGameAlreadyOwned(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 100)
	game := createCheckoutGame(t, env.db, "Harvest Lane", 19.99)

	if _, err := env.svc.PurchaseGame(user.ID, game.ID, ""); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	if _, err := env.svc.PurchaseGame(user.ID, game.ID, ""); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
}

func TestPurchaseGameInactive(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := createCheckoutUser(t, env.db, 100)
	game := createCheckoutGame(t, env.db, "Delisted", 9.99)
	if err := env.db.Model(&models.Game{}).Where("id = ?", game.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate game failed: %v", err)
	}

	if _, err := env.svc.PurchaseGame(user.ID, game.ID, ""); !errors.Is(err, ErrGameUnavailable) {
		t.Fatalf("expected ErrGameUnavailable, got %v", err)
	}
}
