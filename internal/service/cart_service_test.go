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

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Genre{},
		&models.Game{},
		&models.Promotion{},
		&models.CartItem{},
		&models.GamePurchase{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cartRepo := repository.NewCartRepository(db)
	gameRepo := repository.NewGameRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	return NewCartService(cartRepo, gameRepo, purchaseRepo), db
}

func createCartTestGame(t *testing.T, db *gorm.DB, title string, price float64, active bool) *models.Game {
	t.Helper()
	game := &models.Game{
		Title:    title,
		Price:    models.NewMoneyFromFloat(price),
		IsActive: active,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	return game
}

func TestCartServiceAddItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	game := createCartTestGame(t, db, "Starfall Odyssey", 59.99, true)

	if err := svc.AddItem(1, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	var item models.CartItem
	if err := db.Where("user_id = ? AND game_id = ?", 1, game.ID).First(&item).Error; err != nil {
		t.Fatalf("load cart item failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", item.Quantity)
	}
}

func TestCartServiceAddItemRaceFallsBackToUniqueIndex(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	game := createCartTestGame(t, db, "Twin Racers", 9.99, true)

	if err := svc.AddItem(1, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	// 并发竞争中晚到的一方会越过预检直接撞唯一索引
	err := repository.NewCartRepository(db).Create(&models.CartItem{UserID: 1, GameID: game.ID, Quantity: 1})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error, got %v", err)
	}
}

func TestCartServiceAddItemDuplicate(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	game := createCartTestGame(t, db, "Iron Vanguard", 39.99, true)

	if err := svc.AddItem(1, game.ID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(1, game.ID); !errors.Is(err, ErrCartItemExists) {
		t.Fatalf("expected ErrCartItemExists, got %v", err)
	}
}

func TestCartServiceAddItemAlreadyOwned(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	game := createCartTestGame(t, db, "Harvest Lane", 19.99, true)
	purchase := models.GamePurchase{
		UserID:      1,
		GameID:      game.ID,
		PricePaid:   game.Price,
		PurchasedAt: time.Now(),
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}

	if err := svc.AddItem(1, game.ID); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
}

func TestCartServiceAddItemInactiveGame(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	game := createCartTestGame(t, db, "Delisted", 9.99, false)

	if err := svc.AddItem(1, game.ID); !errors.Is(err, ErrGameUnavailable) {
		t.Fatalf("expected ErrGameUnavailable, got %v", err)
	}
}

func TestCartServiceAddItemMissingGame(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	if err := svc.AddItem(1, 999); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestCartServiceUpdateQuantityZeroRemoves(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	game := createCartTestGame(t, db, "Neon Drift", 24.99, true)
	if err := svc.AddItem(1, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if err := svc.UpdateQuantity(1, game.ID, 0); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cart item removed, found %d", count)
	}
}

func TestCartServiceUpdateQuantityRejectsMoreThanOne(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	game := createCartTestGame(t, db, "Neon Drift", 24.99, true)
	if err := svc.AddItem(1, game.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if err := svc.UpdateQuantity(1, game.ID, 2); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCartServiceUpdateQuantityMissingItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	game := createCartTestGame(t, db, "Neon Drift", 24.99, true)

	if err := svc.UpdateQuantity(1, game.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartServiceRemoveItemMissing(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	game := createCartTestGame(t, db, "Neon Drift", 24.99, true)

	if err := svc.RemoveItem(1, game.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartServiceListByUserComputesSubtotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := createCartTestGame(t, db, "Starfall Odyssey", 59.99, true)
	second := createCartTestGame(t, db, "Harvest Lane", 19.99, true)
	if err := svc.AddItem(1, first.ID); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if err := svc.AddItem(1, second.ID); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(summary.Items))
	}
	if summary.Subtotal.Decimal.StringFixed(2) != "79.98" {
		t.Fatalf("expected subtotal 79.98, got %s", summary.Subtotal.Decimal.StringFixed(2))
	}
}

func TestCartServiceListByUserDropsInactiveGames(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	active := createCartTestGame(t, db, "Starfall Odyssey", 59.99, true)
	delisted := createCartTestGame(t, db, "Short Lived", 9.99, true)
	if err := svc.AddItem(1, active.ID); err != nil {
		t.Fatalf("add active failed: %v", err)
	}
	if err := svc.AddItem(1, delisted.ID); err != nil {
		t.Fatalf("add delisted failed: %v", err)
	}
	if err := db.Model(&models.Game{}).Where("id = ?", delisted.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate game failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("expected 1 item after cleanup, got %d", len(summary.Items))
	}
	if summary.Items[0].GameID != active.ID {
		t.Fatalf("expected remaining item %d, got %d", active.ID, summary.Items[0].GameID)
	}
	if summary.Subtotal.Decimal.StringFixed(2) != "59.99" {
		t.Fatalf("expected subtotal 59.99, got %s", summary.Subtotal.Decimal.StringFixed(2))
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected stale row deleted, found %d rows", count)
	}
}
