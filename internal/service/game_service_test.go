package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupGameServiceTest(t *testing.T) (*GameService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:game_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Genre{},
		&models.Game{},
		&models.Promotion{},
		&models.GamePurchase{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	gameRepo := repository.NewGameRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	return NewGameService(gameRepo, genreRepo, purchaseRepo, 3, time.Minute), db
}

func createCatalogGame(t *testing.T, db *gorm.DB, title string, price float64, active bool, sortOrder int) *models.Game {
	t.Helper()
	game := &models.Game{
		Title:     title,
		Price:     models.NewMoneyFromFloat(price),
		IsActive:  active,
		SortOrder: sortOrder,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	return game
}

func recordSales(t *testing.T, db *gorm.DB, gameID uint, buyers ...uint) {
	t.Helper()
	now := time.Now()
	for _, userID := range buyers {
		purchase := models.GamePurchase{
			UserID:      userID,
			GameID:      gameID,
			PricePaid:   models.NewMoneyFromFloat(10),
			PurchasedAt: now,
		}
		if err := db.Create(&purchase).Error; err != nil {
			t.Fatalf("create purchase failed: %v", err)
		}
	}
}

func TestGameServiceListOnlyActive(t *testing.T) {
	svc, db := setupGameServiceTest(t)
	createCatalogGame(t, db, "Starfall Odyssey", 59.99, true, 30)
	createCatalogGame(t, db, "Hidden Gem", 9.99, false, 20)
	createCatalogGame(t, db, "Harvest Lane", 19.99, true, 10)

	details, total, err := svc.List(repository.GameListFilter{Page: 1, PageSize: 10, OnlyActive: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 games, got %d", len(details))
	}
	// 排序权重高的在前
	if details[0].Title != "Starfall Odyssey" {
		t.Fatalf("expected Starfall Odyssey first, got %s", details[0].Title)
	}
}

func TestGameServiceListFiltersByGenre(t *testing.T) {
	svc, db := setupGameServiceTest(t)
	genre := models.Genre{Name: "RPG"}
	if err := db.Create(&genre).Error; err != nil {
		t.Fatalf("create genre failed: %v", err)
	}
	tagged := createCatalogGame(t, db, "Starfall Odyssey", 59.99, true, 0)
	createCatalogGame(t, db, "Iron Vanguard", 39.99, true, 0)
	if err := db.Model(tagged).Association("Genres").Append(&genre); err != nil {
		t.Fatalf("append genre failed: %v", err)
	}

	details, total, err := svc.List(repository.GameListFilter{Page: 1, PageSize: 10, GenreID: genre.ID, OnlyActive: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(details) != 1 {
		t.Fatalf("expected single match, got total %d len %d", total, len(details))
	}
	if details[0].ID != tagged.ID {
		t.Fatalf("expected game %d, got %d", tagged.ID, details[0].ID)
	}
}

func TestGameServiceGetMarksPromotion(t *testing.T) {
	svc, db := setupGameServiceTest(t)
	game := createCatalogGame(t, db, "Neon Drift", 24.99, true, 0)
	past := time.Now().Add(-time.Hour)
	promo := models.Promotion{
		GameID:          game.ID,
		DiscountPercent: 20,
		StartsAt:        &past,
		IsActive:        true,
	}
	if err := db.Create(&promo).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	detail, err := svc.Get(game.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !detail.OnPromotion {
		t.Fatalf("expected on_promotion true")
	}
	if detail.DisplayPrice.Decimal.StringFixed(2) != "19.99" {
		t.Fatalf("expected display price 19.99, got %s", detail.DisplayPrice.Decimal.StringFixed(2))
	}
	if detail.Price.Decimal.StringFixed(2) != "24.99" {
		t.Fatalf("expected raw price untouched, got %s", detail.Price.Decimal.StringFixed(2))
	}
}

func TestGameServiceGetHidesInactive(t *testing.T) {
	svc, db := setupGameServiceTest(t)
	game := createCatalogGame(t, db, "Delisted", 9.99, false, 0)

	if _, err := svc.Get(game.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if _, err := svc.Get(999); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound for missing id, got %v", err)
	}
}

func TestGameServiceTopSellersOrdering(t *testing.T) {
	svc, db := setupGameServiceTest(t)
	first := createCatalogGame(t, db, "Starfall Odyssey", 59.99, true, 0)
	second := createCatalogGame(t, db, "Iron Vanguard", 39.99, true, 0)
	third := createCatalogGame(t, db, "Harvest Lane", 19.99, true, 0)
	fourth := createCatalogGame(t, db, "Neon Drift", 24.99, true, 0)

	recordSales(t, db, first.ID, 1, 2, 3)
	recordSales(t, db, second.ID, 1, 2)
	recordSales(t, db, third.ID, 1)
	recordSales(t, db, fourth.ID, 2)

	// Redis 未启用时直接现算
	entries, err := svc.TopSellers(context.Background())
	if err != nil {
		t.Fatalf("top sellers failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected limit 3, got %d entries", len(entries))
	}
	if entries[0].GameID != first.ID || entries[0].SalesCount != 3 {
		t.Fatalf("unexpected leader: %+v", entries[0])
	}
	if entries[1].GameID != second.ID || entries[1].SalesCount != 2 {
		t.Fatalf("unexpected runner-up: %+v", entries[1])
	}
	// 并列时按 game_id 升序
	if entries[2].GameID != third.ID {
		t.Fatalf("expected tie broken by id, got %+v", entries[2])
	}
}
