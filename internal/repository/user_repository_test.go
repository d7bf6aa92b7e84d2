package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/gamevault-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserRepositoryTest(t *testing.T) (*GormUserRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewUserRepository(db), db
}

func createRepoTestUser(t *testing.T, db *gorm.DB, wallet float64) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "holder",
		Email:        fmt.Sprintf("repo_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         models.RoleUser,
		Wallet:       models.NewMoneyFromFloat(wallet),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestUserRepositoryDebitWalletGuard(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := createRepoTestUser(t, db, 50)

	debited, err := repo.DebitWallet(user.ID, models.NewMoneyFromFloat(30))
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if !debited {
		t.Fatalf("expected debit to succeed")
	}

	// 余额不足时不更新任何行
	debited, err = repo.DebitWallet(user.ID, models.NewMoneyFromFloat(30))
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if debited {
		t.Fatalf("expected guarded debit to refuse")
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.Wallet.Decimal.StringFixed(2) != "20.00" {
		t.Fatalf("expected wallet 20.00, got %s", stored.Wallet.Decimal.StringFixed(2))
	}
}

func TestUserRepositoryDebitWalletExactBalance(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := createRepoTestUser(t, db, 25)

	debited, err := repo.DebitWallet(user.ID, models.NewMoneyFromFloat(25))
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if !debited {
		t.Fatalf("expected debit of exact balance to succeed")
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if !stored.Wallet.Decimal.IsZero() {
		t.Fatalf("expected wallet 0, got %s", stored.Wallet.Decimal)
	}
}

func TestUserRepositoryCreditWallet(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := createRepoTestUser(t, db, 10)

	if err := repo.CreditWallet(user.ID, models.NewMoneyFromFloat(15.25)); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.Wallet.Decimal.StringFixed(2) != "25.25" {
		t.Fatalf("expected wallet 25.25, got %s", stored.Wallet.Decimal.StringFixed(2))
	}
}

func TestUserRepositoryGetByIDMissing(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	user, err := repo.GetByID(999)
	if err != nil {
		t.Fatalf("expected nil error for missing user, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}
