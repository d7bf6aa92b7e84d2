package service

import (
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletService 钱包服务
type WalletService struct {
	userRepo  repository.UserRepository
	topupRepo repository.TopupRepository
}

// NewWalletService 创建钱包服务
func NewWalletService(userRepo repository.UserRepository, topupRepo repository.TopupRepository) *WalletService {
	return &WalletService{
		userRepo:  userRepo,
		topupRepo: topupRepo,
	}
}

// Balance 查询钱包余额
func (s *WalletService) Balance(userID uint) (models.Money, error) {
	if userID == 0 {
		return models.Money{}, ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return models.Money{}, err
	}
	if user == nil {
		return models.Money{}, ErrNotFound
	}
	return user.Wallet, nil
}

// AddFunds 充值（余额增加与流水写入同一事务）
func (s *WalletService) AddFunds(userID uint, amount models.Money) (models.Money, error) {
	if userID == 0 {
		return models.Money{}, ErrInvalidInput
	}
	if amount.Decimal.LessThanOrEqual(decimal.Zero) {
		return models.Money{}, ErrInvalidAmount
	}

	var balance models.Money
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		topupRepo := s.topupRepo.WithTx(tx)

		user, err := userRepo.GetByIDForUpdate(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNotFound
		}

		if err := userRepo.CreditWallet(userID, amount); err != nil {
			return err
		}
		if err := topupRepo.Create(&models.WalletTopup{
			UserID: userID,
			Amount: amount,
		}); err != nil {
			return err
		}

		balance = user.Wallet.Add(amount)
		return nil
	})
	if err != nil {
		return models.Money{}, err
	}
	return balance, nil
}

// ListTopups 查询充值流水
func (s *WalletService) ListTopups(userID uint, page, pageSize int) ([]models.WalletTopup, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.topupRepo.ListByUser(repository.TopupListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}
