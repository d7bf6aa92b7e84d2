package service

import (
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"
)

// LibraryService 用户游戏库服务
type LibraryService struct {
	purchaseRepo repository.PurchaseRepository
}

// NewLibraryService 创建游戏库服务
func NewLibraryService(purchaseRepo repository.PurchaseRepository) *LibraryService {
	return &LibraryService{purchaseRepo: purchaseRepo}
}

// ListByUser 获取用户已购游戏
func (s *LibraryService) ListByUser(userID uint, page, pageSize int) ([]models.GamePurchase, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.purchaseRepo.ListByUser(repository.PurchaseListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// Owns 判断用户是否拥有某游戏
func (s *LibraryService) Owns(userID, gameID uint) (bool, error) {
	if userID == 0 || gameID == 0 {
		return false, ErrInvalidInput
	}
	return s.purchaseRepo.ExistsByUserAndGame(userID, gameID)
}
