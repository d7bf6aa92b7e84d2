package service

import (
	"errors"
	"time"

	"github.com/gamevault-next/internal/logger"
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	GameID       uint         `json:"game_id"`
	Quantity     int          `json:"quantity"`
	Price        models.Money `json:"price"`
	DisplayPrice models.Money `json:"display_price"`
	Game         *models.Game `json:"game"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items    []CartItemDetail `json:"items"`
	Subtotal models.Money     `json:"subtotal"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo     repository.CartRepository
	gameRepo     repository.GameRepository
	purchaseRepo repository.PurchaseRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, gameRepo repository.GameRepository, purchaseRepo repository.PurchaseRepository) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		gameRepo:     gameRepo,
		purchaseRepo: purchaseRepo,
	}
}

// WithTx 绑定事务
func (s *CartService) WithTx(tx *gorm.DB) *CartService {
	if tx == nil {
		return s
	}
	return &CartService{
		cartRepo:     s.cartRepo.WithTx(tx),
		gameRepo:     s.gameRepo.WithTx(tx),
		purchaseRepo: s.purchaseRepo.WithTx(tx),
	}
}

// ListByUser 获取用户购物车（下架或已删除的游戏顺带清理）
func (s *CartService) ListByUser(userID uint) (*CartSummary, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	subtotal := decimal.Zero
	details := make([]CartItemDetail, 0, len(items))
	for i := range items {
		item := &items[i]
		game := item.Game
		if game == nil || game.ID == 0 || !game.IsActive {
			if err := s.cartRepo.DeleteByUserAndGame(userID, item.GameID); err != nil {
				logger.Warnw("cart_stale_item_cleanup_failed", "user_id", userID, "game_id", item.GameID, "error", err)
			}
			continue
		}
		subtotal = subtotal.Add(game.Price.Decimal)
		details = append(details, CartItemDetail{
			GameID:       item.GameID,
			Quantity:     item.Quantity,
			Price:        game.Price,
			DisplayPrice: DisplayPrice(game, now),
			Game:         game,
		})
	}
	return &CartSummary{
		Items:    details,
		Subtotal: models.NewMoneyFromDecimal(subtotal),
	}, nil
}

// AddItem 添加购物车项（每个游戏最多一件，重复添加报错）
//
// 校验与写入放在同一事务里，并发重复添加由唯一索引兜底。
func (s *CartService) AddItem(userID, gameID uint) error {
	if userID == 0 || gameID == 0 {
		return ErrInvalidInput
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		svc := s.WithTx(tx)

		game, err := svc.gameRepo.GetByID(gameID)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		if !game.IsActive {
			return ErrGameUnavailable
		}

		owned, err := svc.purchaseRepo.ExistsByUserAndGame(userID, gameID)
		if err != nil {
			return err
		}
		if owned {
			return ErrAlreadyOwned
		}

		existing, err := svc.cartRepo.GetByUserAndGame(userID, gameID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrCartItemExists
		}

		if err := svc.cartRepo.Create(&models.CartItem{
			UserID:   userID,
			GameID:   gameID,
			Quantity: 1,
		}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCartItemExists
			}
			return err
		}
		return nil
	})
}

// UpdateQuantity 更新购物车项数量（数字商品固定为 1，置 0 即删除）
func (s *CartService) UpdateQuantity(userID, gameID uint, quantity int) error {
	if userID == 0 || gameID == 0 {
		return ErrInvalidInput
	}
	if quantity < 0 || quantity > 1 {
		return ErrInvalidQuantity
	}

	existing, err := s.cartRepo.GetByUserAndGame(userID, gameID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if quantity == 0 {
		return s.cartRepo.DeleteByUserAndGame(userID, gameID)
	}
	return s.cartRepo.UpdateQuantity(userID, gameID, quantity)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, gameID uint) error {
	if userID == 0 || gameID == 0 {
		return ErrInvalidInput
	}
	existing, err := s.cartRepo.GetByUserAndGame(userID, gameID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.cartRepo.DeleteByUserAndGame(userID, gameID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	return s.cartRepo.ClearByUser(userID)
}
