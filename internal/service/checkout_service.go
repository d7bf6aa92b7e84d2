package service

import (
	"strings"
	"time"

	"github.com/gamevault-next/internal/logger"
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchasedItem 结算回执中的单件商品
type PurchasedItem struct {
	GameID    uint         `json:"game_id"`
	Title     string       `json:"title"`
	PricePaid models.Money `json:"price_paid"`
}

// CheckoutReceipt 结算回执
type CheckoutReceipt struct {
	Items       []PurchasedItem `json:"items"`
	Subtotal    models.Money    `json:"subtotal"`
	Discount    models.Money    `json:"discount"`
	Total       models.Money    `json:"total"`
	CouponCode  string          `json:"coupon_code,omitempty"`
	Wallet      models.Money    `json:"wallet"`
	PurchasedAt time.Time       `json:"purchased_at"`
}

// TopSellersNotifier 结算成功后触发热销榜重建
type TopSellersNotifier interface {
	NotifySalesChanged()
}

// CheckoutService 结算服务（钱包扣款、优惠码核销、入库在同一事务内完成）
type CheckoutService struct {
	userRepo      repository.UserRepository
	cartRepo      repository.CartRepository
	gameRepo      repository.GameRepository
	purchaseRepo  repository.PurchaseRepository
	couponService *CouponService
	notifier      TopSellersNotifier
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(
	userRepo repository.UserRepository,
	cartRepo repository.CartRepository,
	gameRepo repository.GameRepository,
	purchaseRepo repository.PurchaseRepository,
	couponService *CouponService,
	notifier TopSellersNotifier,
) *CheckoutService {
	return &CheckoutService{
		userRepo:      userRepo,
		cartRepo:      cartRepo,
		gameRepo:      gameRepo,
		purchaseRepo:  purchaseRepo,
		couponService: couponService,
		notifier:      notifier,
	}
}

// Checkout 整车结算
//
// 事务内执行：锁定用户行 → 聚合购物车 → 解析优惠码（加锁）→ 计算应付 →
// 扣减钱包 → 批量写入购买记录（共用同一时间戳）→ 核销优惠码 → 清空购物车。
// 任一步失败整体回滚，钱包、优惠码、游戏库三者不会出现部分生效。
func (s *CheckoutService) Checkout(userID uint, couponCode string) (*CheckoutReceipt, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	var receipt *CheckoutReceipt
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		couponService := s.couponService.WithTx(tx)

		user, err := userRepo.GetByIDForUpdate(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNotFound
		}

		items, err := cartRepo.ListByUser(userID)
		if err != nil {
			return err
		}

		lines, subtotal, err := buildCheckoutLines(cartRepo, userID, items)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		var coupon *models.Coupon
		trimmedCode := strings.TrimSpace(couponCode)
		if trimmedCode != "" {
			coupon, err = couponService.ResolveForUpdate(trimmedCode, userID)
			if err != nil {
				return err
			}
		}

		discount, err := CalculateDiscount(coupon, subtotal)
		if err != nil {
			return err
		}
		total := subtotal.Sub(discount)

		if user.Wallet.Decimal.LessThan(total.Decimal) {
			return ErrInsufficientFunds
		}
		debited, err := userRepo.DebitWallet(userID, total)
		if err != nil {
			return err
		}
		if !debited {
			return ErrInsufficientFunds
		}

		purchasedAt := time.Now()
		purchases := make([]models.GamePurchase, 0, len(lines))
		receiptItems := make([]PurchasedItem, 0, len(lines))
		appliedCode := ""
		if coupon != nil {
			appliedCode = coupon.Code
		}
		for _, line := range lines {
			purchases = append(purchases, models.GamePurchase{
				UserID:      userID,
				GameID:      line.GameID,
				PricePaid:   line.Price,
				CouponCode:  appliedCode,
				PurchasedAt: purchasedAt,
			})
			receiptItems = append(receiptItems, PurchasedItem{
				GameID:    line.GameID,
				Title:     line.Title,
				PricePaid: line.Price,
			})
		}
		if err := purchaseRepo.CreateBatch(purchases); err != nil {
			return err
		}

		if err := couponService.Consume(coupon, userID); err != nil {
			return err
		}

		if err := cartRepo.ClearByUser(userID); err != nil {
			return err
		}

		receipt = &CheckoutReceipt{
			Items:       receiptItems,
			Subtotal:    subtotal,
			Discount:    discount,
			Total:       total,
			CouponCode:  appliedCode,
			Wallet:      user.Wallet.Sub(total),
			PurchasedAt: purchasedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySalesChanged(userID)
	return receipt, nil
}

// PurchaseGame 单件直购（跳过购物车，同样的事务语义）
func (s *CheckoutService) PurchaseGame(userID, gameID uint, couponCode string) (*CheckoutReceipt, error) {
	if userID == 0 || gameID == 0 {
		return nil, ErrInvalidInput
	}

	var receipt *CheckoutReceipt
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		gameRepo := s.gameRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		couponService := s.couponService.WithTx(tx)

		user, err := userRepo.GetByIDForUpdate(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNotFound
		}

		game, err := gameRepo.GetByID(gameID)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		if !game.IsActive {
			return ErrGameUnavailable
		}

		owned, err := purchaseRepo.ExistsByUserAndGame(userID, gameID)
		if err != nil {
			return err
		}
		if owned {
			return ErrAlreadyOwned
		}

		var coupon *models.Coupon
		trimmedCode := strings.TrimSpace(couponCode)
		if trimmedCode != "" {
			coupon, err = couponService.ResolveForUpdate(trimmedCode, userID)
			if err != nil {
				return err
			}
		}

		subtotal := game.Price
		discount, err := CalculateDiscount(coupon, subtotal)
		if err != nil {
			return err
		}
		total := subtotal.Sub(discount)

		if user.Wallet.Decimal.LessThan(total.Decimal) {
			return ErrInsufficientFunds
		}
		debited, err := userRepo.DebitWallet(userID, total)
		if err != nil {
			return err
		}
		if !debited {
			return ErrInsufficientFunds
		}

		purchasedAt := time.Now()
		appliedCode := ""
		if coupon != nil {
			appliedCode = coupon.Code
		}
		if err := purchaseRepo.CreateBatch([]models.GamePurchase{{
			UserID:      userID,
			GameID:      gameID,
			PricePaid:   game.Price,
			CouponCode:  appliedCode,
			PurchasedAt: purchasedAt,
		}}); err != nil {
			return err
		}

		if err := couponService.Consume(coupon, userID); err != nil {
			return err
		}

		// 直购的游戏若还躺在购物车里，一并移除
		if err := cartRepo.DeleteByUserAndGame(userID, gameID); err != nil {
			return err
		}

		receipt = &CheckoutReceipt{
			Items: []PurchasedItem{{
				GameID:    gameID,
				Title:     game.Title,
				PricePaid: game.Price,
			}},
			Subtotal:    subtotal,
			Discount:    discount,
			Total:       total,
			CouponCode:  appliedCode,
			Wallet:      user.Wallet.Sub(total),
			PurchasedAt: purchasedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySalesChanged(userID)
	return receipt, nil
}

type checkoutLine struct {
	GameID uint
	Title  string
	Price  models.Money
}

// buildCheckoutLines 聚合购物车为结算行，下架或已删除的游戏顺带清理出购物车
func buildCheckoutLines(cartRepo *repository.GormCartRepository, userID uint, items []models.CartItem) ([]checkoutLine, models.Money, error) {
	lines := make([]checkoutLine, 0, len(items))
	subtotal := decimal.Zero
	for i := range items {
		item := &items[i]
		game := item.Game
		if game == nil || game.ID == 0 || !game.IsActive {
			if err := cartRepo.DeleteByUserAndGame(userID, item.GameID); err != nil {
				return nil, models.Money{}, err
			}
			continue
		}
		lines = append(lines, checkoutLine{
			GameID: game.ID,
			Title:  game.Title,
			Price:  game.Price,
		})
		subtotal = subtotal.Add(game.Price.Decimal)
	}
	return lines, models.NewMoneyFromDecimal(subtotal), nil
}

func (s *CheckoutService) notifySalesChanged(userID uint) {
	if s.notifier == nil {
		return
	}
	logger.Debugw("top_sellers_rebuild_notify", "user_id", userID)
	s.notifier.NotifySalesChanged()
}
