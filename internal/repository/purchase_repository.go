package repository

import (
	"github.com/gamevault-next/internal/models"

	"gorm.io/gorm"
)

// GameSalesCount 游戏销量统计行
type GameSalesCount struct {
	GameID uint  `json:"game_id"`
	Count  int64 `json:"count"`
}

// PurchaseRepository 购买记录数据访问接口
type PurchaseRepository interface {
	CreateBatch(purchases []models.GamePurchase) error
	ExistsByUserAndGame(userID, gameID uint) (bool, error)
	ListOwnedGameIDs(userID uint, gameIDs []uint) ([]uint, error)
	ListByUser(filter PurchaseListFilter) ([]models.GamePurchase, int64, error)
	TopSellers(limit int) ([]GameSalesCount, error)
	WithTx(tx *gorm.DB) *GormPurchaseRepository
}

// GormPurchaseRepository GORM 实现
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建购买记录仓库
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPurchaseRepository) WithTx(tx *gorm.DB) *GormPurchaseRepository {
	if tx == nil {
		return r
	}
	return &GormPurchaseRepository{db: tx}
}

// CreateBatch 批量写入购买记录（唯一索引兜底重复购买）
func (r *GormPurchaseRepository) CreateBatch(purchases []models.GamePurchase) error {
	if len(purchases) == 0 {
		return nil
	}
	return r.db.Create(&purchases).Error
}

// ExistsByUserAndGame 判断用户是否已拥有游戏
func (r *GormPurchaseRepository) ExistsByUserAndGame(userID, gameID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.GamePurchase{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListOwnedGameIDs 返回候选集合中用户已拥有的游戏 ID
func (r *GormPurchaseRepository) ListOwnedGameIDs(userID uint, gameIDs []uint) ([]uint, error) {
	if len(gameIDs) == 0 {
		return []uint{}, nil
	}
	var owned []uint
	if err := r.db.Model(&models.GamePurchase{}).
		Where("user_id = ? AND game_id IN ?", userID, gameIDs).
		Pluck("game_id", &owned).Error; err != nil {
		return nil, err
	}
	return owned, nil
}

// ListByUser 获取用户游戏库
func (r *GormPurchaseRepository) ListByUser(filter PurchaseListFilter) ([]models.GamePurchase, int64, error) {
	query := r.db.Model(&models.GamePurchase{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.GameID > 0 {
		query = query.Where("game_id = ?", filter.GameID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var purchases []models.GamePurchase
	if err := query.Preload("Game").Order("purchased_at desc, id desc").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// TopSellers 按购买次数统计热销游戏
func (r *GormPurchaseRepository) TopSellers(limit int) ([]GameSalesCount, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []GameSalesCount
	if err := r.db.Model(&models.GamePurchase{}).
		Select("game_id, COUNT(*) as count").
		Group("game_id").
		Order("count DESC, game_id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
