package repository

import (
	"errors"

	"github.com/gamevault-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByUserAndGame(userID, gameID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(userID, gameID uint, quantity int) error
	DeleteByUserAndGame(userID, gameID uint) error
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Game").Preload("Game.Promotions").Where("user_id = ?", userID).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByUserAndGame 获取购物车项
func (r *GormCartRepository) GetByUserAndGame(userID, gameID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 创建购物车项（唯一索引兜底并发重复添加）
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateQuantity(userID, gameID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		UpdateColumn("quantity", quantity).Error
}

// DeleteByUserAndGame 删除购物车项
func (r *GormCartRepository) DeleteByUserAndGame(userID, gameID uint) error {
	return r.db.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&models.CartItem{}).Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
