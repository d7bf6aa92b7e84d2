package repository

import (
	"errors"

	"github.com/gamevault-next/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	ListByGameIDs(gameIDs []uint) ([]models.Promotion, error)
	ListActive() ([]models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// GetByID 根据 ID 获取促销
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// ListByGameIDs 批量获取游戏的促销
func (r *GormPromotionRepository) ListByGameIDs(gameIDs []uint) ([]models.Promotion, error) {
	if len(gameIDs) == 0 {
		return []models.Promotion{}, nil
	}
	var promotions []models.Promotion
	if err := r.db.Where("game_id IN ?", gameIDs).Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// ListActive 获取启用中的促销
func (r *GormPromotionRepository) ListActive() ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := r.db.Where("is_active = ?", true).Order("id desc").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// Create 创建促销
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新促销
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

// Delete 删除促销
func (r *GormPromotionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promotion{}, id).Error
}
