package repository

import (
	"github.com/gamevault-next/internal/models"

	"gorm.io/gorm"
)

// TopupRepository 充值流水数据访问接口
type TopupRepository interface {
	Create(topup *models.WalletTopup) error
	ListByUser(filter TopupListFilter) ([]models.WalletTopup, int64, error)
	WithTx(tx *gorm.DB) *GormTopupRepository
}

// GormTopupRepository GORM 实现
type GormTopupRepository struct {
	db *gorm.DB
}

// NewTopupRepository 创建充值流水仓库
func NewTopupRepository(db *gorm.DB) *GormTopupRepository {
	return &GormTopupRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTopupRepository) WithTx(tx *gorm.DB) *GormTopupRepository {
	if tx == nil {
		return r
	}
	return &GormTopupRepository{db: tx}
}

// Create 创建充值流水
func (r *GormTopupRepository) Create(topup *models.WalletTopup) error {
	return r.db.Create(topup).Error
}

// ListByUser 获取用户充值流水
func (r *GormTopupRepository) ListByUser(filter TopupListFilter) ([]models.WalletTopup, int64, error) {
	query := r.db.Model(&models.WalletTopup{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var topups []models.WalletTopup
	if err := query.Order("id desc").Find(&topups).Error; err != nil {
		return nil, 0, err
	}
	return topups, total, nil
}
