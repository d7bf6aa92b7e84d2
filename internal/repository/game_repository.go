package repository

import (
	"errors"

	"github.com/gamevault-next/internal/models"

	"gorm.io/gorm"
)

// GameRepository 游戏数据访问接口
type GameRepository interface {
	GetByID(id uint) (*models.Game, error)
	GetByIDWithGenres(id uint) (*models.Game, error)
	ListByIDs(ids []uint) ([]models.Game, error)
	Create(game *models.Game) error
	Update(game *models.Game) error
	Delete(id uint) error
	List(filter GameListFilter) ([]models.Game, int64, error)
	ReplaceGenres(game *models.Game, genres []models.Genre) error
	WithTx(tx *gorm.DB) *GormGameRepository
}

// GormGameRepository GORM 实现
type GormGameRepository struct {
	db *gorm.DB
}

// NewGameRepository 创建游戏仓库
func NewGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// WithTx 绑定事务
func (r *GormGameRepository) WithTx(tx *gorm.DB) *GormGameRepository {
	if tx == nil {
		return r
	}
	return &GormGameRepository{db: tx}
}

// GetByID 根据 ID 获取游戏
func (r *GormGameRepository) GetByID(id uint) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

// GetByIDWithGenres 根据 ID 获取游戏（含题材与促销）
func (r *GormGameRepository) GetByIDWithGenres(id uint) (*models.Game, error) {
	var game models.Game
	if err := r.db.Preload("Genres").Preload("Promotions").First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

// ListByIDs 批量获取游戏
func (r *GormGameRepository) ListByIDs(ids []uint) ([]models.Game, error) {
	if len(ids) == 0 {
		return []models.Game{}, nil
	}
	var games []models.Game
	if err := r.db.Preload("Promotions").Where("id IN ?", ids).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// Create 创建游戏
func (r *GormGameRepository) Create(game *models.Game) error {
	return r.db.Create(game).Error
}

// Update 更新游戏
func (r *GormGameRepository) Update(game *models.Game) error {
	return r.db.Save(game).Error
}

// Delete 删除游戏（软删除）
func (r *GormGameRepository) Delete(id uint) error {
	return r.db.Delete(&models.Game{}, id).Error
}

// List 获取游戏列表
func (r *GormGameRepository) List(filter GameListFilter) ([]models.Game, int64, error) {
	query := r.db.Model(&models.Game{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"title", "developer"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	if filter.GenreID > 0 {
		query = query.
			Joins("JOIN game_genres ON game_genres.game_id = games.id").
			Where("game_genres.genre_id = ?", filter.GenreID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithGenres {
		query = query.Preload("Genres").Preload("Promotions")
	}

	var games []models.Game
	if err := query.Order("sort_order desc, id desc").Find(&games).Error; err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

// ReplaceGenres 重设游戏题材关联
func (r *GormGameRepository) ReplaceGenres(game *models.Game, genres []models.Genre) error {
	if game == nil {
		return nil
	}
	return r.db.Model(game).Association("Genres").Replace(genres)
}
