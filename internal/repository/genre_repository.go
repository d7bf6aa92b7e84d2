package repository

import (
	"errors"

	"github.com/gamevault-next/internal/models"

	"gorm.io/gorm"
)

// GenreRepository 题材数据访问接口
type GenreRepository interface {
	GetByID(id uint) (*models.Genre, error)
	GetByName(name string) (*models.Genre, error)
	ListByIDs(ids []uint) ([]models.Genre, error)
	ListAll() ([]models.Genre, error)
	Create(genre *models.Genre) error
	FirstOrCreate(name string) (*models.Genre, error)
}

// GormGenreRepository GORM 实现
type GormGenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建题材仓库
func NewGenreRepository(db *gorm.DB) *GormGenreRepository {
	return &GormGenreRepository{db: db}
}

// GetByID 根据 ID 获取题材
func (r *GormGenreRepository) GetByID(id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

// GetByName 根据名称获取题材
func (r *GormGenreRepository) GetByName(name string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.Where("name = ?", name).First(&genre).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

// ListByIDs 批量获取题材
func (r *GormGenreRepository) ListByIDs(ids []uint) ([]models.Genre, error) {
	if len(ids) == 0 {
		return []models.Genre{}, nil
	}
	var genres []models.Genre
	if err := r.db.Where("id IN ?", ids).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// ListAll 获取全部题材
func (r *GormGenreRepository) ListAll() ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Order("name asc").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// Create 创建题材
func (r *GormGenreRepository) Create(genre *models.Genre) error {
	return r.db.Create(genre).Error
}

// FirstOrCreate 按名称获取或创建题材
func (r *GormGenreRepository) FirstOrCreate(name string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.Where(models.Genre{Name: name}).FirstOrCreate(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}
