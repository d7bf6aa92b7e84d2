package service

import (
	"strings"
	"time"

	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"
)

// GameAdminService 游戏后台管理服务
type GameAdminService struct {
	gameRepo      repository.GameRepository
	genreRepo     repository.GenreRepository
	promotionRepo repository.PromotionRepository
}

// NewGameAdminService 创建游戏后台管理服务
func NewGameAdminService(gameRepo repository.GameRepository, genreRepo repository.GenreRepository, promotionRepo repository.PromotionRepository) *GameAdminService {
	return &GameAdminService{
		gameRepo:      gameRepo,
		genreRepo:     genreRepo,
		promotionRepo: promotionRepo,
	}
}

// GameInput 游戏创建/更新输入
type GameInput struct {
	Title       string
	Description string
	Price       *models.Money
	CoverURL    string
	Developer   string
	ReleaseDate *time.Time
	GenreNames  []string
	IsActive    *bool
	SortOrder   *int
}

// Create 创建游戏
func (s *GameAdminService) Create(input GameInput) (*models.Game, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	if input.Price == nil || input.Price.Decimal.IsNegative() {
		return nil, ErrInvalidInput
	}

	game := &models.Game{
		Title:       title,
		Description: input.Description,
		Price:       *input.Price,
		CoverURL:    strings.TrimSpace(input.CoverURL),
		Developer:   strings.TrimSpace(input.Developer),
		ReleaseDate: input.ReleaseDate,
		IsActive:    true,
	}
	if input.IsActive != nil {
		game.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		game.SortOrder = *input.SortOrder
	}

	if err := s.gameRepo.Create(game); err != nil {
		return nil, err
	}
	if err := s.applyGenres(game, input.GenreNames); err != nil {
		return nil, err
	}
	return game, nil
}

// Update 更新游戏
func (s *GameAdminService) Update(id uint, input GameInput) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		game.Title = title
	}
	if input.Description != "" {
		game.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.Decimal.IsNegative() {
			return nil, ErrInvalidInput
		}
		game.Price = *input.Price
	}
	if cover := strings.TrimSpace(input.CoverURL); cover != "" {
		game.CoverURL = cover
	}
	if dev := strings.TrimSpace(input.Developer); dev != "" {
		game.Developer = dev
	}
	if input.ReleaseDate != nil {
		game.ReleaseDate = input.ReleaseDate
	}
	if input.IsActive != nil {
		game.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		game.SortOrder = *input.SortOrder
	}

	if err := s.gameRepo.Update(game); err != nil {
		return nil, err
	}
	if input.GenreNames != nil {
		if err := s.applyGenres(game, input.GenreNames); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// Delete 下架并删除游戏（软删除，已售记录不受影响）
func (s *GameAdminService) Delete(id uint) error {
	game, err := s.gameRepo.GetByID(id)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	return s.gameRepo.Delete(id)
}

// PromotionInput 促销创建/更新输入
type PromotionInput struct {
	GameID          uint
	Title           string
	DiscountPercent int
	StartsAt        *time.Time
	EndsAt          *time.Time
	IsActive        *bool
}

// CreatePromotion 创建促销
func (s *GameAdminService) CreatePromotion(input PromotionInput) (*models.Promotion, error) {
	if input.GameID == 0 {
		return nil, ErrInvalidInput
	}
	if input.DiscountPercent <= 0 || input.DiscountPercent >= 100 {
		return nil, ErrInvalidInput
	}
	game, err := s.gameRepo.GetByID(input.GameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	promotion := &models.Promotion{
		GameID:          input.GameID,
		Title:           strings.TrimSpace(input.Title),
		DiscountPercent: input.DiscountPercent,
		StartsAt:        input.StartsAt,
		EndsAt:          input.EndsAt,
		IsActive:        true,
	}
	if input.IsActive != nil {
		promotion.IsActive = *input.IsActive
	}
	if err := s.promotionRepo.Create(promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// DeletePromotion 删除促销
func (s *GameAdminService) DeletePromotion(id uint) error {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return ErrNotFound
	}
	return s.promotionRepo.Delete(id)
}

func (s *GameAdminService) applyGenres(game *models.Game, names []string) error {
	if names == nil {
		return nil
	}
	genres := make([]models.Genre, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		genre, err := s.genreRepo.FirstOrCreate(trimmed)
		if err != nil {
			return err
		}
		genres = append(genres, *genre)
	}
	return s.gameRepo.ReplaceGenres(game, genres)
}
