package service

import (
	"context"
	"time"

	"github.com/gamevault-next/internal/cache"
	"github.com/gamevault-next/internal/constants"
	"github.com/gamevault-next/internal/logger"
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"
)

// GameDetail 游戏详情（含促销展示价）
type GameDetail struct {
	models.Game
	DisplayPrice models.Money `json:"display_price"`
	OnPromotion  bool         `json:"on_promotion"`
}

// TopSellerEntry 热销榜条目
type TopSellerEntry struct {
	GameID       uint         `json:"game_id"`
	Title        string       `json:"title"`
	CoverURL     string       `json:"cover_url"`
	Price        models.Money `json:"price"`
	DisplayPrice models.Money `json:"display_price"`
	SalesCount   int64        `json:"sales_count"`
}

// GameService 游戏目录服务
type GameService struct {
	gameRepo        repository.GameRepository
	genreRepo       repository.GenreRepository
	purchaseRepo    repository.PurchaseRepository
	topSellersLimit int
	cacheTTL        time.Duration
}

// NewGameService 创建游戏目录服务
func NewGameService(gameRepo repository.GameRepository, genreRepo repository.GenreRepository, purchaseRepo repository.PurchaseRepository, topSellersLimit int, cacheTTL time.Duration) *GameService {
	if topSellersLimit <= 0 {
		topSellersLimit = constants.DefaultTopSellersLimit
	}
	return &GameService{
		gameRepo:        gameRepo,
		genreRepo:       genreRepo,
		purchaseRepo:    purchaseRepo,
		topSellersLimit: topSellersLimit,
		cacheTTL:        cacheTTL,
	}
}

// List 游戏列表（含促销展示价）
func (s *GameService) List(filter repository.GameListFilter) ([]GameDetail, int64, error) {
	filter.WithGenres = true
	games, total, err := s.gameRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	details := make([]GameDetail, 0, len(games))
	for i := range games {
		details = append(details, toGameDetail(&games[i], now))
	}
	return details, total, nil
}

// Get 游戏详情
func (s *GameService) Get(id uint) (*GameDetail, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	game, err := s.gameRepo.GetByIDWithGenres(id)
	if err != nil {
		return nil, err
	}
	if game == nil || !game.IsActive {
		return nil, ErrGameNotFound
	}
	detail := toGameDetail(game, time.Now())
	return &detail, nil
}

// ListGenres 题材列表
func (s *GameService) ListGenres() ([]models.Genre, error) {
	return s.genreRepo.ListAll()
}

// TopSellers 热销榜（缓存优先，未命中时现算并回填）
func (s *GameService) TopSellers(ctx context.Context) ([]TopSellerEntry, error) {
	var cached []TopSellerEntry
	hit, err := cache.GetJSON(ctx, constants.CacheKeyTopSellers, &cached)
	if err != nil {
		logger.Warnw("top_sellers_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}
	return s.RebuildTopSellers(ctx)
}

// RebuildTopSellers 重算热销榜并回填缓存（worker 任务也走这里）
func (s *GameService) RebuildTopSellers(ctx context.Context) ([]TopSellerEntry, error) {
	rows, err := s.purchaseRepo.TopSellers(s.topSellersLimit)
	if err != nil {
		return nil, err
	}

	gameIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		gameIDs = append(gameIDs, row.GameID)
	}
	games, err := s.gameRepo.ListByIDs(gameIDs)
	if err != nil {
		return nil, err
	}
	gamesByID := make(map[uint]*models.Game, len(games))
	for i := range games {
		gamesByID[games[i].ID] = &games[i]
	}

	now := time.Now()
	entries := make([]TopSellerEntry, 0, len(rows))
	for _, row := range rows {
		game, ok := gamesByID[row.GameID]
		if !ok {
			continue
		}
		entries = append(entries, TopSellerEntry{
			GameID:       game.ID,
			Title:        game.Title,
			CoverURL:     game.CoverURL,
			Price:        game.Price,
			DisplayPrice: DisplayPrice(game, now),
			SalesCount:   row.Count,
		})
	}

	if err := cache.SetJSON(ctx, constants.CacheKeyTopSellers, entries, s.cacheTTL); err != nil {
		logger.Warnw("top_sellers_cache_write_failed", "error", err)
	}
	return entries, nil
}

func toGameDetail(game *models.Game, now time.Time) GameDetail {
	display := DisplayPrice(game, now)
	return GameDetail{
		Game:         *game,
		DisplayPrice: display,
		OnPromotion:  display.Decimal.LessThan(game.Price.Decimal),
	}
}
