package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gamevault-next/internal/http/response"
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"
	"github.com/gamevault-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GameRequest 创建/更新游戏请求
type GameRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	CoverURL    string   `json:"cover_url"`
	Developer   string   `json:"developer"`
	ReleaseDate string   `json:"release_date"`
	GenreNames  []string `json:"genre_names"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   *int     `json:"sort_order"`
}

func (r GameRequest) toServiceInput() (service.GameInput, error) {
	releaseDate, err := parseTimeNullable(r.ReleaseDate)
	if err != nil {
		return service.GameInput{}, err
	}
	input := service.GameInput{
		Title:       r.Title,
		Description: r.Description,
		CoverURL:    r.CoverURL,
		Developer:   r.Developer,
		ReleaseDate: releaseDate,
		GenreNames:  r.GenreNames,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
	if r.Price != nil {
		price := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.Price))
		input.Price = &price
	}
	return input, nil
}

// CreateGame 创建游戏
func (h *Handler) CreateGame(c *gin.Context) {
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	game, err := h.GameAdminService.Create(input)
	if err != nil {
		respondGameAdminError(c, err)
		return
	}

	response.Success(c, game)
}

// UpdateGame 更新游戏
func (h *Handler) UpdateGame(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || gameID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	game, err := h.GameAdminService.Update(uint(gameID), input)
	if err != nil {
		respondGameAdminError(c, err)
		return
	}

	response.Success(c, game)
}

// DeleteGame 删除游戏
func (h *Handler) DeleteGame(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || gameID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.GameAdminService.Delete(uint(gameID)); err != nil {
		respondGameAdminError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ListGames 游戏列表（含下架游戏）
func (h *Handler) ListGames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	genreID, _ := strconv.ParseUint(c.Query("genre_id"), 10, 64)

	games, total, err := h.GameService.List(repository.GameListFilter{
		Page:     page,
		PageSize: pageSize,
		GenreID:  uint(genreID),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, games, response.BuildPagination(page, pageSize, total))
}

// PromotionRequest 创建促销请求
type PromotionRequest struct {
	GameID          uint   `json:"game_id" binding:"required"`
	Title           string `json:"title"`
	DiscountPercent int    `json:"discount_percent" binding:"required"`
	StartsAt        string `json:"starts_at"`
	EndsAt          string `json:"ends_at"`
	IsActive        *bool  `json:"is_active"`
}

// CreatePromotion 创建促销
func (h *Handler) CreatePromotion(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	endsAt, err := parseTimeNullable(req.EndsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.GameAdminService.CreatePromotion(service.PromotionInput{
		GameID:          req.GameID,
		Title:           req.Title,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		IsActive:        req.IsActive,
	})
	if err != nil {
		respondGameAdminError(c, err)
		return
	}

	response.Success(c, promotion)
}

// DeletePromotion 删除促销
func (h *Handler) DeletePromotion(c *gin.Context) {
	promotionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || promotionID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.GameAdminService.DeletePromotion(uint(promotionID)); err != nil {
		respondGameAdminError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func respondGameAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		respondError(c, response.CodeNotFound, "error.game_not_found", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.not_found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
