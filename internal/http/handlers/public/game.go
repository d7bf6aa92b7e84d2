package public

import (
	"strconv"
	"strings"

	"github.com/gamevault-next/internal/http/response"
	"github.com/gamevault-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListGames 游戏列表（仅上架游戏，支持类型与关键字筛选）
func (h *Handler) ListGames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	genreID, _ := strconv.ParseUint(c.Query("genre_id"), 10, 64)
	search := strings.TrimSpace(c.Query("search"))

	games, total, err := h.GameService.List(repository.GameListFilter{
		Page:       page,
		PageSize:   pageSize,
		GenreID:    uint(genreID),
		Search:     search,
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, games, response.BuildPagination(page, pageSize, total))
}

// GetGame 游戏详情
func (h *Handler) GetGame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	detail, svcErr := h.GameService.Get(uint(id))
	if svcErr != nil {
		respondCartError(c, svcErr)
		return
	}

	response.Success(c, detail)
}

// ListGenres 游戏类型列表
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.GameService.ListGenres()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{"genres": genres})
}

// TopSellers 热销榜
func (h *Handler) TopSellers(c *gin.Context) {
	entries, err := h.GameService.TopSellers(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{"top_sellers": entries})
}
