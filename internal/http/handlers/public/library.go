package public

import (
	"strconv"

	"github.com/gamevault-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Library 已购游戏列表
func (h *Handler) Library(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	purchases, total, err := h.LibraryService.ListByUser(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, purchases, response.BuildPagination(page, pageSize, total))
}

// OwnsGame 查询某游戏是否已拥有
func (h *Handler) OwnsGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	gameID, err := strconv.ParseUint(c.Param("game_id"), 10, 64)
	if err != nil || gameID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	owned, svcErr := h.LibraryService.Owns(userID, uint(gameID))
	if svcErr != nil {
		respondError(c, response.CodeInternal, "error.internal", svcErr)
		return
	}

	response.Success(c, gin.H{"owned": owned})
}
