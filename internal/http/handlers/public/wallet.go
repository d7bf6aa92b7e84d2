package public

import (
	"strconv"

	"github.com/gamevault-next/internal/http/response"
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/service"

	"github.com/gin-gonic/gin"
)

// WalletBalance 查询钱包余额
func (h *Handler) WalletBalance(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	balance, err := h.WalletService.Balance(userID)
	if err != nil {
		respondWalletError(c, err)
		return
	}

	response.Success(c, gin.H{"wallet": balance})
}

// WalletAddFundsRequest 钱包充值请求（金额使用字符串避免浮点误差）
type WalletAddFundsRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// WalletAddFunds 钱包充值
func (h *Handler) WalletAddFunds(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req WalletAddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	amount, err := models.NewMoneyFromString(req.Amount)
	if err != nil {
		respondWalletError(c, service.ErrInvalidAmount)
		return
	}

	balance, err := h.WalletService.AddFunds(userID, amount)
	if err != nil {
		respondWalletError(c, err)
		return
	}

	response.Success(c, gin.H{"wallet": balance})
}

// WalletTopups 充值记录
func (h *Handler) WalletTopups(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	topups, total, err := h.WalletService.ListTopups(userID, page, pageSize)
	if err != nil {
		respondWalletError(c, err)
		return
	}

	response.SuccessWithPage(c, topups, response.BuildPagination(page, pageSize, total))
}
