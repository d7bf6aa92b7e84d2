package public

import (
	"errors"

	"github.com/gamevault-next/internal/http/response"
	"github.com/gamevault-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, key: "error.coupon_invalid"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, key: "error.coupon_expired"},
	{target: service.ErrCouponExhausted, code: response.CodeBadRequest, key: "error.coupon_exhausted"},
	{target: service.ErrCouponAlreadyUsed, code: response.CodeBadRequest, key: "error.coupon_already_used"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrGameNotFound, code: response.CodeNotFound, key: "error.game_not_found"},
	{target: service.ErrGameUnavailable, code: response.CodeBadRequest, key: "error.game_unavailable"},
	{target: service.ErrCartItemExists, code: response.CodeConflict, key: "error.cart_item_exists"},
	{target: service.ErrAlreadyOwned, code: response.CodeConflict, key: "error.already_owned"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrInsufficientFunds, code: response.CodePaymentRequired, key: "error.insufficient_funds"},
	{target: service.ErrGameNotFound, code: response.CodeNotFound, key: "error.game_not_found"},
	{target: service.ErrGameUnavailable, code: response.CodeBadRequest, key: "error.game_unavailable"},
	{target: service.ErrAlreadyOwned, code: response.CodeConflict, key: "error.already_owned"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var walletErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidAmount, code: response.CodeBadRequest, key: "error.amount_invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_taken"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutErrorRules, couponErrorRules), response.CodeInternal, "error.internal")
}

func respondCouponError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(couponErrorRules, []mappedHandlerError{
		{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
		{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	}), response.CodeInternal, "error.internal")
}

func respondWalletError(c *gin.Context, err error) {
	respondWithMappedError(c, err, walletErrorRules, response.CodeInternal, "error.internal")
}

func respondAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
}
