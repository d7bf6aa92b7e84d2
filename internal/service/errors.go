package service

import "errors"

// 业务哨兵错误，handler 层据此映射响应码与文案
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidInput       = errors.New("请求参数无效")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrGameNotFound       = errors.New("游戏不存在")
	ErrGameUnavailable    = errors.New("游戏未上架")
	ErrCartEmpty          = errors.New("购物车为空")
	ErrCartItemExists     = errors.New("游戏已在购物车中")
	ErrAlreadyOwned       = errors.New("已拥有该游戏")
	ErrInvalidQuantity    = errors.New("数量无效")
	ErrCouponInvalid      = errors.New("优惠码无效")
	ErrCouponExpired      = errors.New("优惠码已过期")
	ErrCouponExhausted    = errors.New("优惠码次数已用尽")
	ErrCouponAlreadyUsed  = errors.New("优惠码已被该账号使用")
	ErrCouponCodeTaken    = errors.New("优惠码已存在")
	ErrInsufficientFunds  = errors.New("钱包余额不足")
	ErrInvalidAmount      = errors.New("金额无效")
)
