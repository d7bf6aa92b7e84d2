package repository

import "time"

// GameListFilter 查询游戏列表的过滤条件
type GameListFilter struct {
	Page       int
	PageSize   int
	GenreID    uint
	Search     string
	OnlyActive bool
	WithGenres bool
}

// CouponListFilter 查询优惠码列表的过滤条件
type CouponListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}

// CouponUsageListFilter 查询优惠码使用记录列表的过滤条件
type CouponUsageListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	CouponID uint
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PurchaseListFilter 查询购买记录列表的过滤条件
type PurchaseListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	GameID   uint
}

// TopupListFilter 查询充值流水列表的过滤条件
type TopupListFilter struct {
	Page     int
	PageSize int
	UserID   uint
}
