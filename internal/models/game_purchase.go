package models

import "time"

// GamePurchase 购买记录（同一用户同一游戏唯一，即用户游戏库）
type GamePurchase struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                       // 主键
	UserID      uint      `gorm:"not null;uniqueIndex:idx_purchase_user_game" json:"user_id"` // 用户ID
	GameID      uint      `gorm:"not null;uniqueIndex:idx_purchase_user_game" json:"game_id"` // 游戏ID
	PricePaid   Money     `gorm:"type:decimal(20,2);not null" json:"price_paid"`              // 该游戏计入本单的价格（折扣作用于整单，不分摊到单件）
	CouponCode  string    `gorm:"default:''" json:"coupon_code"`                              // 结算时使用的优惠码（无则为空）
	PurchasedAt time.Time `gorm:"not null;index" json:"purchased_at"`                         // 购买时间（同一次结算共用同一时间戳）
	CreatedAt   time.Time `json:"created_at"`                                                 // 创建时间

	Game *Game `gorm:"foreignKey:GameID" json:"game,omitempty"` // 关联游戏
}

// TableName 指定表名
func (GamePurchase) TableName() string {
	return "game_purchases"
}
