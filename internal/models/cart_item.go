package models

import "time"

// CartItem 购物车项（同一用户同一游戏唯一，数量上限为 1，结算后硬删除）
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                   // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_game" json:"user_id"` // 用户ID
	GameID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_game" json:"game_id"` // 游戏ID
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`                     // 数量（固定为 1）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                             // 更新时间

	Game *Game `gorm:"foreignKey:GameID" json:"game,omitempty"` // 关联游戏
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
