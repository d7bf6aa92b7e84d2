package models

import "time"

// Promotion 促销活动（仅用于展示折后价，结算仍按原价扣款）
type Promotion struct {
	ID              uint       `gorm:"primarykey" json:"id"`                          // 主键
	GameID          uint       `gorm:"not null;index" json:"game_id"`                 // 游戏ID
	Title           string     `gorm:"default:''" json:"title"`                       // 活动标题
	DiscountPercent int        `gorm:"not null" json:"discount_percent"`              // 折扣百分比（1-99）
	StartsAt        *time.Time `gorm:"index" json:"starts_at"`                        // 生效时间
	EndsAt          *time.Time `gorm:"index" json:"ends_at"`                          // 失效时间
	IsActive        bool       `gorm:"not null;default:true;index" json:"is_active"`  // 是否启用
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt       time.Time  `json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// EffectiveAt 判断促销在指定时间是否生效
func (p *Promotion) EffectiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	return true
}
