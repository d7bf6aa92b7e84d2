package models

import "time"

// Genre 游戏题材（多对多挂在游戏上）
type Genre struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	Name      string    `gorm:"uniqueIndex;not null" json:"name"` // 名称
	CreatedAt time.Time `json:"created_at"`                       // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                       // 更新时间
}

// TableName 指定表名
func (Genre) TableName() string {
	return "genres"
}
