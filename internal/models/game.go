package models

import (
	"time"

	"gorm.io/gorm"
)

// Game 游戏商品表
type Game struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                // 主键
	Title       string         `gorm:"not null;index" json:"title"`                         // 标题
	Description string         `gorm:"type:text" json:"description"`                        // 描述
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 原价（结算按原价扣款）
	CoverURL    string         `gorm:"default:''" json:"cover_url"`                         // 封面图地址
	Developer   string         `gorm:"default:''" json:"developer"`                         // 开发商
	ReleaseDate *time.Time     `json:"release_date"`                                        // 发售日期
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                 // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                   // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	// 关联
	Genres     []Genre     `gorm:"many2many:game_genres" json:"genres,omitempty"`     // 题材列表
	Promotions []Promotion `gorm:"foreignKey:GameID" json:"promotions,omitempty"`     // 促销列表
}

// TableName 指定表名
func (Game) TableName() string {
	return "games"
}
