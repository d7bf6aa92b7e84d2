package models

import "time"

// 优惠码类型
const (
	CouponTypeFixed   = "fixed"
	CouponTypePercent = "percent"
)

// Coupon 优惠码（次数用尽时整行硬删除，因此不挂软删除字段）
type Coupon struct {
	ID            uint       `gorm:"primarykey" json:"id"`                                        // 主键
	Code          string     `gorm:"uniqueIndex;not null" json:"code"`                            // 优惠码
	DiscountType  string     `gorm:"type:varchar(10);not null" json:"discount_type"`              // 类型（fixed/percent）
	DiscountValue Money      `gorm:"type:decimal(20,2);not null" json:"discount_value"`           // 数值（固定金额或百分比）
	ExpiryDate    *time.Time `gorm:"index" json:"expiry_date"`                                    // 失效时间（nil 表示永久有效）
	MaxUses       *int       `json:"max_uses"`                                                    // 剩余可用次数（nil 表示不限次）
	IsActive      bool       `gorm:"not null;default:true;index" json:"is_active"`                // 是否启用
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}

// ExpiredAt 判断优惠码在指定时间是否已过期
func (c *Coupon) ExpiredAt(now time.Time) bool {
	return c.ExpiryDate != nil && now.After(*c.ExpiryDate)
}

// Exhausted 判断剩余次数是否已用尽
func (c *Coupon) Exhausted() bool {
	return c.MaxUses != nil && *c.MaxUses <= 0
}
