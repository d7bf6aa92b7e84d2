package models

import "time"

// CouponUsage 优惠码使用记录（每人每码一次，唯一索引兜底并发；码被删除时级联清理）
type CouponUsage struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                        // 主键
	CouponID  uint      `gorm:"not null;uniqueIndex:idx_usage_coupon_user" json:"coupon_id"` // 优惠码ID
	UserID    uint      `gorm:"not null;uniqueIndex:idx_usage_coupon_user" json:"user_id"`   // 用户ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                     // 使用时间

	Coupon *Coupon `gorm:"foreignKey:CouponID;constraint:OnDelete:CASCADE" json:"coupon,omitempty"` // 关联优惠码
}

// TableName 指定表名
func (CouponUsage) TableName() string {
	return "coupon_usages"
}
