package models

import "time"

// WalletTopup 钱包充值流水
type WalletTopup struct {
	ID        uint      `gorm:"primarykey" json:"id"`                           // 主键
	UserID    uint      `gorm:"not null;index" json:"user_id"`                  // 用户ID
	Amount    Money     `gorm:"type:decimal(20,2);not null" json:"amount"`      // 充值金额
	CreatedAt time.Time `gorm:"index" json:"created_at"`                        // 充值时间
}

// TableName 指定表名
func (WalletTopup) TableName() string {
	return "wallet_topups"
}
