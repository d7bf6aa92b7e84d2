package models

import (
	"time"

	"gorm.io/gorm"
)

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户表（钱包余额直接挂在用户行上，结算时对该行加锁）
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                    // 主键
	Name         string         `gorm:"not null" json:"name"`                                    // 昵称
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`                       // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                                       // 密码哈希（不返回给前端）
	Role         string         `gorm:"type:varchar(20);not null;default:'user'" json:"role"`    // 角色（user/admin）
	AvatarURL    string         `gorm:"default:''" json:"avatar_url"`                            // 头像地址
	Wallet       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"wallet"`     // 钱包余额
	Locale       string         `gorm:"type:varchar(10);default:'en'" json:"locale"`             // 语言偏好
	LastLoginAt  *time.Time     `json:"last_login_at"`                                           // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
