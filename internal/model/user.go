package model

import "time"

// User 用户模型（账号由外部系统维护，这里只读取展示名与角色）
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	UserName  string    `gorm:"size:150;not null;uniqueIndex;comment:用户名" json:"user_name"`
	UserRole  string    `gorm:"size:32;not null;default:'user';comment:用户角色" json:"user_role"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
