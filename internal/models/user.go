package models

import "time"

// User 用户表（由扩展端生成的 UUID 标识）
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`                              // 主键
	UUID      string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"` // 客户端 UUID
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`                         // 创建时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
