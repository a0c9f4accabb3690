package models

import "time"

// Report 购物车对比报告（每个购物车仅保留最新一份）
type Report struct {
	ID          uint      `gorm:"primarykey" json:"id"`               // 主键
	CartID      uint      `gorm:"not null;uniqueIndex" json:"cartId"` // 所属购物车
	Content     string    `gorm:"type:text;not null" json:"content"`  // HTML 报告内容
	GeneratedAt time.Time `gorm:"not null" json:"generatedAt"`        // 生成时间

	Cart *Cart `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Report) TableName() string {
	return "reports"
}
