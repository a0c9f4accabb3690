package models

import "time"

// Cart 购物车
type Cart struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                                                                     // 主键
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_carts_user_name,priority:1" json:"userId"`                                  // 所属用户
	Name        string    `gorm:"type:varchar(100);not null;default:'Unnamed Cart';uniqueIndex:idx_carts_user_name,priority:2" json:"name"` // 名称（用户内唯一）
	IsActive    bool      `gorm:"not null;default:false" json:"isActive"`                                                                   // 是否为当前购物车
	ReportCount int       `gorm:"not null;default:0" json:"reportCount"`                                                                    // 已生成报告次数
	IsFrozen    bool      `gorm:"not null;default:false" json:"isFrozen"`                                                                   // 达到报告上限后冻结
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`                                                                                   // 创建时间
	UpdatedAt   time.Time `json:"updatedAt"`                                                                                                // 更新时间

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
