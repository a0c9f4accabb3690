package models

import "time"

// Product 购物车商品
type Product struct {
	ID          uint       `gorm:"primarykey" json:"id"`                                                       // 主键
	CartID      uint       `gorm:"not null;index;uniqueIndex:idx_products_cart_url,priority:1" json:"cartId"`  // 所属购物车
	URL         string     `gorm:"type:text;not null;uniqueIndex:idx_products_cart_url,priority:2" json:"url"` // 商品链接（购物车内唯一）
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`            // pending / complete / failed
	Name        *string    `gorm:"type:varchar(500)" json:"name"`                                              // 商品名
	Price       *string    `gorm:"type:varchar(50)" json:"price"`                                              // 展示价格（含币种符号）
	Brand       *string    `gorm:"type:varchar(200)" json:"brand"`                                             // 品牌
	Color       *string    `gorm:"type:varchar(100)" json:"color"`                                             // 颜色
	Dimensions  *string    `gorm:"type:varchar(200)" json:"dimensions"`                                        // 尺寸
	Description *string    `gorm:"type:text" json:"description"`                                               // 描述
	ReviewsJSON Reviews    `gorm:"column:reviews_json" json:"reviewsJson"`                                     // 评论检索结果
	ScrapedAt   *time.Time `json:"scrapedAt"`                                                                  // 补全完成时间
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`                                                     // 创建时间

	Cart *Cart `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

