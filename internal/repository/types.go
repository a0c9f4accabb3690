package repository

import (
	"time"

	"github.com/rfrnce/internal/models"
)

// CartWithCount 购物车及其商品数量
type CartWithCount struct {
	models.Cart
	ProductCount int64 `json:"productCount"`
}

// ProductEnrichment 补全完成后写入的商品字段
type ProductEnrichment struct {
	Name        string
	Price       string
	Brand       *string
	Color       *string
	Dimensions  *string
	Description *string
	Reviews     models.Reviews
	ScrapedAt   time.Time
}

// CartReportState 报告计数提交后的购物车状态
type CartReportState struct {
	ReportCount int
	IsFrozen    bool
}
