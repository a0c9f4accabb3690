package service

import (
	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/models"
)

// CheckReportGate 校验购物车能否生成报告，返回参与报告的 complete 商品
// 按顺序检查：不存在、已冻结、无商品、有 pending、有 failed、无 complete。
func CheckReportGate(cart *models.Cart, products []models.Product) ([]models.Product, error) {
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if cart.IsFrozen {
		return nil, ErrCartFrozen
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	for _, product := range products {
		if product.Status == constants.ProductStatusPending {
			return nil, ErrHasPendingProducts
		}
	}
	for _, product := range products {
		if product.Status == constants.ProductStatusFailed {
			return nil, ErrHasFailedProducts
		}
	}
	complete := make([]models.Product, 0, len(products))
	for _, product := range products {
		if product.Status == constants.ProductStatusComplete {
			complete = append(complete, product)
		}
	}
	if len(complete) == 0 {
		return nil, ErrNoProducts
	}
	return complete, nil
}
