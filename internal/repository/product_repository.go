package repository

import (
	"errors"
	"time"

	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	ListByCart(cartID uint) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetByIDAndCart(id, cartID uint) (*models.Product, error)
	GetByCartAndURL(cartID uint, url string) (*models.Product, error)
	CountByCart(cartID uint) (int64, error)
	ListPendingBefore(cutoff time.Time, limit int) ([]models.Product, error)
	Create(product *models.Product) error
	CompleteEnrichment(id uint, enrichment ProductEnrichment) (bool, error)
	MarkFailed(id uint) (bool, error)
	MoveToCart(id, targetCartID uint) error
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListByCart 获取购物车商品（按创建时间升序）
func (r *GormProductRepository) ListByCart(cartID uint) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Where("cart_id = ?", cartID).Order("created_at asc, id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDAndCart 获取归属于指定购物车的商品
func (r *GormProductRepository) GetByIDAndCart(id, cartID uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ? AND cart_id = ?", id, cartID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByCartAndURL 按链接查找购物车内商品
func (r *GormProductRepository) GetByCartAndURL(cartID uint, url string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("cart_id = ? AND url = ?", cartID, url).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// CountByCart 统计购物车商品数
func (r *GormProductRepository) CountByCart(cartID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("cart_id = ?", cartID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListPendingBefore 获取创建早于 cutoff 仍处于 pending 的商品
func (r *GormProductRepository) ListPendingBefore(cutoff time.Time, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	query := r.db.Where("status = ? AND created_at < ?", constants.ProductStatusPending, cutoff).Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return translateWriteError(r.db.Create(product).Error)
}

// CompleteEnrichment 一次性写入补全结果并置为 complete
// 仅当商品仍为 pending 时生效，返回是否发生更新。
func (r *GormProductRepository) CompleteEnrichment(id uint, enrichment ProductEnrichment) (bool, error) {
	scrapedAt := enrichment.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now()
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND status = ?", id, constants.ProductStatusPending).
		Updates(map[string]interface{}{
			"status":       constants.ProductStatusComplete,
			"name":         enrichment.Name,
			"price":        enrichment.Price,
			"brand":        enrichment.Brand,
			"color":        enrichment.Color,
			"dimensions":   enrichment.Dimensions,
			"description":  enrichment.Description,
			"reviews_json": enrichment.Reviews,
			"scraped_at":   scrapedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkFailed 将 pending 商品置为 failed 并清空抓取字段
func (r *GormProductRepository) MarkFailed(id uint) (bool, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND status = ?", id, constants.ProductStatusPending).
		Updates(map[string]interface{}{
			"status":       constants.ProductStatusFailed,
			"name":         nil,
			"price":        nil,
			"brand":        nil,
			"color":        nil,
			"dimensions":   nil,
			"description":  nil,
			"reviews_json": nil,
			"scraped_at":   nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MoveToCart 将商品移动到目标购物车，状态保持不变
func (r *GormProductRepository) MoveToCart(id, targetCartID uint) error {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Update("cart_id", targetCartID)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

