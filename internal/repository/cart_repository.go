package repository

import (
	"errors"
	"time"

	"github.com/rfrnce/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]CartWithCount, error)
	GetByIDAndUser(id, userID uint) (*models.Cart, error)
	GetByIDAndUserForUpdate(id, userID uint) (*models.Cart, error)
	GetByUserAndName(userID uint, name string) (*models.Cart, error)
	CountByUser(userID uint) (int64, error)
	Create(cart *models.Cart) error
	Update(id uint, updates map[string]interface{}) error
	ClearActiveByUser(userID uint, exceptID uint) error
	Delete(id uint) error
	IncrementReportCount(id uint, freezeThreshold int) (*CartReportState, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListByUser 获取用户购物车（按创建时间升序）及商品数量
func (r *GormCartRepository) ListByUser(userID uint) ([]CartWithCount, error) {
	rows := make([]CartWithCount, 0)
	err := r.db.Model(&models.Cart{}).
		Select("carts.*, (SELECT COUNT(*) FROM products WHERE products.cart_id = carts.id) AS product_count").
		Where("carts.user_id = ?", userID).
		Order("carts.created_at asc, carts.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByIDAndUser 获取归属于指定用户的购物车
func (r *GormCartRepository) GetByIDAndUser(id, userID uint) (*models.Cart, error) {
	return r.first(r.db, id, userID)
}

// GetByIDAndUserForUpdate 加行锁获取购物车
func (r *GormCartRepository) GetByIDAndUserForUpdate(id, userID uint) (*models.Cart, error) {
	return r.first(forUpdate(r.db), id, userID)
}

func (r *GormCartRepository) first(query *gorm.DB, id, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := query.Where("id = ? AND user_id = ?", id, userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetByUserAndName 按名称查找用户购物车
func (r *GormCartRepository) GetByUserAndName(userID uint, name string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// CountByUser 统计用户购物车数量
func (r *GormCartRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Cart{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return translateWriteError(r.db.Create(cart).Error)
}

// Update 按 ID 更新购物车字段
func (r *GormCartRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return translateWriteError(r.db.Model(&models.Cart{}).Where("id = ?", id).Updates(updates).Error)
}

// ClearActiveByUser 取消用户其它购物车的激活状态
func (r *GormCartRepository) ClearActiveByUser(userID uint, exceptID uint) error {
	return r.db.Model(&models.Cart{}).
		Where("user_id = ? AND id <> ? AND is_active = ?", userID, exceptID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}

// Delete 删除购物车并级联删除商品与报告
func (r *GormCartRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, id).Error
	})
}

// IncrementReportCount 报告计数加一并重算冻结状态
// 已冻结的购物车不会被更新，此时返回 nil。
func (r *GormCartRepository) IncrementReportCount(id uint, freezeThreshold int) (*CartReportState, error) {
	result := r.db.Model(&models.Cart{}).
		Where("id = ? AND is_frozen = ?", id, false).
		Updates(map[string]interface{}{
			"report_count": gorm.Expr("report_count + 1"),
			"is_frozen":    gorm.Expr("report_count + 1 >= ?", freezeThreshold),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	var cart models.Cart
	if err := r.db.Select("report_count", "is_frozen").First(&cart, id).Error; err != nil {
		return nil, err
	}
	return &CartReportState{ReportCount: cart.ReportCount, IsFrozen: cart.IsFrozen}, nil
}
