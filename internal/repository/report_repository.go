package repository

import (
	"errors"

	"github.com/rfrnce/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportRepository 报告数据访问接口
type ReportRepository interface {
	GetByCart(cartID uint) (*models.Report, error)
	Upsert(report *models.Report) error
	WithTx(tx *gorm.DB) *GormReportRepository
}

// GormReportRepository GORM 实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报告仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReportRepository) WithTx(tx *gorm.DB) *GormReportRepository {
	if tx == nil {
		return r
	}
	return &GormReportRepository{db: tx}
}

// GetByCart 获取购物车最新报告
func (r *GormReportRepository) GetByCart(cartID uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("cart_id = ?", cartID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

// Upsert 按 cart_id 写入或覆盖报告
func (r *GormReportRepository) Upsert(report *models.Report) error {
	if report == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "generated_at"}),
	}).Create(report).Error
}
