package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/integration/gemini"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/metrics"
	"github.com/rfrnce/internal/models"
	"github.com/rfrnce/internal/repository"

	"gorm.io/gorm"
)

// ReportGenerator 报告生成
type ReportGenerator interface {
	GenerateReport(ctx context.Context, products []gemini.ProductInput) (string, error)
}

// ReportResult 报告生成结果
type ReportResult struct {
	Content     string `json:"content"`
	ReportCount int    `json:"reportCount"`
	IsFrozen    bool   `json:"isFrozen"`
}

// ReportService 购物车对比报告服务
type ReportService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	reportRepo  repository.ReportRepository
	generator   ReportGenerator
	now         func() time.Time
}

// NewReportService 创建报告服务
func NewReportService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, reportRepo repository.ReportRepository, generator ReportGenerator) *ReportService {
	return &ReportService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		reportRepo:  reportRepo,
		generator:   generator,
		now:         time.Now,
	}
}

// Generate 校验门槛后生成报告，保存并累加报告次数
func (s *ReportService) Generate(ctx context.Context, userID, cartID uint) (*ReportResult, error) {
	cart, err := s.cartRepo.GetByIDAndUser(cartID, userID)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if cart != nil && !cart.IsFrozen {
		products, err = s.productRepo.ListByCart(cart.ID)
		if err != nil {
			return nil, err
		}
	}
	complete, err := CheckReportGate(cart, products)
	if err != nil {
		return nil, err
	}

	content, err := s.generator.GenerateReport(ctx, buildReportInputs(complete))
	if err != nil {
		logger.Warnw("report_generation_failed", "cart_id", cart.ID, "products", len(complete), "error", err)
		if errors.Is(err, gemini.ErrReportTimeout) {
			metrics.RecordReport("timeout")
			return nil, fmt.Errorf("%w: %v", ErrReportTimeout, err)
		}
		metrics.RecordReport("failed")
		return nil, fmt.Errorf("%w: %v", ErrReportGenerationFailed, err)
	}

	var state *repository.CartReportState
	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.reportRepo.WithTx(tx).Upsert(&models.Report{
			CartID:      cart.ID,
			Content:     content,
			GeneratedAt: s.now(),
		}); err != nil {
			return err
		}
		next, err := s.cartRepo.WithTx(tx).IncrementReportCount(cart.ID, constants.ReportFreezeThreshold)
		if err != nil {
			return err
		}
		if next == nil {
			// 并发生成时另一请求已冻结购物车，回滚本次报告
			return ErrCartFrozen
		}
		state = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartFrozen) {
			metrics.RecordReport("frozen")
		}
		return nil, err
	}
	metrics.RecordReport("success")
	logger.Infow("report_generated",
		"cart_id", cart.ID,
		"products", len(complete),
		"report_count", state.ReportCount,
		"is_frozen", state.IsFrozen,
	)
	return &ReportResult{
		Content:     content,
		ReportCount: state.ReportCount,
		IsFrozen:    state.IsFrozen,
	}, nil
}

// Get 获取购物车最新报告
func (s *ReportService) Get(userID, cartID uint) (*models.Report, error) {
	cart, err := requireCart(s.cartRepo, cartID, userID)
	if err != nil {
		return nil, err
	}
	report, err := s.reportRepo.GetByCart(cart.ID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func buildReportInputs(products []models.Product) []gemini.ProductInput {
	inputs := make([]gemini.ProductInput, 0, len(products))
	for _, product := range products {
		input := gemini.ProductInput{
			Name:        derefString(product.Name),
			Price:       derefString(product.Price),
			Brand:       product.Brand,
			Color:       product.Color,
			Dimensions:  product.Dimensions,
			Description: product.Description,
		}
		for _, review := range product.ReviewsJSON {
			input.Reviews = append(input.Reviews, gemini.ReviewInput{
				Title:   review.Title,
				Snippet: review.Snippet,
			})
		}
		inputs = append(inputs, input)
	}
	return inputs
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
