package service

import (
	"context"
	"time"

	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/repository"
)

const (
	defaultRecoveryMinAge    = 15 * time.Minute
	defaultRecoveryBatchSize = 50
)

// EnrichmentRecoveryService 重新派发长时间停留在 pending 的商品
// 最小停留时长需大于单次补全的最坏耗时，避免与在途任务重复执行。
type EnrichmentRecoveryService struct {
	productRepo repository.ProductRepository
	dispatcher  EnrichmentDispatcher
	minAge      time.Duration
	batchSize   int
}

// NewEnrichmentRecoveryService 创建补偿服务
func NewEnrichmentRecoveryService(productRepo repository.ProductRepository, dispatcher EnrichmentDispatcher, minAge time.Duration, batchSize int) *EnrichmentRecoveryService {
	if minAge <= 0 {
		minAge = defaultRecoveryMinAge
	}
	if batchSize <= 0 {
		batchSize = defaultRecoveryBatchSize
	}
	return &EnrichmentRecoveryService{
		productRepo: productRepo,
		dispatcher:  dispatcher,
		minAge:      minAge,
		batchSize:   batchSize,
	}
}

// Sweep 扫描一次，返回重新派发的数量
func (s *EnrichmentRecoveryService) Sweep(ctx context.Context, now time.Time) (int, error) {
	products, err := s.productRepo.ListPendingBefore(now.Add(-s.minAge), s.batchSize)
	if err != nil {
		return 0, err
	}
	dispatched := 0
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return dispatched, err
		}
		job := EnrichmentJob{ProductID: product.ID, URL: product.URL}
		if err := s.dispatcher.Dispatch(ctx, job); err != nil {
			logger.Warnw("enrichment_recovery_dispatch_failed", "product_id", product.ID, "error", err)
			continue
		}
		dispatched++
	}
	if dispatched > 0 {
		logger.Infow("enrichment_recovery_dispatched", "count", dispatched, "scanned", len(products))
	}
	return dispatched, nil
}
