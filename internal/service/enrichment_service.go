package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/integration/exa"
	"github.com/rfrnce/internal/integration/firecrawl"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/metrics"
	"github.com/rfrnce/internal/models"
	"github.com/rfrnce/internal/repository"
)

// 与 products 表列宽一致
const (
	maxProductNameLength       = 500
	maxProductPriceLength      = 50
	maxProductBrandLength      = 200
	maxProductColorLength      = 100
	maxProductDimensionsLength = 200
)

// ProductExtractor 商品页面结构化抽取
type ProductExtractor interface {
	Extract(ctx context.Context, url string) (*firecrawl.ProductFacts, error)
}

// ReviewSearcher 评论检索，失败时返回空列表
type ReviewSearcher interface {
	SearchReviews(ctx context.Context, productName string) []exa.ReviewResult
}

// EnrichmentService 商品补全流程：抽取 -> 评论检索 -> 一次性落库
type EnrichmentService struct {
	productRepo repository.ProductRepository
	extractor   ProductExtractor
	searcher    ReviewSearcher
	now         func() time.Time
}

// NewEnrichmentService 创建补全服务
func NewEnrichmentService(productRepo repository.ProductRepository, extractor ProductExtractor, searcher ReviewSearcher) *EnrichmentService {
	return &EnrichmentService{
		productRepo: productRepo,
		extractor:   extractor,
		searcher:    searcher,
		now:         time.Now,
	}
}

// Enrich 执行补全，商品最终必然进入 complete 或 failed
// 商品已被删除或不再是 pending 时写入为空操作。
func (s *EnrichmentService) Enrich(ctx context.Context, job EnrichmentJob) (err error) {
	started := time.Now()
	metrics.EnrichmentStarted()
	outcome := constants.EnrichmentOutcomeFailed
	finished := false

	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("enrichment_panic", "product_id", job.ProductID, "panic", r)
			outcome = constants.EnrichmentOutcomePanic
			err = fmt.Errorf("%w: %v", ErrEnrichmentPanicked, r)
		}
		if !finished {
			s.markFailed(job.ProductID)
		}
		metrics.RecordEnrichment(outcome, time.Since(started))
	}()

	facts, extractErr := s.extractor.Extract(ctx, job.URL)
	if extractErr != nil || facts == nil {
		logger.Warnw("enrichment_extract_failed",
			"product_id", job.ProductID,
			"url", job.URL,
			"error", extractErr,
		)
		return nil
	}

	reviews := s.searcher.SearchReviews(ctx, facts.Name)
	updated, err := s.productRepo.CompleteEnrichment(job.ProductID, buildProductEnrichment(facts, reviews, s.now()))
	if err != nil {
		logger.Errorw("enrichment_persist_failed", "product_id", job.ProductID, "error", err)
		return err
	}
	finished = true
	if !updated {
		outcome = constants.EnrichmentOutcomeDiscarded
		logger.Debugw("enrichment_result_discarded", "product_id", job.ProductID)
		return nil
	}
	outcome = constants.EnrichmentOutcomeComplete
	logger.Infow("enrichment_completed",
		"product_id", job.ProductID,
		"reviews", len(reviews),
		"duration", time.Since(started),
	)
	return nil
}

func (s *EnrichmentService) markFailed(productID uint) {
	updated, err := s.productRepo.MarkFailed(productID)
	if err != nil {
		logger.Errorw("enrichment_mark_failed_error", "product_id", productID, "error", err)
		return
	}
	if !updated {
		logger.Debugw("enrichment_mark_failed_skipped", "product_id", productID)
	}
}

func buildProductEnrichment(facts *firecrawl.ProductFacts, results []exa.ReviewResult, scrapedAt time.Time) repository.ProductEnrichment {
	var reviews models.Reviews
	for _, result := range results {
		reviews = append(reviews, models.Review{
			URL:     result.URL,
			Title:   result.Title,
			Snippet: result.Snippet,
			Source:  result.Source,
		})
	}
	return repository.ProductEnrichment{
		Name:        truncateRunes(facts.Name, maxProductNameLength),
		Price:       truncateRunes(facts.Price, maxProductPriceLength),
		Brand:       truncateOptional(facts.Brand, maxProductBrandLength),
		Color:       truncateOptional(facts.Color, maxProductColorLength),
		Dimensions:  truncateOptional(facts.Dimensions, maxProductDimensionsLength),
		Description: facts.Description,
		Reviews:     reviews,
		ScrapedAt:   scrapedAt,
	}
}

func truncateOptional(value *string, limit int) *string {
	if value == nil {
		return nil
	}
	trimmed := truncateRunes(*value, limit)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func truncateRunes(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}
	return string([]rune(value)[:limit])
}
