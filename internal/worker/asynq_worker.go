package worker

import (
	"context"

	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/provider"
	"github.com/rfrnce/internal/queue"
	"github.com/rfrnce/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskProductEnrich, c.handleProductEnrich)
}

func (c *Consumer) handleProductEnrich(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil {
		logger.Debugw("worker_product_enrich_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseProductEnrichPayload(task)
	if err != nil {
		logger.Warnw("worker_product_enrich_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 || payload.URL == "" {
		logger.Debugw("worker_product_enrich_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	if c.EnrichmentService == nil {
		logger.Warnw("worker_product_enrich_skip_service_nil", "product_id", payload.ProductID)
		return nil
	}
	return c.EnrichmentService.Enrich(ctx, service.EnrichmentJob{
		ProductID: payload.ProductID,
		URL:       payload.URL,
	})
}
