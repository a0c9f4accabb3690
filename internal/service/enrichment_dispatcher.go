package service

import (
	"context"

	"github.com/rfrnce/internal/queue"
)

// EnrichmentJob 商品补全任务
type EnrichmentJob struct {
	ProductID uint
	URL       string
}

// EnrichmentDispatcher 派发补全任务，调用方不等待任务完成
type EnrichmentDispatcher interface {
	Dispatch(ctx context.Context, job EnrichmentJob) error
}

// Enricher 执行单个商品的补全流程
type Enricher interface {
	Enrich(ctx context.Context, job EnrichmentJob) error
}

// QueueEnrichmentDispatcher 通过 asynq 队列派发补全任务
type QueueEnrichmentDispatcher struct {
	client *queue.Client
}

// NewQueueEnrichmentDispatcher 创建队列派发器
func NewQueueEnrichmentDispatcher(client *queue.Client) *QueueEnrichmentDispatcher {
	return &QueueEnrichmentDispatcher{client: client}
}

// Dispatch 推送 product:enrich 任务
func (d *QueueEnrichmentDispatcher) Dispatch(_ context.Context, job EnrichmentJob) error {
	return d.client.EnqueueProductEnrich(queue.ProductEnrichPayload{
		ProductID: job.ProductID,
		URL:       job.URL,
	})
}
