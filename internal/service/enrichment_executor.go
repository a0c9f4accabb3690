package service

import (
	"context"
	"sync"

	"github.com/rfrnce/internal/logger"
)

const defaultEnrichmentConcurrency = 8

// LocalEnrichmentExecutor 进程内有界协程池执行补全任务
// 派发不会阻塞请求，超出并发上限的任务在各自协程中等待空位。
type LocalEnrichmentExecutor struct {
	enricher Enricher
	slots    chan struct{}
	wg       sync.WaitGroup

	mu     sync.Mutex
	closed bool

	runCtx    context.Context
	cancelRun context.CancelFunc
}

// NewLocalEnrichmentExecutor 创建本地执行器
func NewLocalEnrichmentExecutor(enricher Enricher, concurrency int) *LocalEnrichmentExecutor {
	if concurrency <= 0 {
		concurrency = defaultEnrichmentConcurrency
	}
	runCtx, cancel := context.WithCancel(context.Background())
	return &LocalEnrichmentExecutor{
		enricher:  enricher,
		slots:     make(chan struct{}, concurrency),
		runCtx:    runCtx,
		cancelRun: cancel,
	}
}

// Dispatch 异步执行补全，任务与请求上下文解耦
func (e *LocalEnrichmentExecutor) Dispatch(_ context.Context, job EnrichmentJob) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrExecutorClosed
	}
	e.wg.Add(1)
	e.mu.Unlock()

	go e.run(job)
	return nil
}

func (e *LocalEnrichmentExecutor) run(job EnrichmentJob) {
	defer e.wg.Done()
	select {
	case e.slots <- struct{}{}:
		defer func() { <-e.slots }()
	case <-e.runCtx.Done():
		// 强制停止时不再等待空位，以已取消的上下文执行使商品快速进入 failed
	}
	if err := e.enricher.Enrich(e.runCtx, job); err != nil {
		logger.Warnw("enrichment_run_failed", "product_id", job.ProductID, "error", err)
	}
}

// Shutdown 停止接收任务并等待在途任务结束
// ctx 到期后取消在途任务的外部调用，并继续等待它们完成状态落库。
func (e *LocalEnrichmentExecutor) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.cancelRun()
		return nil
	case <-ctx.Done():
		logger.Warnw("enrichment_executor_shutdown_timeout", "error", ctx.Err())
		e.cancelRun()
		<-done
		return ctx.Err()
	}
}
