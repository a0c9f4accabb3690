package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/service"
)

const defaultRecoveryInterval = 10 * time.Minute

// ExecutorService 管理进程内补全执行器的生命周期
type ExecutorService struct {
	executor *service.LocalEnrichmentExecutor
}

// NewExecutorService 创建执行器服务
func NewExecutorService(executor *service.LocalEnrichmentExecutor) *ExecutorService {
	return &ExecutorService{executor: executor}
}

// Name 服务名称
func (s *ExecutorService) Name() string {
	return "enrichment-executor"
}

// Start 阻塞直到运行上下文结束
func (s *ExecutorService) Start(ctx context.Context) error {
	if s == nil || s.executor == nil {
		return errors.New("enrichment executor not initialized")
	}
	<-ctx.Done()
	return nil
}

// Stop 等待在途补全任务结束
func (s *ExecutorService) Stop(ctx context.Context) error {
	if s == nil || s.executor == nil {
		return nil
	}
	return s.executor.Shutdown(ctx)
}

// RecoveryService 周期性补偿遗留的 pending 商品
type RecoveryService struct {
	recovery *service.EnrichmentRecoveryService
	interval time.Duration
}

// NewRecoveryService 创建补偿服务
func NewRecoveryService(recovery *service.EnrichmentRecoveryService, interval time.Duration) *RecoveryService {
	if interval <= 0 {
		interval = defaultRecoveryInterval
	}
	return &RecoveryService{
		recovery: recovery,
		interval: interval,
	}
}

// Name 服务名称
func (s *RecoveryService) Name() string {
	return "enrichment-recovery"
}

// Start 启动时扫描一次，之后按间隔扫描
func (s *RecoveryService) Start(ctx context.Context) error {
	if s == nil || s.recovery == nil {
		return errors.New("enrichment recovery not initialized")
	}
	runOnce := func() {
		if _, err := s.recovery.Sweep(ctx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warnw("worker_enrichment_recovery_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			runOnce()
		}
	}
}

// Stop 随运行上下文退出
func (s *RecoveryService) Stop(ctx context.Context) error {
	return nil
}
