package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service 可启停的后台服务（HTTP、补全执行器、补偿扫描、队列 Worker）
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 按注册顺序启动服务，退出时按同一顺序停止
// HTTP 先停止接收请求，执行器再排空在途补全。
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions 运行服务并处理系统信号
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部服务，直到 ctx 结束或任一服务出错
// 停止阶段与等待服务退出共用 stopTimeout。
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if stopTimeout <= 0 {
		stopTimeout = 10 * time.Second
	}
	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, svc := range r.services {
		service := svc
		group.Go(func() error {
			log.Infow("service_start", "service", service.Name())
			err := service.Start(groupCtx)
			log.Infow("service_exit", "service", service.Name(), "error", err)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	<-groupCtx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	stopErr := r.stopAll(stopCtx, log)

	waitCh := make(chan error, 1)
	go func() { waitCh <- group.Wait() }()

	var runErr error
	select {
	case runErr = <-waitCh:
	case <-stopCtx.Done():
		log.Warnw("service_exit_timeout", "timeout", stopTimeout)
		runErr = stopCtx.Err()
	}
	return errors.Join(runErr, stopErr)
}

func (r *Runner) stopAll(ctx context.Context, log *zap.SugaredLogger) error {
	var errs []error
	for _, svc := range r.services {
		startedAt := time.Now()
		if err := svc.Stop(ctx); err != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		log.Infow("service_stopped", "service", svc.Name(), "elapsed", time.Since(startedAt))
	}
	return errors.Join(errs...)
}
