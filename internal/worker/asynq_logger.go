package worker

import (
	"fmt"

	"github.com/rfrnce/internal/logger"
)

// asynqLogger 将 asynq 内部日志转发到 zap
type asynqLogger struct{}

func newAsynqLogger() *asynqLogger {
	return &asynqLogger{}
}

func (asynqLogger) Debug(args ...interface{}) {
	logger.Debugw("asynq_log", "message", fmt.Sprint(args...))
}

func (asynqLogger) Info(args ...interface{}) {
	logger.Infow("asynq_log", "message", fmt.Sprint(args...))
}

func (asynqLogger) Warn(args ...interface{}) {
	logger.Warnw("asynq_log", "message", fmt.Sprint(args...))
}

func (asynqLogger) Error(args ...interface{}) {
	logger.Errorw("asynq_log", "message", fmt.Sprint(args...))
}

func (asynqLogger) Fatal(args ...interface{}) {
	logger.S().Fatalw("asynq_log", "message", fmt.Sprint(args...))
}
