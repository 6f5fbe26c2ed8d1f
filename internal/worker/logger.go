package worker

import (
	"fmt"

	"github.com/bidmart-admin/internal/logger"
)

// asynqLogger 将 asynq 日志转发到 zap
type asynqLogger struct{}

func newAsynqLogger() asynqLogger { return asynqLogger{} }

func (asynqLogger) Debug(args ...interface{}) { logger.Debugw("asynq", "msg", fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...interface{})  { logger.Infow("asynq", "msg", fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...interface{})  { logger.Warnw("asynq", "msg", fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...interface{}) { logger.Errorw("asynq", "msg", fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...interface{}) { logger.Errorw("asynq_fatal", "msg", fmt.Sprint(args...)) }
