package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	ActionServerStart    = "SERVER_START"
	ActionServerShutdown = "SERVER_SHUTDOWN"
)

// LifecycleEvent describes a process-level event such as start or shutdown.
type LifecycleEvent struct {
	Action  string
	Message string
	Meta    map[string]any
}

type LifecycleLogger interface {
	Log(ctx context.Context, event LifecycleEvent)
}

type ZapLifecycleLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewZapLifecycleLogger(logger *zap.Logger) *ZapLifecycleLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &ZapLifecycleLogger{
		logger: logger.Named("lifecycle"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *ZapLifecycleLogger) Log(ctx context.Context, event LifecycleEvent) {
	l.logger.Info("lifecycle event",
		zap.String("timestamp", l.now().Format(time.RFC3339)),
		zap.String("action", event.Action),
		zap.String("message", event.Message),
		zap.Any("meta", event.Meta),
	)
}
