package closer

import (
	"context"
	"slices"
	"time"

	"github.com/cloudcarver/feedbackform/pkg/logger"
	"go.uber.org/zap"
)

var log = logger.NewLogAgent("closer")

const (
	DefaultGracefulShutdownTimeout = 5 * time.Second
)

type Closer func(ctx context.Context) error

type CloserManager struct {
	closers []Closer
	timeout time.Duration
}

func NewCloserManager() *CloserManager {
	return &CloserManager{timeout: DefaultGracefulShutdownTimeout}
}

// Close runs the registered closers in reverse order of registration.
func (cm *CloserManager) Close() {
	log.Info("gracefully shutting down application")

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	closers := slices.Clone(cm.closers)
	slices.Reverse(closers)
	cm.closers = nil

	for _, closer := range closers {
		if err := closer(ctx); err != nil {
			log.Error("error in graceful shutdown", zap.Error(err))
		}
	}
}

func (cm *CloserManager) Register(closers ...Closer) {
	cm.closers = append(cm.closers, closers...)
}
