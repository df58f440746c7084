package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultSweepSchedule = "@every 10m"

// Sweeper periodically deletes expired postgres sessions. Redis expires keys
// on its own and the memory storage runs its own GC.
type Sweeper struct {
	cron    *cron.Cron
	storage *Postgres
}

func NewSweeper(storage *Postgres, schedule string) (*Sweeper, error) {
	s := &Sweeper{
		cron:    cron.New(),
		storage: storage,
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, errors.Wrapf(err, "invalid sweep schedule %s", schedule)
	}
	return s, nil
}

func (s *Sweeper) Sweep() {
	ctx, cancel := s.storage.ctx()
	defer cancel()

	n, err := s.storage.DeleteExpired(ctx)
	if err != nil {
		log.Error("failed to sweep expired sessions", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("swept expired sessions", zap.Int64("count", n))
	}
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

func (s *Sweeper) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
