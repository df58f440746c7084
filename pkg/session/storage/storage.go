package storage

import (
	"context"

	"github.com/cloudcarver/feedbackform/pkg/app/closer"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/globalctx"
	"github.com/cloudcarver/feedbackform/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// NewStorage returns the configured session storage. It returns nil for the
// memory storage, which fiber creates on its own.
func NewStorage(cfg *config.Config, globalCtx *globalctx.GlobalContext, cm *closer.CloserManager) (fiber.Storage, error) {
	switch cfg.Session.Storage {
	case "", config.StorageMemory:
		return nil, nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Username: cfg.Session.Redis.Username,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(globalCtx.Context(), DefaultRedisTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrapf(err, "failed to connect to redis at %s", cfg.Session.Redis.Addr)
		}
		s := NewRedis(client, utils.UnwrapOrDefault(cfg.Session.Redis.KeyPrefix, DefaultRedisKeyPrefix))
		cm.Register(func(ctx context.Context) error {
			return s.Close()
		})
		log.Infof("sessions are stored in redis at %s", cfg.Session.Redis.Addr)
		return s, nil
	case config.StoragePostgres:
		s, err := NewPostgres(globalCtx.Context(), *cfg.Session.Pg.DSN)
		if err != nil {
			return nil, err
		}
		sweeper, err := NewSweeper(s, utils.UnwrapOrDefault(cfg.Session.Pg.SweepSchedule, DefaultSweepSchedule))
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		sweeper.Start()
		cm.Register(
			func(ctx context.Context) error {
				return s.Close()
			},
			sweeper.Stop,
		)
		log.Info("sessions are stored in postgres")
		return s, nil
	default:
		return nil, errors.Errorf("unknown session storage %s", cfg.Session.Storage)
	}
}
