package storage

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewSweeperRejectsBadSchedule(t *testing.T) {
	_, err := NewSweeper(newTestPostgres(nil, time.Now()), "not a schedule")
	require.Error(t, err)
}

func TestSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	db := NewMockDB(ctrl)
	s, err := NewSweeper(newTestPostgres(db, now), DefaultSweepSchedule)
	require.NoError(t, err)

	gomock.InOrder(
		db.EXPECT().Exec(gomock.Any(), qGC, now.Unix()).Return(pgconn.NewCommandTag("DELETE 2"), nil),
		db.EXPECT().Exec(gomock.Any(), qGC, now.Unix()).Return(pgconn.CommandTag{}, errors.New("boom")),
	)
	s.Sweep()
	// failures are logged, the next run tries again
	s.Sweep()

	s.Start()
	require.NoError(t, s.Stop(context.Background()))
}
