package storage

import (
	"context"
	"embed"
	"net/url"
	"time"

	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

var log = logger.NewLogAgent("storage")

//go:embed migrations/*.sql
var migrations embed.FS

const (
	DefaultPgTimeout = 5 * time.Second
	MigrationsTable  = "feedbackform_migrations"

	qGet    = `SELECT v, e FROM feedbackform_sessions WHERE k = $1`
	qSet    = `INSERT INTO feedbackform_sessions (k, v, e) VALUES ($1, $2, $3) ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, e = EXCLUDED.e`
	qDelete = `DELETE FROM feedbackform_sessions WHERE k = $1`
	qReset  = `DELETE FROM feedbackform_sessions`
	qGC     = `DELETE FROM feedbackform_sessions WHERE e <> 0 AND e <= $1`
)

var _ fiber.Storage = (*Postgres)(nil)

//go:generate mockgen -source=postgres.go -destination=mock_gen.go -package=storage

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Postgres struct {
	db      DB
	close   func()
	timeout time.Duration
	now     func() time.Time
}

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse pgxpool config")
	}
	config.MaxConns = 10
	config.MinConns = 1

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init pgxpool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping db")
	}

	if err := migrateUp(dsn); err != nil {
		pool.Close()
		return nil, err
	}

	return &Postgres{
		db:      pool,
		close:   pool.Close,
		timeout: DefaultPgTimeout,
		now:     time.Now,
	}, nil
}

// migrationURL hands the DSN to the pgx5 migrate driver unchanged apart from
// the scheme and the migrations table.
func migrationURL(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return "", errors.Errorf("session.pg.dsn must be a postgres:// URL to run migrations")
	}
	u.Scheme = "pgx5"
	q := u.Query()
	if q.Get("x-migrations-table") == "" {
		q.Set("x-migrations-table", MigrationsTable)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func migrateUp(dsn string) error {
	d, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to create migration source driver")
	}

	migrateURL, err := migrationURL(dsn)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, migrateURL)
	if err != nil {
		return errors.Wrap(err, "failed to init migrate")
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to migrate up")
	}
	return nil
}

func (p *Postgres) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), p.timeout)
}

func (p *Postgres) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := p.ctx()
	defer cancel()

	var (
		val []byte
		exp int64
	)
	if err := p.db.QueryRow(ctx, qGet, key).Scan(&val, &exp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get session")
	}
	// expired rows stay until the sweeper runs
	if exp != 0 && exp <= p.now().Unix() {
		return nil, nil
	}
	return val, nil
}

func (p *Postgres) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := p.ctx()
	defer cancel()

	var expireAt int64
	if exp > 0 {
		expireAt = p.now().Add(exp).Unix()
	}
	if _, err := p.db.Exec(ctx, qSet, key, val, expireAt); err != nil {
		return errors.Wrap(err, "failed to set session")
	}
	return nil
}

func (p *Postgres) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := p.ctx()
	defer cancel()

	if _, err := p.db.Exec(ctx, qDelete, key); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}

func (p *Postgres) Reset() error {
	ctx, cancel := p.ctx()
	defer cancel()

	if _, err := p.db.Exec(ctx, qReset); err != nil {
		return errors.Wrap(err, "failed to reset sessions")
	}
	return nil
}

// DeleteExpired removes expired sessions and returns how many were removed.
func (p *Postgres) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, qGC, p.now().Unix())
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete expired sessions")
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}
