package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
)

func NewPool(ctx context.Context, dsn string, maxConns, minConns int32, maxConnLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = maxConnLife
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Store is the Postgres backed repository.Store.
type Store struct {
	pool  *pgxpool.Pool
	users *UserRepository
	tasks *TaskRepository
}

func NewStore(pool *pgxpool.Pool, timeout time.Duration) *Store {
	return &Store{
		pool:  pool,
		users: NewUserRepository(pool, timeout),
		tasks: NewTaskRepository(pool, timeout),
	}
}

func (s *Store) Users() repository.UserRepository { return s.users }
func (s *Store) Tasks() repository.TaskRepository { return s.tasks }
func (s *Store) Ping(ctx context.Context) error   { return s.pool.Ping(ctx) }

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

var _ repository.Store = (*Store)(nil)
