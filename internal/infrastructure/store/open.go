package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskdesk-api/config"
	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
	"github.com/oksasatya/taskdesk-api/internal/infrastructure/memory"
	"github.com/oksasatya/taskdesk-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/taskdesk-api/internal/infrastructure/postgres"
)

// Open connects the backend named by cfg.StoreDriver and prepares its schema.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.DBQueryTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		s := mongodb.NewStore(client, client.Database(cfg.MongoDB), cfg.MongoUsersCollection, cfg.MongoTasksCollection, cfg.DBQueryTimeout)
		if err := mongodb.EnsureIndexes(ctx, s.UsersCollection()); err != nil {
			_ = s.Close(context.Background())
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		logger.WithFields(logrus.Fields{"driver": cfg.StoreDriver, "db": cfg.MongoDB}).Info("store connected")
		return s, nil

	case config.DriverPostgres:
		dsn := cfg.PostgresDSN()
		if err := postgres.RunMigrations(dsn, cfg.MigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		pool, err := postgres.NewPool(ctx, dsn, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.WithFields(logrus.Fields{"driver": cfg.StoreDriver, "db": cfg.DBName}).Info("store connected")
		return postgres.NewStore(pool, cfg.DBQueryTimeout), nil

	case config.DriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
