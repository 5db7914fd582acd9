package repository

import (
	"context"
	"fmt"

	"github.com/Nikhil4123/Brocker/pkg/config"
	"github.com/Nikhil4123/Brocker/pkg/database"
)

// Open connects the store selected by cfg.Store.Driver and prepares its schema
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil

	case config.DriverPostgres:
		db, err := database.OpenPostgres(&cfg.DB)
		if err != nil {
			return nil, err
		}
		store := NewPostgresStore(db)
		if err := store.Migrate(); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		return store, nil

	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, &cfg.Mongo)
		if err != nil {
			return nil, err
		}
		store := NewMongoStore(client, &cfg.Mongo)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
