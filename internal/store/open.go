package store

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/redisstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// Open builds the backend selected by cfg.Driver.
func Open(cfg config.Storage) (Backend, error) {
	switch cfg.Driver {
	case config.DriverJSON, "":
		return jsonstore.New(cfg.Path), nil
	case config.DriverSQLite:
		b, err := sqlitestore.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return b, nil
	case config.DriverRedis:
		b, err := redisstore.Open(redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("opening redis store: %w", err)
		}
		return b, nil
	case config.DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
