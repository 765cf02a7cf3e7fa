package model

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"pokertable-server/internal/config"
	"pokertable-server/pkg/db"
)

// OpenStore returns the store selected by the configuration and a func that releases it
func OpenStore(ctx context.Context, cfg config.Config) (Store, func() error, error) {
	switch cfg.Store {
	case config.StorePostgres:
		conn, err := db.Open(cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}

		logrus.Info("using postgres room store")
		return NewPostgresStore(conn), conn.Close, nil
	case config.StoreRedis:
		rdb, err := NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}

		logrus.WithField("addr", cfg.Redis.Addr).Info("using redis room store")
		return NewRedisStore(rdb, cfg.Redis.Prefix), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store: %q", cfg.Store)
	}
}
