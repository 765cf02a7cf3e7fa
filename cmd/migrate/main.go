package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"pokertable-server/internal/config"
	"pokertable-server/pkg/db"
)

func main() {
	cfg := config.Instance()
	if cfg.Store != config.StorePostgres {
		logrus.WithField("store", cfg.Store).Info("nothing to migrate")
		return
	}

	conn := waitForDB(cfg.PGDSN)
	defer conn.Close()

	if err := db.Migrate(conn, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}
}

func waitForDB(dsn string) *sql.DB {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("could not open database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	if err := db.WaitFor(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	return conn
}
