package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"pokertable-server/internal/config"
	"pokertable-server/internal/mux"
	"pokertable-server/pkg/db"
	"pokertable-server/pkg/model"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

func main() {
	setupLogger()
	cfg := config.Instance()

	store, closeStore, err := model.OpenStore(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open the room store")
	}
	defer func() { _ = closeStore() }()

	// run the db migrations
	if pg, ok := store.(*model.PostgresStore); ok {
		if err := db.Migrate(pg.DB(), cfg.MigrationsPath); err != nil {
			logrus.WithError(err).Fatal("could not run migrations")
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "X-Player-ID"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, store, cfg))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
