package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"bigtwo-server/internal/config"
	"bigtwo-server/internal/jwt"
	"bigtwo-server/internal/mux"
	"bigtwo-server/pkg/db"
	"bigtwo-server/pkg/rating"
	"bigtwo-server/pkg/room"
	"bigtwo-server/pkg/room/gamefactory"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	if err := jwt.LoadKeys(); err != nil {
		logrus.WithError(err).Fatal("could not load the signing keys")
	}

	cfg := config.Instance()
	gamefactory.Configure(cfg)

	ledger := rating.NewLedger(logrus.StandardLogger(), newStore(cfg), cfg.Rating.Initial)
	pitBoss := room.NewPitBoss(logrus.StandardLogger(), ledger, time.Second*time.Duration(cfg.StartGameDelay))
	pitBoss.StartShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, ledger))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// newStore returns the configured rating store, running the migrations for postgres
func newStore(cfg config.Config) rating.Store {
	switch cfg.Rating.Storage {
	case "memory":
		logrus.Warn("ratings are kept in memory and will be lost on restart")
		return rating.NewMemoryStore()
	case "postgres":
		db.Migrate()
		return rating.NewPostgresStore(db.Instance())
	}

	logrus.WithField("storage", cfg.Rating.Storage).Fatal("unknown rating storage")
	return nil
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
