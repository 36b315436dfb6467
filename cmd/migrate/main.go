package main

import (
	"database/sql"
	"time"

	"bigtwo-server/internal/config"
	"bigtwo-server/pkg/db"
	"github.com/sirupsen/logrus"
)

func main() {
	dbh := waitForDB()
	if err := db.MigrateDB(dbh, config.Instance().MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run the migrations")
	}

	logrus.Info("ratings schema is up to date")
}

func waitForDB() *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh, err := db.Open(config.Instance().PGDSN)
			if err == nil {
				return dbh
			}

			logrus.WithError(err).Debug("database is not ready")
			time.Sleep(time.Millisecond * 500)
		}
	}
}
