// Operator tool that removes a user and everything referencing it directly
// against the database, without going through the HTTP API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"

	_ "github.com/lib/pq"

	"Tether/internal/app"
	"Tether/internal/auth"
	"Tether/internal/config"
	"Tether/internal/core/actor"
)

func main() {
	userID := flag.Int64("user", 0, "id of the user to delete")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger, *userID); err != nil {
		logger.Error("purge failed",
			slog.Int64("user_id", *userID),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	logger.Info("user deleted", slog.Int64("user_id", *userID))
}

func run(logger *slog.Logger, userID int64) error {
	if userID <= 0 {
		return errors.New("a positive -user id is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StorageDriver != config.DriverPostgres {
		return errors.New("purge-user only works against postgres")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	services := app.NewServices(app.PostgresRepositories(db), auth.NewBcryptHasher(0), logger)

	// Administrator rights so any account can be removed
	operator := actor.Actor{Admin: true}
	return services.Users.DeleteUser(context.Background(), operator, userID)
}
