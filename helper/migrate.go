package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"roomdesk/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"

	migrationSource = "file://migrations/postgres"
)

var ErrUnknownAction = errors.New("unknown migration action")

func getDBName(cfg *config.Config) string {
	return cfg.DB.Postgres.Prefix + cfg.DB.Postgres.Write.Name
}

// DatabaseURL builds the migrate connection string for the write pool.
func DatabaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)
	query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + getDBName(cfg),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

type step struct {
	run     func(mig *migrate.Migrate) error
	failure string
	success string
}

var steps = map[string]step{
	ActionUp: {
		run:     func(mig *migrate.Migrate) error { return mig.Up() },
		failure: "error running migrations",
		success: "Database migrations completed successfully",
	},
	ActionStepUp: {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(1) },
		failure: "error running migrations",
		success: "Database migrations completed successfully",
	},
	ActionDown: {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(-1) },
		failure: "error rolling back migrations",
		success: "Database migrations rolled back successfully",
	},
	ActionDrop: {
		run:     func(mig *migrate.Migrate) error { return mig.Down() },
		failure: "error rolling back migrations",
		success: "Database migrations rolled back successfully",
	},
}

// Runner applies one migration action against the rooms schema.
func Runner(cfg *config.Config, action string) error {
	current, ok := steps[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if cfg.DB.Driver != config.DBDriverPostgres {
		log.Warn().Str("driver", cfg.DB.Driver).Msg("Schema migrations only apply to postgres, skipping")

		return nil
	}

	mig, err := migrate.New(migrationSource, DatabaseURL(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err = current.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", current.failure, err)
	}

	log.Info().Str("action", action).Msg(current.success)

	return nil
}
