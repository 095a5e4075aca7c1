package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"roomdesk/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Close releases both pools. Read and Write may be the same pool.
func (c *Connection) Close() error {
	if c == nil {
		return nil
	}

	var errs []error

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Endpoint is one side of the read/write split.
type Endpoint struct {
	Name     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
}

// DSN renders the endpoint as a lib/pq connection URL.
func (e Endpoint) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Database,
		RawQuery: url.Values{"sslmode": {e.SSLMode}}.Encode(),
	}

	return dsn.String()
}

// New opens the read and write pools. It returns nil unless postgres is the selected driver.
func New(cfg *config.Config) *Connection {
	if cfg.DB.Driver != config.DBDriverPostgres {
		return nil
	}

	read, write := Endpoints(cfg)
	retry := cfg.DB.Postgres.MaxRetry
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	return &Connection{
		Read:  Connect(read, retry, wait),
		Write: Connect(write, retry, wait),
	}
}

// Endpoints resolves the read and write endpoints, applying the database name prefix.
func Endpoints(cfg *config.Config) (Endpoint, Endpoint) {
	pg := cfg.DB.Postgres

	read := Endpoint{
		Name:     "read",
		Host:     pg.Read.Host,
		Port:     pg.Read.Port,
		Username: pg.Read.Username,
		Password: pg.Read.Password,
		Database: pg.Prefix + pg.Read.Name,
		SSLMode:  pg.Read.SSLMode,
	}

	write := Endpoint{
		Name:     "write",
		Host:     pg.Write.Host,
		Port:     pg.Write.Port,
		Username: pg.Write.Username,
		Password: pg.Write.Password,
		Database: pg.Prefix + pg.Write.Name,
		SSLMode:  pg.Write.SSLMode,
	}

	return read, write
}

// Connect dials the endpoint, retrying up to maxRetry times before exiting the process.
func Connect(endpoint Endpoint, maxRetry int, wait time.Duration) *sqlx.DB {
	logger := log.With().
		Str("name", endpoint.Name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Database).
		Logger()

	var lastErr error

	for attempt := 1; attempt <= maxRetry; attempt++ {
		db, err := sqlx.Connect("postgres", endpoint.DSN())
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)

			logger.Info().Msg("Connected to database")

			return db
		}

		lastErr = err

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")
		time.Sleep(wait)
	}

	logger.Fatal().Err(fmt.Errorf("after %d attempts: %w", maxRetry, lastErr)).Msg("Could not connect to database")

	return nil
}
