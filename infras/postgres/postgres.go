package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"heritage/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection holds separate pools for reads and for writes. Booking transactions always
// run on Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type target struct {
	name     string
	host     string
	port     string
	username string
	password string
	dbName   string
	sslMode  string
}

func (t target) dsn() string {
	dsn := url.URL{
		Scheme: driverName,
		User:   url.UserPassword(t.username, t.password),
		Host:   net.JoinHostPort(t.host, t.port),
		Path:   "/" + t.dbName,
	}

	query := dsn.Query()
	if t.sslMode != "" {
		query.Set("sslmode", t.sslMode)
	}

	dsn.RawQuery = query.Encode()

	return dsn.String()
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	write := connect(config, target{
		name:     "write",
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		dbName:   DBName(config, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
	})

	if pg.Read.Host == "" {
		log.Info().Msg("No read replica configured, reads use the write pool")

		return &Connection{Read: write, Write: write}
	}

	read := connect(config, target{
		name:     "read",
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		username: pg.Read.Username,
		password: pg.Read.Password,
		dbName:   DBName(config, pg.Read.Name),
		sslMode:  pg.Read.SSLMode,
	})

	return &Connection{Read: read, Write: write}
}

// DBName returns the database name with prefix if configured
func DBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// WriteDSN is the connection string of the write database, used by migrations.
func WriteDSN(config *config.Config) string {
	pg := config.DB.Postgres

	return target{
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		dbName:   DBName(config, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
	}.dsn()
}

func connect(config *config.Config, t target) *sqlx.DB {
	pg := config.DB.Postgres
	attempts := max(1, pg.MaxRetry)

	for attempt := range attempts {
		db, err := sqlx.Connect(driverName, t.dsn())
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeMin) * time.Minute)

			log.Info().
				Str("name", t.name).
				Str("host", t.host).
				Str("port", t.port).
				Str("dbName", t.dbName).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", t.name).
			Str("host", t.host).
			Str("dbName", t.dbName).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("name", t.name).Int("attempts", attempts).Msg("Giving up connecting to database")

	return nil
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write pool: %w", err)
	}

	if c.Read != c.Write {
		if err := c.Read.PingContext(ctx); err != nil {
			return fmt.Errorf("read pool: %w", err)
		}
	}

	return nil
}

func (c *Connection) Close() error {
	err := c.Write.Close()

	if c.Read != c.Write {
		err = errors.Join(err, c.Read.Close())
	}

	if err != nil {
		return fmt.Errorf("closing database pools: %w", err)
	}

	return nil
}
