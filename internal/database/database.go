package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"inventory-management/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DB is the connection provider shared by all stores. It is created once at
// process start and handed to every store; it owns the pool.
type DB struct {
	db     *sql.DB
	driver string
	logger *zap.Logger
}

// Open connects to the configured database, applies pool settings and,
// unless disabled, creates the schema.
func Open(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	driverName, dsn := dataSource(cfg)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	d := &DB{
		db:     db,
		driver: cfg.DBDriver,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBAutoMigrate {
		if err := d.initSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	logger.Info("Database connection established",
		zap.String("driver", cfg.DBDriver),
		zap.Int("max_open_conns", cfg.DBMaxOpenConns),
		zap.Bool("auto_migrate", cfg.DBAutoMigrate),
	)

	return d, nil
}

func dataSource(cfg *config.Config) (driverName, dsn string) {
	if cfg.DBDriver == config.DriverPostgres {
		return "pgx", cfg.DatabaseURL
	}
	return "sqlite3", cfg.SQLitePath + "?_journal_mode=WAL&_foreign_keys=1&_busy_timeout=5000"
}

// Acquire checks a connection out of the pool. Callers must hand it back with Release.
func (d *DB) Acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// Release returns conn to the pool.
func (d *DB) Release(conn *sql.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		d.logger.Warn("Failed to release connection", zap.Error(err))
	}
}

// TestConnection reports whether a connection can be acquired and used.
func (d *DB) TestConnection(ctx context.Context) bool {
	conn, err := d.Acquire(ctx)
	if err != nil {
		d.logger.Error("Database connection test failed", zap.Error(err))
		return false
	}
	defer d.Release(conn)

	if err := conn.PingContext(ctx); err != nil {
		d.logger.Error("Database connection test failed", zap.Error(err))
		return false
	}
	return true
}

// Driver returns the configured driver name (sqlite3 or postgres).
func (d *DB) Driver() string {
	return d.driver
}

// Rebind rewrites ? placeholders into the driver's bind syntax.
func (d *DB) Rebind(query string) string {
	if d.driver != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close closes the pool
func (d *DB) Close() error {
	return d.db.Close()
}
