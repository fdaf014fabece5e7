package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/finsynth/finsynth/internal/config"
)

// ensureDSNParam appends a query parameter to a MySQL DSN unless the key is
// already present.
func ensureDSNParam(dsn, key, value string) string {
	if strings.Contains(strings.ToLower(dsn), strings.ToLower(key)+"=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + value
}

// Pool wraps a sql.DB for the warehouse connection with lifecycle management
// and simple query metrics.
type Pool struct {
	db     *sql.DB
	config config.DatabaseConfig

	totalQueries   int64
	failedQueries  int64
	totalLatencyNs int64
}

// NewPool opens a MySQL/MariaDB connection pool for the warehouse.
// parseTime is forced on so DATE columns scan into time.Time, and
// allowAllFiles so LOAD DATA LOCAL INFILE can read the exported CSVs.
func NewPool(cfg config.DatabaseConfig) (*Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	dsn := ensureDSNParam(cfg.DSN, "parseTime", "true")
	dsn = ensureDSNParam(dsn, "allowAllFiles", "true")

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return &Pool{
		db:     db,
		config: cfg,
	}, nil
}

// Connect verifies the database connection is working
func (p *Pool) Connect(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close gracefully shuts down the connection pool
func (p *Pool) Close() error {
	return p.db.Close()
}

// ExecContext executes a query that doesn't return rows
func (p *Pool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := p.db.ExecContext(ctx, query, args...)
	p.recordQuery(time.Since(start), err)
	return result, err
}

// recordQuery updates internal metrics. Loads run in parallel, so the
// counters are atomic.
func (p *Pool) recordQuery(duration time.Duration, err error) {
	atomic.AddInt64(&p.totalQueries, 1)
	atomic.AddInt64(&p.totalLatencyNs, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&p.failedQueries, 1)
	}
}

// Stats returns current pool statistics
func (p *Pool) Stats() PoolStats {
	dbStats := p.db.Stats()
	return PoolStats{
		OpenConnections: dbStats.OpenConnections,
		InUse:           dbStats.InUse,
		Idle:            dbStats.Idle,
		WaitCount:       dbStats.WaitCount,
		WaitDuration:    dbStats.WaitDuration,
		TotalQueries:    atomic.LoadInt64(&p.totalQueries),
		FailedQueries:   atomic.LoadInt64(&p.failedQueries),
		AvgLatency:      p.averageLatency(),
	}
}

func (p *Pool) averageLatency() time.Duration {
	queries := atomic.LoadInt64(&p.totalQueries)
	if queries == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64(&p.totalLatencyNs) / queries)
}

// PoolStats contains connection pool and query statistics
type PoolStats struct {
	OpenConnections int
	InUse           int
	Idle            int
	WaitCount       int64
	WaitDuration    time.Duration

	TotalQueries  int64
	FailedQueries int64
	AvgLatency    time.Duration
}
