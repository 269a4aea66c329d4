package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const (
	retryAttempts = 3
	retryBackoff  = 500 * time.Millisecond
)

// OpenDB opens a Postgres connection pool and verifies it.
func OpenDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(10 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// withRetry runs op, retrying transient connection failures a bounded
// number of times with a fixed backoff. Callers never observe a "not
// connected" error unless every attempt failed.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err = op(); err == nil || !retryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
	return err
}

func retryable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || pgconn.SafeToRetry(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// KeepAlive owns the background connection probe. It pings the pool on an
// interval so that a dropped connection is re-established before the next
// caller needs it; the pool itself reconnects on the ping.
type KeepAlive struct {
	db       *sql.DB
	interval time.Duration
}

func NewKeepAlive(db *sql.DB, interval time.Duration) *KeepAlive {
	return &KeepAlive{db: db, interval: interval}
}

// Run blocks until ctx is cancelled, probing the connection on every tick.
func (k *KeepAlive) Run(ctx context.Context) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()
	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := k.db.PingContext(ctx); err != nil {
				if healthy {
					log.Println("db keep-alive: connection lost:", err)
				}
				healthy = false
			} else if !healthy {
				log.Println("db keep-alive: connection restored")
				healthy = true
			}
		}
	}
}
