// Package database opens the MySQL connection used by every
// repository.  The booking tables rely on DATETIME columns and a
// composite unique key on tickets, so the DSN pins parseTime and UTC
// to keep departure/arrival values round-tripping cleanly.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// connLifetime bounds how long a pooled connection is reused before
// being recycled, so long-running servers survive MySQL-side timeouts
// and failovers.
const connLifetime = 30 * time.Minute

// Config carries everything needed to reach the booking database.
type Config struct {
	User string
	Pass string // empty means no password
	Host string
	Port string
	Name string

	// MaxConns caps both open and idle connections.  Zero or
	// negative falls back to a modest default suited to a single
	// API instance.
	MaxConns int
}

// Open connects to MySQL, sizes the pool and verifies the connection
// with a short ping before handing it to the repositories.
func Open(cfg Config) (*sql.DB, error) {
	auth := cfg.User
	if cfg.Pass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Pass)
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 25
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(connLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
