package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

type DB struct {
	Pool *sql.DB

	// Now stamps created_at on insert.
	Now func() time.Time

	lock *flock.Flock
}

type openOptions struct {
	noLock bool
}

type Option func(*openOptions)

// WithoutLock skips the lock file; sqlite alone then arbitrates between
// processes sharing the file.
func WithoutLock() Option {
	return func(o *openOptions) { o.noLock = true }
}

// Open opens (creating if needed) the sqlite file at path and, unless
// WithoutLock is given, takes an exclusive lock on path+".lock" for the life
// of the DB.
func Open(path string, opts ...Option) (*DB, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	var lock *flock.Flock
	if !o.noLock {
		lock = flock.New(path + ".lock")
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("lock %s: %w", lock.Path(), err)
		}
		if !locked {
			return nil, fmt.Errorf("store %s is in use by another process", path)
		}
	}
	unlock := func() {
		if lock != nil {
			_ = lock.Unlock()
		}
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		unlock()
		return nil, err
	}

	// sqlite wants a single writer
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		unlock()
		return nil, err
	}

	return &DB{Pool: pool, Now: time.Now, lock: lock}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	err := d.Pool.Close()
	if d.lock != nil {
		if uerr := d.lock.Unlock(); err == nil {
			err = uerr
		}
	}
	return err
}

func (d *DB) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now().UTC()
}
