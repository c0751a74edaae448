package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import pq driver.
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // Import sqlite driver.
)

const migrations = `
CREATE TABLE IF NOT EXISTS high_scores (
	name VARCHAR(255) PRIMARY KEY,
	score INTEGER NOT NULL,
	updated TIMESTAMP NOT NULL
);
`

type dialect struct {
	driver string
	// bind returns the placeholder of the nth (1 based) argument.
	bind func(n int) string
}

var (
	postgres = dialect{
		driver: "postgres",
		bind:   func(n int) string { return fmt.Sprintf("$%d", n) },
	}
	sqlite = dialect{
		driver: "sqlite",
		bind:   func(int) string { return "?" },
	}
)

// Store represents an SQL store.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// NewPostgresStore returns a new store using a postgres database.
func NewPostgresStore(ctx context.Context, url string) (*Store, error) {
	return open(ctx, postgres, url)
}

// NewSQLiteStore returns a new store using a sqlite database file, created if it
// does not exist.
func NewSQLiteStore(ctx context.Context, path string) (*Store, error) {
	s, err := open(ctx, sqlite, path)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY.
	s.db.SetMaxOpenConns(1)
	return s, nil
}

func open(ctx context.Context, d dialect, dsn string) (*Store, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s database", d.driver)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "unable to reach %s database", d.driver)
	}

	if _, err = db.ExecContext(ctx, migrations); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "unable to run migrations")
	}
	return &Store{db: db, dialect: d}, nil
}

// transact is a transaction wrapper, helps avoid failed to close connections.
func (s *Store) transact(ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
			panic(p)
		} else if err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
		} else {
			err = tx.Commit()
		}
	}()
	err = txFunc(tx)
	return err
}

// Get returns the score stored under key.
func (s *Store) Get(ctx context.Context, key string) (int, bool, error) {
	var score int
	r := s.db.QueryRowContext(ctx,
		"SELECT score FROM high_scores WHERE name="+s.dialect.bind(1), key)
	if err := r.Scan(&score); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, errors.Wrapf(err, "unable to get %s", key)
	}
	return score, true, nil
}

// Set inserts or replaces the score stored under key.
func (s *Store) Set(ctx context.Context, key string, value int) error {
	b := s.dialect.bind
	err := s.transact(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO high_scores (name, score, updated) VALUES (%s, %s, %s)
		ON CONFLICT (name)
		DO UPDATE SET score=excluded.score, updated=excluded.updated`,
			b(1), b(2), b(3)),
			key, value, time.Now().UTC(),
		)
		return err
	})
	return errors.Wrapf(err, "unable to set %s", key)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
