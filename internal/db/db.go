package db

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialects
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// DB wraps the database with mutex-based exclusive access
type DB struct {
	db      *sqlx.DB
	dialect string
	mutex   sync.Mutex
}

// Open connects to the database named by url. postgres:// and postgresql://
// URLs select PostgreSQL; anything else is treated as a SQLite file path.
func Open(url string) (*DB, error) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		sqlDB, err := sqlx.Connect(DialectPostgres, url)
		if err != nil {
			return nil, err
		}
		return &DB{db: sqlDB, dialect: DialectPostgres}, nil
	}
	return NewDB(strings.TrimPrefix(url, "sqlite:///"))
}

// NewDB creates a new SQLite connection with exclusive access control
func NewDB(dbPath string) (*DB, error) {
	// Enable WAL mode and foreign keys via connection string
	dsn := dbPath + "?_journal_mode=WAL&_foreign_keys=on"

	sqlDB, err := sqlx.Open(DialectSQLite, dsn)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	// Single connection; the mutex serializes callers anyway
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &DB{db: sqlDB, dialect: DialectSQLite}, nil
}

// NewFromConn wraps an existing connection, e.g. one created by sqlmock
func NewFromConn(conn *sql.DB, dialect string) *DB {
	return &DB{db: sqlx.NewDb(conn, dialect), dialect: dialect}
}

// Dialect returns the SQL dialect in use
func (d *DB) Dialect() string {
	return d.dialect
}

// WithLock executes a function with exclusive database access
func (d *DB) WithLock(fn func() error) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return fn()
}

// WithLockResult executes a function with exclusive database access and returns a result
func WithLockResult[T any](d *DB, fn func() (T, error)) (T, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return fn()
}

// Ping checks the connection
func (d *DB) Ping() error {
	return d.WithLock(d.db.Ping)
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// q rebinds ? placeholders for the active dialect
func (d *DB) q(query string) string {
	return d.db.Rebind(query)
}

// withTx runs fn in a transaction. Callers must hold the lock.
func (d *DB) withTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// tableExists checks if a table exists in the database
func (d *DB) tableExists(tableName string) (bool, error) {
	query := "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?"
	if d.dialect == DialectPostgres {
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?"
	}
	return WithLockResult(d, func() (bool, error) {
		var count int
		if err := d.db.Get(&count, d.q(query), tableName); err != nil {
			return false, err
		}
		return count > 0, nil
	})
}
