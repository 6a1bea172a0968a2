package postgres

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SerialDB wraps a single *pgx.Conn behind a mutex. The harvester runs
// one goroutine per site (spec §6) but all of them share one
// connection: a plain *pgx.Conn is not safe for concurrent use, and a
// pool would let sites race each other for no benefit the harvester
// needs, so every query is serialized instead. The read-only Search
// Service does not use this type — it pools (see search_repository.go).
//
// pgx defers a query's actual execution to Rows iteration / Row.Scan,
// so a method that released the mutex right after calling Query or
// QueryRow would let a second goroutine start its own query on the
// same conn while the first's rows/scan are still in flight. Query and
// QueryRow instead take a callback and hold the mutex for the whole
// execute-and-consume sequence.
type SerialDB struct {
	mu   sync.Mutex
	conn *pgx.Conn
}

func NewSerialDB(conn *pgx.Conn) *SerialDB {
	return &SerialDB{conn: conn}
}

// Query runs a row-returning statement and invokes fn with the
// resulting Rows before releasing the connection.
func (s *SerialDB) Query(ctx context.Context, sql string, args []any, fn func(pgx.Rows) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	return fn(rows)
}

// QueryRow runs a single-row statement and invokes scan with the
// resulting Row before releasing the connection.
func (s *SerialDB) QueryRow(ctx context.Context, sql string, args []any, scan func(pgx.Row) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.conn.QueryRow(ctx, sql, args...)
	return scan(row)
}

// Exec runs a statement that returns no rows (plain INSERT/UPDATE with
// no RETURNING clause).
func (s *SerialDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Exec(ctx, sql, args...)
}

func (s *SerialDB) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close(ctx)
}
