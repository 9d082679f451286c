// src/database/store.go
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	cache "github.com/patrickmn/go-cache"
	"github.com/username/paybook/src/logger"
)

// ErrNoRow is returned by LookupID when no row matches. Callers that treat a
// missing id as a hard failure (the import pipeline does) check for it with
// errors.Is.
var ErrNoRow = errors.New("no matching row")

// Record maps column names to values, the unit of Insert and UpdateByID.
type Record map[string]any

// queryer is satisfied by both *sql.DB and *sql.Tx so Store methods work
// inside and outside a transaction.
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store is the persistence surface the import pipeline consumes. It is
// handed to the pipeline explicitly; there is no package-level database
// handle.
type Store struct {
	db      *sql.DB
	q       queryer
	tx      *sql.Tx
	lookups *cache.Cache
}

// DB exposes the underlying handle for closing at shutdown.
func (s *Store) DB() *sql.DB { return s.db }

// Transact runs fn against a store bound to a single SQL transaction,
// committing if fn returns nil and rolling back otherwise. The import
// pipeline runs one transaction per stage so a crash loses at most the
// in-flight stage. Nested calls reuse the open transaction.
func (s *Store) Transact(fn func(*Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}

	txStore := &Store{db: s.db, q: tx, tx: tx, lookups: s.lookups}
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.L.Error("rollback failed", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}

// Exists reports whether any row in table has the given value in column.
func (s *Store) Exists(table, column string, value any) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ? LIMIT 1", table, column)
	var one int
	err := s.q.QueryRow(query, value).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking existence in %s.%s: %w", table, column, err)
	}
	return true, nil
}

// Insert adds a row built from rec and returns the new row id. Columns are
// emitted in sorted order so the generated SQL is deterministic.
func (s *Store) Insert(table string, rec Record) (int64, error) {
	cols := make([]string, 0, len(rec))
	for col := range rec {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	args := make([]any, 0, len(cols))
	marks := make([]string, 0, len(cols))
	for _, col := range cols {
		args = append(args, rec[col])
		marks = append(marks, "?")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	res, err := s.q.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("error inserting into %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading new row id for %s: %w", table, err)
	}
	return id, nil
}

// Rows returns all rows of table matching the predicate as generic records.
// An empty result is a nil slice, not an error.
func (s *Store) Rows(table string, p Predicate) ([]Record, error) {
	where, args := p.SQL()
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s ORDER BY id ASC", table, where)

	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error reading columns of %s: %w", table, err)
	}

	var out []Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("error scanning row of %s: %w", table, err)
		}
		rec := make(Record, len(cols))
		for i, col := range cols {
			rec[col] = vals[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows of %s: %w", table, err)
	}
	return out, nil
}

// UpdateByID sets the columns in rec on the row with the given id.
func (s *Store) UpdateByID(table string, id int64, rec Record) error {
	cols := make([]string, 0, len(rec))
	for col := range rec {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		sets = append(sets, col+" = ?")
		args = append(args, rec[col])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	if _, err := s.q.Exec(query, args...); err != nil {
		return fmt.Errorf("error updating %s id %d: %w", table, id, err)
	}
	return nil
}

// LookupID returns the id of the first row in table whose column matches
// value, or ErrNoRow. Resolutions against the seeded lookup tables are
// cached, since those tables never change after InitDB.
func (s *Store) LookupID(table, column string, value any) (int64, error) {
	cacheKey := ""
	if lookupTables[table] {
		cacheKey = fmt.Sprintf("%s|%s|%v", table, column, value)
		if cached, found := s.lookups.Get(cacheKey); found {
			return cached.(int64), nil
		}
	}

	query := fmt.Sprintf("SELECT id FROM %s WHERE %s = ? LIMIT 1", table, column)
	var id int64
	err := s.q.QueryRow(query, value).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: %s.%s = %v", ErrNoRow, table, column, value)
	}
	if err != nil {
		return 0, fmt.Errorf("error looking up id in %s.%s: %w", table, column, err)
	}

	if cacheKey != "" {
		s.lookups.Set(cacheKey, id, cache.NoExpiration)
	}
	return id, nil
}
