package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"crm-sync/internal/schema"
)

// SQLSink writes projected tables into a relational database. All columns
// are text; the destination table is created on first use and cleared on
// every subsequent sync.
type SQLSink struct {
	db *sql.DB
	d  sqlDialect
}

// OpenSQL connects to the database behind kind/dsn and pings it.
func OpenSQL(kind, dsn string) (*SQLSink, error) {
	d := dialectFor(kind)

	if d.DriverName() == "sqlite" && !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if d.DriverName() == "sqlite" {
		// a single connection avoids writer lock contention
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return &SQLSink{db: db, d: d}, nil
}

func (s *SQLSink) Write(ctx context.Context, table string, t *schema.Table, syncedAt time.Time) error {
	if len(t.Header) == 0 {
		return fmt.Errorf("table %s has no columns to write", table)
	}

	// DDL runs outside the transaction: Oracle and MySQL auto-commit it anyway.
	if _, err := s.db.ExecContext(ctx, s.d.CreateTableQuery(table, t.Header)); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	if _, err := s.db.ExecContext(ctx, s.d.MetaTableQuery()); err != nil {
		return fmt.Errorf("create %s: %w", metaTable, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, s.d.TruncateQuery(table)); err != nil {
		return fmt.Errorf("clear table %s: %w", table, err)
	}

	insert := s.d.InsertQuery(table, t.Header)
	for _, row := range t.Rows {
		args := make([]interface{}, len(row))
		for i, cell := range row {
			args[i] = cell
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	// The last-synced marker goes to sync_meta rather than a trailer row.
	if _, err := tx.ExecContext(ctx, s.d.MetaDeleteQuery(), table); err != nil {
		return fmt.Errorf("update %s: %w", metaTable, err)
	}
	stamp := syncedAt.Format("2006-01-02 15:04:05")
	if _, err := tx.ExecContext(ctx, s.d.MetaInsertQuery(), table, stamp); err != nil {
		return fmt.Errorf("update %s: %w", metaTable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write to %s: %w", table, err)
	}
	tx = nil
	return nil
}

func (s *SQLSink) Verify(ctx context.Context, table string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, s.d.CountQuery(table)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows in %s: %w", table, err)
	}
	return count, nil
}

// LastSynced reads the marker written for table, or zero time when the
// table was never synced.
func (s *SQLSink) LastSynced(ctx context.Context, table string) (time.Time, error) {
	query := fmt.Sprintf("SELECT synced_at FROM %s WHERE table_name = %s", metaTable, s.d.Placeholder(0))
	var stamp string
	err := s.db.QueryRowContext(ctx, query, table).Scan(&stamp)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read %s: %w", metaTable, err)
	}
	return time.Parse("2006-01-02 15:04:05", stamp)
}

func (s *SQLSink) Close() error {
	return s.db.Close()
}
