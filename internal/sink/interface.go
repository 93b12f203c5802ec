package sink

import (
	"context"
	"fmt"
	"time"

	"crm-sync/internal/schema"
)

// Sink writes one projected table to a destination.
type Sink interface {
	// Write creates the destination if it does not exist, clears it
	// otherwise, then writes the header, every data row, and the
	// last-synced marker.
	Write(ctx context.Context, table string, t *schema.Table, syncedAt time.Time) error

	// Verify re-reads the destination and reports how many data rows it
	// actually holds.
	Verify(ctx context.Context, table string) (int, error)

	// Close releases the underlying handle.
	Close() error
}

// Open returns the sink for a configured kind. SQL kinds connect
// immediately; file kinds defer everything to the first Write.
func Open(kind, dsn string) (Sink, error) {
	switch kind {
	case "csv":
		return NewCSV(dsn), nil
	case "xlsx":
		return NewXLSX(dsn), nil
	case "sqlite", "postgres", "mysql", "sqlserver", "mssql", "oracle":
		return OpenSQL(kind, dsn)
	default:
		return nil, fmt.Errorf("unknown sink kind %q (expected csv, xlsx, sqlite, postgres, mysql, sqlserver or oracle)", kind)
	}
}

// Ensure interface implementation
var _ Sink = (*CSVSink)(nil)
var _ Sink = (*XLSXSink)(nil)
var _ Sink = (*SQLSink)(nil)
