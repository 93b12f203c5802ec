package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"crm-sync/internal/schema"
)

// CSVSink writes the projection to one CSV file. The file is the
// destination: each sync replaces its contents wholesale, so the table name
// only shows up in error messages.
type CSVSink struct {
	Path string
}

func NewCSV(path string) *CSVSink {
	return &CSVSink{Path: path}
}

func (s *CSVSink) Write(ctx context.Context, table string, t *schema.Table, syncedAt time.Time) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.Path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		f.Close()
		return fmt.Errorf("write header for %s: %w", table, err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write row for %s: %w", table, err)
		}
	}
	if err := w.Write([]string{lastSyncedMarker(syncedAt)}); err != nil {
		f.Close()
		return fmt.Errorf("write sync marker for %s: %w", table, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", s.Path, err)
	}
	return f.Close()
}

func (s *CSVSink) Verify(ctx context.Context, table string) (int, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // the marker row is shorter than the header
	rows, err := r.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.Path, err)
	}
	if len(rows) < 2 {
		return 0, nil
	}
	return len(rows) - 2, nil // minus header and marker
}

func (s *CSVSink) Close() error { return nil }

func lastSyncedMarker(syncedAt time.Time) string {
	return "Last synced: " + syncedAt.Format("2006-01-02 15:04:05")
}
