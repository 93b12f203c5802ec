package sink_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"crm-sync/internal/schema"
	"crm-sync/internal/sink"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = &schema.Table{
	Header: []string{"Title", "Stage"},
	Rows: [][]string{
		{"Deal A", "Qualified"},
		{"Deal B", "Won, Sealed"},
	},
}

var syncStamp = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func TestCSVSink_WriteAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.csv")
	s := sink.NewCSV(path)

	require.NoError(t, s.Write(context.Background(), "deals", testTable, syncStamp))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Title", "Stage"}, rows[0])
	assert.Equal(t, []string{"Deal A", "Qualified"}, rows[1])
	assert.Equal(t, []string{"Deal B", "Won, Sealed"}, rows[2]) // comma survives quoting
	assert.Equal(t, []string{"Last synced: 2026-03-14 15:09:26"}, rows[3])

	count, err := s.Verify(context.Background(), "deals")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCSVSink_RewriteReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.csv")
	s := sink.NewCSV(path)

	require.NoError(t, s.Write(context.Background(), "deals", testTable, syncStamp))

	smaller := &schema.Table{Header: []string{"Title"}, Rows: [][]string{{"Only one"}}}
	require.NoError(t, s.Write(context.Background(), "deals", smaller, syncStamp))

	count, err := s.Verify(context.Background(), "deals")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCSVSink_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.csv")
	s := sink.NewCSV(path)

	empty := &schema.Table{Header: []string{"Title", "Stage"}}
	require.NoError(t, s.Write(context.Background(), "deals", empty, syncStamp))

	count, err := s.Verify(context.Background(), "deals")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCSVSink_VerifyMissingFile(t *testing.T) {
	s := sink.NewCSV(filepath.Join(t.TempDir(), "never-written.csv"))
	_, err := s.Verify(context.Background(), "deals")
	assert.Error(t, err)
}
