package sink

import (
	"context"
	"fmt"
	"os"
	"time"

	"crm-sync/internal/schema"

	"github.com/xuri/excelize/v2"
)

// XLSXSink writes the projection into one worksheet of a workbook, leaving
// other sheets alone. The sheet is recreated on every sync: bold header,
// data rows, auto-sized columns, last-synced marker underneath.
type XLSXSink struct {
	Path string
}

func NewXLSX(path string) *XLSXSink {
	return &XLSXSink{Path: path}
}

// scratchSheet keeps the workbook non-empty while the target sheet is
// dropped and recreated.
const scratchSheet = "__scratch__"

func (s *XLSXSink) Write(ctx context.Context, table string, t *schema.Table, syncedAt time.Time) error {
	f, created, err := s.openWorkbook()
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.NewSheet(scratchSheet); err != nil {
		return fmt.Errorf("prepare workbook: %w", err)
	}
	if idx, _ := f.GetSheetIndex(table); idx != -1 {
		if err := f.DeleteSheet(table); err != nil {
			return fmt.Errorf("clear sheet %s: %w", table, err)
		}
	}
	if _, err := f.NewSheet(table); err != nil {
		return fmt.Errorf("create sheet %s: %w", table, err)
	}
	if err := f.DeleteSheet(scratchSheet); err != nil {
		return fmt.Errorf("prepare workbook: %w", err)
	}
	if created && table != "Sheet1" {
		// drop the default sheet NewFile starts with
		f.DeleteSheet("Sheet1")
	}

	if err := s.writeRows(f, table, t, syncedAt); err != nil {
		return err
	}

	if idx, _ := f.GetSheetIndex(table); idx != -1 {
		f.SetActiveSheet(idx)
	}
	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	return nil
}

func (s *XLSXSink) writeRows(f *excelize.File, table string, t *schema.Table, syncedAt time.Time) error {
	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(table, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if len(t.Header) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("create header style: %w", err)
		}
		end, _ := excelize.CoordinatesToCellName(len(t.Header), 1)
		if err := f.SetCellStyle(table, "A1", end, bold); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(table, start, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for i, name := range t.Header {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		f.SetColWidth(table, col, col, columnWidth(name, t.Rows, i))
	}

	marker, _ := excelize.CoordinatesToCellName(1, len(t.Rows)+2)
	if err := f.SetCellValue(table, marker, lastSyncedMarker(syncedAt)); err != nil {
		return fmt.Errorf("write sync marker: %w", err)
	}
	return nil
}

func (s *XLSXSink) Verify(ctx context.Context, table string) (int, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(table)
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", table, err)
	}
	if len(rows) < 2 {
		return 0, nil
	}
	return len(rows) - 2, nil // minus header and marker
}

func (s *XLSXSink) Close() error { return nil }

func (s *XLSXSink) openWorkbook() (*excelize.File, bool, error) {
	if _, err := os.Stat(s.Path); err == nil {
		f, err := excelize.OpenFile(s.Path)
		if err != nil {
			return nil, false, fmt.Errorf("open %s: %w", s.Path, err)
		}
		return f, false, nil
	}
	return excelize.NewFile(), true, nil
}

// columnWidth sizes a column to its longest cell, within sane bounds.
func columnWidth(header string, rows [][]string, col int) float64 {
	longest := len([]rune(header))
	for _, row := range rows {
		if col < len(row) {
			if n := len([]rune(row[col])); n > longest {
				longest = n
			}
		}
	}
	width := float64(longest) + 2
	if width < 10 {
		width = 10
	}
	if width > 60 {
		width = 60
	}
	return width
}
