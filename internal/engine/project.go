package engine

import (
	"crm-sync/internal/record"
	"crm-sync/internal/schema"
)

// Project flattens records into a table: the header row carries the column
// names in the given order, then one row per record in fetch order. Cells
// resolve each column's path against the record and format the result;
// absent paths become empty cells. Projection has no side effects, so
// running it twice over the same inputs yields identical tables.
func Project(records []*record.Object, cols []schema.ColumnSpec, options schema.OptionMap) *schema.Table {
	t := &schema.Table{
		Header: make([]string, len(cols)),
		Rows:   make([][]string, 0, len(records)),
	}
	for i, c := range cols {
		t.Header[i] = c.Name
	}
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			v, ok := record.Resolve(rec, c.Path)
			if !ok {
				continue // leave the cell empty
			}
			row[i] = FormatValue(v, c.Path, options)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
