package schema

import (
	"time"

	"crm-sync/internal/crm"
)

// Column is one selectable column discovered from a live record. Discovery
// output is advisory: it feeds column pickers, never the write path.
type Column struct {
	Key    string // dotted path into the record
	Name   string // human-readable header text
	Nested bool
	Parent string // dotted path of the containing key, "" at top level
}

// ColumnSpec is one column chosen for projection: a record path plus the
// header it is written under. Order in the slice is the output column order.
type ColumnSpec struct {
	Path string `mapstructure:"path"`
	Name string `mapstructure:"name"`
}

// OptionMap maps field key -> option code -> human label.
type OptionMap map[string]map[string]string

// Table is a fully projected record set: the header plus one row of
// formatted text per record.
type Table struct {
	Header []string
	Rows   [][]string
}

// SyncResult is the report for one finished (or aborted) sync run.
type SyncResult struct {
	RunID    string
	Entity   crm.EntityKind
	FilterID int
	Fetched  int
	Written  int
	Verified int
	Status   string
	Empty    bool
	Duration time.Duration
}
