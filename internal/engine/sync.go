package engine

import (
	"context"
	"fmt"
	"time"

	"crm-sync/internal/crm"
	"crm-sync/internal/schema"
	"crm-sync/internal/sink"

	"github.com/google/uuid"
)

// Config is the immutable description of one sync run. It is built once
// from flags and config before the run starts; nothing mutates it afterwards.
type Config struct {
	Entity   crm.EntityKind
	FilterID int
	Limit    int                 // 0 means everything
	Table    string              // destination table / sheet name
	Columns  []schema.ColumnSpec // output columns, in order
}

// Run performs one full sync: field catalogs, option map, paginated fetch,
// projection, sink write, verification. The sink is only touched after the
// whole record set arrived; a fetch failure aborts with the sink unchanged.
func Run(ctx context.Context, client *crm.Client, snk sink.Sink, cfg Config, onProgress func(fetched int)) (*schema.SyncResult, error) {
	res := &schema.SyncResult{
		RunID:    uuid.NewString(),
		Entity:   cfg.Entity,
		FilterID: cfg.FilterID,
	}
	started := time.Now()

	standard, err := client.Fields(ctx, cfg.Entity)
	if err != nil {
		return res, err
	}
	custom, err := client.CustomFields(ctx, cfg.Entity)
	if err != nil {
		return res, err
	}
	options := schema.BuildOptionMap(standard, custom)

	records, err := client.FetchAll(ctx, cfg.Entity, cfg.FilterID, cfg.Limit, onProgress)
	res.Fetched = len(records)
	if err != nil {
		return res, err
	}
	res.Empty = len(records) == 0

	table := Project(records, cfg.Columns, options)

	if err := snk.Write(ctx, cfg.Table, table, time.Now()); err != nil {
		return res, fmt.Errorf("write sink: %w", err)
	}
	res.Written = len(table.Rows)

	verified, err := snk.Verify(ctx, cfg.Table)
	if err != nil {
		res.Status = fmt.Sprintf("VERIFY_FAIL: %v", err)
	} else {
		res.Verified = verified
		if verified == res.Written {
			res.Status = "VERIFIED_OK"
		} else {
			res.Status = fmt.Sprintf("PARTIAL: %d/%d", verified, res.Written)
		}
	}

	res.Duration = time.Since(started)
	return res, nil
}
