package crm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"crm-sync/internal/record"
)

// PageSize is the fixed number of records requested per round trip.
const PageSize = 100

// progressEvery is how many accumulated records pass between two progress
// notifications.
const progressEvery = 500

// FetchAll retrieves every record of the given kind, page by page, in server
// order. filterID > 0 restricts the set server-side; limit > 0 caps the
// result at exactly that many records. onProgress (nil allowed) is invoked
// with the accumulated count each time it crosses a 500-record boundary.
//
// Pagination stops on an empty page, on the server signalling no more items,
// or on reaching the limit. A failed round trip returns the records
// accumulated so far together with the error; there are no retries.
func (c *Client) FetchAll(ctx context.Context, kind EntityKind, filterID, limit int, onProgress func(fetched int)) ([]*record.Object, error) {
	var all []*record.Object
	start := 0
	notified := 0

	for {
		q := url.Values{}
		q.Set("start", strconv.Itoa(start))
		q.Set("limit", strconv.Itoa(PageSize))
		if filterID > 0 {
			q.Set("filter_id", strconv.Itoa(filterID))
		}

		env, err := c.get(ctx, "/api/v1/"+string(kind), q)
		if err != nil {
			return all, fmt.Errorf("fetch %s page at offset %d: %w", kind, start, err)
		}

		page := dataRecords(env, string(kind)+" page")
		if len(page) == 0 {
			break
		}
		all = append(all, page...)

		truncated := false
		if limit > 0 && len(all) >= limit {
			all = all[:limit]
			truncated = true
		}

		if len(all)/progressEvery > notified {
			notified = len(all) / progressEvery
			if onProgress != nil {
				onProgress(len(all))
			}
		}

		if truncated || !moreItems(env) {
			break
		}
		start += PageSize
	}

	return all, nil
}

// Sample fetches a single record of the given kind, for schema discovery.
// Returns nil without error when the collection is empty.
func (c *Client) Sample(ctx context.Context, kind EntityKind, filterID int) (*record.Object, error) {
	q := url.Values{}
	q.Set("start", "0")
	q.Set("limit", "1")
	if filterID > 0 {
		q.Set("filter_id", strconv.Itoa(filterID))
	}

	env, err := c.get(ctx, "/api/v1/"+string(kind), q)
	if err != nil {
		return nil, fmt.Errorf("fetch %s sample: %w", kind, err)
	}
	records := dataRecords(env, string(kind)+" sample")
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// moreItems reads the pagination signal from the envelope. When the server
// does not send one, we keep paging until an empty page shows up.
func moreItems(env *record.Object) bool {
	if env == nil {
		return false
	}
	v, ok := record.Resolve(env, "additional_data.pagination.more_items_in_collection")
	if !ok || v.Kind() != record.KindBool {
		return true
	}
	return v.Bool()
}
