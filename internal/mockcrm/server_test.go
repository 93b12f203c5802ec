package mockcrm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"crm-sync/internal/crm"
	"crm-sync/internal/engine"
	"crm-sync/internal/schema"
	"crm-sync/internal/sink"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockToken = "mock-token"

func startMock(t *testing.T, count int, seed int64) (*httptest.Server, *crm.Client) {
	t.Helper()
	srv := httptest.NewServer(New(mockToken, count, seed).Handler())
	t.Cleanup(srv.Close)
	return srv, crm.NewClient(srv.URL, mockToken)
}

func TestMock_PaginatedFetchThroughClient(t *testing.T) {
	_, client := startMock(t, 230, 1)

	records, err := client.FetchAll(context.Background(), crm.Deals, 0, 0, nil)
	require.NoError(t, err)
	require.Len(t, records, 230)

	// ids come back in generation order
	first, ok := records[0].Get("id")
	require.True(t, ok)
	assert.Equal(t, "1", first.Text())
	last, ok := records[229].Get("id")
	require.True(t, ok)
	assert.Equal(t, "230", last.Text())
}

func TestMock_LimitAndSample(t *testing.T) {
	_, client := startMock(t, 50, 1)

	records, err := client.FetchAll(context.Background(), crm.Persons, 0, 10, nil)
	require.NoError(t, err)
	assert.Len(t, records, 10)

	sample, err := client.Sample(context.Background(), crm.Persons, 0)
	require.NoError(t, err)
	require.NotNil(t, sample)
	emails, ok := sample.Get("emails")
	require.True(t, ok)
	assert.Greater(t, len(emails.Arr()), 0)
}

func TestMock_FilterKeepsDividingIDs(t *testing.T) {
	_, client := startMock(t, 10, 1)

	records, err := client.FetchAll(context.Background(), crm.Deals, 2, 0, nil)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, rec := range records {
		id, ok := rec.Get("id")
		require.True(t, ok)
		assert.Equal(t, strconv.Itoa((i+1)*2), id.Text())
	}
}

func TestMock_FieldCatalogs(t *testing.T) {
	_, client := startMock(t, 5, 1)
	ctx := context.Background()

	standard, err := client.Fields(ctx, crm.Deals)
	require.NoError(t, err)
	byKey := map[string]crm.Field{}
	for _, f := range standard {
		byKey[f.Key] = f
	}
	require.Contains(t, byKey, "label")
	require.Len(t, byKey["label"].Options, len(labelColors))
	assert.Equal(t, crm.FieldOption{Code: "1", Label: "Red"}, byKey["label"].Options[0])

	custom, err := client.CustomFields(ctx, crm.Deals)
	require.NoError(t, err)
	require.Len(t, custom, 2)
	assert.Equal(t, dealStageKey, custom[0].Key)
	assert.Equal(t, "Stage", custom[0].Name)
	require.Len(t, custom[0].Options, len(dealStages))
	assert.Equal(t, "Qualified", custom[0].Options[0].Label)
}

func TestMock_Filters(t *testing.T) {
	_, client := startMock(t, 5, 1)

	filters, err := client.Filters(context.Background())
	require.NoError(t, err)
	require.Len(t, filters, 3)
	assert.Equal(t, crm.Filter{ID: 2, Name: "Even ids", Kind: "deals"}, filters[0])
}

func TestMock_RejectsBadToken(t *testing.T) {
	srv, _ := startMock(t, 5, 1)

	bad := crm.NewClient(srv.URL, "wrong")
	_, err := bad.FetchAll(context.Background(), crm.Deals, 0, 0, nil)
	assert.ErrorIs(t, err, crm.ErrAuthRequired)
}

func TestMock_UnknownCollection(t *testing.T) {
	_, client := startMock(t, 5, 1)

	_, err := client.FetchAll(context.Background(), crm.EntityKind("tickets"), 0, 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestMock_SameSeedSameData(t *testing.T) {
	srvA, _ := startMock(t, 30, 7)
	srvB, _ := startMock(t, 30, 7)
	srvC, _ := startMock(t, 30, 8)

	pageA := fetchRaw(t, srvA.URL)
	pageB := fetchRaw(t, srvB.URL)
	pageC := fetchRaw(t, srvC.URL)

	assert.Equal(t, pageA, pageB)
	assert.NotEqual(t, pageA, pageC)
}

func fetchRaw(t *testing.T, base string) string {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, base+"/api/v1/deals?start=0&limit=30", nil)
	require.NoError(t, err)
	req.Header.Set("X-Api-Token", mockToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMock_FullSyncRun(t *testing.T) {
	_, client := startMock(t, 120, 3)

	out := filepath.Join(t.TempDir(), "deals.csv")
	snk, err := sink.Open("csv", out)
	require.NoError(t, err)
	defer snk.Close()

	cfg := engine.Config{
		Entity: crm.Deals,
		Table:  "deals",
		Columns: []schema.ColumnSpec{
			{Path: "title", Name: "Title"},
			{Path: "label", Name: "Label"},
			{Path: "custom_fields." + dealStageKey, Name: "Stage"},
			{Path: "org_id", Name: "Organization"},
		},
	}

	res, err := engine.Run(context.Background(), client, snk, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 120, res.Fetched)
	assert.Equal(t, 120, res.Written)
	assert.Equal(t, 120, res.Verified)
	assert.Equal(t, "VERIFIED_OK", res.Status)
	assert.False(t, res.Empty)

	count, err := snk.Verify(context.Background(), "deals")
	require.NoError(t, err)
	assert.Equal(t, 120, count)
}
