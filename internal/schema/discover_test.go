package schema_test

import (
	"testing"

	"crm-sync/internal/crm"
	"crm-sync/internal/record"
	"crm-sync/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *record.Object {
	t.Helper()
	obj, err := record.ParseObject([]byte(raw))
	require.NoError(t, err)
	return obj
}

func TestDiscover_PrimaryContactColumn(t *testing.T) {
	sample := mustParse(t, `{"emails":[{"value":"a@x.com","primary":true,"label":"work"}]}`)

	cols := schema.Discover(sample, nil)
	require.Len(t, cols, 1)
	assert.Equal(t, "emails.0.value", cols[0].Key)
	assert.Equal(t, "Primary Emails (work)", cols[0].Name)
	assert.True(t, cols[0].Nested)
	assert.Equal(t, "emails", cols[0].Parent)
}

func TestDiscover_PrimaryContactWithoutLabel(t *testing.T) {
	sample := mustParse(t, `{"phones":[{"value":"555-0100","primary":true}]}`)

	cols := schema.Discover(sample, nil)
	require.Len(t, cols, 1)
	assert.Equal(t, "phones.0.value", cols[0].Key)
	assert.Equal(t, "Primary Phones", cols[0].Name)
}

func TestDiscover_MultiOptionArrayIsOneColumn(t *testing.T) {
	sample := mustParse(t, `{"label_ids":[{"id":1,"label":"Hot"},{"id":2,"label":"Cold"}]}`)

	cols := schema.Discover(sample, []crm.Field{{Key: "label_ids", Name: "Labels"}})
	require.Len(t, cols, 1)
	assert.Equal(t, "label_ids", cols[0].Key)
	assert.Equal(t, "Labels", cols[0].Name)
}

func TestDiscover_MixedArrayRecursesFirstElement(t *testing.T) {
	// One element lacks "id", so this is not a multi-option array; the
	// first element's shape wins.
	sample := mustParse(t, `{"participants":[{"person_id":7,"added":true},{"label":"x"}]}`)

	cols := schema.Discover(sample, nil)
	require.Len(t, cols, 2)
	assert.Equal(t, "participants.0.person_id", cols[0].Key)
	assert.Equal(t, "participants.0.added", cols[1].Key)
	assert.Equal(t, "participants.0", cols[0].Parent)
	assert.True(t, cols[0].Nested)
}

func TestDiscover_NestedObjectsAndCustomFields(t *testing.T) {
	sample := mustParse(t, `{
		"title": "Deal A",
		"org_id": {"name": "Acme", "value": 9},
		"custom_fields": {"abc123": "2"},
		"_meta": {"rev": 3}
	}`)
	catalog := []crm.Field{
		{Key: "title", Name: "Title"},
		{Key: "abc123", Name: "Source"},
	}

	cols := schema.Discover(sample, catalog)
	require.Len(t, cols, 4)

	assert.Equal(t, "title", cols[0].Key)
	assert.Equal(t, "Title", cols[0].Name)
	assert.False(t, cols[0].Nested)
	assert.Equal(t, "", cols[0].Parent)

	assert.Equal(t, "org_id.name", cols[1].Key)
	assert.Equal(t, "Name", cols[1].Name)
	assert.Equal(t, "org_id", cols[1].Parent)

	assert.Equal(t, "org_id.value", cols[2].Key)

	assert.Equal(t, "custom_fields.abc123", cols[3].Key)
	assert.Equal(t, "Source", cols[3].Name)
	assert.Equal(t, "custom_fields", cols[3].Parent)
}

func TestDiscover_SkipsReservedKeysEverywhere(t *testing.T) {
	sample := mustParse(t, `{"_rev": 1, "nested": {"_hidden": true, "kept": "x"}}`)

	cols := schema.Discover(sample, nil)
	require.Len(t, cols, 1)
	assert.Equal(t, "nested.kept", cols[0].Key)
}

func TestDiscover_TitleCaseFallback(t *testing.T) {
	sample := mustParse(t, `{"next_activity_date": "2026-01-01", "won": true}`)

	cols := schema.Discover(sample, nil)
	require.Len(t, cols, 2)
	assert.Equal(t, "Next Activity Date", cols[0].Name)
	assert.Equal(t, "Won", cols[1].Name)
}

func TestDiscover_DepthIsBounded(t *testing.T) {
	// Six levels of nesting: the leaf is still reachable.
	within := mustParse(t, `{"l0":{"l1":{"l2":{"l3":{"l4":{"deep":"x"}}}}}}`)
	cols := schema.Discover(within, nil)
	require.Len(t, cols, 1)
	assert.Equal(t, "l0.l1.l2.l3.l4.deep", cols[0].Key)

	// One more level and the walk stops instead of descending forever.
	beyond := mustParse(t, `{"l0":{"l1":{"l2":{"l3":{"l4":{"l5":{"deep":"x"}}}}}}}`)
	assert.Empty(t, schema.Discover(beyond, nil))
}

func TestDiscover_ScalarAndEmptyArraysStayColumns(t *testing.T) {
	sample := mustParse(t, `{"tags": ["a", "b"], "nothing": []}`)

	cols := schema.Discover(sample, nil)
	require.Len(t, cols, 2)
	assert.Equal(t, "tags", cols[0].Key)
	assert.Equal(t, "Tags", cols[0].Name)
	assert.Equal(t, "nothing", cols[1].Key)
}

func TestDiscover_NilSample(t *testing.T) {
	assert.Empty(t, schema.Discover(nil, nil))
}
