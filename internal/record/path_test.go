package record_test

import (
	"testing"

	"crm-sync/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDeal = `{
	"id": 42,
	"title": "Acme renewal",
	"org_id": {"name": "Acme Corp", "value": 77},
	"emails": [
		{"label": "work", "value": "a@acme.com", "primary": true},
		{"label": "home", "value": "b@acme.com", "primary": false}
	],
	"stage_id": 3,
	"gone": null,
	"custom_fields": {"abc123": "2"}
}`

func TestResolve(t *testing.T) {
	obj, err := record.ParseObject([]byte(sampleDeal))
	require.NoError(t, err)

	tests := []struct {
		path  string
		found bool
		text  string
	}{
		{"title", true, "Acme renewal"},
		{"org_id.name", true, "Acme Corp"},
		{"org_id.value", true, "77"},
		{"emails.0.value", true, "a@acme.com"},
		{"emails.1.label", true, "home"},
		{"custom_fields.abc123", true, "2"},
		{"gone", true, ""}, // present but null
		{"missing", false, ""},
		{"org_id.missing", false, ""},
		{"emails.2.value", false, ""},  // index out of range
		{"emails.-1.value", false, ""}, // negative index
		{"emails.x.value", false, ""},  // non-numeric index
		{"title.deeper", false, ""},    // scalar mid-path
		{"gone.deeper", false, ""},     // null mid-path
		{"", false, ""},
		{"..", false, ""},
	}

	for _, tc := range tests {
		v, ok := record.Resolve(obj, tc.path)
		assert.Equal(t, tc.found, ok, "path %q", tc.path)
		assert.Equal(t, tc.text, v.Text(), "path %q", tc.path)
	}
}

func TestResolve_NeverPanics(t *testing.T) {
	obj, err := record.ParseObject([]byte(sampleDeal))
	require.NoError(t, err)

	paths := []string{
		"", ".", "...", "0", "-1", "emails.999999999999999999999",
		"emails.0.value.deeper.still", "custom_fields..abc123",
		"org_id.name.0", "id.0.1.2",
	}
	for _, p := range paths {
		assert.NotPanics(t, func() {
			record.Resolve(obj, p)
		}, "path %q", p)
	}

	// nil receiver is also safe
	v, ok := record.Resolve(nil, "anything")
	assert.False(t, ok)
	assert.Equal(t, record.KindNull, v.Kind())
}
