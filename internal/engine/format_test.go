package engine_test

import (
	"fmt"
	"testing"

	"crm-sync/internal/engine"
	"crm-sync/internal/record"
	"crm-sync/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// val parses a single JSON value by wrapping it in an object.
func val(t *testing.T, raw string) record.Value {
	t.Helper()
	obj, err := record.ParseObject([]byte(fmt.Sprintf(`{"v":%s}`, raw)))
	require.NoError(t, err)
	v, _ := obj.Get("v")
	return v
}

func TestFormatValue(t *testing.T) {
	options := schema.OptionMap{
		"stage_id": {"1": "Red", "2": "Blue"},
		"abc123":   {"3": "Qualified"},
	}

	tests := []struct {
		name string
		raw  string
		path string
		want string
	}{
		{"null is empty", `null`, "anything", ""},
		{"codes resolve to labels", `"1,2"`, "stage_id", "Red, Blue"},
		{"unknown codes stay raw", `"1,9"`, "stage_id", "Red, 9"},
		{"single code", `"1"`, "stage_id", "Red"},
		{"custom field key from second segment", `"3"`, "custom_fields.abc123", "Qualified"},
		{"unmapped numeric text rejoins with spaces", `"1,2"`, "no_options_here", "1, 2"},
		{"plain string passes through", `"hello world"`, "title", "hello world"},
		{"almost-a-code passes through", `"12a"`, "stage_id", "12a"},
		{"label array joins labels", `[{"label":"Red"},{"label":"Blue"}]`, "labels", "Red, Blue"},
		{"label array keeps gaps", `[{"label":"Red"},{"id":9},{"label":"Blue"}]`, "labels", "Red, , Blue"},
		{"object label wins", `{"label":"Hot","name":"ignored"}`, "x", "Hot"},
		{"object name when no label", `{"name":"Acme Corp","value":7}`, "org_id", "Acme Corp"},
		{"currency pair", `{"currency":"USD","value":5000}`, "value", "5000 USD"},
		{"plain object falls back to JSON", `{"b":2,"a":1}`, "x", `{"b":2,"a":1}`},
		{"plain array falls back to JSON", `[1,"two",null]`, "x", `[1,"two",null]`},
		{"bool yes", `true`, "done", "Yes"},
		{"bool no", `false`, "done", "No"},
		{"number keeps its literal", `2.50`, "weighted_value", "2.50"},
		{"big integer intact", `9007199254740993`, "id", "9007199254740993"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, engine.FormatValue(val(t, tc.raw), tc.path, options))
		})
	}
}

func TestFormatValue_JSONFallbackIsDeterministic(t *testing.T) {
	v := val(t, `{"z":1,"a":{"y":true,"b":[1,2]}}`)
	first := engine.FormatValue(v, "x", nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.FormatValue(v, "x", nil))
	}
}

func TestFormatValue_NumericStringWithoutMapStillCode(t *testing.T) {
	// A quantity like "2" is indistinguishable from an option code. With no
	// option entry it must come back unchanged.
	assert.Equal(t, "2", engine.FormatValue(val(t, `"2"`), "quantity", schema.OptionMap{}))
}
