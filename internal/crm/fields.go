package crm

import (
	"context"
	"fmt"
	"strconv"

	"crm-sync/internal/record"
)

// FieldOption is one selectable choice of an option field. Code is the wire
// "id" of the option; records store codes, humans want labels.
type FieldOption struct {
	Code  string
	Label string
}

// Field describes one field of an entity kind as reported by the catalog
// endpoints. The engine never writes fields; catalogs are read-only input.
type Field struct {
	Key     string
	Name    string
	Options []FieldOption
}

// Field fetches the standard field catalog for kind.
func (c *Client) Fields(ctx context.Context, kind EntityKind) ([]Field, error) {
	return c.fieldCatalog(ctx, kind, "/api/v1/"+string(kind)+"/fields")
}

// CustomFields fetches the custom field catalog for kind. Record values for
// these fields live under the custom_fields container, keyed by Field.Key.
func (c *Client) CustomFields(ctx context.Context, kind EntityKind) ([]Field, error) {
	return c.fieldCatalog(ctx, kind, "/api/v1/"+string(kind)+"/fields/custom")
}

func (c *Client) fieldCatalog(ctx context.Context, kind EntityKind, path string) ([]Field, error) {
	env, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s field catalog: %w", kind, err)
	}

	var fields []Field
	for _, obj := range dataRecords(env, string(kind)+" fields") {
		f := fieldFromRecord(obj)
		if f.Key == "" {
			continue
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func fieldFromRecord(obj *record.Object) Field {
	f := Field{
		Key:  stringAt(obj, "key"),
		Name: stringAt(obj, "name"),
	}
	opts, ok := obj.Get("options")
	if !ok || opts.Kind() != record.KindArray {
		return f
	}
	for _, item := range opts.Arr() {
		if item.Kind() != record.KindObject {
			continue
		}
		o := item.Obj()
		// Option ids arrive as numbers from most servers, but some send
		// strings; Text() normalizes both to the code's literal form.
		code := textAt(o, "id")
		if code == "" {
			continue
		}
		f.Options = append(f.Options, FieldOption{Code: code, Label: stringAt(o, "label")})
	}
	return f
}

// Filter is one server-side saved filter. Sync runs reference filters by id.
type Filter struct {
	ID   int
	Name string
	Kind string
}

// Filters lists the saved filters available on the server.
func (c *Client) Filters(ctx context.Context) ([]Filter, error) {
	env, err := c.get(ctx, "/api/v1/filters", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch filters: %w", err)
	}

	var filters []Filter
	for _, obj := range dataRecords(env, "filters") {
		id, err := strconv.Atoi(textAt(obj, "id"))
		if err != nil {
			continue
		}
		filters = append(filters, Filter{
			ID:   id,
			Name: stringAt(obj, "name"),
			Kind: stringAt(obj, "kind"),
		})
	}
	return filters, nil
}
