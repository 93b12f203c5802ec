package schema

import (
	"strings"

	"crm-sync/internal/crm"
	"crm-sync/internal/record"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxDepth bounds recursion into nested containers. Six levels covers every
// payload the supported entity kinds produce; anything deeper is cut off
// rather than descended into without end.
const maxDepth = 6

// reservedPrefix marks keys internal to the API payload. They never become
// columns.
const reservedPrefix = "_"

var titleCaser = cases.Title(language.English)

// Discover walks one sample record and produces the selectable columns for
// its entity kind. Field names come from the catalog where the key matches;
// otherwise the key itself is turned into a title-case header.
//
// Arrays of objects get special handling, checked in this order:
//  1. every element carries "label" and "id" - the array is a multi-option
//     value and becomes a single column at its own path;
//  2. the first element carries "value" and "primary" - contact-style list,
//     one column for the first entry's value, named "Primary <Field>";
//  3. anything else - recurse into element 0 only.
func Discover(sample *record.Object, fields []crm.Field) []*Column {
	names := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.Name != "" {
			names[f.Key] = f.Name
		}
	}

	var cols []*Column
	discoverObject(sample, "", "", names, 0, &cols)
	return cols
}

func discoverObject(obj *record.Object, prefix, parent string, names map[string]string, depth int, out *[]*Column) {
	if obj == nil || depth >= maxDepth {
		return
	}
	for _, key := range obj.Keys() {
		if strings.HasPrefix(key, reservedPrefix) {
			continue
		}
		v, _ := obj.Get(key)

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch v.Kind() {
		case record.KindObject:
			discoverObject(v.Obj(), path, path, names, depth+1, out)
		case record.KindArray:
			discoverArray(v.Arr(), path, parent, displayName(key, names), names, depth, out)
		default:
			*out = append(*out, &Column{
				Key:    path,
				Name:   displayName(key, names),
				Nested: parent != "",
				Parent: parent,
			})
		}
	}
}

func discoverArray(items []record.Value, path, parent, display string, names map[string]string, depth int, out *[]*Column) {
	if len(items) == 0 || items[0].Kind() != record.KindObject {
		// Scalar or empty arrays stay a single column; the formatter
		// renders them as joined labels or JSON.
		*out = append(*out, &Column{Key: path, Name: display, Nested: parent != "", Parent: parent})
		return
	}

	if allHaveKeys(items, "label", "id") {
		// Multi-option value: one column, codes resolve to labels later.
		*out = append(*out, &Column{Key: path, Name: display, Nested: parent != "", Parent: parent})
		return
	}

	first := items[0].Obj()
	_, hasValue := first.Get("value")
	_, hasPrimary := first.Get("primary")
	if hasValue && hasPrimary {
		name := "Primary " + display
		if label, ok := first.Get("label"); ok && label.Kind() == record.KindString && label.Str() != "" {
			name += " (" + label.Str() + ")"
		}
		*out = append(*out, &Column{Key: path + ".0.value", Name: name, Nested: true, Parent: path})
		return
	}

	discoverObject(first, path+".0", path+".0", names, depth+1, out)
}

func allHaveKeys(items []record.Value, keys ...string) bool {
	for _, item := range items {
		if item.Kind() != record.KindObject {
			return false
		}
		for _, key := range keys {
			if _, ok := item.Obj().Get(key); !ok {
				return false
			}
		}
	}
	return true
}

// displayName resolves a record key to header text: the catalog name when
// the key matches a field, otherwise the key in title case ("next_step" ->
// "Next Step").
func displayName(key string, names map[string]string) string {
	if name, ok := names[key]; ok {
		return name
	}
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}
