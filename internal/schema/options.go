package schema

import "crm-sync/internal/crm"

// BuildOptionMap flattens the standard and custom field catalogs into a
// per-field code->label lookup. Fields without options contribute nothing.
// When the same field key appears twice, the later catalog wins, so custom
// definitions override standard ones.
func BuildOptionMap(standard, custom []crm.Field) OptionMap {
	m := make(OptionMap)
	for _, catalog := range [][]crm.Field{standard, custom} {
		for _, f := range catalog {
			if len(f.Options) == 0 {
				continue
			}
			labels := make(map[string]string, len(f.Options))
			for _, opt := range f.Options {
				labels[opt.Code] = opt.Label
			}
			m[f.Key] = labels
		}
	}
	return m
}
