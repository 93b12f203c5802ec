package engine

import (
	"regexp"
	"strings"

	"crm-sync/internal/crm"
	"crm-sync/internal/record"
	"crm-sync/internal/schema"
)

// optionCodeRe matches a single option code or a comma-separated code list
// ("42", "1,2,7"). Plain numeric text matches too; such values come back
// unchanged because no option map carries an entry for them.
var optionCodeRe = regexp.MustCompile(`^[0-9]+(,[0-9]+)*$`)

// FormatValue renders one resolved value as cell text. The rules are checked
// in a fixed order and the first match wins:
//
//	null/absent            -> ""
//	code-looking string    -> option labels, joined ", "
//	array of label objects -> labels joined ", "
//	object with label      -> the label
//	object with name       -> the name
//	object currency+value  -> "<value> <currency>"
//	other object/array     -> compact JSON
//	bool                   -> "Yes" / "No"
//	everything else        -> plain text
func FormatValue(v record.Value, path string, options schema.OptionMap) string {
	switch v.Kind() {
	case record.KindNull:
		return ""

	case record.KindString:
		s := v.Str()
		if optionCodeRe.MatchString(s) {
			return expandOptionCodes(s, path, options)
		}
		return s

	case record.KindArray:
		items := v.Arr()
		if len(items) > 0 && hasKey(items[0], "label") {
			labels := make([]string, len(items))
			for i, item := range items {
				labels[i] = labelText(item)
			}
			return strings.Join(labels, ", ")
		}
		return v.JSON()

	case record.KindObject:
		obj := v.Obj()
		if label, ok := obj.Get("label"); ok {
			return label.Text()
		}
		if name, ok := obj.Get("name"); ok {
			return name.Text()
		}
		currency, hasCurrency := obj.Get("currency")
		amount, hasValue := obj.Get("value")
		if hasCurrency && hasValue {
			return amount.Text() + " " + currency.Text()
		}
		return v.JSON()

	case record.KindBool:
		if v.Bool() {
			return "Yes"
		}
		return "No"

	default: // number
		return v.NumberLiteral()
	}
}

// expandOptionCodes swaps each code for its label where the field's option
// map knows it; unknown codes stay raw. The result is always re-joined with
// ", " even when nothing was substituted.
func expandOptionCodes(s, path string, options schema.OptionMap) string {
	labels := options[fieldKeyForPath(path)]
	codes := strings.Split(s, ",")
	for i, code := range codes {
		if label, ok := labels[code]; ok {
			codes[i] = label
		}
	}
	return strings.Join(codes, ", ")
}

// fieldKeyForPath derives the option-lookup key from a column path. Custom
// field values live under the custom_fields container, so their key is the
// segment after it; for everything else the leading segment names the field.
func fieldKeyForPath(path string) string {
	segments := strings.Split(path, ".")
	if segments[0] == crm.CustomFieldsKey && len(segments) > 1 {
		return segments[1]
	}
	return segments[0]
}

func hasKey(v record.Value, key string) bool {
	if v.Kind() != record.KindObject {
		return false
	}
	_, ok := v.Obj().Get(key)
	return ok
}

// labelText pulls the element's label as text; elements without one
// contribute an empty string.
func labelText(v record.Value) string {
	if v.Kind() != record.KindObject {
		return ""
	}
	label, ok := v.Obj().Get("label")
	if !ok {
		return ""
	}
	return label.Text()
}
