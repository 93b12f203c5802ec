package record

import (
	"strconv"
	"strings"
)

// Resolve walks a dotted path ("org_id.name", "emails.0.value") through obj.
// Object segments are keys, array segments are zero-based indices. Any miss
// along the way (unknown key, index out of range, scalar or null where a
// container is needed) reports absent instead of failing; resolution never
// panics regardless of input.
func Resolve(obj *Object, path string) (Value, bool) {
	if obj == nil {
		return NullValue(), false
	}
	cur := ObjectValue(obj)
	for _, seg := range strings.Split(path, ".") {
		switch cur.Kind() {
		case KindObject:
			v, ok := cur.Obj().Get(seg)
			if !ok {
				return NullValue(), false
			}
			cur = v
		case KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(cur.Arr()) {
				return NullValue(), false
			}
			cur = cur.Arr()[idx]
		default:
			return NullValue(), false
		}
	}
	return cur, true
}
