// Package fingerprint turns canonical snapshots into stable content hashes.
// The hash is an integrity fingerprint used to detect edits since the last
// paid download; it is not a security boundary.
package fingerprint

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// StableStringify serializes v deterministically: object keys (map keys and
// struct json tags) are emitted in lexicographic order at every level, array
// element order is preserved, and primitives are JSON-encoded. The output is
// independent of map iteration order and struct construction order.
//
// Cycles cannot occur in the snapshot data model, but a reference that loops
// back resolves to null instead of recursing forever.
func StableStringify(v any) string {
	var sb strings.Builder
	seen := map[uintptr]struct{}{}
	writeStable(&sb, reflect.ValueOf(v), seen)
	return sb.String()
}

func writeStable(sb *strings.Builder, v reflect.Value, seen map[uintptr]struct{}) {
	if !v.IsValid() {
		sb.WriteString("null")
		return
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			sb.WriteString("null")
			return
		}
		if v.Kind() == reflect.Pointer {
			ptr := v.Pointer()
			if _, ok := seen[ptr]; ok {
				sb.WriteString("null")
				return
			}
			seen[ptr] = struct{}{}
			defer delete(seen, ptr)
		}
		writeStable(sb, v.Elem(), seen)

	case reflect.Map:
		if v.IsNil() {
			sb.WriteString("null")
			return
		}
		ptr := v.Pointer()
		if _, ok := seen[ptr]; ok {
			sb.WriteString("null")
			return
		}
		seen[ptr] = struct{}{}
		defer delete(seen, ptr)

		keys := make([]string, 0, v.Len())
		byKey := make(map[string]reflect.Value, v.Len())
		for _, k := range v.MapKeys() {
			ks := fmt.Sprintf("%v", k.Interface())
			keys = append(keys, ks)
			byKey[ks] = v.MapIndex(k)
		}
		sort.Strings(keys)

		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, k)
			sb.WriteByte(':')
			writeStable(sb, byKey[k], seen)
		}
		sb.WriteByte('}')

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			sb.WriteString("null")
			return
		}
		sb.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeStable(sb, v.Index(i), seen)
		}
		sb.WriteByte(']')

	case reflect.Struct:
		fields := structFields(v.Type())
		sb.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, f.name)
			sb.WriteByte(':')
			writeStable(sb, v.Field(f.index), seen)
		}
		sb.WriteByte('}')

	default:
		// Primitives round-trip through encoding/json for escaping and
		// number formatting.
		b, err := json.Marshal(v.Interface())
		if err != nil {
			sb.WriteString("null")
			return
		}
		sb.Write(b)
	}
}

type fieldInfo struct {
	name  string
	index int
}

// structFields lists exported fields by their json name, sorted
// lexicographically. Fields tagged `json:"-"` are skipped; omitempty and
// other options are ignored since canonical types carry no optional fields.
func structFields(t reflect.Type) []fieldInfo {
	fields := make([]fieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName := strings.SplitN(tag, ",", 2)[0]
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fields = append(fields, fieldInfo{name: name, index: i})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].name < fields[j].name })
	return fields
}

func writeJSONString(sb *strings.Builder, s string) {
	b, _ := json.Marshal(s)
	sb.Write(b)
}
