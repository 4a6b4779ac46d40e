package kvstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout formato estricto con el que se guardan las fechas.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var isoTimestamp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3})?Z$`)

// IsTimestamp indica si s cumple el formato ISO-8601 UTC que revive como fecha.
func IsTimestamp(s string) bool {
	return isoTimestamp.MatchString(s)
}

// Encode serializa v a JSON. Los campos time.Time (y *time.Time) se escriben
// en UTC con milisegundos; las cadenas se guardan tal cual.
func Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("kvstore: serializar: %w", err)
	}
	tree, err := decodeTree(raw)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(normalizeTimes(reflect.ValueOf(v), tree))
	if err != nil {
		return nil, fmt.Errorf("kvstore: serializar: %w", err)
	}
	return out, nil
}

// Decode deserializa data en v (tipado).
func Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("kvstore: deserializar: %w", err)
	}
	return nil
}

// Revive deserializa data sin tipo: las cadenas con formato de fecha ISO-8601 UTC
// pasan a time.Time, los números quedan como json.Number y el resto igual.
func Revive(data []byte) (any, error) {
	tree, err := decodeTree(data)
	if err != nil {
		return nil, err
	}
	return walk(tree, reviveTimestamp), nil
}

func decodeTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("kvstore: deserializar: %w", err)
	}
	return tree, nil
}

// walk aplica fn a cada cadena del árbol (usado al revivir).
func walk(node any, fn func(string) any) any {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			n[k] = walk(v, fn)
		}
		return n
	case []any:
		for i, v := range n {
			n[i] = walk(v, fn)
		}
		return n
	case string:
		return fn(n)
	default:
		return node
	}
}

var (
	timeType      = reflect.TypeOf(time.Time{})
	marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
)

// normalizeTimes recorre el valor Go y su árbol JSON a la vez y reescribe
// solo los nodos que provienen de un time.Time.
func normalizeTimes(rv reflect.Value, node any) any {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return node
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return node
	}
	if rv.Type() == timeType {
		if !rv.CanInterface() {
			return node
		}
		return rv.Interface().(time.Time).UTC().Format(TimestampLayout)
	}
	if rv.Type().Implements(marshalerType) || reflect.PointerTo(rv.Type()).Implements(marshalerType) {
		return node
	}

	switch rv.Kind() {
	case reflect.Struct:
		m, ok := node.(map[string]any)
		if !ok {
			return node
		}
		for _, f := range jsonFields(rv.Type()) {
			child, present := m[f.name]
			if !present {
				continue
			}
			fv, err := rv.FieldByIndexErr(f.index)
			if err != nil {
				continue
			}
			m[f.name] = normalizeTimes(fv, child)
		}
		return m
	case reflect.Slice, reflect.Array:
		arr, ok := node.([]any)
		if !ok {
			return node
		}
		for i := 0; i < len(arr) && i < rv.Len(); i++ {
			arr[i] = normalizeTimes(rv.Index(i), arr[i])
		}
		return arr
	case reflect.Map:
		m, ok := node.(map[string]any)
		if !ok {
			return node
		}
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			if child, present := m[key]; present {
				m[key] = normalizeTimes(iter.Value(), child)
			}
		}
		return m
	default:
		return node
	}
}

type jsonField struct {
	name  string
	index []int
}

// jsonFields campos serializados de t con su nombre JSON; los embebidos sin
// nombre se aplanan como hace encoding/json.
func jsonFields(t reflect.Type) []jsonField {
	var out []jsonField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if f.Anonymous && name == "" && ft.Kind() == reflect.Struct {
			for _, inner := range jsonFields(ft) {
				inner.index = append([]int{i}, inner.index...)
				out = append(out, inner)
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out = append(out, jsonField{name: name, index: []int{i}})
	}
	return out
}

func reviveTimestamp(s string) any {
	if !IsTimestamp(s) {
		return s
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t
}
