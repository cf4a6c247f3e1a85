// Package search finds semantically tagged nodes inside irregular decoded JSON.
package search

import (
	"encoding/json"
	"reflect"
	"sort"
)

type visitKey struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
}

// SearchByKeyValue walks root depth-first and returns, in pre-order, every
// object carrying key == value as one of its own entries. Arrays are traversed
// but never matched, and each object or array is visited at most once so
// cyclic structures terminate. Object keys are walked in sorted order.
// Values compare strictly except numbers, which match by numeric value
// whether they were decoded as float64, json.Number or given as an int.
func SearchByKeyValue(root any, key string, value any) []map[string]any {
	results := []map[string]any{}
	visited := map[visitKey]bool{}

	var recurse func(item any)
	recurse = func(item any) {
		switch node := item.(type) {
		case map[string]any:
			if node == nil || seen(visited, node) {
				return
			}
			if candidate, ok := node[key]; ok && equal(candidate, value) {
				results = append(results, node)
			}
			for _, k := range sortedKeys(node) {
				recurse(node[k])
			}
		case []any:
			if seen(visited, node) {
				return
			}
			for _, element := range node {
				recurse(element)
			}
		case []map[string]any:
			if seen(visited, node) {
				return
			}
			for _, element := range node {
				recurse(element)
			}
		}
	}

	recurse(root)
	return results
}

// seen records container identity; empty slices have no backing array to track.
func seen(visited map[visitKey]bool, container any) bool {
	v := reflect.ValueOf(container)
	if v.Kind() == reflect.Slice && v.Len() == 0 {
		return false
	}

	k := visitKey{kind: v.Kind(), ptr: v.Pointer()}
	if v.Kind() == reflect.Slice {
		k.len = v.Len()
	}
	if visited[k] {
		return true
	}
	visited[k] = true
	return false
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if x, ok := number(a); ok {
		y, ok := number(b)
		return ok && x == y
	}
	if _, ok := number(b); ok {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func number(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
