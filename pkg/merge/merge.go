// Package merge combines record slices that describe the same entities.
package merge

import "reflect"

type Record = map[string]any

// MergeByKey performs a full outer join of a and b on key. Records from b
// overwrite conflicting fields of the a record sharing their key; b records
// with a new key are appended. The result lists a's keys in a's order followed
// by b-only keys in b's order. Records without the key share the nil key.
// Neither input nor any of its records is mutated.
func MergeByKey(a, b []Record, key string) []Record {
	index := newOrderedIndex()

	for _, record := range a {
		index.put(record[key], clone(record))
	}

	for _, record := range b {
		k := record[key]
		existing, ok := index.get(k)
		if !ok {
			index.put(k, clone(record))
			continue
		}
		for field, value := range record {
			existing[field] = value
		}
	}

	return index.values()
}

func clone(record Record) Record {
	copied := make(Record, len(record))
	for field, value := range record {
		copied[field] = value
	}
	return copied
}

// orderedIndex is an insertion-ordered map keyed by arbitrary JSON values.
// Uncomparable keys (objects, arrays) never collide with one another.
type orderedIndex struct {
	positions map[any]int
	records   []Record
}

func newOrderedIndex() *orderedIndex {
	return &orderedIndex{positions: map[any]int{}}
}

func (o *orderedIndex) get(k any) (Record, bool) {
	if !isComparable(k) {
		return nil, false
	}
	pos, ok := o.positions[k]
	if !ok {
		return nil, false
	}
	return o.records[pos], true
}

// put replaces the record at an existing key in place, keeping its position.
func (o *orderedIndex) put(k any, record Record) {
	if !isComparable(k) {
		o.records = append(o.records, record)
		return
	}
	if pos, ok := o.positions[k]; ok {
		o.records[pos] = record
		return
	}
	o.positions[k] = len(o.records)
	o.records = append(o.records, record)
}

func (o *orderedIndex) values() []Record {
	out := make([]Record, len(o.records))
	copy(out, o.records)
	return out
}

func isComparable(k any) bool {
	if k == nil {
		return true
	}
	return reflect.TypeOf(k).Comparable()
}
