package session

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Data is the content of a session: an insertion-ordered mapping from keys to values.
//
// Keys in canonical decimal form ("0", "42", "-1") are integer keys. They take part in
// list operations: Push appends under the next free index, Shift and Unshift renumber
// integer keys from zero. String keys keep their name and position.
//
// The zero value is an empty mapping ready to use. Data is not safe for concurrent use.
type Data struct {
	keys      []string
	values    map[string]any
	nextIndex int
}

// NewData creates a mapping holding the given pairs in order.
func NewData(pairs ...Pair) *Data {
	d := &Data{}
	for _, p := range pairs {
		d.Set(p.Key, p.Value)
	}
	return d
}

// Pair is a single key/value entry of Data.
type Pair struct {
	Key   string
	Value any
}

// Len returns the number of entries.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Get returns the value stored under key.
func (d *Data) Get(key string) (any, bool) {
	if d == nil || d.values == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Data) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// At returns the value stored under integer key index.
func (d *Data) At(index int) (any, bool) {
	return d.Get(strconv.Itoa(index))
}

// Set inserts or overwrites the value under key. Overwrites keep the entry position.
func (d *Data) Set(key string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
		if idx, isInt := intKey(key); isInt && idx >= d.nextIndex {
			d.nextIndex = idx + 1
		}
	}
	d.values[key] = value
}

// Delete removes key if present.
func (d *Data) Delete(key string) {
	if d == nil || d.values == nil {
		return
	}
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
}

// Clear removes all entries and resets the next free index.
func (d *Data) Clear() {
	d.keys = nil
	d.values = nil
	d.nextIndex = 0
}

// Push appends value under the next free integer index and returns the new length.
func (d *Data) Push(value any) int {
	d.Set(strconv.Itoa(d.nextIndex), value)
	return len(d.keys)
}

// Pop removes and returns the last entry.
func (d *Data) Pop() (any, bool) {
	if d.Len() == 0 {
		return nil, false
	}
	key := d.keys[len(d.keys)-1]
	value := d.values[key]
	d.keys = d.keys[:len(d.keys)-1]
	delete(d.values, key)

	// Rewind so that a following Push reuses the popped index
	if idx, isInt := intKey(key); isInt && idx == d.nextIndex-1 {
		d.nextIndex--
	}
	return value, true
}

// Unshift prepends value under index 0, renumbers integer keys and returns the new length.
func (d *Data) Unshift(value any) int {
	old := d.entries()
	d.Clear()
	d.Push(value)
	d.appendRenumbered(old)
	return len(d.keys)
}

// Shift removes and returns the first entry, renumbering the remaining integer keys.
func (d *Data) Shift() (any, bool) {
	if d.Len() == 0 {
		return nil, false
	}
	old := d.entries()
	d.Clear()
	d.appendRenumbered(old[1:])
	return old[0].Value, true
}

// Keys returns the keys in order.
func (d *Data) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

// All iterates over entries in order.
func (d *Data) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k, d.values[k]) {
				return
			}
		}
	}
}

// Map returns the entries as a plain map. Order is lost.
func (d *Data) Map() map[string]any {
	m := make(map[string]any, d.Len())
	if d != nil {
		maps.Copy(m, d.values)
	}
	return m
}

// Clone returns a copy that shares no mutable state with d. Nested map[string]any,
// []any and *Data values are copied recursively; other values are copied as is.
func (d *Data) Clone() *Data {
	if d == nil {
		return &Data{}
	}
	c := &Data{
		keys:      slices.Clone(d.keys),
		nextIndex: d.nextIndex,
	}
	if d.values != nil {
		c.values = make(map[string]any, len(d.values))
		for k, v := range d.values {
			c.values[k] = cloneValue(v)
		}
	}
	return c
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if val == nil {
			return val
		}
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case []any:
		if val == nil {
			return val
		}
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = cloneValue(item)
		}
		return s
	case *Data:
		if val == nil {
			return val
		}
		return val.Clone()
	}
	return v
}

// MarshalJSON encodes the mapping as a JSON object with keys in order.
func (d *Data) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, fmt.Errorf("session: encode %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the key order of the document.
// Integral numbers that fit an int decode as int, other numbers as float64, so data
// read back from an encoding store matches what was written with Set or Push.
func (d *Data) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: expected JSON object", ErrMalformedInitData)
	}

	d.Clear()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: expected object key", ErrMalformedInitData)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		d.Set(key, decodeNumbers(value))
	}
	_, err = dec.Token()
	return err
}

// DataFrom converts a mapping-like value into Data.
// Accepted inputs: nil, *Data, Data, []Pair, []any and map[string]any. Lists get
// integer keys from zero; maps are ordered by integer keys first, then by name.
func DataFrom(v any) (*Data, error) {
	switch src := v.(type) {
	case nil:
		return &Data{}, nil
	case *Data:
		return src.Clone(), nil
	case Data:
		return src.Clone(), nil
	case []Pair:
		return NewData(src...), nil
	case []any:
		d := &Data{}
		for _, item := range src {
			d.Push(item)
		}
		return d, nil
	case map[string]any:
		d := &Data{}
		for _, k := range sortedKeys(src) {
			d.Set(k, src[k])
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrMalformedInitData, v)
	}
}

// decodeNumbers replaces json.Number values, nested ones included.
func decodeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(string(val), 10, strconv.IntSize); err == nil {
			return int(n)
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, item := range val {
			val[k] = decodeNumbers(item)
		}
	case []any:
		for i, item := range val {
			val[i] = decodeNumbers(item)
		}
	}
	return v
}

func (d *Data) entries() []Pair {
	out := make([]Pair, 0, d.Len())
	for k, v := range d.All() {
		out = append(out, Pair{Key: k, Value: v})
	}
	return out
}

func (d *Data) appendRenumbered(pairs []Pair) {
	for _, p := range pairs {
		if _, isInt := intKey(p.Key); isInt {
			d.Push(p.Value)
			continue
		}
		d.Set(p.Key, p.Value)
	}
}

// intKey reports whether key is the canonical decimal form of an int.
func intKey(key string) (int, bool) {
	if key == "" || len(key) > 20 {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, strconv.Itoa(n) == key
}

func sortedKeys(m map[string]any) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b string) int {
		ai, aInt := intKey(a)
		bi, bInt := intKey(b)
		switch {
		case aInt && bInt:
			return cmp.Compare(ai, bi)
		case aInt:
			return -1
		case bInt:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}
