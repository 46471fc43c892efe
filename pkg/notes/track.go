// Copyright © 2026 Notemon

package notes

import (
	"encoding/json"
	"reflect"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/notemon/notemon/pkg/notes/status"
)

// Nested containers read from a reference are exposed as live views:
// a Map or List addresses its node by path from the reference's
// top-level mapping, so mutations through a view are visible in what
// gets persisted and flag the owning reference dirty. This aliasing
// policy holds at every nesting depth; there is no snapshot mode.
// A detached copy is available through Value() when one is wanted.

type step struct {
	key    string
	idx    int
	inList bool
}

type nodePath []step

func (p nodePath) child(s step) nodePath {
	np := make(nodePath, len(p)+1)
	copy(np, p)
	np[len(p)] = s
	return np
}

// resolve walks from the top-level mapping down to the node this path
// addresses. Paths into lists are positional: structural edits made
// through another view may shift or invalidate them, like iterators.
func (p nodePath) resolve(root map[string]interface{}) (interface{}, error) {
	var node interface{} = root
	for _, s := range p {
		if s.inList {
			seq, ok := node.([]interface{})
			if !ok {
				return nil, status.ErrKeyNotFound.Wrapf("stale view: expected a list at index %d", s.idx)
			}
			if s.idx < 0 || s.idx >= len(seq) {
				return nil, status.ErrKeyNotFound.Wrapf("index %d out of range [0,%d)", s.idx, len(seq))
			}
			node = seq[s.idx]
			continue
		}
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, status.ErrKeyNotFound.Wrapf("stale view: expected a mapping at key %q", s.key)
		}
		child, ok := m[s.key]
		if !ok {
			return nil, status.ErrKeyNotFound.Wrapf("key %q", s.key)
		}
		node = child
	}
	return node, nil
}

// wrapValue hands containers out as live views, scalars as themselves.
func wrapValue(v interface{}, owner *Ref, p nodePath) interface{} {
	switch v.(type) {
	case map[string]interface{}:
		return &Map{owner: owner, path: p}
	case []interface{}:
		return &List{owner: owner, path: p}
	default:
		return v
	}
}

// normalizeValue converts an arbitrary value into its canonical JSON
// form: nil, bool, string, float64, map[string]interface{} or
// []interface{}. Views are materialized, numeric types widen to
// float64 (what decoding yields, so round trips stay structurally
// equal), and anything else must survive a JSON marshal round trip.
// Cyclic containers and unmarshalable types are rejected with
// status.ErrUnsupportedValue before any mutation happens.
func normalizeValue(v interface{}) (interface{}, error) {
	return normalize(v, map[uintptr]bool{})
}

func normalize(v interface{}, seen map[uintptr]bool) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool, string, float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, status.ErrUnsupportedValue.Wrap(err)
		}
		return f, nil
	case *Map:
		return val.Value()
	case *List:
		return val.Value()
	case map[string]interface{}:
		ptr := reflect.ValueOf(val).Pointer()
		if seen[ptr] {
			return nil, status.ErrUnsupportedValue.Wrapf("cyclic mapping")
		}
		seen[ptr] = true
		defer delete(seen, ptr)
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			n, err := normalize(elem, seen)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case []interface{}:
		if len(val) > 0 {
			ptr := reflect.ValueOf(val).Pointer()
			if seen[ptr] {
				return nil, status.ErrUnsupportedValue.Wrapf("cyclic sequence")
			}
			seen[ptr] = true
			defer delete(seen, ptr)
		}
		out := make([]interface{}, len(val))
		for i, elem := range val {
			n, err := normalize(elem, seen)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		// typed maps, slices and structs go through a marshal round trip
		data, err := jsoniter.Marshal(val)
		if err != nil {
			return nil, status.ErrUnsupportedValue.Wrap(err)
		}
		var out interface{}
		if err := jsoniter.Unmarshal(data, &out); err != nil {
			return nil, status.ErrUnsupportedValue.Wrap(err)
		}
		return out, nil
	}
}

// deepCopy detaches a canonical value from the arena it lives in.
func deepCopy(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			out[k] = deepCopy(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = deepCopy(elem)
		}
		return out
	default:
		return val
	}
}

// Map is a live view over a nested mapping within a reference's note.
// Mutations through it mark the owning reference dirty.
type Map struct {
	owner *Ref
	path  nodePath
}

func (m *Map) node() (map[string]interface{}, error) {
	if err := m.owner.guard(); err != nil {
		return nil, err
	}
	raw, err := m.path.resolve(m.owner.kv)
	if err != nil {
		return nil, err
	}
	mp, ok := raw.(map[string]interface{})
	if !ok {
		return nil, status.ErrKeyNotFound.Wrapf("stale view: node is no longer a mapping")
	}
	return mp, nil
}

// Get returns the value stored at key. Nested containers come back as
// live views, scalars as themselves.
func (m *Map) Get(key string) (interface{}, error) {
	mp, err := m.node()
	if err != nil {
		return nil, err
	}
	v, ok := mp[key]
	if !ok {
		return nil, status.ErrKeyNotFound.Wrapf("key %q", key)
	}
	return wrapValue(v, m.owner, m.path.child(step{key: key})), nil
}

// Set stores a value at key and marks the owning reference dirty.
func (m *Map) Set(key string, value interface{}) error {
	mp, err := m.node()
	if err != nil {
		return err
	}
	n, err := normalizeValue(value)
	if err != nil {
		return err
	}
	mp[key] = n
	m.owner.markDirty()
	return nil
}

// Delete removes a key, failing with status.ErrKeyNotFound when absent.
func (m *Map) Delete(key string) error {
	mp, err := m.node()
	if err != nil {
		return err
	}
	if _, ok := mp[key]; !ok {
		return status.ErrKeyNotFound.Wrapf("key %q", key)
	}
	delete(mp, key)
	m.owner.markDirty()
	return nil
}

// Has reports whether key is present.
func (m *Map) Has(key string) (bool, error) {
	mp, err := m.node()
	if err != nil {
		return false, err
	}
	_, ok := mp[key]
	return ok, nil
}

// Len reports the number of keys.
func (m *Map) Len() (int, error) {
	mp, err := m.node()
	if err != nil {
		return 0, err
	}
	return len(mp), nil
}

// Keys lists keys in lexical order.
func (m *Map) Keys() ([]string, error) {
	mp, err := m.node()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(mp))
	for k := range mp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Value returns a detached deep copy of the mapping behind this view.
func (m *Map) Value() (map[string]interface{}, error) {
	mp, err := m.node()
	if err != nil {
		return nil, err
	}
	return deepCopy(mp).(map[string]interface{}), nil
}

// List is a live view over a nested sequence within a reference's note.
type List struct {
	owner *Ref
	path  nodePath
}

func (l *List) node() ([]interface{}, error) {
	if err := l.owner.guard(); err != nil {
		return nil, err
	}
	raw, err := l.path.resolve(l.owner.kv)
	if err != nil {
		return nil, err
	}
	seq, ok := raw.([]interface{})
	if !ok {
		return nil, status.ErrKeyNotFound.Wrapf("stale view: node is no longer a list")
	}
	return seq, nil
}

// setNode writes the (possibly reallocated) slice back into the parent
// container. Append and Remove change the slice header, so aliasing the
// slice value alone would lose the edit.
func (l *List) setNode(seq []interface{}) error {
	if len(l.path) == 0 {
		return status.ErrKeyNotFound.Wrapf("list view has no parent")
	}
	parentPath, last := l.path[:len(l.path)-1], l.path[len(l.path)-1]
	parent, err := parentPath.resolve(l.owner.kv)
	if err != nil {
		return err
	}
	if last.inList {
		pseq, ok := parent.([]interface{})
		if !ok || last.idx < 0 || last.idx >= len(pseq) {
			return status.ErrKeyNotFound.Wrapf("stale view: parent list changed shape")
		}
		pseq[last.idx] = seq
		return nil
	}
	pm, ok := parent.(map[string]interface{})
	if !ok {
		return status.ErrKeyNotFound.Wrapf("stale view: parent is no longer a mapping")
	}
	pm[last.key] = seq
	return nil
}

// Index returns the element at position i.
func (l *List) Index(i int) (interface{}, error) {
	seq, err := l.node()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(seq) {
		return nil, status.ErrKeyNotFound.Wrapf("index %d out of range [0,%d)", i, len(seq))
	}
	return wrapValue(seq[i], l.owner, l.path.child(step{idx: i, inList: true})), nil
}

// SetIndex replaces the element at position i and marks the owner dirty.
func (l *List) SetIndex(i int, value interface{}) error {
	seq, err := l.node()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(seq) {
		return status.ErrKeyNotFound.Wrapf("index %d out of range [0,%d)", i, len(seq))
	}
	n, err := normalizeValue(value)
	if err != nil {
		return err
	}
	seq[i] = n
	l.owner.markDirty()
	return nil
}

// Append adds values at the end and marks the owner dirty.
func (l *List) Append(values ...interface{}) error {
	seq, err := l.node()
	if err != nil {
		return err
	}
	normalized := make([]interface{}, 0, len(values))
	for _, v := range values {
		n, err := normalizeValue(v)
		if err != nil {
			return err
		}
		normalized = append(normalized, n)
	}
	if err := l.setNode(append(seq, normalized...)); err != nil {
		return err
	}
	l.owner.markDirty()
	return nil
}

// Remove deletes the element at position i and marks the owner dirty.
// Views addressing later positions shift by one.
func (l *List) Remove(i int) error {
	seq, err := l.node()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(seq) {
		return status.ErrKeyNotFound.Wrapf("index %d out of range [0,%d)", i, len(seq))
	}
	if err := l.setNode(append(seq[:i:i], seq[i+1:]...)); err != nil {
		return err
	}
	l.owner.markDirty()
	return nil
}

// Len reports the number of elements.
func (l *List) Len() (int, error) {
	seq, err := l.node()
	if err != nil {
		return 0, err
	}
	return len(seq), nil
}

// Value returns a detached deep copy of the sequence behind this view.
func (l *List) Value() ([]interface{}, error) {
	seq, err := l.node()
	if err != nil {
		return nil, err
	}
	return deepCopy(seq).([]interface{}), nil
}
