package gateway

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// InMemoryStore is a simple in-memory document store useful for tests and
// credential-less local runs. It mirrors the remote store's semantics:
// idempotent array transforms, the 10-id "in" query cap, equality/order/limit
// queries.
type InMemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]Fields // collection -> id -> fields
	nextID int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: make(map[string]map[string]Fields), nextID: 1}
}

func (s *InMemoryStore) collection(name string) map[string]Fields {
	col, ok := s.data[name]
	if !ok {
		col = make(map[string]Fields)
		s.data[name] = col
	}
	return col
}

func (s *InMemoryStore) Create(ctx context.Context, collection string, fields Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("doc%04d", s.nextID)
	s.nextID++
	s.collection(collection)[id] = copyFields(fields)
	return id, nil
}

func (s *InMemoryStore) Set(ctx context.Context, collection, id string, fields Fields, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(collection)
	if merge {
		existing, ok := col[id]
		if !ok {
			existing = make(Fields)
			col[id] = existing
		}
		for k, v := range copyFields(fields) {
			existing[k] = v
		}
		return nil
	}
	col[id] = copyFields(fields)
	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, collection, id string) (Fields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyFields(doc), nil
}

func (s *InMemoryStore) Update(ctx context.Context, collection, id string, updates Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.data[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range updates {
		switch t := v.(type) {
		case arrayUnion:
			doc[k] = unionInto(asSlice(doc[k]), t.elems)
		case arrayRemove:
			doc[k] = removeFrom(asSlice(doc[k]), t.elems)
		default:
			doc[k] = copyValue(v)
		}
	}
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.data[collection]
	if !ok {
		return nil
	}
	delete(col, id)
	return nil
}

func (s *InMemoryStore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	if len(q.IDsIn) > MaxInIDs {
		return nil, ErrTooManyIDs
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0)
	for id, fields := range s.data[collection] {
		if len(q.IDsIn) > 0 && !containsString(q.IDsIn, id) {
			continue
		}
		if !matchesEq(fields, q.Eq) {
			continue
		}
		out = append(out, Document{ID: id, Fields: copyFields(fields)})
	}

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			less := compareValues(out[i].Fields[q.OrderBy], out[j].Fields[q.OrderBy]) < 0
			if q.Desc {
				return !less
			}
			return less
		})
	} else {
		// deterministic order for tests
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func matchesEq(fields Fields, eq Fields) bool {
	for k, want := range eq {
		if compareValues(fields[k], want) != 0 {
			return false
		}
	}
	return true
}

// compareValues orders mixed scalar values: numbers numerically, everything
// else by string form.
func compareValues(a, b interface{}) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil && t != ""
	default:
		return 0, false
	}
}

func asSlice(v interface{}) []interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return t
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return []interface{}{t}
	}
}

func unionInto(existing []interface{}, elems []interface{}) []interface{} {
	out := append([]interface{}{}, existing...)
	for _, e := range elems {
		present := false
		for _, have := range out {
			if have == e {
				present = true
				break
			}
		}
		if !present {
			out = append(out, e)
		}
	}
	return out
}

func removeFrom(existing []interface{}, elems []interface{}) []interface{} {
	out := make([]interface{}, 0, len(existing))
	for _, have := range existing {
		drop := false
		for _, e := range elems {
			if have == e {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, have)
		}
	}
	return out
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func copyFields(fields Fields) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case Fields:
		return copyFields(t)
	default:
		return v
	}
}
