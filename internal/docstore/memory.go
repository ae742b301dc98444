package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store used in tests and when no backend is
// configured. Insertion order is preserved per collection.
type Memory struct {
	mu    sync.RWMutex
	colls map[string]*memColl
}

type memColl struct {
	order []string
	docs  map[string]Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{colls: make(map[string]*memColl)}
}

func (m *Memory) coll(name string) *memColl {
	c, ok := m.colls[name]
	if !ok {
		c = &memColl{docs: make(map[string]Document)}
		m.colls[name] = c
	}
	return c
}

func cloneDoc(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Create stores a new document and returns its generated id.
func (m *Memory) Create(_ context.Context, collection string, doc Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.coll(collection)
	id := uuid.NewString()
	c.docs[id] = cloneDoc(doc)
	c.order = append(c.order, id)
	return id, nil
}

// Get returns one document by id.
func (m *Memory) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.colls[collection]
	if !ok {
		return nil, ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDoc(doc), nil
}

// List returns documents matching every condition, sorted and capped.
func (m *Memory) List(_ context.Context, collection string, conds []Condition, st *Sort, limit int) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.colls[collection]
	if !ok {
		return nil, nil
	}

	var out []Document
	for _, id := range c.order {
		doc := c.docs[id]
		if matchesAll(doc, conds) {
			copied := cloneDoc(doc)
			copied["id"] = id
			out = append(out, copied)
		}
	}

	if st != nil {
		field, desc := st.Field, st.Desc
		sort.SliceStable(out, func(i, j int) bool {
			cmp := compare(out[i][field], out[j][field])
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Update replaces fields of an existing document.
func (m *Memory) Update(_ context.Context, collection, id string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.colls[collection]
	if !ok {
		return ErrNotFound
	}
	existing, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range doc {
		existing[k] = v
	}
	return nil
}

// Upsert writes a document under a caller-chosen id, creating or replacing.
func (m *Memory) Upsert(_ context.Context, collection, id string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.coll(collection)
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = cloneDoc(doc)
	return nil
}

// Delete removes a document. Deleting a missing id is not an error.
func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.colls[collection]
	if !ok {
		return nil
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func matchesAll(doc Document, conds []Condition) bool {
	for _, cond := range conds {
		if !matches(doc[cond.Field], cond) {
			return false
		}
	}
	return true
}

func matches(val any, cond Condition) bool {
	if cond.Op == OpIn {
		members, ok := cond.Value.([]any)
		if !ok {
			return false
		}
		for _, m := range members {
			if compare(val, m) == 0 {
				return true
			}
		}
		return false
	}
	cmp := compare(val, cond.Value)
	switch cond.Op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	return false
}

// compare orders two document values. Numbers compare numerically, strings
// lexically; mismatched or unknown types compare unequal.
func compare(a, b any) int {
	if na, aok := toFloat(a); aok {
		if nb, bok := toFloat(b); bok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}
	sa, aok := a.(string)
	sb, bok := b.(string)
	if aok && bok {
		return strings.Compare(sa, sb)
	}
	if a == b {
		return 0
	}
	return -1
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
