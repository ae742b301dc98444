// Package docstore is the record-persistence collaborator: schemaless
// documents addressed by collection and id, with filtered listing. The
// portal treats it as an external managed backend; the in-memory roster
// stays canonical and records are only mirrored here.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document id does not exist.
var ErrNotFound = errors.New("document not found")

// Operator is a comparison used in a list condition.
type Operator string

const (
	OpEq Operator = "=="
	OpNe Operator = "!="
	OpLt Operator = "<"
	OpLe Operator = "<="
	OpGt Operator = ">"
	OpGe Operator = ">="
	OpIn Operator = "in"
)

// Condition filters documents by one field. Conditions on a query are
// conjoined.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Sort orders results by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// Document is a schemaless record body.
type Document map[string]any

// Store is the document-store contract: CRUD by collection and id, plus
// listing with a conjunction of conditions, one sort key and an optional
// result cap (limit <= 0 means no cap).
type Store interface {
	Create(ctx context.Context, collection string, doc Document) (string, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string, conds []Condition, sort *Sort, limit int) ([]Document, error)
	Update(ctx context.Context, collection, id string, doc Document) error
	Upsert(ctx context.Context, collection, id string, doc Document) error
	Delete(ctx context.Context, collection, id string) error
}
