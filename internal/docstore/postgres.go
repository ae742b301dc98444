package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Postgres stores documents as JSONB rows keyed by (collection, id).
//
// Expected schema:
//
//	CREATE TABLE documents (
//	    collection TEXT NOT NULL,
//	    id         TEXT NOT NULL,
//	    data       JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    PRIMARY KEY (collection, id)
//	);
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open connection.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create inserts a new document with a generated id.
func (p *Postgres) Create(ctx context.Context, collection string, doc Document) (string, error) {
	id := uuid.NewString()
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
	`, collection, id, data)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get returns one document by id.
func (p *Postgres) Get(ctx context.Context, collection, id string) (Document, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT data FROM documents WHERE collection = $1 AND id = $2
	`, collection, id)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns documents matching every condition, with one sort key and an
// optional cap. Clauses are built incrementally the same way the listing
// queries do elsewhere in the codebase.
func (p *Postgres) List(ctx context.Context, collection string, conds []Condition, st *Sort, limit int) ([]Document, error) {
	query := `SELECT id, data FROM documents WHERE collection = $1`
	args := []any{collection}

	for _, cond := range conds {
		clause, condArgs, err := buildClause(cond, len(args)+1)
		if err != nil {
			return nil, err
		}
		query += " AND " + clause
		args = append(args, condArgs...)
	}

	if st != nil {
		dir := "ASC"
		if st.Desc {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY data->>'%s' %s", sanitizeField(st.Field), dir)
	} else {
		query += " ORDER BY created_at"
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		doc["id"] = id
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Update merges fields into an existing document.
func (p *Postgres) Update(ctx context.Context, collection, id string, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := p.db.ExecContext(ctx, `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`, collection, id, data)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert writes a document under a caller-chosen id, creating or replacing.
func (p *Postgres) Upsert(ctx context.Context, collection, id string, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()
	`, collection, id, data)
	return err
}

// Delete removes a document. Deleting a missing id is not an error.
func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	_, err := p.db.ExecContext(ctx, `
		DELETE FROM documents WHERE collection = $1 AND id = $2
	`, collection, id)
	return err
}

// buildClause renders one condition against the JSONB column. Numeric
// comparisons cast the extracted text; everything else compares as text.
func buildClause(cond Condition, argPos int) (string, []any, error) {
	field := sanitizeField(cond.Field)

	if cond.Op == OpIn {
		members, ok := cond.Value.([]any)
		if !ok || len(members) == 0 {
			return "", nil, fmt.Errorf("in condition on %q needs a non-empty list", cond.Field)
		}
		holders := make([]string, len(members))
		args := make([]any, len(members))
		for i, m := range members {
			holders[i] = fmt.Sprintf("$%d", argPos+i)
			args[i] = fmt.Sprintf("%v", m)
		}
		clause := fmt.Sprintf("data->>'%s' IN (%s)", field, strings.Join(holders, ", "))
		return clause, args, nil
	}

	op, ok := sqlOps[cond.Op]
	if !ok {
		return "", nil, fmt.Errorf("unsupported operator %q", cond.Op)
	}
	if _, numeric := toFloat(cond.Value); numeric {
		clause := fmt.Sprintf("(data->>'%s')::numeric %s $%d", field, op, argPos)
		return clause, []any{cond.Value}, nil
	}
	clause := fmt.Sprintf("data->>'%s' %s $%d", field, op, argPos)
	return clause, []any{fmt.Sprintf("%v", cond.Value)}, nil
}

var sqlOps = map[Operator]string{
	OpEq: "=",
	OpNe: "<>",
	OpLt: "<",
	OpLe: "<=",
	OpGt: ">",
	OpGe: ">=",
}

// sanitizeField strips characters that could escape the JSONB path quoting.
func sanitizeField(field string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return -1
	}, field)
}
