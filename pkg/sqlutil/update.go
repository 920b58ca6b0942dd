// Package sqlutil builds SQL fragments for partial updates. Repositories
// collect the caller-supplied fields into an Update and compile it into a
// parameterized SET clause, so queries are never assembled from raw values.
package sqlutil

import (
	"strings"

	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
)

// Update accumulates field assignments in insertion order.
type Update struct {
	fields []string
	values []any
}

// NewUpdate returns an empty update builder.
func NewUpdate() *Update {
	return &Update{}
}

// Set records an assignment for the given external field name. Setting the
// same field twice keeps both entries; callers are expected to supply each
// field at most once.
func (u *Update) Set(field string, value any) *Update {
	u.fields = append(u.fields, field)
	u.values = append(u.values, value)
	return u
}

// Len reports how many assignments have been recorded.
func (u *Update) Len() int {
	return len(u.fields)
}

// Compile renders the comma-joined "column = ?" list and the parallel value
// slice, in the order fields were set. External field names are translated
// through columns; names without a mapping pass through unchanged. An empty
// update is rejected: a partial update with zero fields is meaningless.
func (u *Update) Compile(columns map[string]string) (string, []any, error) {
	if len(u.fields) == 0 {
		return "", nil, pkgerrors.New(pkgerrors.CodeValidation, "No data")
	}

	assignments := make([]string, len(u.fields))
	for i, field := range u.fields {
		column := field
		if mapped, ok := columns[field]; ok {
			column = mapped
		}
		assignments[i] = column + " = ?"
	}

	values := make([]any, len(u.values))
	copy(values, u.values)

	return strings.Join(assignments, ", "), values, nil
}
