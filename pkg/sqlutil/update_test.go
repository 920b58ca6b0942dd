package sqlutil

import (
	"testing"

	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileTranslatesColumnNames(t *testing.T) {
	upd := NewUpdate().
		Set("bodyPart", "back").
		Set("target", "lats")

	clause, values, err := upd.Compile(map[string]string{"bodyPart": "body_part"})
	require.NoError(t, err)

	assert.Equal(t, "body_part = ?, target = ?", clause)
	assert.Equal(t, []any{"back", "lats"}, values)
}

func TestCompilePreservesInsertionOrder(t *testing.T) {
	upd := NewUpdate().
		Set("firstName", "Ada").
		Set("lastName", "Lovelace").
		Set("email", "ada@example.com")

	clause, values, err := upd.Compile(map[string]string{
		"firstName": "first_name",
		"lastName":  "last_name",
	})
	require.NoError(t, err)

	assert.Equal(t, "first_name = ?, last_name = ?, email = ?", clause)
	require.Len(t, values, upd.Len())
	assert.Equal(t, "Ada", values[0])
	assert.Equal(t, "Lovelace", values[1])
	assert.Equal(t, "ada@example.com", values[2])
}

func TestCompileRejectsEmptyUpdate(t *testing.T) {
	_, _, err := NewUpdate().Compile(nil)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "No data", typed.Message())
}

func TestCompileAllowsNilValues(t *testing.T) {
	clause, values, err := NewUpdate().Set("notes", nil).Compile(nil)
	require.NoError(t, err)

	assert.Equal(t, "notes = ?", clause)
	require.Len(t, values, 1)
	assert.Nil(t, values[0])
}
