package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/poa/internal/db"
)

func TestFailOnNthExecUoW_CountsAcrossTransactions(t *testing.T) {
	database := NewTestDB(t)
	boom := errors.New("boom")
	uow := &FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom}
	ctx := context.Background()

	insert := func(id string) func(context.Context, db.DBTX) error {
		return func(ctx context.Context, tx db.DBTX) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO project_types (id, code, name) VALUES (?, ?, 'x')`, id, id)
			return err
		}
	}

	require.NoError(t, uow.WithinTx(ctx, insert("a")))
	require.NoError(t, uow.WithinTx(ctx, insert("b")))
	assert.ErrorIs(t, uow.WithinTx(ctx, insert("c")), boom)
	require.NoError(t, uow.WithinTx(ctx, insert("d")))

	assert.EqualValues(t, 4, uow.Execs())
	assert.Equal(t, 3, CountRows(t, database, "project_types"))
}

func TestSeed(t *testing.T) {
	database := NewTestDB(t)
	Seed(t, database)

	assert.Equal(t, 6, CountRows(t, database, "project_types"))
	assert.Equal(t, 2, CountRows(t, database, "plans"))
	assert.Equal(t, 3, CountRows(t, database, "task_details"))
}
