package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsoares/grit/internal/repository"
	"github.com/rsoares/grit/internal/testutil"
)

func TestSequence_StartsAtOneAndIncrements(t *testing.T) {
	database := testutil.NewTestDB(t)
	seqs := repository.NewSQLiteSequenceRepo(database)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := seqs.Next(ctx, repository.ScopeExercise)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSequence_ScopesAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	seqs := repository.NewSQLiteSequenceRepo(database)
	ctx := context.Background()

	first, err := seqs.Next(ctx, repository.ScopeExercise)
	require.NoError(t, err)
	second, err := seqs.Next(ctx, repository.ScopeExercise)
	require.NoError(t, err)
	other, err := seqs.Next(ctx, repository.ScopeProgram)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 1, other, "program scope has its own counter")
}

func TestSequence_PerParentScopes(t *testing.T) {
	database := testutil.NewTestDB(t)
	seqs := repository.NewSQLiteSequenceRepo(database)
	ctx := context.Background()

	a, err := seqs.Next(ctx, repository.ScopeVariant+"exercise-a")
	require.NoError(t, err)
	b, err := seqs.Next(ctx, repository.ScopeVariant+"exercise-b")
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
