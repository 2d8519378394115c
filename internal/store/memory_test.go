package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddlespot/paddlespot/internal/store"
)

type record struct {
	ID   string
	Tags []string
}

func TestMemory_EmptyUntilSaved(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory[record]()

	items, err := m.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	ok, err := m.Initialized(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory[record]()

	require.NoError(t, m.Save(ctx, []record{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, m.Save(ctx, []record{{ID: "c"}}))

	items, err := m.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].ID)

	ok, err := m.Initialized(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemory_SavingEmptyMarksInitialized(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory[record]()

	require.NoError(t, m.Save(ctx, nil))

	ok, err := m.Initialized(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemory_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory[record]()

	input := []record{{ID: "a"}}
	require.NoError(t, m.Save(ctx, input))
	input[0].ID = "mutated"

	items, err := m.GetAll(ctx)
	require.NoError(t, err)
	items[0].ID = "also-mutated"

	again, err := m.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].ID)
}

func TestMemory_DeepCopiesNestedData(t *testing.T) {
	type hazards struct{ Dam bool }
	type spot struct {
		ID      string
		Hazards *hazards
	}

	ctx := context.Background()
	m := store.NewMemory[spot]()

	input := []spot{{ID: "a", Hazards: &hazards{}}}
	require.NoError(t, m.Save(ctx, input))
	input[0].Hazards.Dam = true

	items, err := m.GetAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, items[0].Hazards)
	assert.False(t, items[0].Hazards.Dam)

	items[0].Hazards.Dam = true
	again, err := m.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, again[0].Hazards.Dam)
	assert.NotSame(t, items[0].Hazards, again[0].Hazards)
}

func TestMemory_SliceFieldsNotShared(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory[record]()

	tags := []string{"calm"}
	require.NoError(t, m.Save(ctx, []record{{ID: "a", Tags: tags}}))
	tags[0] = "windy"

	items, err := m.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"calm"}, items[0].Tags)
}
