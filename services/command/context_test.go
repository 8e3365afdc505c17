package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryContextStoreLazyCreation(t *testing.T) {
	store := NewMemoryContextStore()
	ctx := context.Background()

	selected, err := store.SelectedClient(ctx, "caller-1")
	require.NoError(t, err)
	assert.Empty(t, selected)

	require.NoError(t, store.SelectClient(ctx, "caller-1", "c1"))
	selected, err = store.SelectedClient(ctx, "caller-1")
	require.NoError(t, err)
	assert.Equal(t, "c1", selected)

	// Contexts are caller-keyed; another caller sees nothing.
	selected, err = store.SelectedClient(ctx, "caller-2")
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestMemoryContextStoreOverwrite(t *testing.T) {
	store := NewMemoryContextStore()
	ctx := context.Background()
	require.NoError(t, store.SelectClient(ctx, "caller-1", "c1"))
	require.NoError(t, store.SelectClient(ctx, "caller-1", "c2"))
	selected, err := store.SelectedClient(ctx, "caller-1")
	require.NoError(t, err)
	assert.Equal(t, "c2", selected)
}
