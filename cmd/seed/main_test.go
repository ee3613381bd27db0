package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/internal/infrastructure/memory"
)

func TestClearUsers(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()
	require.NoError(t, clearUsers(ctx, users), "empty store is a no-op")

	for _, email := range []string{"a@x.com", "b@x.com"} {
		require.NoError(t, users.Create(ctx, &entity.User{Name: "x", Email: email}))
	}
	require.NoError(t, clearUsers(ctx, users))

	left, err := users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}
