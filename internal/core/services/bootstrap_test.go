package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven/mocks"
)

func TestEnsureAdmin_CreatesOnce(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	hasher := mocks.NewMockAuthAdapter()

	created, err := EnsureAdmin(ctx, users, hasher, " admin@ward.example ", "change-me")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := users.GetByEmail(ctx, "admin@ward.example")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.Active)
	assert.True(t, hasher.VerifyPassword("change-me", admin.PasswordHash))

	created, err = EnsureAdmin(ctx, users, hasher, "admin@ward.example", "other")
	require.NoError(t, err)
	assert.False(t, created)

	again, err := users.GetByEmail(ctx, "admin@ward.example")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.True(t, hasher.VerifyPassword("change-me", again.PasswordHash), "existing password must be kept")
}

func TestEnsureAdmin_RequiresCredentials(t *testing.T) {
	_, err := EnsureAdmin(context.Background(), mocks.NewMockUserStore(), mocks.NewMockAuthAdapter(), "", "pw")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
