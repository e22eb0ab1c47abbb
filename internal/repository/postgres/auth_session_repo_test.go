package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DevChiefs/MockAI/internal/domain"
	"github.com/DevChiefs/MockAI/internal/repository/postgres"
	"github.com/DevChiefs/MockAI/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthSession(userID uuid.UUID, token string, expiresAt time.Time) *domain.AuthSession {
	return &domain.AuthSession{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

func TestAuthSessionRepository_TokenLookup(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewAuthSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	session := newAuthSession(user.ID, "token-one", time.Now().Add(time.Hour))
	require.NoError(t, repo.Create(ctx, session))

	found, err := repo.GetByToken(ctx, "token-one")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	_, err = repo.GetByToken(ctx, "token-unknown")
	assert.Error(t, err)

	// Token values are unique
	dup := newAuthSession(user.ID, "token-one", time.Now().Add(time.Hour))
	assert.Error(t, repo.Create(ctx, dup))
}

func TestAuthSessionRepository_DeleteExpired(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewAuthSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	live := newAuthSession(user.ID, "token-live", time.Now().Add(time.Hour))
	stale := newAuthSession(user.ID, "token-stale", time.Now().Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))

	require.NoError(t, repo.DeleteExpired(ctx, time.Now()))

	_, err := repo.GetByToken(ctx, "token-live")
	assert.NoError(t, err)
	_, err = repo.GetByToken(ctx, "token-stale")
	assert.Error(t, err)
}
