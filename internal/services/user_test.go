package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/database"
	"github.com/hackhub/hackhub-api/internal/oauth"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserService(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewUserService(db), mock
}

func userRow(userID uuid.UUID, email, name, provider, providerID string, now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "name", "avatar_url", "provider", "provider_id", "created_at", "updated_at",
	}).AddRow(userID, email, name, nil, provider, providerID, now, now)
}

func TestUserService_FindOrCreateFromOAuth_ExistingUser(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE provider`).
		WithArgs("google", "google-123").
		WillReturnRows(userRow(userID, "user@example.com", "Test User", "google", "google-123", now))

	user, err := svc.FindOrCreateFromOAuth(ctx, &oauth.UserInfo{
		Email:    "user@example.com",
		Name:     "Test User",
		ID:       "google-123",
		Provider: "google",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "user@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_FindOrCreateFromOAuth_CreatesUser(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE provider`).
		WithArgs("google", "google-456").
		WillReturnError(pgx.ErrNoRows)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("new@example.com", "New User", pgxmock.AnyArg(), "google", "google-456").
		WillReturnRows(userRow(userID, "new@example.com", "New User", "google", "google-456", now))

	user, err := svc.FindOrCreateFromOAuth(ctx, &oauth.UserInfo{
		Email:    "new@example.com",
		Name:     "New User",
		ID:       "google-456",
		Provider: "google",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_FindOrCreateByEmail_CreatesDevUser(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("dev@example.com").
		WillReturnError(pgx.ErrNoRows)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("dev@example.com", "dev@example.com", "dev", "dev@example.com").
		WillReturnRows(userRow(userID, "dev@example.com", "dev@example.com", "dev", "dev@example.com", now))

	user, err := svc.FindOrCreateByEmail(ctx, "dev@example.com", "")

	require.NoError(t, err)
	assert.Equal(t, "dev", user.Provider)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByID(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(userRow(userID, "user@example.com", "Test User", "google", "google-123", now))

	user, err := svc.GetByID(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByEmail_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByEmail(ctx, "ghost@example.com")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Update(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`UPDATE users SET name`).
		WithArgs("Renamed", userID).
		WillReturnRows(userRow(userID, "user@example.com", "Renamed", "google", "google-123", now))

	user, err := svc.Update(ctx, userID, "Renamed")

	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
