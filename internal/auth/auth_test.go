package auth

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobpilot/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// A second pooled connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Application{}))
	return NewService(db, "test-secret")
}

func TestSignupLoginAuthenticateRoundtrip(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Signup("a@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	token, err := svc.Login("a@example.com", "hunter2hunter2")
	require.NoError(t, err)

	got, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "a@example.com", got.Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Signup("a@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Signup("a@example.com", "different-pass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Signup("a@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Login("a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login("nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Authenticate("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)
	user, err := svc.Signup("a@example.com", "hunter2hunter2")
	require.NoError(t, err)

	claims := jwt.MapClaims{"sub": user.ID, "exp": time.Now().Add(time.Hour).Unix()}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.Authenticate(forged)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateRejectsExpired(t *testing.T) {
	svc := newTestService(t)
	user, err := svc.Signup("a@example.com", "hunter2hunter2")
	require.NoError(t, err)

	claims := jwt.MapClaims{"sub": user.ID, "exp": time.Now().Add(-time.Hour).Unix()}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Authenticate(expired)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	svc := newTestService(t)
	claims := jwt.MapClaims{"sub": "ghost-user", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	// Valid signature but no local owner row behind it.
	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
