package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/transfer"
	"github.com/maheshrc27/dreamwall/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(testConfig, users)

	res, err := svc.Register(context.Background(), transfer.RegisterRequest{
		Name: "Ann", PhoneNumber: "0900111222", Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Nil(t, res.User.Email)

	_, err = svc.Register(context.Background(), transfer.RegisterRequest{Name: "Dup", PhoneNumber: "0900111222"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Login(context.Background(), transfer.LoginRequest{PhoneNumber: "0900111222", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	res, err = svc.Login(context.Background(), transfer.LoginRequest{PhoneNumber: "0900111222", Password: "secret123"})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(testConfig, users)
	ctx := context.Background()

	_, err := svc.Register(ctx, transfer.RegisterRequest{Name: "Ann", PhoneNumber: "0900111222", Email: "ann@mail.test"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, transfer.RegisterRequest{Name: "Other", PhoneNumber: "0900333444", Email: "ann@mail.test"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(ctx, transfer.RegisterRequest{Name: "NoMail", PhoneNumber: "0900555666"})
	require.NoError(t, err)
	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestLoginLockedAccount(t *testing.T) {
	hash, err := utils.HashPassword("pw123456")
	require.NoError(t, err)
	users := newFakeUsers(&models.User{
		Name: "Locked", PhoneNumber: "0933", PasswordHash: hash, IsLocked: true, Status: models.UserStatusActive,
	})
	svc := NewAuthService(testConfig, users)

	_, err = svc.Login(context.Background(), transfer.LoginRequest{PhoneNumber: "0933", Password: "pw123456"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc := NewAuthService(testConfig, newFakeUsers())

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, err := svc.IssueToken(404)
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPromoteAdmin(t *testing.T) {
	users := newFakeUsers(&models.User{Name: "Bo", PhoneNumber: "0955", Role: models.RoleUser})
	svc := NewAuthService(testConfig, users)

	user, err := svc.PromoteAdmin(context.Background(), "0955")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	_, err = svc.PromoteAdmin(context.Background(), "0000")
	assert.ErrorIs(t, err, ErrNotFound)
}
