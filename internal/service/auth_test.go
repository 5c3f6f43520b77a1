package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
	"github.com/pageza/pantrychef/backend/internal/types"
)

func TestRegisterCreatesDefaultTasteProfile(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret", 30*time.Minute)

	user, err := svc.Register(context.Background(), types.RegisterRequest{
		Username: "cook",
		Email:    "Cook@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.Equal(t, "en", user.PreferredLanguage)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	var profile models.TasteProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, models.DefaultSpiceLevel, profile.SpiceLevel)
	assert.Equal(t, models.DefaultOilPreference, profile.OilPreference)
	assert.Empty(t, profile.Allergies)
}

func TestRegisterDuplicate(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret", 30*time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, types.RegisterRequest{Username: "cook", Email: "cook@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, types.RegisterRequest{Username: "other", Email: "cook@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, service.ErrUserExists)

	_, err = svc.Register(ctx, types.RegisterRequest{Username: "cook", Email: "new@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLoginIssuesValidToken(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret", 30*time.Minute)
	user := testhelpers.CreateTestUser(t, db, "loginuser")

	resp, err := svc.Login(context.Background(), user.Email, testhelpers.TestPassword)
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "loginuser", claims.Username)
	assert.Equal(t, user.Email, claims.Subject)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret", 30*time.Minute)
	user := testhelpers.CreateTestUser(t, db, "loginuser")

	_, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", testhelpers.TestPassword)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenInvalid(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	user := testhelpers.CreateTestUser(t, db, "tokenuser")

	svc := service.NewAuthService(db, "test-secret", 30*time.Minute)
	_, err := svc.ValidateToken("invalid.token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	other := service.NewAuthService(db, "other-secret", 30*time.Minute)
	token, err := other.GenerateToken(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	expired := service.NewAuthService(db, "test-secret", -time.Minute)
	token, err = expired.GenerateToken(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestGetUserByID(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret", 30*time.Minute)
	user := testhelpers.CreateTestUser(t, db, "profileuser")

	got, err := svc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TasteProfile)
	assert.Equal(t, user.ID, got.TasteProfile.UserID)
}
