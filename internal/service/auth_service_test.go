package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/NicolasGomez268/PuntoTecno/internal/config"
	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
)

func newAuthFixture(t *testing.T) (*stubUserRepo, AuthService, *model.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:     "mgomez",
		FirstName:    "Maria",
		LastName:     "Gomez",
		PasswordHash: string(hash),
		Role:         model.RoleEmployee,
		Active:       true,
	}
	repo := newStubUserRepo(u)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1, JWTRefreshHours: 24}
	return repo, NewAuthService(repo, cfg), u
}

func TestLoginSuccess(t *testing.T) {
	_, svc, u := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "secreto123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, u.Username, resp.User.Username)
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "otra"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo, svc, u := newAuthFixture(t)
	repo.users[u.ID].Active = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "secreto123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "secreto123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "mgomez", refreshed.User.Username)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "secreto123"})
	require.NoError(t, err)

	// An access token must not work as a refresh token.
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	_, svc, u := newAuthFixture(t)

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		OldPassword: "secreto123",
		NewPassword: "nuevosecreto",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "nuevosecreto"})
	assert.NoError(t, err)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "secreto123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
