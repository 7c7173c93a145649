package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/rhinowatch/rhino-watch-sa/internal/auth"
	"github.com/rhinowatch/rhino-watch-sa/internal/config"
	"github.com/rhinowatch/rhino-watch-sa/internal/models"
	"github.com/rhinowatch/rhino-watch-sa/internal/repository"
	"github.com/rhinowatch/rhino-watch-sa/internal/service"
	"github.com/rhinowatch/rhino-watch-sa/internal/service/mocks"
)

const testSecret = "auth-test-secret"

func newTestAuthService(t *testing.T) (service.AuthService, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return service.NewAuthService(repo, logger, &config.Config{JWTSecret: testSecret}), repo
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           7,
		Username:     "admin",
		Email:        "admin@rhinowatchsa.org",
		PasswordHash: string(hash),
		Role:         "admin",
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, repo := newTestAuthService(t)
	user := hashedUser(t, "correct-horse")

	repo.EXPECT().GetByUsername(gomock.Any(), "admin").Return(user, nil).Times(1)

	result, err := svc.Login(context.Background(), "admin", "correct-horse")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, user, result.User)

	claims, err := auth.ParseToken(result.AccessToken, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, repo := newTestAuthService(t)

	repo.EXPECT().
		GetByUsername(gomock.Any(), "nobody").
		Return(nil, fmt.Errorf("user %q: %w", "nobody", repository.ErrNotFound)).
		Times(1)

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	user := hashedUser(t, "correct-horse")

	repo.EXPECT().GetByUsername(gomock.Any(), "admin").Return(user, nil).Times(1)

	_, err := svc.Login(context.Background(), "admin", "battery-staple")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

// A wrong password and an unknown username are not distinguishable through
// the returned error.
func TestAuthService_Login_UniformRejection(t *testing.T) {
	svc, repo := newTestAuthService(t)
	user := hashedUser(t, "correct-horse")

	repo.EXPECT().GetByUsername(gomock.Any(), "admin").Return(user, nil).Times(1)
	repo.EXPECT().
		GetByUsername(gomock.Any(), "ghost").
		Return(nil, repository.ErrNotFound).
		Times(1)

	_, wrongPassword := svc.Login(context.Background(), "admin", "nope")
	_, unknownUser := svc.Login(context.Background(), "ghost", "nope")

	assert.Equal(t, wrongPassword, unknownUser)
}

func TestAuthService_Login_StoreError(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repoErr := errors.New("connection reset")

	repo.EXPECT().GetByUsername(gomock.Any(), "admin").Return(nil, repoErr).Times(1)

	_, err := svc.Login(context.Background(), "admin", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	assert.ErrorIs(t, err, repoErr)
}
