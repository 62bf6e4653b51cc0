package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/mocks"
)

func newAuthFixture(t *testing.T) (AuthService, *mocks.MockUserRepositoryInterface, *mocks.MockTokenRepositoryInterface) {
	t.Helper()
	userRepo := new(mocks.MockUserRepositoryInterface)
	userRepo.Test(t)
	tokenRepo := new(mocks.MockTokenRepositoryInterface)
	tokenRepo.Test(t)

	svc := NewAuthServiceWithTokenService(userRepo, NewTokenService(tokenRepo, testTokenConfig()))
	return svc, userRepo, tokenRepo
}

func activeUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "maria@restaurante.com",
		Username: "maria",
		Password: string(hash),
		Name:     "María",
		Role:     "operator",
		Active:   true,
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthFixture(t)
	user := activeUser(t, "secret123")

	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	tokenRepo.On("DeleteByUserID", mock.Anything, user.ID, "refresh").Return(nil).Once()
	tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	pair, loggedIn, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, user.ID, loggedIn.ID)
	userRepo.AssertExpectations(t)
	tokenRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	user := activeUser(t, "secret123")

	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	_, _, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownOrInactive(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture(t)
		userRepo.On("FindByEmail", mock.Anything, "nobody@restaurante.com").Return(nil, nil).Once()

		_, _, err := svc.Login(context.Background(), "nobody@restaurante.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture(t)
		user := activeUser(t, "secret123")
		user.Active = false
		userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(context.Background(), user.Email, "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthFixture(t)

	userRepo.On("FindByEmail", mock.Anything, "nuevo@restaurante.com").Return(nil, nil).Once()
	userRepo.On("FindByUsername", mock.Anything, "nuevo").Return(nil, nil).Once()
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// The stored password must be a hash, never the plaintext.
		return u.Email == "nuevo@restaurante.com" && u.Active && u.Password != "secret123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = primitive.NewObjectID()
	}).Return(nil).Once()
	tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	pair, user, err := svc.Register(context.Background(), "nuevo@restaurante.com", "nuevo", "secret123", "Nuevo")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.False(t, user.ID.IsZero())
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	existing := activeUser(t, "secret123")

	userRepo.On("FindByEmail", mock.Anything, existing.Email).Return(existing, nil).Once()

	_, _, err := svc.Register(context.Background(), existing.Email, "otra", "secret123", "Otra")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthFixture(t)
	user := activeUser(t, "secret123")

	// Issue a real pair first so the refresh token parses.
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	tokenRepo.On("DeleteByUserID", mock.Anything, user.ID, "refresh").Return(nil).Once()
	tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	pair, _, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)

	tokenRepo.On("FindByToken", mock.Anything, pair.RefreshToken).Return(&model.Token{
		UserID:    user.ID,
		Token:     pair.RefreshToken,
		Type:      "refresh",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()
	tokenRepo.On("DeleteByToken", mock.Anything, pair.RefreshToken).Return(nil).Once()

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.RefreshToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthFixture(t)
	user := activeUser(t, "secret123")

	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	tokenRepo.On("DeleteByUserID", mock.Anything, user.ID, "refresh").Return(nil).Once()
	tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	pair, _, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)

	tokenRepo.On("DeleteByToken", mock.Anything, pair.RefreshToken).Return(nil).Once()

	require.NoError(t, svc.Logout(context.Background(), pair.AccessToken, pair.RefreshToken))
	tokenRepo.AssertExpectations(t)
}
