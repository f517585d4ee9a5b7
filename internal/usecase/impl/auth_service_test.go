package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"buildops/config"
	"buildops/internal/domain/entity"
	domainerrors "buildops/internal/domain/errors"
	"buildops/internal/domain/repository"
	mockRepo "buildops/internal/mocks/repository"
	mockService "buildops/internal/mocks/service"
	"buildops/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	service := NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Config:       cfg,
		Logger:       logger,
	})

	return authServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func activeUser() *entity.User {
	companyID := uuid.New()

	return &entity.User{
		ID:           uuid.New(),
		Email:        "anna@budmax.example",
		PasswordHash: "stored-hash",
		CompanyID:    &companyID,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	user := activeUser()
	input := usecase.LoginInput{Email: user.Email, Password: "correct-horse"}

	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fixtures.hasher.EXPECT().Check("correct-horse", "stored-hash").Return(true)
	fixtures.userRepo.EXPECT().UpdateLastLogin(ctx, user.ID, mock.AnythingOfType("time.Time")).Return(nil)
	fixtures.tokenService.EXPECT().GenerateTokens(mock.Anything).
		Return("access-token", "refresh-token", nil)

	output, err := fixtures.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	user := activeUser()

	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fixtures.hasher.EXPECT().Check("wrong", "stored-hash").Return(false)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "wrong"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()

	fixtures.userRepo.EXPECT().FindByEmail(ctx, "nobody@budmax.example").
		Return(nil, repository.ErrUserNotFound)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{
		Email:    "nobody@budmax.example",
		Password: "anything",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	user := activeUser()
	user.IsActive = false

	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "correct-horse"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	user := activeUser()

	refreshed := &jwt.Token{
		Valid: true,
		Claims: jwt.MapClaims{
			"type": "refresh",
			"sub":  user.ID.String(),
		},
	}

	fixtures.tokenService.EXPECT().ValidateToken("refresh-token", "refresh-secret").Return(refreshed, nil)
	fixtures.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fixtures.tokenService.EXPECT().GenerateAccessToken(mock.Anything).Return("new-access-token", nil)

	accessToken, err := fixtures.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: "refresh-token"})

	require.NoError(t, err)
	assert.Equal(t, "new-access-token", accessToken)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()

	disguised := &jwt.Token{
		Valid: true,
		Claims: jwt.MapClaims{
			"type": "access",
			"sub":  uuid.New().String(),
		},
	}

	fixtures.tokenService.EXPECT().ValidateToken("access-token", "refresh-secret").Return(disguised, nil)

	accessToken, err := fixtures.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: "access-token"})

	assert.Empty(t, accessToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthService_Refresh_RejectsDeactivatedUser(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	user := activeUser()
	user.IsActive = false

	refreshed := &jwt.Token{
		Valid: true,
		Claims: jwt.MapClaims{
			"type": "refresh",
			"sub":  user.ID.String(),
		},
	}

	fixtures.tokenService.EXPECT().ValidateToken("refresh-token", "refresh-secret").Return(refreshed, nil)
	fixtures.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

	accessToken, err := fixtures.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: "refresh-token"})

	assert.Empty(t, accessToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthService_Register_Success(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Email:     "jan@budmax.example",
		Password:  "long-enough-pass",
	}

	fixtures.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fixtures.hasher.EXPECT().Hash("long-enough-pass").Return("hashed", nil)
	fixtures.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			user.ID = uuid.New()
			user.DateJoined = time.Now()
		}).Return(nil)

	user, err := fixtures.service.Register(ctx, input)

	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.CompanyID)
	assert.Equal(t, "hashed", user.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()

	fixtures.userRepo.EXPECT().FindByEmail(ctx, "taken@budmax.example").
		Return(&entity.User{ID: uuid.New()}, nil)

	user, err := fixtures.service.Register(ctx, usecase.RegisterInput{Email: "taken@budmax.example"})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}
