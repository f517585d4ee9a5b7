package impl

import (
	"context"
	"log/slog"
	"time"

	"buildops/config"
	deliverycontext "buildops/internal/delivery/context"
	"buildops/internal/domain/auth"
	"buildops/internal/domain/entity"
	domainerrors "buildops/internal/domain/errors"
	"buildops/internal/domain/repository"
	"buildops/internal/domain/service"
	"buildops/internal/errors"
	"buildops/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo      repository.UserRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	refreshSecret string
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:      params.UserRepo,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		refreshSecret: params.Config.SecretKey.Refresh,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the credentials and issues a token pair. A successful login
// stamps last_login. Bad email, bad password and inactive account are
// indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.TokenOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !user.IsActive || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login rejected", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := srv.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, errors.Wrap(err, "failed to stamp last login")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(principalOf(user))
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.TokenOutput{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The user
// is re-read so the new token reflects the current tenant and active state.
func (srv *authService) Refresh(ctx context.Context, input usecase.RefreshInput) (string, error) {
	token, err := srv.tokenService.ValidateToken(input.RefreshToken, srv.refreshSecret)
	if err != nil || !token.Valid {
		return "", domainerrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domainerrors.ErrTokenInvalid
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", domainerrors.ErrTokenInvalid
	}

	subject, _ := claims["sub"].(string)
	userID, err := uuid.Parse(subject)
	if err != nil {
		return "", domainerrors.ErrTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil || !user.IsActive {
		return "", domainerrors.ErrTokenInvalid
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(principalOf(user))
	if err != nil {
		srv.log(ctx).Error("Failed to generate access token", slog.Any("userID", user.ID), slog.Any("error", err))

		return "", errors.Wrap(err, "failed to generate access token")
	}

	return accessToken, nil
}

// Register creates a new account outside any tenant. The account can later be
// attached to a company through the user resource.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to register user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register user")
	}

	srv.log(ctx).Debug("User registered", slog.Any("userID", user.ID))

	return user, nil
}

// CurrentUser resolves the authenticated principal to its full account.
func (srv *authService) CurrentUser(ctx context.Context, principal auth.Principal) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user, nil
}

// principalOf derives the token principal from a user account.
func principalOf(user *entity.User) auth.Principal {
	return auth.Principal{
		ID:        user.ID,
		Email:     user.Email,
		CompanyID: user.CompanyID,
	}
}
