package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "buildops/internal/delivery/context"
	"buildops/internal/domain/auth"
	"buildops/internal/domain/entity"
	domainerrors "buildops/internal/domain/errors"
	"buildops/internal/domain/repository"
	"buildops/internal/domain/service"
	"buildops/internal/errors"
	"buildops/internal/infra/persistence/query"
	"buildops/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface. Every operation is scoped
// to the principal's company; users of other tenants are invisible.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	groupRepo repository.GroupRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	GroupRepo repository.GroupRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		groupRepo: params.GroupRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser creates a user inside the principal's company. The payload
// cannot choose a tenant; the principal's company always wins.
func (srv *userService) CreateUser(ctx context.Context, principal auth.Principal, input usecase.UserInput) (*entity.User, error) {
	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}

	groups, err := srv.resolveGroups(ctx, input.Groups)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Username:  input.Username,
		Groups:    groups,
		CompanyID: principal.CompanyID,
		IsActive:  input.IsActive,
	}

	if input.Password != "" {
		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hash
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("User created", slog.Any("userID", user.ID))

	return user, nil
}

// GetUser retrieves a user visible to the principal. A user of another tenant
// is reported as not found.
func (srv *userService) GetUser(ctx context.Context, principal auth.Principal, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByIDInCompany(ctx, id, principal.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to get user")
	}

	return user, nil
}

// ListUsers retrieves one filtered page of the principal's company users.
func (srv *userService) ListUsers(ctx context.Context, principal auth.Principal, listQuery repository.UserListQuery) (*usecase.ListUsersOutput, error) {
	users, total, err := srv.userRepo.List(ctx, principal.CompanyID, listQuery)
	if err != nil {
		srv.log(ctx).Error("Failed to list users", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.ListUsersOutput{
		Users:    users,
		Total:    total,
		Page:     query.NormalizePage(listQuery.Page),
		PageSize: query.NormalizePageSize(listQuery.PageSize),
	}, nil
}

// UpdateUser overwrites a user visible to the principal. The tenant stays the
// principal's company no matter what the payload carried.
func (srv *userService) UpdateUser(ctx context.Context, principal auth.Principal, id uuid.UUID, input usecase.UserInput) (*entity.User, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, err := userRepo.FindByIDInCompany(ctx, id, principal.CompanyID)
		if err != nil {
			return err
		}

		if input.Email != existing.Email {
			if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
				return domainerrors.ErrEmailAlreadyExists
			} else if !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(err, "failed to check email uniqueness")
			}
		}

		groups := existing.Groups
		if input.Groups != nil {
			groups, err = srv.resolveGroups(ctx, input.Groups)
			if err != nil {
				return err
			}
		}

		user := &entity.User{
			ID:           id,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
			Username:     input.Username,
			PasswordHash: existing.PasswordHash,
			Groups:       groups,
			CompanyID:    principal.CompanyID,
			IsActive:     input.IsActive,
			LastLogin:    existing.LastLogin,
			DateJoined:   existing.DateJoined,
		}

		if input.Password != "" {
			hash, err := srv.hasher.Hash(input.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}
			user.PasswordHash = hash
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
		updated = user

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		srv.log(ctx).Error("Failed to update user", slog.Any("userID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user update transaction")
	}

	return updated, nil
}

// PatchUser merges the supplied fields over a user visible to the principal.
// The tenant stays the principal's company no matter what the payload carried.
func (srv *userService) PatchUser(ctx context.Context, principal auth.Principal, id uuid.UUID, patch usecase.UserPatch) (*entity.User, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, err := userRepo.FindByIDInCompany(ctx, id, principal.CompanyID)
		if err != nil {
			return err
		}

		if patch.Email != nil && *patch.Email != existing.Email {
			if _, err := userRepo.FindByEmail(ctx, *patch.Email); err == nil {
				return domainerrors.ErrEmailAlreadyExists
			} else if !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(err, "failed to check email uniqueness")
			}
			existing.Email = *patch.Email
		}

		if patch.Groups != nil {
			groups, err := srv.resolveGroups(ctx, patch.Groups)
			if err != nil {
				return err
			}
			existing.Groups = groups
		}

		if patch.FirstName != nil {
			existing.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			existing.LastName = *patch.LastName
		}
		if patch.Username != nil {
			existing.Username = *patch.Username
		}
		if patch.IsActive != nil {
			existing.IsActive = *patch.IsActive
		}
		if patch.Password != nil && *patch.Password != "" {
			hash, err := srv.hasher.Hash(*patch.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}
			existing.PasswordHash = hash
		}

		existing.CompanyID = principal.CompanyID

		if err := userRepo.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		srv.log(ctx).Error("Failed to patch user", slog.Any("userID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user patch transaction")
	}

	return updated, nil
}

// DeleteUser removes a user visible to the principal.
func (srv *userService) DeleteUser(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	if err := srv.userRepo.DeleteInCompany(ctx, id, principal.CompanyID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		srv.log(ctx).Error("Failed to delete user", slog.Any("userID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

// resolveGroups maps group names to existing groups. Names without a matching
// group are skipped; the skip is surfaced in the logs only.
func (srv *userService) resolveGroups(ctx context.Context, names []string) ([]*entity.Group, error) {
	if len(names) == 0 {
		return []*entity.Group{}, nil
	}

	groups, err := srv.groupRepo.FindByNames(ctx, names)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve groups")
	}

	if len(groups) < len(names) {
		found := make(map[string]struct{}, len(groups))
		for _, group := range groups {
			found[group.Name] = struct{}{}
		}
		missing := make([]string, 0, len(names))
		for _, name := range names {
			if _, ok := found[name]; !ok {
				missing = append(missing, name)
			}
		}
		srv.log(ctx).Warn("Skipping unknown groups", slog.String("names", strings.Join(missing, ",")))
	}

	return groups, nil
}
