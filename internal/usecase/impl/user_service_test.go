package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"buildops/internal/domain/auth"
	"buildops/internal/domain/entity"
	domainerrors "buildops/internal/domain/errors"
	"buildops/internal/domain/repository"
	mockRepo "buildops/internal/mocks/repository"
	mockService "buildops/internal/mocks/service"
	"buildops/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service   usecase.UserUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
	groupRepo *mockRepo.MockGroupRepository
	hasher    *mockService.MockPasswordHasher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	groupRepo := mockRepo.NewMockGroupRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewUserService(UserServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		GroupRepo: groupRepo,
		Hasher:    hasher,
		Logger:    logger,
	})

	return userServiceFixtures{
		service:   service,
		txManager: txManager,
		userRepo:  userRepo,
		groupRepo: groupRepo,
		hasher:    hasher,
	}
}

func tenantPrincipal() auth.Principal {
	companyID := uuid.New()

	return auth.Principal{
		ID:        uuid.New(),
		Email:     "manager@budmax.example",
		CompanyID: &companyID,
	}
}

func TestUserService_CreateUser_ForcesPrincipalTenant(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	input := usecase.UserInput{
		FirstName: "Anna",
		LastName:  "Nowak",
		Email:     "anna@budmax.example",
		Password:  "s3cret-pass",
		IsActive:  true,
	}

	fixtures.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fixtures.hasher.EXPECT().Hash("s3cret-pass").Return("hashed", nil)
	fixtures.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			require.NotNil(t, user.CompanyID)
			assert.Equal(t, *principal.CompanyID, *user.CompanyID)
			assert.Equal(t, "hashed", user.PasswordHash)
			user.ID = uuid.New()
		}).Return(nil)

	user, err := fixtures.service.CreateUser(ctx, principal, input)

	require.NoError(t, err)
	require.NotNil(t, user.CompanyID)
	assert.Equal(t, *principal.CompanyID, *user.CompanyID)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	input := usecase.UserInput{Email: "taken@budmax.example"}

	fixtures.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(&entity.User{ID: uuid.New()}, nil)

	user, err := fixtures.service.CreateUser(ctx, principal, input)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestUserService_CreateUser_SkipsUnknownGroups(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	input := usecase.UserInput{
		Email:  "worker@budmax.example",
		Groups: []string{"managers", "ghosts"},
	}

	managers := &entity.Group{ID: uuid.New(), Name: "managers"}

	fixtures.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fixtures.groupRepo.EXPECT().FindByNames(ctx, []string{"managers", "ghosts"}).
		Return([]*entity.Group{managers}, nil)
	fixtures.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := fixtures.service.CreateUser(ctx, principal, input)

	require.NoError(t, err)
	require.Len(t, user.Groups, 1)
	assert.Equal(t, "managers", user.Groups[0].Name)
}

func TestUserService_GetUser_CrossTenantIsNotFound(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	userID := uuid.New()

	fixtures.userRepo.EXPECT().FindByIDInCompany(ctx, userID, principal.CompanyID).
		Return(nil, repository.ErrUserNotFound)

	user, err := fixtures.service.GetUser(ctx, principal, userID)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UpdateUser_CrossTenantIsNotFound(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	userID := uuid.New()
	input := usecase.UserInput{Email: "someone@budmax.example"}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByIDInCompany(ctx, userID, principal.CompanyID).
				Return(nil, repository.ErrUserNotFound)

			return fn(mockFactory)
		})

	user, err := fixtures.service.UpdateUser(ctx, principal, userID, input)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UpdateUser_KeepsTenantAndHash(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	userID := uuid.New()
	input := usecase.UserInput{
		FirstName: "Anna",
		Email:     "anna@budmax.example",
		IsActive:  true,
	}

	existing := &entity.User{
		ID:           userID,
		Email:        "anna@budmax.example",
		PasswordHash: "keep-this-hash",
		CompanyID:    principal.CompanyID,
	}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByIDInCompany(ctx, userID, principal.CompanyID).Return(existing, nil)
			mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					assert.Equal(t, principal.CompanyID, user.CompanyID)
					assert.Equal(t, "keep-this-hash", user.PasswordHash)
				}).Return(nil)

			return fn(mockFactory)
		})

	user, err := fixtures.service.UpdateUser(ctx, principal, userID, input)

	require.NoError(t, err)
	assert.Equal(t, principal.CompanyID, user.CompanyID)
}

func TestUserService_PatchUser_ChangesOnlyNamedFields(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	userID := uuid.New()
	newFirstName := "Joanna"

	existing := &entity.User{
		ID:           userID,
		FirstName:    "Anna",
		LastName:     "Nowak",
		Email:        "anna@budmax.example",
		PasswordHash: "keep-this-hash",
		Groups:       []*entity.Group{{ID: uuid.New(), Name: "managers"}},
		CompanyID:    principal.CompanyID,
		IsActive:     true,
	}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByIDInCompany(ctx, userID, principal.CompanyID).Return(existing, nil)
			mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					assert.Equal(t, "Joanna", user.FirstName)
					assert.Equal(t, "Nowak", user.LastName)
					assert.Equal(t, "anna@budmax.example", user.Email)
					assert.Equal(t, "keep-this-hash", user.PasswordHash)
					require.Len(t, user.Groups, 1)
					assert.Equal(t, "managers", user.Groups[0].Name)
					assert.Equal(t, principal.CompanyID, user.CompanyID)
					assert.True(t, user.IsActive)
				}).Return(nil)

			return fn(mockFactory)
		})

	user, err := fixtures.service.PatchUser(ctx, principal, userID, usecase.UserPatch{FirstName: &newFirstName})

	require.NoError(t, err)
	assert.Equal(t, "Joanna", user.FirstName)
	assert.Equal(t, "anna@budmax.example", user.Email)
}

func TestUserService_PatchUser_CrossTenantIsNotFound(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	userID := uuid.New()
	newFirstName := "Joanna"

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByIDInCompany(ctx, userID, principal.CompanyID).
				Return(nil, repository.ErrUserNotFound)

			return fn(mockFactory)
		})

	user, err := fixtures.service.PatchUser(ctx, principal, userID, usecase.UserPatch{FirstName: &newFirstName})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_DeleteUser_CrossTenantIsNotFound(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	userID := uuid.New()

	fixtures.userRepo.EXPECT().DeleteInCompany(ctx, userID, principal.CompanyID).
		Return(repository.ErrUserNotFound)

	err := fixtures.service.DeleteUser(ctx, principal, userID)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ListUsers_ScopedToPrincipalCompany(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	principal := tenantPrincipal()
	listQuery := repository.UserListQuery{Email: "budmax", Page: 2, PageSize: 10}

	fixtures.userRepo.EXPECT().List(ctx, principal.CompanyID, listQuery).
		Return([]*entity.User{{ID: uuid.New()}}, int64(11), nil)

	output, err := fixtures.service.ListUsers(ctx, principal, listQuery)

	require.NoError(t, err)
	assert.Equal(t, int64(11), output.Total)
	assert.Equal(t, 2, output.Page)
	assert.Equal(t, 10, output.PageSize)
	assert.Len(t, output.Users, 1)
}
