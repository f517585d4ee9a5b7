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
	"buildops/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// companyServiceFixtures holds all test dependencies for company service tests.
type companyServiceFixtures struct {
	service     usecase.CompanyUsecase
	txManager   *mockRepo.MockTransactionManager
	companyRepo *mockRepo.MockCompanyRepository
}

func createTestCompanyService(t *testing.T) companyServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	companyRepo := mockRepo.NewMockCompanyRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCompanyService(CompanyServiceParams{
		TxManager:   txManager,
		CompanyRepo: companyRepo,
		Logger:      logger,
	})

	return companyServiceFixtures{
		service:     service,
		txManager:   txManager,
		companyRepo: companyRepo,
	}
}

func testCompanyInput() usecase.CompanyInput {
	apartment := "4"

	return usecase.CompanyInput{
		Name:  "Budmax",
		Email: "office@budmax.example",
		Address: usecase.AddressInput{
			Street:          "Krakowska",
			BuildingNumber:  "12A",
			ApartmentNumber: &apartment,
			PostalCode:      "30-001",
			City:            "Krakow",
			State:           "Malopolska",
			Country:         "Poland",
		},
		PhoneNumber1: "+48 600 100 200",
		VatID:        "6770001234",
		RegonID:      "123456789",
		IsActive:     true,
		Timezone:     "Europe/Warsaw",
	}
}

func TestCompanyService_CreateCompany_NestedAddressRoundTrip(t *testing.T) {
	fixtures := createTestCompanyService(t)

	ctx := context.Background()
	principal := auth.Principal{ID: uuid.New(), Email: "creator@budmax.example"}
	input := testCompanyInput()

	addressID := uuid.New()
	companyID := uuid.New()

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockCompanyRepo := mockRepo.NewMockCompanyRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockFactory.EXPECT().CompanyRepo().Return(mockCompanyRepo)
			mockAddressRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Address")).
				Run(func(ctx context.Context, address *entity.Address) {
					address.ID = addressID
				}).Return(nil)
			mockCompanyRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Company")).
				Run(func(ctx context.Context, company *entity.Company) {
					company.ID = companyID
				}).Return(nil)

			return fn(mockFactory)
		})

	company, err := fixtures.service.CreateCompany(ctx, principal, input)

	require.NoError(t, err)
	assert.Equal(t, companyID, company.ID)
	require.NotNil(t, company.CreatedByID)
	assert.Equal(t, principal.ID, *company.CreatedByID)

	require.NotNil(t, company.Address)
	assert.Equal(t, addressID, company.Address.ID)
	assert.Equal(t, "Krakowska", company.Address.Street)
	assert.Equal(t, "12A", company.Address.BuildingNumber)
	require.NotNil(t, company.Address.ApartmentNumber)
	assert.Equal(t, "4", *company.Address.ApartmentNumber)
	assert.Equal(t, "30-001", company.Address.PostalCode)
	assert.Equal(t, "Krakow", company.Address.City)
}

func TestCompanyService_GetCompany_NotFound(t *testing.T) {
	fixtures := createTestCompanyService(t)

	ctx := context.Background()
	companyID := uuid.New()

	fixtures.companyRepo.EXPECT().FindByID(ctx, companyID).Return(nil, repository.ErrCompanyNotFound)

	company, err := fixtures.service.GetCompany(ctx, companyID)

	assert.Nil(t, company)
	assert.ErrorIs(t, err, domainerrors.ErrCompanyNotFound)
}

func TestCompanyService_DeleteCompany_ProtectedByProducts(t *testing.T) {
	fixtures := createTestCompanyService(t)

	ctx := context.Background()
	companyID := uuid.New()

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().CountByCompany(ctx, companyID).Return(3, nil)

			return fn(mockFactory)
		})

	err := fixtures.service.DeleteCompany(ctx, companyID)

	assert.ErrorIs(t, err, domainerrors.ErrCompanyProtected)
}

func TestCompanyService_DeleteCompany_DetachesUsers(t *testing.T) {
	fixtures := createTestCompanyService(t)

	ctx := context.Background()
	companyID := uuid.New()

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockCompanyRepo := mockRepo.NewMockCompanyRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().CompanyRepo().Return(mockCompanyRepo)
			mockProductRepo.EXPECT().CountByCompany(ctx, companyID).Return(0, nil)
			mockUserRepo.EXPECT().ClearCompany(ctx, companyID).Return(nil)
			mockCompanyRepo.EXPECT().Delete(ctx, companyID).Return(nil)

			return fn(mockFactory)
		})

	err := fixtures.service.DeleteCompany(ctx, companyID)

	require.NoError(t, err)
}

func TestCompanyService_PatchCompany_ChangesOnlyNamedFields(t *testing.T) {
	fixtures := createTestCompanyService(t)

	ctx := context.Background()
	companyID := uuid.New()
	addressID := uuid.New()
	newName := "Budmax Renamed"

	existing := &entity.Company{
		ID:       companyID,
		Name:     "Budmax",
		Email:    "office@budmax.example",
		VatID:    "6770001234",
		IsActive: true,
		Address:  &entity.Address{ID: addressID, Street: "Krakowska"},
	}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCompanyRepo := mockRepo.NewMockCompanyRepository(t)

			mockFactory.EXPECT().CompanyRepo().Return(mockCompanyRepo)
			mockCompanyRepo.EXPECT().FindByID(ctx, companyID).Return(existing, nil)
			mockCompanyRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Company")).
				Run(func(ctx context.Context, company *entity.Company) {
					assert.Equal(t, "Budmax Renamed", company.Name)
					assert.Equal(t, "office@budmax.example", company.Email)
					assert.Equal(t, "6770001234", company.VatID)
					assert.True(t, company.IsActive)
				}).Return(nil)

			return fn(mockFactory)
		})

	company, err := fixtures.service.PatchCompany(ctx, companyID, usecase.CompanyPatch{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Budmax Renamed", company.Name)
	assert.Equal(t, "office@budmax.example", company.Email)
	require.NotNil(t, company.Address)
	assert.Equal(t, addressID, company.Address.ID)
	assert.Equal(t, "Krakowska", company.Address.Street)
}

func TestCompanyService_PatchCompany_MergesNestedAddress(t *testing.T) {
	fixtures := createTestCompanyService(t)

	ctx := context.Background()
	companyID := uuid.New()
	addressID := uuid.New()
	newCity := "Warszawa"

	existing := &entity.Company{
		ID:      companyID,
		Name:    "Budmax",
		Address: &entity.Address{ID: addressID, Street: "Krakowska", City: "Krakow"},
	}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockCompanyRepo := mockRepo.NewMockCompanyRepository(t)

			mockFactory.EXPECT().CompanyRepo().Return(mockCompanyRepo)
			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockCompanyRepo.EXPECT().FindByID(ctx, companyID).Return(existing, nil)
			mockAddressRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Address")).
				Run(func(ctx context.Context, address *entity.Address) {
					assert.Equal(t, addressID, address.ID)
					assert.Equal(t, "Warszawa", address.City)
					assert.Equal(t, "Krakowska", address.Street)
				}).Return(nil)
			mockCompanyRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Company")).Return(nil)

			return fn(mockFactory)
		})

	company, err := fixtures.service.PatchCompany(ctx, companyID, usecase.CompanyPatch{
		Address: &usecase.AddressPatch{City: &newCity},
	})

	require.NoError(t, err)
	assert.Equal(t, "Warszawa", company.Address.City)
	assert.Equal(t, "Krakowska", company.Address.Street)
}

func TestCompanyService_UpdateCompany_RecreatesMissingAddress(t *testing.T) {
	fixtures := createTestCompanyService(t)

	ctx := context.Background()
	companyID := uuid.New()
	freshAddressID := uuid.New()
	input := testCompanyInput()

	existing := &entity.Company{ID: companyID, Name: "Budmax", Address: nil}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockCompanyRepo := mockRepo.NewMockCompanyRepository(t)

			mockFactory.EXPECT().CompanyRepo().Return(mockCompanyRepo)
			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockCompanyRepo.EXPECT().FindByID(ctx, companyID).Return(existing, nil)
			mockAddressRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Address")).
				Run(func(ctx context.Context, address *entity.Address) {
					address.ID = freshAddressID
				}).Return(nil)
			mockCompanyRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Company")).
				Run(func(ctx context.Context, company *entity.Company) {
					// The fresh address must be attached, not left orphaned.
					require.NotNil(t, company.Address)
					assert.Equal(t, freshAddressID, company.Address.ID)
				}).Return(nil)

			return fn(mockFactory)
		})

	company, err := fixtures.service.UpdateCompany(ctx, companyID, input)

	require.NoError(t, err)
	require.NotNil(t, company.Address)
	assert.Equal(t, freshAddressID, company.Address.ID)
}

func TestCompanyService_UpdateCompany_MutatesAddressInPlace(t *testing.T) {
	fixtures := createTestCompanyService(t)

	ctx := context.Background()
	companyID := uuid.New()
	addressID := uuid.New()
	creatorID := uuid.New()
	input := testCompanyInput()
	input.Name = "Budmax Renamed"

	existing := &entity.Company{
		ID:          companyID,
		Name:        "Budmax",
		Address:     &entity.Address{ID: addressID, Street: "Old Street"},
		CreatedByID: &creatorID,
	}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockCompanyRepo := mockRepo.NewMockCompanyRepository(t)

			mockFactory.EXPECT().CompanyRepo().Return(mockCompanyRepo)
			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockCompanyRepo.EXPECT().FindByID(ctx, companyID).Return(existing, nil)
			mockAddressRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Address")).
				Run(func(ctx context.Context, address *entity.Address) {
					assert.Equal(t, addressID, address.ID)
					assert.Equal(t, "Krakowska", address.Street)
				}).Return(nil)
			mockCompanyRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Company")).Return(nil)

			return fn(mockFactory)
		})

	company, err := fixtures.service.UpdateCompany(ctx, companyID, input)

	require.NoError(t, err)
	assert.Equal(t, "Budmax Renamed", company.Name)
	assert.Equal(t, addressID, company.Address.ID)
	require.NotNil(t, company.CreatedByID)
	assert.Equal(t, creatorID, *company.CreatedByID)
}
