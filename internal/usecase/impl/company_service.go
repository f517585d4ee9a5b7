// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "buildops/internal/delivery/context"
	"buildops/internal/domain/auth"
	"buildops/internal/domain/entity"
	domainerrors "buildops/internal/domain/errors"
	"buildops/internal/domain/repository"
	"buildops/internal/errors"
	"buildops/internal/infra/persistence/query"
	"buildops/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// companyService implements the CompanyUsecase interface.
type companyService struct {
	txManager   repository.TransactionManager
	companyRepo repository.CompanyRepository
	logger      *slog.Logger
}

// CompanyServiceParams holds dependencies for companyService, injected by Fx.
type CompanyServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CompanyRepo repository.CompanyRepository
	Logger      *slog.Logger
}

// NewCompanyService is the constructor for companyService.
func NewCompanyService(params CompanyServiceParams) usecase.CompanyUsecase {
	return &companyService{
		txManager:   params.TxManager,
		companyRepo: params.CompanyRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *companyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCompany persists the owned address and the company within one
// transaction. The creator reference always comes from the principal.
func (srv *companyService) CreateCompany(ctx context.Context, principal auth.Principal, input usecase.CompanyInput) (*entity.Company, error) {
	company := companyFromInput(input)
	creatorID := principal.ID
	company.CreatedByID = &creatorID

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AddressRepo().Create(ctx, company.Address); err != nil {
			return err
		}

		return repoFactory.CompanyRepo().Create(ctx, company)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create company", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute company creation transaction")
	}

	srv.log(ctx).Debug("Company created", slog.Any("companyID", company.ID))

	return company, nil
}

// GetCompany retrieves a single company with its address.
func (srv *companyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := srv.companyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, domainerrors.ErrCompanyNotFound
		}

		return nil, errors.Wrap(err, "failed to get company")
	}

	return company, nil
}

// ListCompanies retrieves one filtered page of companies.
func (srv *companyService) ListCompanies(ctx context.Context, listQuery repository.CompanyListQuery) (*usecase.ListCompaniesOutput, error) {
	companies, total, err := srv.companyRepo.List(ctx, listQuery)
	if err != nil {
		srv.log(ctx).Error("Failed to list companies", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list companies")
	}

	return &usecase.ListCompaniesOutput{
		Companies: companies,
		Total:     total,
		Page:      query.NormalizePage(listQuery.Page),
		PageSize:  query.NormalizePageSize(listQuery.PageSize),
	}, nil
}

// UpdateCompany overwrites the company's writable fields. The owned address is
// mutated in place so its identifier is stable across updates; if the address
// row is gone a fresh one is created and attached.
func (srv *companyService) UpdateCompany(ctx context.Context, id uuid.UUID, input usecase.CompanyInput) (*entity.Company, error) {
	var updated *entity.Company
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		companyRepo := repoFactory.CompanyRepo()
		addressRepo := repoFactory.AddressRepo()

		existing, err := companyRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		address := addressFromInput(input.Address)
		if existing.Address != nil {
			address.ID = existing.Address.ID
			if err := addressRepo.Update(ctx, address); err != nil {
				return err
			}
		} else {
			if err := addressRepo.Create(ctx, address); err != nil {
				return err
			}
		}

		company := companyFromInput(input)
		company.ID = id
		company.Address = address
		company.CreatedByID = existing.CreatedByID
		company.CreatedAt = existing.CreatedAt

		if err := companyRepo.Update(ctx, company); err != nil {
			return err
		}
		updated = company

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, domainerrors.ErrCompanyNotFound
		}
		srv.log(ctx).Error("Failed to update company", slog.Any("companyID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute company update transaction")
	}

	return updated, nil
}

// PatchCompany merges the supplied fields over the stored company. Fields
// absent from the patch keep their stored values; the address is merged the
// same way.
func (srv *companyService) PatchCompany(ctx context.Context, id uuid.UUID, patch usecase.CompanyPatch) (*entity.Company, error) {
	var updated *entity.Company
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		companyRepo := repoFactory.CompanyRepo()

		existing, err := companyRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		applyCompanyPatch(existing, patch)

		if patch.Address != nil {
			addressRepo := repoFactory.AddressRepo()
			if existing.Address != nil {
				applyAddressPatch(existing.Address, *patch.Address)
				if err := addressRepo.Update(ctx, existing.Address); err != nil {
					return err
				}
			} else {
				address := &entity.Address{}
				applyAddressPatch(address, *patch.Address)
				if err := addressRepo.Create(ctx, address); err != nil {
					return err
				}
				existing.Address = address
			}
		}

		if err := companyRepo.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, domainerrors.ErrCompanyNotFound
		}
		srv.log(ctx).Error("Failed to patch company", slog.Any("companyID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute company patch transaction")
	}

	return updated, nil
}

// DeleteCompany removes a company. The delete is refused while products still
// reference the company; the company's users are detached, not deleted.
func (srv *companyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productCount, err := repoFactory.ProductRepo().CountByCompany(ctx, id)
		if err != nil {
			return err
		}
		if productCount > 0 {
			return domainerrors.ErrCompanyProtected
		}

		if err := repoFactory.UserRepo().ClearCompany(ctx, id); err != nil {
			return err
		}

		return repoFactory.CompanyRepo().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return domainerrors.ErrCompanyNotFound
		}
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return err
		}
		srv.log(ctx).Error("Failed to delete company", slog.Any("companyID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute company deletion transaction")
	}

	srv.log(ctx).Debug("Company deleted", slog.Any("companyID", id))

	return nil
}

func addressFromInput(input usecase.AddressInput) *entity.Address {
	return &entity.Address{
		Street:          input.Street,
		BuildingNumber:  input.BuildingNumber,
		ApartmentNumber: input.ApartmentNumber,
		PostalCode:      input.PostalCode,
		City:            input.City,
		State:           input.State,
		Country:         input.Country,
	}
}

func applyAddressPatch(address *entity.Address, patch usecase.AddressPatch) {
	if patch.Street != nil {
		address.Street = *patch.Street
	}
	if patch.BuildingNumber != nil {
		address.BuildingNumber = *patch.BuildingNumber
	}
	if patch.ApartmentNumber != nil {
		address.ApartmentNumber = patch.ApartmentNumber
	}
	if patch.PostalCode != nil {
		address.PostalCode = *patch.PostalCode
	}
	if patch.City != nil {
		address.City = *patch.City
	}
	if patch.State != nil {
		address.State = *patch.State
	}
	if patch.Country != nil {
		address.Country = *patch.Country
	}
}

func applyCompanyPatch(company *entity.Company, patch usecase.CompanyPatch) {
	if patch.Name != nil {
		company.Name = *patch.Name
	}
	if patch.Email != nil {
		company.Email = *patch.Email
	}
	if patch.PhoneNumber1 != nil {
		company.PhoneNumber1 = *patch.PhoneNumber1
	}
	if patch.PhoneNumber2 != nil {
		company.PhoneNumber2 = *patch.PhoneNumber2
	}
	if patch.PhoneNumber3 != nil {
		company.PhoneNumber3 = *patch.PhoneNumber3
	}
	if patch.VatID != nil {
		company.VatID = *patch.VatID
	}
	if patch.RegonID != nil {
		company.RegonID = *patch.RegonID
	}
	if patch.IsActive != nil {
		company.IsActive = *patch.IsActive
	}
	if patch.Timezone != nil {
		company.Timezone = *patch.Timezone
	}
}

func companyFromInput(input usecase.CompanyInput) *entity.Company {
	return &entity.Company{
		Name:         input.Name,
		Email:        input.Email,
		Address:      addressFromInput(input.Address),
		PhoneNumber1: input.PhoneNumber1,
		PhoneNumber2: input.PhoneNumber2,
		PhoneNumber3: input.PhoneNumber3,
		VatID:        input.VatID,
		RegonID:      input.RegonID,
		IsActive:     input.IsActive,
		Timezone:     input.Timezone,
	}
}
