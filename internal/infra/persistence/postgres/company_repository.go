package postgres

import (
	"context"

	"buildops/internal/domain/entity"
	"buildops/internal/domain/repository"
	"buildops/internal/errors"
	"buildops/internal/infra/persistence/model"
	"buildops/internal/infra/persistence/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// companyOrderable is the static whitelist of ordering keys for companies.
// Keys are what the API exposes; values are the ORDER BY expressions.
var companyOrderable = map[string]string{
	"id":             "companies.id",
	"name":           "companies.name",
	"email":          "companies.email",
	"phone_number_1": "companies.phone_number_1",
	"phone_number_2": "companies.phone_number_2",
	"phone_number_3": "companies.phone_number_3",
	"vat_id":         "companies.vat_id",
	"regon_id":       "companies.regon_id",
	"is_active":      "companies.is_active",
	"timezone":       "companies.timezone",
	"created_at":     "companies.created_at",
	"updated_at":     "companies.updated_at",
}

// companySearchColumns are the columns the free-text search parameter spans.
var companySearchColumns = []string{
	"companies.name",
	"companies.email",
	"companies.phone_number_1",
	"companies.phone_number_2",
	"companies.phone_number_3",
	"companies.vat_id",
	"companies.regon_id",
}

// companyUpdateColumns are the columns Update overwrites. address_id is
// included so a re-created address row ends up attached to the company.
var companyUpdateColumns = []string{
	"name", "email", "address_id",
	"phone_number_1", "phone_number_2", "phone_number_3",
	"vat_id", "regon_id", "is_active", "timezone",
}

// companyRepository implements the domain CompanyRepository interface using GORM.
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository is the constructor for companyRepository.
func NewCompanyRepository(db *gorm.DB) repository.CompanyRepository {
	return &companyRepository{db: db}
}

// Create persists a new company. The owned address must already exist; the
// two-step order is owned by the usecase transaction.
func (repo *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	companyM := fromCompanyDomain(company)

	if err := repo.db.WithContext(ctx).Create(companyM).Error; err != nil {
		return errors.Wrap(err, "failed to create company")
	}

	company.ID = companyM.ID
	company.CreatedAt = companyM.CreatedAt
	company.UpdatedAt = companyM.UpdatedAt

	return nil
}

// FindByID retrieves a single company with its owned address.
func (repo *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var companyM model.CompanyModel
	err := repo.db.WithContext(ctx).
		Preload("Address").
		First(&companyM, "companies.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCompanyNotFound
		}

		return nil, errors.Wrap(err, "failed to find company by id")
	}

	return toCompanyDomain(&companyM), nil
}

// List retrieves a filtered, ordered, paginated page of companies together
// with the total match count.
func (repo *companyRepository) List(ctx context.Context, listQuery repository.CompanyListQuery) ([]*entity.Company, int64, error) {
	filters := companyFilters(listQuery)

	var total int64
	err := repo.db.WithContext(ctx).
		Model(&model.CompanyModel{}).
		Joins("LEFT JOIN addresses ON addresses.id = companies.address_id").
		Scopes(filters...).
		Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count companies")
	}

	var companyMs []*model.CompanyModel
	err = repo.db.WithContext(ctx).
		Model(&model.CompanyModel{}).
		Joins("LEFT JOIN addresses ON addresses.id = companies.address_id").
		Scopes(filters...).
		Scopes(
			query.Ordering(companyOrderable, listQuery.Ordering, "companies.created_at DESC"),
			query.Paginate(listQuery.Page, listQuery.PageSize),
		).
		Preload("Address").
		Find(&companyMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list companies")
	}

	companies := make([]*entity.Company, 0, len(companyMs))
	for _, companyM := range companyMs {
		companies = append(companies, toCompanyDomain(companyM))
	}

	return companies, total, nil
}

// companyFilters is the statically enumerated mapping from company filter
// parameters to predicate builders.
func companyFilters(listQuery repository.CompanyListQuery) []query.Scope {
	return []query.Scope{
		query.IDIn("companies.id", listQuery.IDs),
		query.Contains("companies.name", listQuery.Name),
		query.Contains("companies.email", listQuery.Email),
		query.ContainsAny([]string{
			"companies.phone_number_1",
			"companies.phone_number_2",
			"companies.phone_number_3",
		}, listQuery.Phone),
		query.Contains("companies.vat_id", listQuery.VatID),
		query.Contains("companies.regon_id", listQuery.RegonID),
		query.Contains("addresses.street", listQuery.AddressStreet),
		query.Contains("addresses.city", listQuery.AddressCity),
		query.Contains("addresses.postal_code", listQuery.AddressPostalCode),
		query.BoolIn("companies.is_active", listQuery.IsActive),
		query.DateRange("companies.created_at", listQuery.CreatedAt),
		query.ContainsAny(companySearchColumns, listQuery.Search),
	}
}

// Update overwrites the mutable columns of an existing company. CreatedAt and
// the creator reference stay untouched.
func (repo *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	companyM := fromCompanyDomain(company)

	result := repo.db.WithContext(ctx).
		Model(&model.CompanyModel{}).
		Where("id = ?", company.ID).
		Select(companyUpdateColumns).
		Updates(companyM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update company")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCompanyNotFound
	}

	return nil
}

// Delete removes a company row. Referential actions are owned by the caller:
// users must be detached first and a protected product reference must have
// been checked.
func (repo *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CompanyModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete company")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCompanyNotFound
	}

	return nil
}
