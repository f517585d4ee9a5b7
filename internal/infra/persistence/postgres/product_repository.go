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

// productOrderable is the static whitelist of ordering keys for products.
var productOrderable = map[string]string{
	"id":                       "products.id",
	"name":                     "products.name",
	"price_net":                "products.price_net",
	"price_gross":              "products.price_gross",
	"estimated_duration_weeks": "products.estimated_duration_weeks",
	"usable_area_m2":           "products.usable_area_m2",
	"net_area_m2":              "products.net_area_m2",
	"gross_volume_m3":          "products.gross_volume_m3",
	"is_active":                "products.is_active",
	"created_at":               "products.created_at",
	"updated_at":               "products.updated_at",
}

// productSearchColumns are the columns the free-text search parameter spans.
var productSearchColumns = []string{
	"products.name",
	"products.description",
}

// productRepository implements the domain ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return errors.Wrap(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a single product.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).First(&productM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// List retrieves a filtered, ordered, paginated page of products together
// with the total match count.
func (repo *productRepository) List(ctx context.Context, listQuery repository.ProductListQuery) ([]*entity.Product, int64, error) {
	filters := productFilters(listQuery)

	var total int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Scopes(filters...).
		Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	var productMs []*model.ProductModel
	err = repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Scopes(filters...).
		Scopes(
			query.Ordering(productOrderable, listQuery.Ordering, "products.created_at DESC"),
			query.Paginate(listQuery.Page, listQuery.PageSize),
		).
		Find(&productMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// productFilters is the statically enumerated mapping from product filter
// parameters to predicate builders.
func productFilters(listQuery repository.ProductListQuery) []query.Scope {
	return []query.Scope{
		query.Contains("products.name", listQuery.Name),
		query.NumberGTE("products.usable_area_m2", listQuery.UsableAreaMin),
		query.NumberLTE("products.usable_area_m2", listQuery.UsableAreaMax),
		query.BoolIn("products.is_active", listQuery.IsActive),
		query.DateRange("products.created_at", listQuery.CreatedAt),
		query.ContainsAny(productSearchColumns, listQuery.Search),
	}
}

// Update overwrites the mutable columns of an existing product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select(
			"name", "description", "price_net", "price_gross", "estimated_duration_weeks",
			"usable_area_m2", "net_area_m2", "gross_volume_m3", "is_active", "company_id",
		).
		Updates(productM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product row.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// CountByCompany reports how many products reference the company.
func (repo *productRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count products by company")
	}

	return count, nil
}
