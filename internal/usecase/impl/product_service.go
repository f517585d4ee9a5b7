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

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	CompanyRepo repository.CompanyRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		companyRepo: params.CompanyRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct persists a new product. The referenced company must exist; the
// creator reference always comes from the principal.
func (srv *productService) CreateProduct(ctx context.Context, principal auth.Principal, input usecase.ProductInput) (*entity.Product, error) {
	if _, err := srv.companyRepo.FindByID(ctx, input.CompanyID); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, domainerrors.ErrCompanyNotFound
		}

		return nil, errors.Wrap(err, "failed to resolve product company")
	}

	product := productFromInput(input)
	creatorID := principal.ID
	product.CreatedByID = &creatorID

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Debug("Product created", slog.Any("productID", product.ID))

	return product, nil
}

// GetProduct retrieves a single product.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// ListProducts retrieves one filtered page of products.
func (srv *productService) ListProducts(ctx context.Context, listQuery repository.ProductListQuery) (*usecase.ListProductsOutput, error) {
	products, total, err := srv.productRepo.List(ctx, listQuery)
	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list products")
	}

	return &usecase.ListProductsOutput{
		Products: products,
		Total:    total,
		Page:     query.NormalizePage(listQuery.Page),
		PageSize: query.NormalizePageSize(listQuery.PageSize),
	}, nil
}

// UpdateProduct overwrites the product's writable fields.
func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.ProductInput) (*entity.Product, error) {
	existing, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product for update")
	}

	if input.CompanyID != existing.CompanyID {
		if _, err := srv.companyRepo.FindByID(ctx, input.CompanyID); err != nil {
			if errors.Is(err, repository.ErrCompanyNotFound) {
				return nil, domainerrors.ErrCompanyNotFound
			}

			return nil, errors.Wrap(err, "failed to resolve product company")
		}
	}

	product := productFromInput(input)
	product.ID = id
	product.CreatedByID = existing.CreatedByID
	product.CreatedAt = existing.CreatedAt

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		srv.log(ctx).Error("Failed to update product", slog.Any("productID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// PatchProduct merges the supplied fields over the stored product. A company
// change is validated the same way a full update validates it.
func (srv *productService) PatchProduct(ctx context.Context, id uuid.UUID, patch usecase.ProductPatch) (*entity.Product, error) {
	existing, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product for patch")
	}

	if patch.CompanyID != nil && *patch.CompanyID != existing.CompanyID {
		if _, err := srv.companyRepo.FindByID(ctx, *patch.CompanyID); err != nil {
			if errors.Is(err, repository.ErrCompanyNotFound) {
				return nil, domainerrors.ErrCompanyNotFound
			}

			return nil, errors.Wrap(err, "failed to resolve product company")
		}
	}

	applyProductPatch(existing, patch)

	if err := srv.productRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		srv.log(ctx).Error("Failed to patch product", slog.Any("productID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to patch product")
	}

	return existing, nil
}

// DeleteProduct removes a product.
func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		srv.log(ctx).Error("Failed to delete product", slog.Any("productID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

func applyProductPatch(product *entity.Product, patch usecase.ProductPatch) {
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.PriceNet != nil {
		product.PriceNet = *patch.PriceNet
	}
	if patch.PriceGross != nil {
		product.PriceGross = *patch.PriceGross
	}
	if patch.EstimatedDurationWeeks != nil {
		product.EstimatedDurationWeeks = *patch.EstimatedDurationWeeks
	}
	if patch.UsableAreaM2 != nil {
		product.UsableAreaM2 = *patch.UsableAreaM2
	}
	if patch.NetAreaM2 != nil {
		product.NetAreaM2 = *patch.NetAreaM2
	}
	if patch.GrossVolumeM3 != nil {
		product.GrossVolumeM3 = *patch.GrossVolumeM3
	}
	if patch.IsActive != nil {
		product.IsActive = *patch.IsActive
	}
	if patch.CompanyID != nil {
		product.CompanyID = *patch.CompanyID
	}
}

func productFromInput(input usecase.ProductInput) *entity.Product {
	return &entity.Product{
		Name:                   input.Name,
		Description:            input.Description,
		PriceNet:               input.PriceNet,
		PriceGross:             input.PriceGross,
		EstimatedDurationWeeks: input.EstimatedDurationWeeks,
		UsableAreaM2:           input.UsableAreaM2,
		NetAreaM2:              input.NetAreaM2,
		GrossVolumeM3:          input.GrossVolumeM3,
		IsActive:               input.IsActive,
		CompanyID:              input.CompanyID,
	}
}
