package handler

import (
	"net/http"

	"buildops/internal/delivery/http/middleware"
	"buildops/internal/delivery/http/response"
	domainerrors "buildops/internal/domain/errors"
	"buildops/internal/domain/repository"
	"buildops/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for product-related handlers.
type ProductHandler struct {
	uc usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List handles the filtered, paginated product listing.
func (h *ProductHandler) List(c echo.Context) error {
	listQuery := repository.ProductListQuery{
		Name:          c.QueryParam("name"),
		UsableAreaMin: c.QueryParam("usable_area_m2_min"),
		UsableAreaMax: c.QueryParam("usable_area_m2_max"),
		IsActive:      multiParam(c, "is_active"),
		CreatedAt:     multiParam(c, "created_at"),
		Search:        c.QueryParam("search"),
		Ordering:      c.QueryParam("ordering"),
		Page:          intParam(c, "page"),
		PageSize:      intParam(c, "page_size"),
	}

	output, err := h.uc.ListProducts(c.Request().Context(), listQuery)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.ListData{
		Count:    output.Total,
		Page:     output.Page,
		PageSize: output.PageSize,
		Results:  toProductResponses(output.Products),
	}, "")
}

// Create handles the product creation request.
func (h *ProductHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	var input usecase.ProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), principal, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created successfully")
}

// Get handles the single product read.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrProductNotFound
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "")
}

// Update handles the full product overwrite.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrProductNotFound
	}

	var input usecase.ProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}

// Patch handles the partial product update. Absent fields keep their stored
// values.
func (h *ProductHandler) Patch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrProductNotFound
	}

	var patch usecase.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(patch); err != nil {
		return err
	}

	product, err := h.uc.PatchProduct(c.Request().Context(), id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}

// Delete handles the product deletion.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrProductNotFound
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
