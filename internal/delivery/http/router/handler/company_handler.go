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

// CompanyHandler holds dependencies for company-related handlers.
type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

// NewCompanyHandler is the constructor for CompanyHandler, injected by Fx.
func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// List handles the filtered, paginated company listing.
func (h *CompanyHandler) List(c echo.Context) error {
	listQuery := repository.CompanyListQuery{
		IDs:               multiParam(c, "id"),
		Name:              c.QueryParam("name"),
		Email:             c.QueryParam("email"),
		Phone:             c.QueryParam("phone"),
		VatID:             c.QueryParam("vat_id"),
		RegonID:           c.QueryParam("regon_id"),
		AddressStreet:     c.QueryParam("street"),
		AddressCity:       c.QueryParam("city"),
		AddressPostalCode: c.QueryParam("postal_code"),
		IsActive:          multiParam(c, "is_active"),
		CreatedAt:         multiParam(c, "created_at"),
		Search:            c.QueryParam("search"),
		Ordering:          c.QueryParam("ordering"),
		Page:              intParam(c, "page"),
		PageSize:          intParam(c, "page_size"),
	}

	output, err := h.uc.ListCompanies(c.Request().Context(), listQuery)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.ListData{
		Count:    output.Total,
		Page:     output.Page,
		PageSize: output.PageSize,
		Results:  toCompanyResponses(output.Companies),
	}, "")
}

// Create handles the company creation request with its nested address.
func (h *CompanyHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	var input usecase.CompanyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid company input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	company, err := h.uc.CreateCompany(c.Request().Context(), principal, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCompanyResponse(company), "Company created successfully")
}

// Get handles the single company read.
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrCompanyNotFound
	}

	company, err := h.uc.GetCompany(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCompanyResponse(company), "")
}

// Update handles the full company overwrite.
func (h *CompanyHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrCompanyNotFound
	}

	var input usecase.CompanyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid company input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	company, err := h.uc.UpdateCompany(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCompanyResponse(company), "Company updated successfully")
}

// Patch handles the partial company update. Absent fields keep their stored
// values.
func (h *CompanyHandler) Patch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrCompanyNotFound
	}

	var patch usecase.CompanyPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid company input")
	}
	if err := c.Validate(patch); err != nil {
		return err
	}

	company, err := h.uc.PatchCompany(c.Request().Context(), id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCompanyResponse(company), "Company updated successfully")
}

// Delete handles the company deletion. Referenced products block it.
func (h *CompanyHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrCompanyNotFound
	}

	if err := h.uc.DeleteCompany(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
