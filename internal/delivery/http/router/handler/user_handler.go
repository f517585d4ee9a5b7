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

// UserHandler holds dependencies for the tenant-scoped user handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List handles the filtered, paginated user listing inside the principal's
// company.
func (h *UserHandler) List(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	listQuery := repository.UserListQuery{
		FirstName:  c.QueryParam("first_name"),
		LastName:   c.QueryParam("last_name"),
		Email:      c.QueryParam("email"),
		Groups:     multiParam(c, "groups"),
		IsActive:   multiParam(c, "is_active"),
		LastLogin:  multiParam(c, "last_login"),
		DateJoined: multiParam(c, "date_joined"),
		Search:     c.QueryParam("search"),
		Ordering:   c.QueryParam("ordering"),
		Page:       intParam(c, "page"),
		PageSize:   intParam(c, "page_size"),
	}

	output, err := h.uc.ListUsers(c.Request().Context(), principal, listQuery)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.ListData{
		Count:    output.Total,
		Page:     output.Page,
		PageSize: output.PageSize,
		Results:  toUserResponses(output.Users),
	}, "")
}

// Create handles user creation inside the principal's company.
func (h *UserHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	var input usecase.UserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	user, err := h.uc.CreateUser(c.Request().Context(), principal, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user), "User created successfully")
}

// Get handles the single user read. Users of other tenants read as not found.
func (h *UserHandler) Get(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrUserNotFound
	}

	user, err := h.uc.GetUser(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "")
}

// Update handles the full user overwrite inside the principal's company.
func (h *UserHandler) Update(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrUserNotFound
	}

	var input usecase.UserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), principal, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "User updated successfully")
}

// Patch handles the partial user update inside the principal's company.
// Absent fields keep their stored values.
func (h *UserHandler) Patch(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrUserNotFound
	}

	var patch usecase.UserPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(patch); err != nil {
		return err
	}

	user, err := h.uc.PatchUser(c.Request().Context(), principal, id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "User updated successfully")
}

// Delete handles user deletion inside the principal's company.
func (h *UserHandler) Delete(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrUserNotFound
	}

	if err := h.uc.DeleteUser(c.Request().Context(), principal, id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
