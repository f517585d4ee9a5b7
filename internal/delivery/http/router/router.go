// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"buildops/internal/delivery/http/middleware"
	"buildops/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CompanyHandler *handler.CompanyHandler
	ProductHandler *handler.ProductHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	companyHandler *handler.CompanyHandler
	productHandler *handler.ProductHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		companyHandler: params.CompanyHandler,
		productHandler: params.ProductHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Token endpoints and open registration
	e.POST("/token", r.authHandler.Token)
	e.POST("/token/refresh", r.authHandler.Refresh)
	e.POST("/register", r.authHandler.Register)

	authed := r.authMiddleware.Authenticate

	e.GET("/users/me", r.authHandler.Me, authed)

	companyGroup := e.Group("/company", authed)
	{
		companyGroup.GET("/", r.companyHandler.List)
		companyGroup.POST("/", r.companyHandler.Create)
		companyGroup.GET("/:id/", r.companyHandler.Get)
		companyGroup.PUT("/:id/", r.companyHandler.Update)
		companyGroup.PATCH("/:id/", r.companyHandler.Patch)
		companyGroup.DELETE("/:id/", r.companyHandler.Delete)
	}

	productGroup := e.Group("/products", authed)
	{
		productGroup.GET("/", r.productHandler.List)
		productGroup.POST("/", r.productHandler.Create)
		productGroup.GET("/:id/", r.productHandler.Get)
		productGroup.PUT("/:id/", r.productHandler.Update)
		productGroup.PATCH("/:id/", r.productHandler.Patch)
		productGroup.DELETE("/:id/", r.productHandler.Delete)
	}

	userGroup := e.Group("/user", authed)
	{
		userGroup.GET("/", r.userHandler.List)
		userGroup.POST("/", r.userHandler.Create)
		userGroup.GET("/:id/", r.userHandler.Get)
		userGroup.PUT("/:id/", r.userHandler.Update)
		userGroup.PATCH("/:id/", r.userHandler.Patch)
		userGroup.DELETE("/:id/", r.userHandler.Delete)
	}
}
