// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"buildops/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response DTOs. Entities are mapped explicitly so nothing sensitive (the
// password hash above all) can leak into a response body.

type addressResponse struct {
	ID              uuid.UUID `json:"id"`
	Street          string    `json:"street"`
	BuildingNumber  string    `json:"building_number"`
	ApartmentNumber *string   `json:"apartment_number"`
	PostalCode      string    `json:"postal_code"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type companyResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Address      *addressResponse `json:"address"`
	PhoneNumber1 string           `json:"phone_number_1"`
	PhoneNumber2 string           `json:"phone_number_2"`
	PhoneNumber3 string           `json:"phone_number_3"`
	VatID        string           `json:"vat_id"`
	RegonID      string           `json:"regon_id"`
	IsActive     bool             `json:"is_active"`
	Timezone     string           `json:"timezone"`
	CreatedBy    *uuid.UUID       `json:"created_by"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type productResponse struct {
	ID                     uuid.UUID       `json:"id"`
	Name                   string          `json:"name"`
	Description            string          `json:"description"`
	PriceNet               decimal.Decimal `json:"price_net"`
	PriceGross             decimal.Decimal `json:"price_gross"`
	EstimatedDurationWeeks int             `json:"estimated_duration_weeks"`
	UsableAreaM2           float64         `json:"usable_area_m2"`
	NetAreaM2              float64         `json:"net_area_m2"`
	GrossVolumeM3          float64         `json:"gross_volume_m3"`
	IsActive               bool            `json:"is_active"`
	Company                uuid.UUID       `json:"company"`
	CreatedBy              *uuid.UUID      `json:"created_by"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

type userResponse struct {
	ID         uuid.UUID  `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	Groups     []string   `json:"groups"`
	Company    *uuid.UUID `json:"company"`
	IsActive   bool       `json:"is_active"`
	LastLogin  *time.Time `json:"last_login"`
	DateJoined time.Time  `json:"date_joined"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type accessResponse struct {
	Access string `json:"access"`
}

func toAddressResponse(address *entity.Address) *addressResponse {
	if address == nil {
		return nil
	}

	return &addressResponse{
		ID:              address.ID,
		Street:          address.Street,
		BuildingNumber:  address.BuildingNumber,
		ApartmentNumber: address.ApartmentNumber,
		PostalCode:      address.PostalCode,
		City:            address.City,
		State:           address.State,
		Country:         address.Country,
		CreatedAt:       address.CreatedAt,
		UpdatedAt:       address.UpdatedAt,
	}
}

func toCompanyResponse(company *entity.Company) *companyResponse {
	return &companyResponse{
		ID:           company.ID,
		Name:         company.Name,
		Email:        company.Email,
		Address:      toAddressResponse(company.Address),
		PhoneNumber1: company.PhoneNumber1,
		PhoneNumber2: company.PhoneNumber2,
		PhoneNumber3: company.PhoneNumber3,
		VatID:        company.VatID,
		RegonID:      company.RegonID,
		IsActive:     company.IsActive,
		Timezone:     company.Timezone,
		CreatedBy:    company.CreatedByID,
		CreatedAt:    company.CreatedAt,
		UpdatedAt:    company.UpdatedAt,
	}
}

func toCompanyResponses(companies []*entity.Company) []*companyResponse {
	out := make([]*companyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, toCompanyResponse(company))
	}

	return out
}

func toProductResponse(product *entity.Product) *productResponse {
	return &productResponse{
		ID:                     product.ID,
		Name:                   product.Name,
		Description:            product.Description,
		PriceNet:               product.PriceNet,
		PriceGross:             product.PriceGross,
		EstimatedDurationWeeks: product.EstimatedDurationWeeks,
		UsableAreaM2:           product.UsableAreaM2,
		NetAreaM2:              product.NetAreaM2,
		GrossVolumeM3:          product.GrossVolumeM3,
		IsActive:               product.IsActive,
		Company:                product.CompanyID,
		CreatedBy:              product.CreatedByID,
		CreatedAt:              product.CreatedAt,
		UpdatedAt:              product.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []*productResponse {
	out := make([]*productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}

	return out
}

func toUserResponse(user *entity.User) *userResponse {
	groups := make([]string, 0, len(user.Groups))
	for _, group := range user.Groups {
		groups = append(groups, group.Name)
	}

	return &userResponse{
		ID:         user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Username:   user.Username,
		Groups:     groups,
		Company:    user.CompanyID,
		IsActive:   user.IsActive,
		LastLogin:  user.LastLogin,
		DateJoined: user.DateJoined,
		UpdatedAt:  user.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []*userResponse {
	out := make([]*userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	return out
}
