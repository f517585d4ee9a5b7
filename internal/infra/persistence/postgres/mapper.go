package postgres

import (
	"buildops/internal/domain/entity"
	"buildops/internal/infra/persistence/model"
)

// Mapper helpers between persistence models and pure domain entities. Every
// repository returns entities only; GORM structs never leave this package.

func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:              data.ID,
		Street:          data.Street,
		BuildingNumber:  data.BuildingNumber,
		ApartmentNumber: data.ApartmentNumber,
		PostalCode:      data.PostalCode,
		City:            data.City,
		State:           data.State,
		Country:         data.Country,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:              data.ID,
		Street:          data.Street,
		BuildingNumber:  data.BuildingNumber,
		ApartmentNumber: data.ApartmentNumber,
		PostalCode:      data.PostalCode,
		City:            data.City,
		State:           data.State,
		Country:         data.Country,
	}
}

func toCompanyDomain(data *model.CompanyModel) *entity.Company {
	if data == nil {
		return nil
	}

	return &entity.Company{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Address:      toAddressDomain(data.Address),
		PhoneNumber1: data.PhoneNumber1,
		PhoneNumber2: data.PhoneNumber2,
		PhoneNumber3: data.PhoneNumber3,
		VatID:        data.VatID,
		RegonID:      data.RegonID,
		IsActive:     data.IsActive,
		Timezone:     data.Timezone,
		CreatedByID:  data.CreatedByID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromCompanyDomain(data *entity.Company) *model.CompanyModel {
	if data == nil {
		return nil
	}

	companyM := &model.CompanyModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PhoneNumber1: data.PhoneNumber1,
		PhoneNumber2: data.PhoneNumber2,
		PhoneNumber3: data.PhoneNumber3,
		VatID:        data.VatID,
		RegonID:      data.RegonID,
		IsActive:     data.IsActive,
		Timezone:     data.Timezone,
		CreatedByID:  data.CreatedByID,
	}
	if data.Address != nil {
		addressID := data.Address.ID
		companyM.AddressID = &addressID
	}

	return companyM
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:                     data.ID,
		Name:                   data.Name,
		Description:            data.Description,
		PriceNet:               data.PriceNet,
		PriceGross:             data.PriceGross,
		EstimatedDurationWeeks: data.EstimatedDurationWeeks,
		UsableAreaM2:           data.UsableAreaM2,
		NetAreaM2:              data.NetAreaM2,
		GrossVolumeM3:          data.GrossVolumeM3,
		IsActive:               data.IsActive,
		CompanyID:              data.CompanyID,
		CreatedByID:            data.CreatedByID,
		CreatedAt:              data.CreatedAt,
		UpdatedAt:              data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:                     data.ID,
		Name:                   data.Name,
		Description:            data.Description,
		PriceNet:               data.PriceNet,
		PriceGross:             data.PriceGross,
		EstimatedDurationWeeks: data.EstimatedDurationWeeks,
		UsableAreaM2:           data.UsableAreaM2,
		NetAreaM2:              data.NetAreaM2,
		GrossVolumeM3:          data.GrossVolumeM3,
		IsActive:               data.IsActive,
		CompanyID:              data.CompanyID,
		CreatedByID:            data.CreatedByID,
	}
}

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	groups := make([]*entity.Group, 0, len(data.Groups))
	for _, groupM := range data.Groups {
		groups = append(groups, toGroupDomain(groupM))
	}

	return &entity.User{
		ID:           data.ID,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Groups:       groups,
		CompanyID:    data.CompanyID,
		IsActive:     data.IsActive,
		LastLogin:    data.LastLogin,
		DateJoined:   data.DateJoined,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	groups := make([]*model.GroupModel, 0, len(data.Groups))
	for _, group := range data.Groups {
		groups = append(groups, fromGroupDomain(group))
	}

	return &model.UserModel{
		ID:           data.ID,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Groups:       groups,
		CompanyID:    data.CompanyID,
		IsActive:     data.IsActive,
		LastLogin:    data.LastLogin,
	}
}

func toGroupDomain(data *model.GroupModel) *entity.Group {
	if data == nil {
		return nil
	}

	return &entity.Group{ID: data.ID, Name: data.Name}
}

func fromGroupDomain(data *entity.Group) *model.GroupModel {
	if data == nil {
		return nil
	}

	return &model.GroupModel{ID: data.ID, Name: data.Name}
}
