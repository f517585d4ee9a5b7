package validator

import (
	"strings"
	"testing"

	domainerrors "buildops/internal/domain/errors"
	"buildops/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompanyInput() usecase.CompanyInput {
	return usecase.CompanyInput{
		Name:  "Budmax",
		Email: "office@budmax.example",
		Address: usecase.AddressInput{
			Street:         "Krakowska",
			BuildingNumber: "12A",
			PostalCode:     "30-001",
			City:           "Krakow",
			State:          "Malopolska",
			Country:        "Poland",
		},
	}
}

func TestValidator_AcceptsMaxLengthName(t *testing.T) {
	input := validCompanyInput()
	input.Name = strings.Repeat("a", 255)

	assert.NoError(t, New().Validate(input))
}

func TestValidator_RejectsOverlongName(t *testing.T) {
	input := validCompanyInput()
	input.Name = strings.Repeat("a", 256)

	err := New().Validate(input)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "name")
}

func TestValidator_RejectsMissingEmail(t *testing.T) {
	input := validCompanyInput()
	input.Email = ""

	err := New().Validate(input)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "this field is required", validationErr.Fields["email"])
}

func TestValidator_RejectsMalformedEmail(t *testing.T) {
	input := validCompanyInput()
	input.Email = "not-an-email"

	err := New().Validate(input)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
}

func TestValidator_ValidatesNestedAddress(t *testing.T) {
	input := validCompanyInput()
	input.Address.Street = ""

	err := New().Validate(input)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "street")
}

func TestValidator_AcceptsSingleFieldPatch(t *testing.T) {
	name := "Budmax Renamed"

	assert.NoError(t, New().Validate(usecase.CompanyPatch{Name: &name}))
}

func TestValidator_PatchStillChecksSuppliedFields(t *testing.T) {
	email := "not-an-email"

	err := New().Validate(usecase.CompanyPatch{Email: &email})
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
}

func TestValidator_RejectsShortPassword(t *testing.T) {
	input := usecase.RegisterInput{
		Email:    "jan@budmax.example",
		Password: "short",
	}

	err := New().Validate(input)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "must be at least 8 characters", validationErr.Fields["password"])
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "phone_number_1", toSnake("PhoneNumber1"))
	assert.Equal(t, "vat_id", toSnake("VatID"))
	assert.Equal(t, "email", toSnake("Email"))
	assert.Equal(t, "usable_area_m2", toSnake("UsableAreaM2"))
}
