package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyUpdateColumns_WriteAddressReference(t *testing.T) {
	// The update path may create a fresh address row when the old one is gone;
	// without address_id in the column list that row would be left orphaned.
	assert.Contains(t, companyUpdateColumns, "address_id")
}

func TestCompanyUpdateColumns_KeepCreatorAndTimestamps(t *testing.T) {
	assert.NotContains(t, companyUpdateColumns, "created_by_id")
	assert.NotContains(t, companyUpdateColumns, "created_at")
}
