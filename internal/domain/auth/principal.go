// Package auth defines the authenticated identity passed explicitly through
// the call chain. There is no framework-global current user; every scoping
// decision receives a Principal as an argument.
package auth

import "github.com/google/uuid"

// Principal is the resolved identity of the request. CompanyID is the tenant
// every user query is scoped to; nil means the principal has no company, in
// which case the effective scope is users without a company.
type Principal struct {
	ID        uuid.UUID
	Email     string
	CompanyID *uuid.UUID
}
