package models

// User roles. Identity itself lives in an external store; the backend only
// trusts the (id, role) pair resolved from the bearer token.
const (
	RoleCustomer = "Customer"
	RoleVendor   = "Vendor"
	RoleCSR      = "CSR"
	RoleAdmin    = "Admin"
)

// User is the subset of the identity store used for display enrichment.
type User struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
	Role  string `json:"role" db:"role"`
}
