/**
 * @description
 * This file defines the identity-side domain models for the payments service.
 * An Identity is any principal able to authenticate: a customer, an employee,
 * an admin, or a manager. Each variant carries its own set of roles it may be
 * created with, so role assignment is validated against a closed enum on every
 * creation path rather than accepted as free text.
 *
 * @notes
 * - PublicIdentity is the only identity shape that crosses the API boundary.
 *   It structurally has no password hash field, so secret material cannot leak
 *   through serialization.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed enum of the roles an identity can hold.
type Role string

const (
	RoleUser     Role = "user"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
)

// Variant identifies which kind of principal an identity record represents.
type Variant string

const (
	VariantUser     Variant = "user"
	VariantEmployee Variant = "employee"
	VariantAdmin    Variant = "admin"
	VariantManager  Variant = "manager"
)

// DefaultRole returns the role assigned when a creation request omits one.
func (v Variant) DefaultRole() Role {
	switch v {
	case VariantEmployee:
		return RoleEmployee
	case VariantAdmin:
		return RoleAdmin
	case VariantManager:
		return RoleManager
	default:
		return RoleUser
	}
}

// Allows reports whether a role may be assigned to an identity of this variant.
func (v Variant) Allows(r Role) bool {
	switch v {
	case VariantUser:
		return r == RoleUser || r == RoleEmployee || r == RoleAdmin
	case VariantEmployee:
		return r == RoleEmployee || r == RoleManager
	case VariantAdmin:
		return r == RoleAdmin
	case VariantManager:
		return r == RoleManager
	}
	return false
}

// Identity represents a principal stored in the identities table.
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Variant      Variant   `json:"variant"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IDNumber     string    `json:"id_number"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicIdentity is the client-facing view of an identity. It deliberately
// has no field for the password hash.
type PublicIdentity struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IDNumber  string    `json:"idNumber"`
	Role      Role      `json:"role"`
}

// Public converts an identity into its client-facing view.
func (i *Identity) Public() PublicIdentity {
	return PublicIdentity{
		ID:        i.ID,
		FirstName: i.FirstName,
		LastName:  i.LastName,
		Email:     i.Email,
		Username:  i.Username,
		IDNumber:  i.IDNumber,
		Role:      i.Role,
	}
}

// Claims is the decoded payload of a verified auth token.
type Claims struct {
	IdentityID uuid.UUID
	Username   string
	Role       Role
}

// RegisterRequest is the DTO for registration and privileged-creation requests.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	IDNumber  string `json:"idNumber"`
	Role      string `json:"role,omitempty"`
}

// LoginRequest is the DTO for login requests.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
