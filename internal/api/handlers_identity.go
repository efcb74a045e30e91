/**
 * @description
 * HTTP handlers for the credential lifecycle: registration, login,
 * privileged identity creation, and profile lookup. Handlers decode the
 * request, call the identity service, and map service errors to HTTP
 * status codes; no business rule lives here.
 */

package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/swiftremit/payments-service/internal/app"
	"github.com/swiftremit/payments-service/internal/domain"
	"github.com/swiftremit/payments-service/internal/store"
)

// IdentityHandler exposes the identity service over HTTP.
type IdentityHandler struct {
	identities *app.IdentityService
}

// NewIdentityHandler creates the handler.
func NewIdentityHandler(identities *app.IdentityService) *IdentityHandler {
	return &IdentityHandler{identities: identities}
}

type accountResponse struct {
	AccountNumber string  `json:"accountNumber"`
	Balance       float64 `json:"balance"`
}

func toAccountResponse(account *domain.Account) *accountResponse {
	if account == nil {
		return nil
	}
	return &accountResponse{
		AccountNumber: account.AccountNumber,
		Balance:       centsToDecimal(account.Balance),
	}
}

// identityError maps identity-service failures to HTTP responses. Duplicate
// username or email surfaces as 409 so the client can tell a conflict apart
// from a malformed request.
func identityError(w http.ResponseWriter, err error) {
	var validationErr *app.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, app.ErrRoleNotAllowed):
		writeError(w, http.StatusBadRequest, "Invalid role specified.")
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password.")
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, "Username or email already exists.")
	case errors.Is(err, store.ErrIdentityNotFound), errors.Is(err, store.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	default:
		log.Printf("level=error component=api msg=\"identity operation failed\" err=%v", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred.")
	}
}

// Register handles POST /user/register.
func (h *IdentityHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.identities.Register(r.Context(), req)
	if err != nil {
		identityError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully.",
		"user":    result.Identity,
		"account": toAccountResponse(result.Account),
	})
}

// Login handles POST /user/login.
func (h *IdentityHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.identities.Login(r.Context(), req)
	if err != nil {
		identityError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful.",
		"token":   result.Token,
		"user":    result.Identity,
		"account": toAccountResponse(result.Account),
	})
}

// createPrivileged is the shared body of the employee, admin, and manager
// creation endpoints.
func (h *IdentityHandler) createPrivileged(variant domain.Variant, successMessage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		identity, err := h.identities.CreatePrivileged(r.Context(), variant, req)
		if err != nil {
			identityError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message": successMessage,
			"user":    identity,
		})
	}
}

// CreateEmployee handles POST /user/createEmployee.
func (h *IdentityHandler) CreateEmployee() http.HandlerFunc {
	return h.createPrivileged(domain.VariantEmployee, "Employee created successfully.")
}

// CreateAdmin handles POST /user/createAdmin.
func (h *IdentityHandler) CreateAdmin() http.HandlerFunc {
	return h.createPrivileged(domain.VariantAdmin, "Admin created successfully.")
}

// CreateManager handles POST /user/createManager.
func (h *IdentityHandler) CreateManager() http.HandlerFunc {
	return h.createPrivileged(domain.VariantManager, "Manager created successfully.")
}

// Profile handles GET /user/profile for the authenticated identity.
func (h *IdentityHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	profile, err := h.identities.GetProfile(r.Context(), claims.IdentityID)
	if err != nil {
		identityError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":    profile.Identity,
		"account": toAccountResponse(profile.Account),
	})
}
