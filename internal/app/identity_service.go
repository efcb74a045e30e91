/**
 * @description
 * Core business logic for the credential lifecycle: registration with
 * password hashing, login with verification and token issuance, privileged
 * identity creation, and profile lookup. Handlers stay thin; every rule
 * lives here or in the validate package.
 *
 * @dependencies
 * - golang.org/x/crypto/bcrypt: password hashing.
 * - internal/auth, internal/store, internal/validate, internal/domain.
 */

package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/swiftremit/payments-service/internal/auth"
	"github.com/swiftremit/payments-service/internal/domain"
	"github.com/swiftremit/payments-service/internal/store"
	"github.com/swiftremit/payments-service/internal/validate"
)

var (
	// ErrInvalidCredentials is deliberately generic: callers must never learn
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRoleNotAllowed rejects a role outside the variant's allowed set.
	ErrRoleNotAllowed = errors.New("role not allowed for this identity type")
)

// ValidationError is a field-specific input rejection, reported before any
// persistence side effect.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const accountNumberRetries = 5

// IdentityService owns registration, login, and privileged creation.
type IdentityService struct {
	repo       store.Repository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewIdentityService creates the service with its dependencies.
func NewIdentityService(repo store.Repository, tokens *auth.TokenManager, bcryptCost int) *IdentityService {
	if bcryptCost == 0 {
		bcryptCost = 10
	}
	return &IdentityService{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// RegisterResult carries the created identity and its zero-balance account.
type RegisterResult struct {
	Identity domain.PublicIdentity
	Account  *domain.Account
}

// LoginResult carries the issued token, the identity summary, and the account.
type LoginResult struct {
	Token    string
	Identity domain.PublicIdentity
	Account  *domain.Account
}

func validateRegistration(req domain.RegisterRequest) error {
	if !validate.Password(req.Password) {
		return &ValidationError{Field: "password", Message: "Password must be at least 8 characters and contain a letter, a digit, and a symbol."}
	}
	if !validate.Name(req.FirstName) {
		return &ValidationError{Field: "firstName", Message: "Invalid first name. Only letters and spaces can be used."}
	}
	if !validate.Name(req.LastName) {
		return &ValidationError{Field: "lastName", Message: "Invalid last name. Only letters and spaces can be used."}
	}
	if !validate.Email(req.Email) {
		return &ValidationError{Field: "email", Message: "Invalid email format."}
	}
	if !validate.Username(req.Username) {
		return &ValidationError{Field: "username", Message: "Invalid username. Use 3 to 20 characters."}
	}
	if !validate.IDNumber(req.IDNumber) {
		return &ValidationError{Field: "idNumber", Message: "Invalid ID number. Must be 13 digits."}
	}
	return nil
}

func (s *IdentityService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// generateAccountNumber produces "AC" plus a crypto-random 10-digit number.
func generateAccountNumber() (string, error) {
	max := big.NewInt(9999999999 - 1000000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("AC%d", n.Int64()+1000000000), nil
}

// Register validates the request, hashes the password, and persists a new
// user identity together with its zero-balance account. Nothing is written
// when any field fails validation. Account number generation retries on a
// store-level uniqueness collision.
func (s *IdentityService) Register(ctx context.Context, req domain.RegisterRequest) (*RegisterResult, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if req.Role != "" {
		role = domain.Role(req.Role)
		if !domain.VariantUser.Allows(role) {
			return nil, ErrRoleNotAllowed
		}
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		ID:           uuid.New(),
		Variant:      domain.VariantUser,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		IDNumber:     req.IDNumber,
		Role:         role,
	}

	var account *domain.Account
	for attempt := 0; attempt < accountNumberRetries; attempt++ {
		accountNumber, err := generateAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}
		account = &domain.Account{
			ID:            uuid.New(),
			IdentityID:    identity.ID,
			AccountNumber: accountNumber,
			Balance:       0,
		}
		err = s.repo.CreateIdentityWithAccount(ctx, identity, account)
		if err == nil {
			return &RegisterResult{Identity: identity.Public(), Account: account}, nil
		}
		if errors.Is(err, store.ErrDuplicate) && attempt < accountNumberRetries-1 {
			// Either the identity or the account number collided. Duplicate
			// email/username will collide again and exhaust the retries.
			log.Printf("level=warn component=identity msg=\"duplicate on create; retrying with fresh account number\" attempt=%d", attempt+1)
			continue
		}
		return nil, err
	}
	return nil, store.ErrDuplicate
}

// Login verifies the credentials and issues a signed token embedding the
// identity id, username, and role.
func (s *IdentityService) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	identity, err := s.repo.FindIdentityByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(identity.ID, identity.Username, identity.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	// A privileged identity has no account; login still succeeds.
	account, err := s.repo.FindAccountByIdentityID(ctx, identity.ID)
	if err != nil && !errors.Is(err, store.ErrAccountNotFound) {
		return nil, err
	}

	return &LoginResult{Token: token, Identity: identity.Public(), Account: account}, nil
}

// CreatePrivileged creates an employee, admin, or manager identity. The
// requested role is validated against the variant's allowed set on every
// path; an omitted role takes the variant default.
func (s *IdentityService) CreatePrivileged(ctx context.Context, variant domain.Variant, req domain.RegisterRequest) (*domain.PublicIdentity, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	role := variant.DefaultRole()
	if req.Role != "" {
		role = domain.Role(req.Role)
	}
	if !variant.Allows(role) {
		return nil, ErrRoleNotAllowed
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		ID:           uuid.New(),
		Variant:      variant,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		IDNumber:     req.IDNumber,
		Role:         role,
	}
	if err := s.repo.CreateIdentity(ctx, identity); err != nil {
		return nil, err
	}

	public := identity.Public()
	return &public, nil
}

// Profile carries an identity view joined with its account.
type Profile struct {
	Identity domain.PublicIdentity
	Account  *domain.Account
}

// GetProfile returns the identity joined with its account. The password
// hash never appears in the result.
func (s *IdentityService) GetProfile(ctx context.Context, identityID uuid.UUID) (*Profile, error) {
	identity, err := s.repo.FindIdentityByID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	account, err := s.repo.FindAccountByIdentityID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return &Profile{Identity: identity.Public(), Account: account}, nil
}
