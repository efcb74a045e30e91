/**
 * @description
 * This file defines the Repository interface: the contract for all data
 * access the payments service needs. The interface decouples business logic
 * from PostgreSQL so services can be exercised against in-memory stubs in
 * tests.
 */

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/swiftremit/payments-service/internal/domain"
)

var (
	ErrIdentityNotFound    = errors.New("identity not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrDuplicate           = errors.New("duplicate unique field")
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	// Identity and account methods
	CreateIdentityWithAccount(ctx context.Context, identity *domain.Identity, account *domain.Account) error
	CreateIdentity(ctx context.Context, identity *domain.Identity) error
	FindIdentityByUsername(ctx context.Context, username string) (*domain.Identity, error)
	FindIdentityByID(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error)
	FindAccountByIdentityID(ctx context.Context, identityID uuid.UUID) (*domain.Account, error)
	CreditAccount(ctx context.Context, identityID uuid.UUID, amount int64) (int64, error)

	// Transaction methods
	// TransferFunds debits the sender's account and records the transaction
	// in a single database transaction: either both writes land or neither.
	TransferFunds(ctx context.Context, identityID uuid.UUID, tx *domain.Transaction) (int64, error)
	FindTransactionsByIdentityID(ctx context.Context, identityID uuid.UUID) ([]domain.Transaction, error)
	FindTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
	FindAllTransactions(ctx context.Context) ([]domain.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, transactionID uuid.UUID, status domain.TransactionStatus) error
	FlagStaleTransactions(ctx context.Context, olderThan time.Duration) (int64, error)
}
