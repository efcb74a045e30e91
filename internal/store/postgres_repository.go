/**
 * @description
 * PostgreSQL implementation of the Repository interface. All money movement
 * happens inside database transactions with row-level locks, and every query
 * is parameterized.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: PostgreSQL driver.
 * - internal/domain: domain models.
 */

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftremit/payments-service/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

// PostgresRepository is a concrete implementation of Repository for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CreateIdentityWithAccount persists a new identity and its zero-balance
// account atomically. A unique violation on email, username, or account
// number surfaces as ErrDuplicate.
func (r *PostgresRepository) CreateIdentityWithAccount(ctx context.Context, identity *domain.Identity, account *domain.Account) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO identities (id, variant, first_name, last_name, email, username, password_hash, id_number, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, identity.ID, identity.Variant, identity.FirstName, identity.LastName, identity.Email, identity.Username, identity.PasswordHash, identity.IDNumber, identity.Role); err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO accounts (id, identity_id, account_number, balance)
		VALUES ($1, $2, $3, $4)
	`, account.ID, account.IdentityID, account.AccountNumber, account.Balance); err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}

	return tx.Commit(ctx)
}

// CreateIdentity persists a privileged identity (employee, admin, manager)
// without an account.
func (r *PostgresRepository) CreateIdentity(ctx context.Context, identity *domain.Identity) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO identities (id, variant, first_name, last_name, email, username, password_hash, id_number, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, identity.ID, identity.Variant, identity.FirstName, identity.LastName, identity.Email, identity.Username, identity.PasswordHash, identity.IDNumber, identity.Role)
	if err != nil && isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

const identityColumns = `id, variant, first_name, last_name, email, username, password_hash, id_number, role, created_at`

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var identity domain.Identity
	err := row.Scan(
		&identity.ID, &identity.Variant, &identity.FirstName, &identity.LastName,
		&identity.Email, &identity.Username, &identity.PasswordHash,
		&identity.IDNumber, &identity.Role, &identity.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// FindIdentityByUsername retrieves an identity by its unique username.
func (r *PostgresRepository) FindIdentityByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	row := r.db.QueryRow(ctx, `SELECT `+identityColumns+` FROM identities WHERE username = $1`, username)
	return scanIdentity(row)
}

// FindIdentityByID retrieves an identity by its primary key.
func (r *PostgresRepository) FindIdentityByID(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	row := r.db.QueryRow(ctx, `SELECT `+identityColumns+` FROM identities WHERE id = $1`, identityID)
	return scanIdentity(row)
}

// FindAccountByIdentityID retrieves the account owned by an identity.
func (r *PostgresRepository) FindAccountByIdentityID(ctx context.Context, identityID uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(ctx, `
		SELECT id, identity_id, account_number, balance, created_at
		FROM accounts WHERE identity_id = $1
	`, identityID).Scan(&account.ID, &account.IdentityID, &account.AccountNumber, &account.Balance, &account.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// CreditAccount adds to an account's balance and returns the new balance.
func (r *PostgresRepository) CreditAccount(ctx context.Context, identityID uuid.UUID, amount int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `
		UPDATE accounts SET balance = balance + $1 WHERE identity_id = $2
		RETURNING balance
	`, amount, identityID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}
	return balance, nil
}

// TransferFunds debits the sender's account and inserts the transaction
// record in one database transaction. The account row is locked FOR UPDATE
// so a concurrent transfer cannot overdraw, and a failure at any step rolls
// back the debit. Returns the sender's new balance.
func (r *PostgresRepository) TransferFunds(ctx context.Context, identityID uuid.UUID, txRecord *domain.Transaction) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE identity_id = $1 FOR UPDATE`, identityID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}

	if balance < txRecord.Amount {
		return 0, ErrInsufficientFunds
	}
	newBalance := balance - txRecord.Amount

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $1 WHERE identity_id = $2`, newBalance, identityID); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO transactions (id, sender_id, recipient_name, recipients_bank, recipients_account_number, amount, swift_code, transaction_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, txRecord.ID, txRecord.SenderID, txRecord.RecipientName, txRecord.RecipientsBank, txRecord.RecipientsAccountNumber, txRecord.Amount, txRecord.SwiftCode, txRecord.TransactionType, txRecord.Status); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBalance, nil
}

const transactionColumns = `id, sender_id, recipient_name, recipients_bank, recipients_account_number, amount, swift_code, transaction_type, status, created_at`

func (r *PostgresRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(
			&tx.ID, &tx.SenderID, &tx.RecipientName, &tx.RecipientsBank,
			&tx.RecipientsAccountNumber, &tx.Amount, &tx.SwiftCode,
			&tx.TransactionType, &tx.Status, &tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// FindTransactionsByIdentityID retrieves an identity's transactions, newest first.
func (r *PostgresRepository) FindTransactionsByIdentityID(ctx context.Context, identityID uuid.UUID) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE sender_id = $1 ORDER BY created_at DESC`,
		identityID)
}

// FindTransactionsByStatus retrieves all transactions in a given status, newest first.
func (r *PostgresRepository) FindTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE status = $1 ORDER BY created_at DESC`,
		status)
}

// FindAllTransactions retrieves every transaction, newest first.
func (r *PostgresRepository) FindAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`)
}

// UpdateTransactionStatus persists a new status for an existing transaction.
func (r *PostgresRepository) UpdateTransactionStatus(ctx context.Context, transactionID uuid.UUID, status domain.TransactionStatus) error {
	result, err := r.db.Exec(ctx, `UPDATE transactions SET status = $1 WHERE id = $2`, status, transactionID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// FlagStaleTransactions marks pending transactions older than the cutoff as
// flagged so operators can reconcile records orphaned by a crash. Returns
// the number of rows flagged.
func (r *PostgresRepository) FlagStaleTransactions(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := r.db.Exec(ctx, `
		UPDATE transactions SET status = $1 WHERE status = $2 AND created_at < $3
	`, domain.StatusFlagged, domain.StatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
