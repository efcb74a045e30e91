/**
 * @description
 * Core business logic for the funds-transfer workflow: international payment
 * with validation and atomic debit+record, account top-up, transaction
 * history queries, and transaction status transitions.
 *
 * Recipient-side crediting is deliberately not performed; this service only
 * debits the sender and records the instruction for downstream settlement.
 */

package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/swiftremit/payments-service/internal/domain"
	"github.com/swiftremit/payments-service/internal/store"
	"github.com/swiftremit/payments-service/internal/validate"
	"github.com/swiftremit/payments-service/pkg/rabbitmq"
)

// ErrInvalidStatus rejects a status outside the updatable enum.
var ErrInvalidStatus = errors.New("invalid transaction status")

// TransferService owns payments, balances, and transaction queries.
type TransferService struct {
	repo     store.Repository
	producer rabbitmq.Publisher
}

// NewTransferService creates the service. The producer may be nil when the
// message broker is unavailable; events are then skipped.
func NewTransferService(repo store.Repository, producer rabbitmq.Publisher) *TransferService {
	return &TransferService{repo: repo, producer: producer}
}

func validatePayment(req domain.PaymentRequest) error {
	if !validate.Name(req.RecipientName) {
		return &ValidationError{Field: "recipientName", Message: "Invalid recipient name. It must contain only letters and be between 1 and 50 characters."}
	}
	if !validate.Name(req.RecipientsBank) {
		return &ValidationError{Field: "recipientsBank", Message: "Invalid recipient bank. It must contain only letters and be between 1 and 50 characters."}
	}
	if !validate.AccountNumber(req.RecipientsAccountNumber) {
		return &ValidationError{Field: "recipientsAccountNumber", Message: "Invalid recipient account number."}
	}
	if !validate.Amount(req.AmountToTransfer) {
		return &ValidationError{Field: "amountToTransfer", Message: "Invalid amount. It must be a positive number with at most two decimal places."}
	}
	if !validate.SwiftCode(req.SwiftCode) {
		return &ValidationError{Field: "swiftCode", Message: "Invalid SWIFT code. It must be 8 to 11 alphanumeric characters."}
	}
	return nil
}

// InternationalPayment validates the transfer fields, then debits the
// sender and records the transaction in one atomic store call: a crash or
// concurrent request can never leave a debited balance without its ledger
// record.
func (s *TransferService) InternationalPayment(ctx context.Context, senderID uuid.UUID, req domain.PaymentRequest) (*domain.PaymentResult, error) {
	if err := validatePayment(req); err != nil {
		return nil, err
	}
	status, ok := domain.ParseTransactionStatus(req.Status)
	if !ok {
		return nil, &ValidationError{Field: "status", Message: "Invalid status. Status must be one of: 'pending', 'confirmed', 'denied', 'flagged'."}
	}

	sender, err := s.repo.FindIdentityByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	txRecord := &domain.Transaction{
		ID:                      uuid.New(),
		SenderID:                sender.ID,
		RecipientName:           req.RecipientName,
		RecipientsBank:          req.RecipientsBank,
		RecipientsAccountNumber: req.RecipientsAccountNumber,
		Amount:                  validate.ToCents(req.AmountToTransfer),
		SwiftCode:               req.SwiftCode,
		TransactionType:         req.TransactionType,
		Status:                  status,
	}

	newBalance, err := s.repo.TransferFunds(ctx, sender.ID, txRecord)
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		event := rabbitmq.PaymentEvent{
			TransactionID: txRecord.ID,
			SenderID:      sender.ID,
			Amount:        txRecord.Amount,
			SwiftCode:     txRecord.SwiftCode,
			Status:        string(txRecord.Status),
			Timestamp:     time.Now(),
		}
		if err := s.producer.PublishPaymentEvent(ctx, event); err != nil {
			// The debit and record are already durable; the event is advisory.
			log.Printf("level=warn component=transfer msg=\"payment event publish failed\" transaction_id=%s err=%v", txRecord.ID, err)
		}
	}

	return &domain.PaymentResult{NewBalance: newBalance, TransactionID: txRecord.ID}, nil
}

// AddBalance credits the identity's account and returns the new balance.
// No upper bound is enforced.
func (s *TransferService) AddBalance(ctx context.Context, identityID uuid.UUID, amount float64) (int64, error) {
	if !validate.Amount(amount) {
		return 0, &ValidationError{Field: "amount", Message: "Invalid amount. Please enter a valid positive number."}
	}
	return s.repo.CreditAccount(ctx, identityID, validate.ToCents(amount))
}

// ListTransactions returns the identity's own transactions, newest first.
func (s *TransferService) ListTransactions(ctx context.Context, identityID uuid.UUID) ([]domain.Transaction, error) {
	if _, err := s.repo.FindIdentityByID(ctx, identityID); err != nil {
		return nil, err
	}
	return s.repo.FindTransactionsByIdentityID(ctx, identityID)
}

// ListPending returns all pending transactions, newest first. The filter
// uses the same enum constant the write path stores.
func (s *TransferService) ListPending(ctx context.Context) ([]domain.Transaction, error) {
	return s.repo.FindTransactionsByStatus(ctx, domain.StatusPending)
}

// ListAll returns every transaction, newest first.
func (s *TransferService) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	return s.repo.FindAllTransactions(ctx)
}

// UpdateStatus transitions a transaction to confirmed, denied, or flagged.
func (s *TransferService) UpdateStatus(ctx context.Context, transactionID uuid.UUID, newStatus string) error {
	status := domain.TransactionStatus(newStatus)
	if !domain.UpdatableStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateTransactionStatus(ctx, transactionID, status)
}
