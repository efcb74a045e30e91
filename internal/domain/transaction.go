/**
 * @description
 * This file defines the transaction-side domain models. A Transaction is the
 * ledger record written when an international payment debits a sender's
 * account. Status is a closed enum validated both when a transaction is
 * written and when one is updated, so the pending-transaction query always
 * matches what was stored.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is a closed enum of transaction lifecycle states.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusConfirmed TransactionStatus = "confirmed"
	StatusDenied    TransactionStatus = "denied"
	StatusFlagged   TransactionStatus = "flagged"
)

// ParseTransactionStatus normalizes a submitted status to an enum value.
// An empty submission defaults to pending; anything outside the enum is
// rejected so write-time casing can never drift from the query filter.
func ParseTransactionStatus(s string) (TransactionStatus, bool) {
	switch TransactionStatus(s) {
	case "":
		return StatusPending, true
	case StatusPending, StatusConfirmed, StatusDenied, StatusFlagged:
		return TransactionStatus(s), true
	}
	return "", false
}

// UpdatableStatus reports whether a status is a legal target for an
// explicit status-update operation.
func UpdatableStatus(s TransactionStatus) bool {
	return s == StatusConfirmed || s == StatusDenied || s == StatusFlagged
}

// Transaction is the record of one international payment, owned by the
// sender identity. The amount is in cents.
type Transaction struct {
	ID                      uuid.UUID         `json:"id"`
	SenderID                uuid.UUID         `json:"sender_id"`
	RecipientName           string            `json:"recipient_name"`
	RecipientsBank          string            `json:"recipients_bank"`
	RecipientsAccountNumber string            `json:"recipients_account_number"`
	Amount                  int64             `json:"amount"` // in cents
	SwiftCode               string            `json:"swift_code"`
	TransactionType         string            `json:"transaction_type"`
	Status                  TransactionStatus `json:"status"`
	CreatedAt               time.Time         `json:"created_at"`
}

// PaymentRequest is the DTO for incoming international payment requests.
// The amount arrives as a decimal number and is converted to cents after
// validation.
type PaymentRequest struct {
	RecipientName           string  `json:"recipientName"`
	RecipientsBank          string  `json:"recipientsBank"`
	RecipientsAccountNumber string  `json:"recipientsAccountNumber"`
	AmountToTransfer        float64 `json:"amountToTransfer"`
	SwiftCode               string  `json:"swiftCode"`
	TransactionType         string  `json:"transactionType"`
	Status                  string  `json:"status,omitempty"`
}

// AddBalanceRequest is the DTO for account top-up requests.
type AddBalanceRequest struct {
	Amount float64 `json:"amount"`
}

// UpdateStatusRequest is the DTO for transaction status updates.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PaymentResult reports the outcome of a successful payment back to the
// caller: the sender's new balance and the ledger record's identifier.
type PaymentResult struct {
	NewBalance    int64
	TransactionID uuid.UUID
}
