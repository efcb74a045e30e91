/**
 * @description
 * HTTP handlers for the funds-transfer workflow: international payment,
 * balance top-up, transaction history, pending review queue, and status
 * updates.
 */

package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/swiftremit/payments-service/internal/app"
	"github.com/swiftremit/payments-service/internal/domain"
	"github.com/swiftremit/payments-service/internal/store"
)

// PaymentHandler exposes the transfer service over HTTP.
type PaymentHandler struct {
	transfers *app.TransferService
}

// NewPaymentHandler creates the handler.
func NewPaymentHandler(transfers *app.TransferService) *PaymentHandler {
	return &PaymentHandler{transfers: transfers}
}

type transactionResponse struct {
	ID                      uuid.UUID `json:"_id"`
	SenderID                uuid.UUID `json:"senderId"`
	RecipientName           string    `json:"recipientName"`
	RecipientsBank          string    `json:"recipientsBank"`
	RecipientsAccountNumber string    `json:"recipientsAccountNumber"`
	AmountToTransfer        float64   `json:"amountToTransfer"`
	SwiftCode               string    `json:"swiftCode"`
	TransactionType         string    `json:"transactionType,omitempty"`
	Status                  string    `json:"status"`
	CreatedAt               string    `json:"createdAt"`
}

func toTransactionResponse(tx domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:                      tx.ID,
		SenderID:                tx.SenderID,
		RecipientName:           tx.RecipientName,
		RecipientsBank:          tx.RecipientsBank,
		RecipientsAccountNumber: tx.RecipientsAccountNumber,
		AmountToTransfer:        centsToDecimal(tx.Amount),
		SwiftCode:               tx.SwiftCode,
		TransactionType:         tx.TransactionType,
		Status:                  string(tx.Status),
		CreatedAt:               tx.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

func toTransactionResponses(txs []domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

func paymentError(w http.ResponseWriter, err error) {
	var validationErr *app.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, store.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "Insufficient balance for this transfer.")
	case errors.Is(err, app.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status. Status must be one of: 'confirmed', 'denied', 'flagged'.")
	case errors.Is(err, store.ErrIdentityNotFound), errors.Is(err, store.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "User not found.")
	case errors.Is(err, store.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found.")
	default:
		log.Printf("level=error component=api msg=\"payment operation failed\" err=%v", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred.")
	}
}

// InternationalPayment handles POST /payment/international.
func (h *PaymentHandler) InternationalPayment(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	var req domain.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.transfers.InternationalPayment(r.Context(), claims.IdentityID, req)
	if err != nil {
		paymentError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":          "Payment processed successfully.",
		"transactionId":    result.TransactionID,
		"senderNewBalance": centsToDecimal(result.NewBalance),
	})
}

// AddBalance handles POST /payment/addBalance.
func (h *PaymentHandler) AddBalance(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	var req domain.AddBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	newBalance, err := h.transfers.AddBalance(r.Context(), claims.IdentityID, req.Amount)
	if err != nil {
		paymentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Balance updated successfully.",
		"newBalance": centsToDecimal(newBalance),
	})
}

// ListMine handles GET /payment/transactions for the authenticated identity.
func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	txs, err := h.transfers.ListTransactions(r.Context(), claims.IdentityID)
	if err != nil {
		paymentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}

// ListPending handles GET /payment/pending for the review queue.
func (h *PaymentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	txs, err := h.transfers.ListPending(r.Context())
	if err != nil {
		paymentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}

// ListAll handles GET /payment/all.
func (h *PaymentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	txs, err := h.transfers.ListAll(r.Context())
	if err != nil {
		paymentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}

// UpdateStatus handles PUT /payment/transaction/{id}/status.
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	transactionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction id.")
		return
	}

	var req domain.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.transfers.UpdateStatus(r.Context(), transactionID, req.Status); err != nil {
		paymentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Transaction status updated successfully.",
	})
}
