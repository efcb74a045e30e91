package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/swiftremit/payments-service/internal/domain"
	"github.com/swiftremit/payments-service/internal/store"
	"github.com/swiftremit/payments-service/pkg/rabbitmq"
)

type transferRepoStub struct {
	store.Repository
	identity     *domain.Identity
	balance      int64
	transactions []domain.Transaction
	updated      map[uuid.UUID]domain.TransactionStatus
}

func newTransferStub(balance int64) *transferRepoStub {
	return &transferRepoStub{
		identity: &domain.Identity{ID: uuid.New(), Username: "janedoe", Role: domain.RoleUser},
		balance:  balance,
		updated:  map[uuid.UUID]domain.TransactionStatus{},
	}
}

func (s *transferRepoStub) FindIdentityByID(_ context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	if s.identity == nil || s.identity.ID != identityID {
		return nil, store.ErrIdentityNotFound
	}
	return s.identity, nil
}

func (s *transferRepoStub) TransferFunds(_ context.Context, identityID uuid.UUID, tx *domain.Transaction) (int64, error) {
	if s.identity == nil || s.identity.ID != identityID {
		return 0, store.ErrAccountNotFound
	}
	if s.balance < tx.Amount {
		return 0, store.ErrInsufficientFunds
	}
	s.balance -= tx.Amount
	s.transactions = append(s.transactions, *tx)
	return s.balance, nil
}

func (s *transferRepoStub) CreditAccount(_ context.Context, identityID uuid.UUID, amount int64) (int64, error) {
	if s.identity == nil || s.identity.ID != identityID {
		return 0, store.ErrAccountNotFound
	}
	s.balance += amount
	return s.balance, nil
}

func (s *transferRepoStub) FindTransactionsByIdentityID(_ context.Context, identityID uuid.UUID) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range s.transactions {
		if tx.SenderID == identityID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *transferRepoStub) FindTransactionsByStatus(_ context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range s.transactions {
		if tx.Status == status {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *transferRepoStub) FindAllTransactions(_ context.Context) ([]domain.Transaction, error) {
	return s.transactions, nil
}

func (s *transferRepoStub) UpdateTransactionStatus(_ context.Context, transactionID uuid.UUID, status domain.TransactionStatus) error {
	s.updated[transactionID] = status
	return nil
}

func validPaymentRequest() domain.PaymentRequest {
	return domain.PaymentRequest{
		RecipientName:           "John Smith",
		RecipientsBank:          "First National",
		RecipientsAccountNumber: "GB12345678",
		AmountToTransfer:        40,
		SwiftCode:               "ABSAZAJJ",
	}
}

func TestInternationalPaymentDebitsAndRecords(t *testing.T) {
	repo := newTransferStub(10000) // 100.00
	svc := NewTransferService(repo, nil)

	result, err := svc.InternationalPayment(context.Background(), repo.identity.ID, validPaymentRequest())
	if err != nil {
		t.Fatalf("InternationalPayment returned error: %v", err)
	}
	if result.NewBalance != 6000 {
		t.Errorf("expected new balance 6000 cents, got %d", result.NewBalance)
	}
	if len(repo.transactions) != 1 {
		t.Fatalf("expected one recorded transaction, got %d", len(repo.transactions))
	}
	recorded := repo.transactions[0]
	if recorded.Amount != 4000 {
		t.Errorf("expected amount 4000 cents, got %d", recorded.Amount)
	}
	if recorded.Status != domain.StatusPending {
		t.Errorf("expected default status pending, got %q", recorded.Status)
	}
	if recorded.ID != result.TransactionID {
		t.Error("result must reference the recorded transaction")
	}
}

func TestInternationalPaymentInsufficientFunds(t *testing.T) {
	repo := newTransferStub(1000) // 10.00
	svc := NewTransferService(repo, nil)

	req := validPaymentRequest()
	req.AmountToTransfer = 40

	_, err := svc.InternationalPayment(context.Background(), repo.identity.ID, req)
	if !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if repo.balance != 1000 {
		t.Errorf("balance must be unchanged after a failed transfer, got %d", repo.balance)
	}
	if len(repo.transactions) != 0 {
		t.Error("no transaction may be recorded for a failed transfer")
	}
}

func TestInternationalPaymentValidationOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.PaymentRequest)
		field  string
	}{
		{"bad recipient name", func(r *domain.PaymentRequest) { r.RecipientName = "J0hn!" }, "recipientName"},
		{"bad bank", func(r *domain.PaymentRequest) { r.RecipientsBank = "Bank<1>" }, "recipientsBank"},
		{"bad account number", func(r *domain.PaymentRequest) { r.RecipientsAccountNumber = "12-34" }, "recipientsAccountNumber"},
		{"zero amount", func(r *domain.PaymentRequest) { r.AmountToTransfer = 0 }, "amountToTransfer"},
		{"three decimals", func(r *domain.PaymentRequest) { r.AmountToTransfer = 10.999 }, "amountToTransfer"},
		{"bad swift code", func(r *domain.PaymentRequest) { r.SwiftCode = "ABC" }, "swiftCode"},
		{"unknown status", func(r *domain.PaymentRequest) { r.Status = "bogus" }, "status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newTransferStub(10000)
			svc := NewTransferService(repo, nil)

			req := validPaymentRequest()
			tc.mutate(&req)

			_, err := svc.InternationalPayment(context.Background(), repo.identity.ID, req)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, validationErr.Field)
			}
			if len(repo.transactions) != 0 {
				t.Error("invalid input must not reach the store")
			}
		})
	}
}

type publisherStub struct {
	events   []rabbitmq.PaymentEvent
	failWith error
}

func (p *publisherStub) Publish(context.Context, string, string, interface{}) error { return nil }
func (p *publisherStub) PublishPaymentEvent(_ context.Context, event rabbitmq.PaymentEvent) error {
	p.events = append(p.events, event)
	return p.failWith
}
func (p *publisherStub) Close() {}

func TestInternationalPaymentPublishesEvent(t *testing.T) {
	repo := newTransferStub(10000)
	publisher := &publisherStub{}
	svc := NewTransferService(repo, publisher)

	result, err := svc.InternationalPayment(context.Background(), repo.identity.ID, validPaymentRequest())
	if err != nil {
		t.Fatalf("InternationalPayment returned error: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.TransactionID != result.TransactionID {
		t.Error("event must reference the recorded transaction")
	}
	if event.Amount != 4000 {
		t.Errorf("expected event amount 4000 cents, got %d", event.Amount)
	}
}

func TestInternationalPaymentSucceedsWhenPublishFails(t *testing.T) {
	repo := newTransferStub(10000)
	publisher := &publisherStub{failWith: errors.New("broker down")}
	svc := NewTransferService(repo, publisher)

	if _, err := svc.InternationalPayment(context.Background(), repo.identity.ID, validPaymentRequest()); err != nil {
		t.Fatalf("a publish failure must not fail the payment, got %v", err)
	}
	if len(repo.transactions) != 1 {
		t.Error("transaction must still be recorded")
	}
}

func TestAddBalance(t *testing.T) {
	repo := newTransferStub(500)
	svc := NewTransferService(repo, nil)

	newBalance, err := svc.AddBalance(context.Background(), repo.identity.ID, 10.50)
	if err != nil {
		t.Fatalf("AddBalance returned error: %v", err)
	}
	if newBalance != 1550 {
		t.Errorf("expected balance 1550 cents, got %d", newBalance)
	}

	if _, err := svc.AddBalance(context.Background(), repo.identity.ID, -5); err == nil {
		t.Error("expected a negative amount to be rejected")
	}
	if repo.balance != 1550 {
		t.Errorf("balance must be unchanged after a rejected top-up, got %d", repo.balance)
	}
}

func TestListTransactionsRequiresKnownIdentity(t *testing.T) {
	repo := newTransferStub(0)
	svc := NewTransferService(repo, nil)

	_, err := svc.ListTransactions(context.Background(), uuid.New())
	if !errors.Is(err, store.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestListPendingFiltersByStatus(t *testing.T) {
	repo := newTransferStub(0)
	repo.transactions = []domain.Transaction{
		{ID: uuid.New(), Status: domain.StatusPending, CreatedAt: time.Now()},
		{ID: uuid.New(), Status: domain.StatusConfirmed, CreatedAt: time.Now()},
		{ID: uuid.New(), Status: domain.StatusPending, CreatedAt: time.Now()},
	}
	svc := NewTransferService(repo, nil)

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending returned error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending transactions, got %d", len(pending))
	}
	for _, tx := range pending {
		if tx.Status != domain.StatusPending {
			t.Errorf("expected pending status, got %q", tx.Status)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newTransferStub(0)
	svc := NewTransferService(repo, nil)
	transactionID := uuid.New()

	for _, status := range []string{"confirmed", "denied", "flagged"} {
		if err := svc.UpdateStatus(context.Background(), transactionID, status); err != nil {
			t.Errorf("UpdateStatus(%q) returned error: %v", status, err)
		}
		if got := repo.updated[transactionID]; got != domain.TransactionStatus(status) {
			t.Errorf("expected stored status %q, got %q", status, got)
		}
	}

	for _, status := range []string{"bogus", "pending", "", "Confirmed"} {
		if err := svc.UpdateStatus(context.Background(), transactionID, status); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("UpdateStatus(%q): expected ErrInvalidStatus, got %v", status, err)
		}
	}
}
