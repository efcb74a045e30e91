package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is an identity's wallet. Balances are stored as int64 in minor
// units (cents), which avoids floating-point inaccuracies with financial
// data. Exactly one identity owns at most one account.
type Account struct {
	ID            uuid.UUID `json:"id"`
	IdentityID    uuid.UUID `json:"identity_id"`
	AccountNumber string    `json:"account_number"`
	Balance       int64     `json:"balance"` // in cents
	CreatedAt     time.Time `json:"created_at"`
}
