package billing

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountingPosting records that one intake item was transmitted to the
// external general ledger. Exactly one posting exists per posted item and a
// posting is never updated; the ledger reference is stored verbatim.
type AccountingPosting struct {
	ID              uuid.UUID
	IntakeItemID    uuid.UUID
	LedgerReference string
	PostedBy        string
	PostedAt        time.Time
	CreatedAt       time.Time
}

// NewAccountingPosting creates the posting record for an intake item
func NewAccountingPosting(intakeItemID uuid.UUID, ledgerReference, postedBy string) (*AccountingPosting, error) {
	if intakeItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Intake item reference is required")
	}
	if ledgerReference == "" {
		return nil, shared.NewDomainError("INVALID_LEDGER_REFERENCE", "Ledger reference cannot be empty")
	}
	if postedBy == "" {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Posting actor is required")
	}

	now := time.Now()
	return &AccountingPosting{
		ID:              uuid.New(),
		IntakeItemID:    intakeItemID,
		LedgerReference: ledgerReference,
		PostedBy:        postedBy,
		PostedAt:        now,
		CreatedAt:       now,
	}, nil
}
