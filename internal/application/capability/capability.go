// Package capability enforces operation-level authorization. Checks live at
// the service boundary, not in HTTP middleware, so every caller of an
// operation is subject to the same rule regardless of transport.
package capability

import (
	"fmt"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Capability names one permitted operation family
type Capability string

const (
	IntakeWrite       Capability = "intake:write"
	IntakeReview      Capability = "intake:review"
	AccountingPost    Capability = "accounting:post"
	BillingDecide     Capability = "billing:decide"
	InvoiceIssue      Capability = "invoice:issue"
	InvoiceDeliver    Capability = "invoice:deliver"
	PlatformTrack     Capability = "platform:track"
	ComplianceResolve Capability = "compliance:resolve"
	DashboardRead     Capability = "dashboard:read"
)

// All lists every known capability, for token validation
var All = []Capability{
	IntakeWrite, IntakeReview, AccountingPost, BillingDecide,
	InvoiceIssue, InvoiceDeliver, PlatformTrack, ComplianceResolve,
	DashboardRead,
}

// IsValid checks if the capability is a known one
func (c Capability) IsValid() bool {
	for _, known := range All {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of Capability
func (c Capability) String() string {
	return string(c)
}

// Actor is the authenticated caller of a service operation, resolved from
// the JWT by the HTTP layer
type Actor struct {
	UserID       uuid.UUID
	Name         string
	Capabilities []Capability
}

// Has reports whether the actor holds the capability
func (a Actor) Has(c Capability) bool {
	for _, held := range a.Capabilities {
		if held == c {
			return true
		}
	}
	return false
}

// Require fails with a forbidden error when the actor lacks the capability.
// It is the first statement of every mutating service operation.
func Require(actor Actor, c Capability) error {
	if actor.Has(c) {
		return nil
	}
	return shared.NewDomainError("FORBIDDEN", fmt.Sprintf("Actor %s lacks capability %s", actor.Name, c))
}
