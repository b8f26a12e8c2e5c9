package compliance

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VendorComplianceStatus classifies a vendor's certification state,
// derived from its documents
type VendorComplianceStatus string

const (
	VendorCompliant    VendorComplianceStatus = "compliant"
	VendorExpiringSoon VendorComplianceStatus = "expiring_soon"
	VendorNonCompliant VendorComplianceStatus = "non_compliant"
)

// IsValid checks if the status is a valid VendorComplianceStatus
func (s VendorComplianceStatus) IsValid() bool {
	switch s {
	case VendorCompliant, VendorExpiringSoon, VendorNonCompliant:
		return true
	}
	return false
}

// String returns the string representation of VendorComplianceStatus
func (s VendorComplianceStatus) String() string {
	return string(s)
}

// severity orders statuses from best to worst for the derivation rule
func (s VendorComplianceStatus) severity() int {
	switch s {
	case VendorCompliant:
		return 0
	case VendorExpiringSoon:
		return 1
	case VendorNonCompliant:
		return 2
	}
	return 2
}

// ExpiryWarningWindow is how long before a document expiry the vendor is
// flagged as expiring soon
const ExpiryWarningWindow = 30 * 24 * time.Hour

// VendorDocument is a certification document for a vendor
type VendorDocument struct {
	ID       uuid.UUID
	VendorID uuid.UUID
	Name     string
	// DocRef is the opaque reference returned by the storage layer
	DocRef    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewVendorDocument creates a new vendor certification document
func NewVendorDocument(vendorID uuid.UUID, name, docRef string, issuedAt, expiresAt time.Time) (*VendorDocument, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NAME", "Document name cannot be empty")
	}
	if !expiresAt.After(issuedAt) {
		return nil, shared.NewDomainError("INVALID_VALIDITY", "Expiry must be after issue date")
	}

	now := time.Now()
	return &VendorDocument{
		ID:        uuid.New(),
		VendorID:  vendorID,
		Name:      name,
		DocRef:    docRef,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Classify returns the compliance classification of this document at the
// given instant: expired -> non_compliant, within the warning window ->
// expiring_soon, otherwise compliant.
func (d *VendorDocument) Classify(now time.Time) VendorComplianceStatus {
	if !now.Before(d.ExpiresAt) {
		return VendorNonCompliant
	}
	if now.Add(ExpiryWarningWindow).After(d.ExpiresAt) {
		return VendorExpiringSoon
	}
	return VendorCompliant
}

// ExpiresWithin reports whether the document expires inside the window
// starting at now
func (d *VendorDocument) ExpiresWithin(now time.Time, window time.Duration) bool {
	return d.ExpiresAt.After(now) && !d.ExpiresAt.After(now.Add(window))
}

// Vendor represents an external supplier. Its compliance status is derived
// from its documents: the worst document classification wins.
type Vendor struct {
	shared.BaseAggregateRoot
	Name             string
	TaxID            string
	ComplianceStatus VendorComplianceStatus
	Documents        []VendorDocument
}

// NewVendor creates a new vendor; with no documents it is non-compliant
func NewVendor(name, taxID string) (*Vendor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}

	vendor := &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             taxID,
		ComplianceStatus:  VendorNonCompliant,
		Documents:         make([]VendorDocument, 0),
	}

	vendor.AddDomainEvent(NewVendorCreatedEvent(vendor))

	return vendor, nil
}

// AddDocument attaches a certification document and re-derives the
// compliance status
func (v *Vendor) AddDocument(name, docRef string, issuedAt, expiresAt time.Time) (*VendorDocument, error) {
	doc, err := NewVendorDocument(v.ID, name, docRef, issuedAt, expiresAt)
	if err != nil {
		return nil, err
	}

	v.Documents = append(v.Documents, *doc)
	v.RefreshCompliance(time.Now())
	v.UpdatedAt = time.Now()

	return doc, nil
}

// RefreshCompliance re-derives the vendor status from its documents at the
// given instant. A vendor without documents is non-compliant.
func (v *Vendor) RefreshCompliance(now time.Time) {
	if len(v.Documents) == 0 {
		v.setCompliance(VendorNonCompliant)
		return
	}

	worst := VendorCompliant
	for i := range v.Documents {
		if status := v.Documents[i].Classify(now); status.severity() > worst.severity() {
			worst = status
		}
	}
	v.setCompliance(worst)
}

func (v *Vendor) setCompliance(status VendorComplianceStatus) {
	if v.ComplianceStatus == status {
		return
	}
	previous := v.ComplianceStatus
	v.ComplianceStatus = status
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVendorComplianceChangedEvent(v, previous))
}

// IsCompliant returns true if the vendor is fully compliant
func (v *Vendor) IsCompliant() bool {
	return v.ComplianceStatus == VendorCompliant
}
