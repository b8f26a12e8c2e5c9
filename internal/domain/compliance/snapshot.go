package compliance

import (
	"context"

	"github.com/google/uuid"
)

// Snapshot is the point-in-time copy of compliance state frozen onto an
// intake item at creation. It answers "what was known when this item was
// approved" and is never refreshed afterward, even when the job or vendor
// later changes.
type Snapshot struct {
	UttaiStatus      ClearanceStatus
	VendorCompliance VendorComplianceStatus
}

// SnapshotService captures compliance snapshots from the current job and
// vendor state
type SnapshotService struct {
	jobs    JobRepository
	vendors VendorRepository
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(jobs JobRepository, vendors VendorRepository) *SnapshotService {
	return &SnapshotService{
		jobs:    jobs,
		vendors: vendors,
	}
}

// Capture reads the current job clearance and, when a vendor is involved,
// its derived compliance status. Official fees have no vendor; their vendor
// snapshot is recorded as compliant so they never trip vendor alerts.
func (s *SnapshotService) Capture(ctx context.Context, jobID uuid.UUID, vendorID *uuid.UUID) (Snapshot, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		UttaiStatus:      job.Clearance,
		VendorCompliance: VendorCompliant,
	}

	if vendorID != nil {
		vendor, err := s.vendors.FindByID(ctx, *vendorID)
		if err != nil {
			return Snapshot{}, err
		}
		snapshot.VendorCompliance = vendor.ComplianceStatus
	}

	return snapshot, nil
}
