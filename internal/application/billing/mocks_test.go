package billing

import (
	"context"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockIntakeItemRepository is a mock implementation of IntakeItemRepository
type MockIntakeItemRepository struct {
	mock.Mock
}

func (m *MockIntakeItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.IntakeItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.IntakeItem), args.Error(1)
}

func (m *MockIntakeItemRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.IntakeItem, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.IntakeItem), args.Error(1)
}

func (m *MockIntakeItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.IntakeItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.IntakeItem), args.Error(1)
}

func (m *MockIntakeItemRepository) FindByStatuses(ctx context.Context, statuses ...billing.IntakeStatus) ([]billing.IntakeItem, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.IntakeItem), args.Error(1)
}

func (m *MockIntakeItemRepository) FindByJob(ctx context.Context, jobID uuid.UUID, filter shared.Filter) ([]billing.IntakeItem, error) {
	args := m.Called(ctx, jobID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.IntakeItem), args.Error(1)
}

func (m *MockIntakeItemRepository) Save(ctx context.Context, item *billing.IntakeItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockIntakeItemRepository) SaveWithLock(ctx context.Context, item *billing.IntakeItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockIntakeItemRepository) SaveWithPosting(ctx context.Context, item *billing.IntakeItem, posting *billing.AccountingPosting) error {
	args := m.Called(ctx, item, posting)
	return args.Error(0)
}

func (m *MockIntakeItemRepository) FindPosting(ctx context.Context, intakeItemID uuid.UUID) (*billing.AccountingPosting, error) {
	args := m.Called(ctx, intakeItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.AccountingPosting), args.Error(1)
}

func (m *MockIntakeItemRepository) CountByStatuses(ctx context.Context, statuses ...billing.IntakeStatus) (int64, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIntakeItemRepository) CountActiveByClearanceSnapshot(ctx context.Context, clearance compliance.ClearanceStatus) (int64, error) {
	args := m.Called(ctx, clearance)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIntakeItemRepository) CountActiveByVendorSnapshot(ctx context.Context, statuses ...compliance.VendorComplianceStatus) (int64, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIntakeItemRepository) CountSuccessors(ctx context.Context, invoiceNumber string) (int64, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIntakeItemRepository) ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

// MockBillingBatchRepository is a mock implementation of BillingBatchRepository
type MockBillingBatchRepository struct {
	mock.Mock
}

func (m *MockBillingBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillingBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingBatch), args.Error(1)
}

func (m *MockBillingBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.BillingBatch, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.BillingBatch), args.Error(1)
}

func (m *MockBillingBatchRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]billing.BillingBatch, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.BillingBatch), args.Error(1)
}

func (m *MockBillingBatchRepository) FindByStatuses(ctx context.Context, statuses ...billing.BatchStatus) ([]billing.BillingBatch, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.BillingBatch), args.Error(1)
}

func (m *MockBillingBatchRepository) HasActiveMembership(ctx context.Context, intakeItemID, excludeBatchID uuid.UUID) (bool, error) {
	args := m.Called(ctx, intakeItemID, excludeBatchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillingBatchRepository) Save(ctx context.Context, batch *billing.BillingBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBillingBatchRepository) SaveWithLock(ctx context.Context, batch *billing.BillingBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

// MockJobRepository is a mock implementation of compliance.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compliance.Job), args.Error(1)
}

func (m *MockJobRepository) FindByCode(ctx context.Context, code string) (*compliance.Job, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compliance.Job), args.Error(1)
}

func (m *MockJobRepository) FindAll(ctx context.Context, filter shared.Filter) ([]compliance.Job, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]compliance.Job), args.Error(1)
}

func (m *MockJobRepository) FindByClearance(ctx context.Context, statuses ...compliance.ClearanceStatus) ([]compliance.Job, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]compliance.Job), args.Error(1)
}

func (m *MockJobRepository) Save(ctx context.Context, job *compliance.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) SaveWithLock(ctx context.Context, job *compliance.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockVendorRepository is a mock implementation of compliance.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compliance.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]compliance.Vendor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]compliance.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindDocumentsExpiringWithin(ctx context.Context, days int) ([]compliance.VendorDocument, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]compliance.VendorDocument), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *compliance.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) SaveWithLock(ctx context.Context, vendor *compliance.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
