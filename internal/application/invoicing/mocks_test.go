package invoicing

import (
	"context"
	"time"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockClientInvoiceRepository is a mock implementation of ClientInvoiceRepository
type MockClientInvoiceRepository struct {
	mock.Mock
}

func (m *MockClientInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.ClientInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.ClientInvoice), args.Error(1)
}

func (m *MockClientInvoiceRepository) FindByExternalNumber(ctx context.Context, externalInvoiceNumber string) (*invoicing.ClientInvoice, error) {
	args := m.Called(ctx, externalInvoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.ClientInvoice), args.Error(1)
}

func (m *MockClientInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoicing.ClientInvoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.ClientInvoice), args.Error(1)
}

func (m *MockClientInvoiceRepository) FindByStatuses(ctx context.Context, statuses ...invoicing.InvoiceStatus) ([]invoicing.ClientInvoice, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.ClientInvoice), args.Error(1)
}

func (m *MockClientInvoiceRepository) FindMissingDocument(ctx context.Context, statuses ...invoicing.InvoiceStatus) ([]invoicing.ClientInvoice, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.ClientInvoice), args.Error(1)
}

func (m *MockClientInvoiceRepository) CountByStatuses(ctx context.Context, statuses ...invoicing.InvoiceStatus) (int64, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientInvoiceRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientInvoiceRepository) ExistsByExternalNumber(ctx context.Context, externalInvoiceNumber string) (bool, error) {
	args := m.Called(ctx, externalInvoiceNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientInvoiceRepository) Save(ctx context.Context, invoice *invoicing.ClientInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockClientInvoiceRepository) SaveWithLock(ctx context.Context, invoice *invoicing.ClientInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockClientInvoiceRepository) CreateFromBatch(ctx context.Context, invoice *invoicing.ClientInvoice, batch *billing.BillingBatch, emitItems []billing.IntakeItem) error {
	args := m.Called(ctx, invoice, batch, emitItems)
	return args.Error(0)
}

// MockDeliveryRepository is a mock implementation of DeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]invoicing.Delivery, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByStatus(ctx context.Context, status invoicing.DeliveryStatus) ([]invoicing.Delivery, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountByStatus(ctx context.Context, status invoicing.DeliveryStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, delivery *invoicing.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *MockDeliveryRepository) SaveWithLock(ctx context.Context, delivery *invoicing.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *MockDeliveryRepository) SaveWithInvoice(ctx context.Context, delivery *invoicing.Delivery, invoice *invoicing.ClientInvoice) error {
	args := m.Called(ctx, delivery, invoice)
	return args.Error(0)
}

// MockPlatformTaskRepository is a mock implementation of PlatformTaskRepository
type MockPlatformTaskRepository struct {
	mock.Mock
}

func (m *MockPlatformTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.PlatformTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.PlatformTask), args.Error(1)
}

func (m *MockPlatformTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoicing.PlatformTask, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.PlatformTask), args.Error(1)
}

func (m *MockPlatformTaskRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]invoicing.PlatformTask, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.PlatformTask), args.Error(1)
}

func (m *MockPlatformTaskRepository) FindOpen(ctx context.Context) ([]invoicing.PlatformTask, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.PlatformTask), args.Error(1)
}

func (m *MockPlatformTaskRepository) FindOverdue(ctx context.Context, now time.Time) ([]invoicing.PlatformTask, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.PlatformTask), args.Error(1)
}

func (m *MockPlatformTaskRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlatformTaskRepository) Save(ctx context.Context, task *invoicing.PlatformTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockPlatformTaskRepository) SaveWithLock(ctx context.Context, task *invoicing.PlatformTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockPlatformTaskRepository) CreateWithInvoice(ctx context.Context, task *invoicing.PlatformTask, invoice *invoicing.ClientInvoice) error {
	args := m.Called(ctx, task, invoice)
	return args.Error(0)
}

func (m *MockPlatformTaskRepository) SaveWithInvoice(ctx context.Context, task *invoicing.PlatformTask, invoice *invoicing.ClientInvoice) error {
	args := m.Called(ctx, task, invoice)
	return args.Error(0)
}

// MockBillingBatchRepository is a mock implementation of billing.BillingBatchRepository
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

// MockIntakeItemRepository is a mock implementation of billing.IntakeItemRepository
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
