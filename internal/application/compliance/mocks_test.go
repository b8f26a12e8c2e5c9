package compliance

import (
	"context"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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

// MockComplianceRequestRepository is a mock implementation of compliance.ComplianceRequestRepository
type MockComplianceRequestRepository struct {
	mock.Mock
}

func (m *MockComplianceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.ComplianceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compliance.ComplianceRequest), args.Error(1)
}

func (m *MockComplianceRequestRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]compliance.ComplianceRequest, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]compliance.ComplianceRequest), args.Error(1)
}

func (m *MockComplianceRequestRepository) FindOpen(ctx context.Context) ([]compliance.ComplianceRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]compliance.ComplianceRequest), args.Error(1)
}

func (m *MockComplianceRequestRepository) Save(ctx context.Context, req *compliance.ComplianceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockComplianceRequestRepository) SaveWithLock(ctx context.Context, req *compliance.ComplianceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockComplianceRequestRepository) ResolveWithJob(ctx context.Context, req *compliance.ComplianceRequest, job *compliance.Job) error {
	args := m.Called(ctx, req, job)
	return args.Error(0)
}
