package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clerkActor() capability.Actor {
	return capability.Actor{
		UserID:       uuid.New(),
		Name:         "a.fischer",
		Capabilities: []capability.Capability{capability.IntakeWrite},
	}
}

func taxActor() capability.Actor {
	return capability.Actor{
		UserID:       uuid.New(),
		Name:         "s.lorenz",
		Capabilities: []capability.Capability{capability.ComplianceResolve},
	}
}

func newFixture(t *testing.T) (*Service, *MockJobRepository, *MockVendorRepository, *MockComplianceRequestRepository) {
	t.Helper()
	jobs := new(MockJobRepository)
	vendors := new(MockVendorRepository)
	requests := new(MockComplianceRequestRepository)
	return NewService(jobs, vendors, requests, zap.NewNop()), jobs, vendors, requests
}

func TestService_CreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("new jobs start clear", func(t *testing.T) {
		service, jobs, _, _ := newFixture(t)
		jobs.On("FindByCode", ctx, "J-0815").Return(nil, shared.ErrNotFound)
		jobs.On("Save", ctx, mock.AnythingOfType("*compliance.Job")).Return(nil)

		resp, err := service.CreateJob(ctx, clerkActor(), CreateJobRequest{
			Code:       "J-0815",
			ClientName: "Muster GmbH",
		})
		require.NoError(t, err)
		assert.Equal(t, "clear", resp.Clearance)
		assert.False(t, resp.Archived)
		jobs.AssertExpectations(t)
	})

	t.Run("duplicate job codes are rejected", func(t *testing.T) {
		service, jobs, _, _ := newFixture(t)
		existing, err := compliance.NewJob("J-0815", "Muster GmbH")
		require.NoError(t, err)
		jobs.On("FindByCode", ctx, "J-0815").Return(existing, nil)

		_, err = service.CreateJob(ctx, clerkActor(), CreateJobRequest{
			Code:       "J-0815",
			ClientName: "Another Client",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already in use")
	})

	t.Run("requires intake:write", func(t *testing.T) {
		service, _, _, _ := newFixture(t)
		_, err := service.CreateJob(ctx, taxActor(), CreateJobRequest{
			Code:       "J-0816",
			ClientName: "Muster GmbH",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "intake:write")
	})
}

func TestService_VendorDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("vendor without documents is non-compliant", func(t *testing.T) {
		service, _, vendors, _ := newFixture(t)
		vendors.On("Save", ctx, mock.AnythingOfType("*compliance.Vendor")).Return(nil)

		resp, err := service.CreateVendor(ctx, clerkActor(), CreateVendorRequest{
			Name:  "Translatics SL",
			TaxID: "B-1234",
		})
		require.NoError(t, err)
		assert.Equal(t, "non_compliant", resp.ComplianceStatus)
		assert.Empty(t, resp.Documents)
	})

	t.Run("adding a valid document makes the vendor compliant", func(t *testing.T) {
		service, _, vendors, _ := newFixture(t)
		vendor, err := compliance.NewVendor("Translatics SL", "B-1234")
		require.NoError(t, err)

		vendors.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
		vendors.On("SaveWithLock", ctx, vendor).Return(nil)

		resp, err := service.AddVendorDocument(ctx, clerkActor(), vendor.ID, AddVendorDocumentRequest{
			Name:      "Residence certificate 2026",
			DocRef:    "vendors/docs/cert-2026.pdf",
			IssuedAt:  time.Now().AddDate(0, -1, 0),
			ExpiresAt: time.Now().AddDate(1, 0, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, "compliant", resp.ComplianceStatus)
		require.Len(t, resp.Documents, 1)
		assert.Equal(t, "Residence certificate 2026", resp.Documents[0].Name)
	})

	t.Run("document expiring inside the warning window flags expiring_soon", func(t *testing.T) {
		service, _, vendors, _ := newFixture(t)
		vendor, err := compliance.NewVendor("Translatics SL", "B-1234")
		require.NoError(t, err)

		vendors.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
		vendors.On("SaveWithLock", ctx, vendor).Return(nil)

		resp, err := service.AddVendorDocument(ctx, clerkActor(), vendor.ID, AddVendorDocumentRequest{
			Name:      "Residence certificate",
			IssuedAt:  time.Now().AddDate(-1, 0, 0),
			ExpiresAt: time.Now().Add(10 * 24 * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, "expiring_soon", resp.ComplianceStatus)
	})
}

func TestService_RequestWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("opening a request flags the job pending review", func(t *testing.T) {
		service, jobs, _, requests := newFixture(t)
		job, err := compliance.NewJob("J-0815", "Muster GmbH")
		require.NoError(t, err)

		jobs.On("FindByID", ctx, job.ID).Return(job, nil)
		jobs.On("SaveWithLock", ctx, job).Return(nil)
		requests.On("Save", ctx, mock.AnythingOfType("*compliance.ComplianceRequest")).Return(nil)

		resp, err := service.OpenRequest(ctx, clerkActor(), OpenRequestRequest{
			JobID: job.ID,
			Note:  "UTTAI certificate missing for FY2026",
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "a.fischer", resp.RequestedBy)
		assert.Equal(t, compliance.ClearancePendingReview, job.Clearance)
	})

	t.Run("resolving applies the clearance to the job", func(t *testing.T) {
		service, jobs, _, requests := newFixture(t)
		job, err := compliance.NewJob("J-0815", "Muster GmbH")
		require.NoError(t, err)
		require.NoError(t, job.SetClearance(compliance.ClearancePendingReview))

		request, err := compliance.NewComplianceRequest(job.ID, "a.fischer", "certificate missing")
		require.NoError(t, err)
		require.NoError(t, request.Start())

		requests.On("FindByID", ctx, request.ID).Return(request, nil)
		jobs.On("FindByID", ctx, job.ID).Return(job, nil)
		requests.On("ResolveWithJob", ctx, request, job).Return(nil)

		resp, err := service.ResolveRequest(ctx, taxActor(), request.ID, ResolveRequestRequest{
			Clearance:      "blocked",
			ResolutionNote: "No valid certificate on file",
		})
		require.NoError(t, err)
		assert.Equal(t, "resolved", resp.Status)
		assert.Equal(t, "s.lorenz", resp.ResolvedBy)
		assert.Equal(t, compliance.ClearanceBlocked, job.Clearance)
		requests.AssertExpectations(t)
	})

	t.Run("resolution rejects unknown clearance values", func(t *testing.T) {
		service, _, _, _ := newFixture(t)
		_, err := service.ResolveRequest(ctx, taxActor(), uuid.New(), ResolveRequestRequest{
			Clearance:      "maybe",
			ResolutionNote: "n/a",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "clearance")
	})

	t.Run("a pending request cannot be resolved before review starts", func(t *testing.T) {
		service, jobs, _, requests := newFixture(t)
		job, err := compliance.NewJob("J-0815", "Muster GmbH")
		require.NoError(t, err)
		request, err := compliance.NewComplianceRequest(job.ID, "a.fischer", "certificate missing")
		require.NoError(t, err)

		requests.On("FindByID", ctx, request.ID).Return(request, nil)
		jobs.On("FindByID", ctx, job.ID).Return(job, nil)

		_, err = service.ResolveRequest(ctx, taxActor(), request.ID, ResolveRequestRequest{
			Clearance:      "clear",
			ResolutionNote: "certificate received",
		})
		require.Error(t, err)
	})

	t.Run("resolution requires compliance:resolve", func(t *testing.T) {
		service, _, _, _ := newFixture(t)
		_, err := service.ResolveRequest(ctx, clerkActor(), uuid.New(), ResolveRequestRequest{
			Clearance:      "clear",
			ResolutionNote: "n/a",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compliance:resolve")
	})
}

func TestService_ArchiveJob(t *testing.T) {
	ctx := context.Background()

	t.Run("archived jobs refuse clearance changes", func(t *testing.T) {
		service, jobs, _, _ := newFixture(t)
		job, err := compliance.NewJob("J-0815", "Muster GmbH")
		require.NoError(t, err)

		jobs.On("FindByID", ctx, job.ID).Return(job, nil)
		jobs.On("SaveWithLock", ctx, job).Return(nil)

		require.NoError(t, service.ArchiveJob(ctx, clerkActor(), job.ID))
		assert.True(t, job.Archived)
		require.Error(t, job.SetClearance(compliance.ClearanceBlocked))
	})

	t.Run("double archive is rejected", func(t *testing.T) {
		service, jobs, _, _ := newFixture(t)
		job, err := compliance.NewJob("J-0815", "Muster GmbH")
		require.NoError(t, err)
		require.NoError(t, job.Archive())
		jobs.On("FindByID", ctx, job.ID).Return(job, nil)

		err = service.ArchiveJob(ctx, clerkActor(), job.ID)
		require.Error(t, err)
	})
}
