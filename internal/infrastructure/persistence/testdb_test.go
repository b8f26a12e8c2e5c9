package persistence

import (
	"testing"
	"time"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupPipelineDB opens an in-memory database with the full pipeline schema
func setupPipelineDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.JobModel{},
		&models.VendorModel{},
		&models.VendorDocumentModel{},
		&models.ComplianceRequestModel{},
		&models.IntakeItemModel{},
		&models.AccountingPostingModel{},
		&models.BillingBatchModel{},
		&models.BillingBatchItemModel{},
		&models.ClientInvoiceModel{},
		&models.DeliveryModel{},
		&models.PlatformTaskModel{},
		&models.ChangeLogEntryModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestJob(t *testing.T, code string) *compliance.Job {
	t.Helper()
	job, err := compliance.NewJob(code, "Acme Corp")
	require.NoError(t, err)
	return job
}

func newTestVendorWithDocument(t *testing.T, expiresAt time.Time) *compliance.Vendor {
	t.Helper()
	vendor, err := compliance.NewVendor("Translations SL", "B-12345678")
	require.NoError(t, err)
	_, err = vendor.AddDocument("Tax residency certificate", "docs/cert.pdf", time.Now().AddDate(-1, 0, 0), expiresAt)
	require.NoError(t, err)
	return vendor
}

func clearSnapshot() compliance.Snapshot {
	return compliance.Snapshot{
		UttaiStatus:      compliance.ClearanceClear,
		VendorCompliance: compliance.VendorCompliant,
	}
}

func newTestIntakeItem(t *testing.T, jobID uuid.UUID, invoiceNumber string) *billing.IntakeItem {
	t.Helper()
	vendorID := uuid.New()
	amount := valueobject.NewMoneyEUR(decimal.NewFromInt(250))
	item, err := billing.NewIntakeItem(billing.IntakeTypeVendorInvoice, jobID, &vendorID, invoiceNumber, amount, "Patent translation", clearSnapshot())
	require.NoError(t, err)
	return item
}

// newReadyToBillItem drives a fresh item through the whole approval and
// accounting flow so it can join a batch
func newReadyToBillItem(t *testing.T, jobID uuid.UUID, invoiceNumber string) *billing.IntakeItem {
	t.Helper()
	item := newTestIntakeItem(t, jobID, invoiceNumber)
	require.NoError(t, item.Submit())
	require.NoError(t, item.SendForApproval())
	require.NoError(t, item.Approve("partner@firm.example"))
	require.NoError(t, item.SendToAccounting())
	require.NoError(t, item.MarkPosted())
	require.NoError(t, item.MarkReadyToBill())
	return item
}
