package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// JobSortFields contains allowed sort fields for jobs
var JobSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"code":        true,
	"client_name": true,
	"clearance":   true,
	"archived":    true,
}

// VendorSortFields contains allowed sort fields for vendors
var VendorSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"tax_id":            true,
	"compliance_status": true,
}

// IntakeItemSortFields contains allowed sort fields for intake items
var IntakeItemSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"type":           true,
	"invoice_number": true,
	"amount":         true,
	"status":         true,
	"submitted_at":   true,
	"approved_at":    true,
	"billed_at":      true,
}

// BillingBatchSortFields contains allowed sort fields for billing batches
var BillingBatchSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"total_amount": true,
	"total_fees":   true,
}

// ClientInvoiceSortFields contains allowed sort fields for client invoices
var ClientInvoiceSortFields = map[string]bool{
	"id":                      true,
	"created_at":              true,
	"updated_at":              true,
	"external_invoice_number": true,
	"external_invoice_date":   true,
	"status":                  true,
	"total_amount":            true,
	"issued_at":               true,
}

// PlatformTaskSortFields contains allowed sort fields for platform tasks
var PlatformTaskSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"platform_name": true,
	"sla_due_at":    true,
	"status":        true,
	"completed_at":  true,
}
