// Package billing holds the intake side of the billing pipeline.
//
// This package implements the vendor-invoice and official-fee bounded
// context, which is responsible for:
//   - Registering intake items with a frozen compliance snapshot
//   - Driving each item through the review and approval state machine
//   - Recording accounting postings (one per item, insert-only)
//   - Grouping approved items into billing batches with per-item
//     emit/transfer/discard decisions
//
// Key Aggregates:
//   - IntakeItem: A vendor invoice or official fee moving toward billing
//   - BillingBatch: A set of billable items awaiting partner decisions
//
// The snapshot columns on IntakeItem are copied from the compliance
// domain at creation and never overwritten afterwards.
package billing
