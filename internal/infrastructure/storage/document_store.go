// Package storage provides document storage for invoice PDFs, vendor
// certificates and platform submission evidence. Callers only ever see the
// opaque docRef returned by Put; how and where the bytes live is an
// implementation detail.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyDocRef = errors.New("document reference is required")
	// ErrOutcomeUnknown is returned when an upload was cut off by the
	// context deadline. The object may or may not exist; callers should
	// check Exists before retrying with a fresh key.
	ErrOutcomeUnknown = errors.New("upload outcome unknown: deadline exceeded")
)

// DocumentStore stores and serves binary documents by opaque reference.
type DocumentStore interface {
	// Put stores data and returns the docRef under which it can be
	// retrieved. kind partitions the namespace (invoices, certificates,
	// evidence).
	Put(ctx context.Context, kind, filename string, data []byte, contentType string) (string, error)

	// PresignDownload returns a time-limited download URL for a docRef
	PresignDownload(ctx context.Context, docRef string, expiresIn time.Duration) (string, time.Time, error)

	// Exists checks whether a docRef resolves to a stored object
	Exists(ctx context.Context, docRef string) (bool, error)

	// Delete removes the object behind a docRef
	Delete(ctx context.Context, docRef string) error
}

// newDocRef builds the opaque storage key. The embedded UUID makes refs
// collision-free even for identical filenames.
func newDocRef(kind, filename string, now time.Time) string {
	name := strings.ReplaceAll(path.Base(filename), " ", "_")
	return fmt.Sprintf("%s/%04d/%02d/%s-%s", kind, now.Year(), int(now.Month()), uuid.NewString(), name)
}
