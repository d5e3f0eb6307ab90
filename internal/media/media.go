// Package media stores copies of user documents fetched from external
// URLs, such as the government photo ID imported from the provider.
package media

import (
	"context"
	"errors"
	"time"
)

// KindDrivingLicense marks the government photo ID imported during the
// heavy provider update.
const KindDrivingLicense = "driving_license"

// ErrFetch indicates the source document could not be downloaded.
// The login attempt carrying the import must fail so it is retried.
var ErrFetch = errors.New("media: fetch failed")

// Record is a stored copy of an external document. ApprovedBy and
// ApprovedAt stay unset until an explicit manual review step.
type Record struct {
	ID          string
	UserID      string
	Kind        string
	SourceURL   string
	ContentType string
	Data        []byte
	ApprovedBy  *string
	ApprovedAt  *time.Time
	CreatedAt   time.Time
}

// Store fetches and persists document copies.
type Store interface {
	// FetchAndStore downloads the document at url and stores it as a
	// record of the given kind owned by userID. Failures wrap ErrFetch.
	FetchAndStore(ctx context.Context, url, userID, kind string) (*Record, error)
}
