// Package mapper converts provider login results into user-record
// mutations. It owns the incremental-update policy: a lightweight
// last-known-good merge on every login, a name baseline on first
// login, and a heavy import (photo ID copy, license verification)
// that runs at most once per recommendation-issued value.
package mapper

import (
	"context"
	"errors"
	"strings"
	"time"

	"presto-auth/internal/auth"
	"presto-auth/internal/media"
	"presto-auth/internal/user"
)

// ErrMissingEmail means the provider did not grant us an email
// address, so the account cannot be mapped. The message is shown to
// the end user as-is.
var ErrMissingEmail = errors.New(
	"an email address is needed in order to use this service and we could not get one from your provider; please try to sign up with your email instead")

// Stores runs fn with user and media stores bound to one shared
// transaction. The whole login update sequence runs inside it so a
// failed save or media fetch leaves no partial mutation, user row or
// stored document alike.
type Stores interface {
	WithinTx(ctx context.Context, fn func(user.Store, media.Store) error) error
}

// Mapper applies provider login data to persistent users.
type Mapper struct {
	stores Stores
	users  user.Store
	media  media.Store
	now    func() time.Time
}

// New creates a mapper. now may be nil, in which case time.Now is used.
func New(stores Stores, now func() time.Time) *Mapper {
	if now == nil {
		now = time.Now
	}
	return &Mapper{stores: stores, now: now}
}

// bind returns a mapper whose store fields are fixed to one
// transaction. Resolve and the Apply methods operate on the bound
// stores only.
func (m *Mapper) bind(users user.Store, mediaStore media.Store) *Mapper {
	return &Mapper{stores: m.stores, users: users, media: mediaStore, now: m.now}
}

// Login runs the full update sequence for one provider login inside a
// single transaction: resolve the user by email, apply first-login
// data when the user was just created, and apply the every-login
// merge with its conditional heavy import. Any failure rolls the
// whole login back so no partial mutation survives.
func (m *Mapper) Login(ctx context.Context, result *auth.LoginResult) (*user.User, error) {
	var out *user.User

	err := m.stores.WithinTx(ctx, func(us user.Store, ms media.Store) error {
		tm := m.bind(us, ms)

		u, created, err := tm.Resolve(ctx, result)
		if err != nil {
			return err
		}

		canonical := ParseCanonical(result)

		if created {
			tm.ApplyFirstLogin(u, &canonical)
		}
		if err := tm.ApplyEveryLogin(ctx, u, &canonical); err != nil {
			return err
		}

		if err := us.Save(ctx, u); err != nil {
			return err
		}

		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve maps the login result onto a persistent user keyed by
// email, creating one on first login. created reports whether this
// login created the user. Fails with ErrMissingEmail when the
// provider supplied no email.
func (m *Mapper) Resolve(ctx context.Context, result *auth.LoginResult) (*user.User, bool, error) {
	if result == nil {
		return nil, false, errors.New("mapper: nil login result")
	}

	email := strings.TrimSpace(result.Email)
	if email == "" {
		email = strings.TrimSpace(asString(result.BaseData["email"]))
	}
	if email == "" {
		return nil, false, ErrMissingEmail
	}

	u, created, err := m.users.FindOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}

	if result.ProviderUserID != "" {
		if err := m.users.LinkIdentity(ctx, u.ID, result.Provider, result.ProviderUserID); err != nil {
			return nil, false, err
		}
	}

	return u, created, nil
}

// ApplyFirstLogin runs the shared first-login update and then sets
// the account full name from the canonical data. The base update runs
// first so the name is not overwritten.
func (m *Mapper) ApplyFirstLogin(u *user.User, c *Canonical) {
	user.FirstLoginBase(u, m.now())
	u.FullName = c.FullName()
}

// ApplyEveryLogin runs on every successful login, including the
// first. It merges canonical data into the stored profile under the
// truthy-overwrite rule and triggers the heavy import when the
// recommendation issue date differs from the last one seen.
func (m *Mapper) ApplyEveryLogin(ctx context.Context, u *user.User, c *Canonical) error {
	// Captured before any write this pass; this is what the heavy
	// import trigger compares against.
	lastKnownIssued := u.ProviderState.RecommendationIssued

	user.EveryLoginBase(u, m.now())

	m.mergeProfile(u, c)

	if c.Recommendation != nil {
		issued := c.Recommendation.Issued
		u.ProviderState.RecommendationIssued = &issued
	} else {
		u.ProviderState.RecommendationIssued = nil
	}

	if issuedChanged(lastKnownIssued, c.Recommendation) {
		// The evaluation issue date changed, do the heavy data update.
		return m.applyFullUpdate(ctx, u, c)
	}
	return nil
}

// mergeProfile overwrites stored profile fields only with non-empty
// incoming values, so a field the provider temporarily drops never
// erases previously known data.
func (m *Mapper) mergeProfile(u *user.User, c *Canonical) {
	p := &u.Profile

	if c.DOB != 0 {
		p.DOB = c.DOB
	}
	setIfPresent(&p.PhotoURL, c.PhotoURL)
	p.Country = "US"
	setIfPresent(&p.Zipcode, c.Address.Zip5)
	setIfPresent(&p.Zip4, c.Address.Zip4)
	// Gender is unavailable from the provider and never written.
	setIfPresent(&p.FirstName, c.FirstName)
	setIfPresent(&p.LastName, c.LastName)
	setIfPresent(&p.FullName, c.FullName())
	setIfPresent(&p.City, c.Address.City)
	setIfPresent(&p.State, c.Address.State)
	setIfPresent(&p.PostalCode, c.Address.Zip5)
	setIfPresent(&p.Address, c.Address.Address1)
	setIfPresent(&p.Apartment, c.Address.Address2)

	now := m.now()
	p.ExternalDataUpdated = &now
}

// applyFullUpdate is the heavy path: trust the license if the
// recommendation is unexpired, download a copy of the government
// photo ID, and record the completion marker last so a mid-import
// failure leaves the marker unset and the next login retries.
func (m *Mapper) applyFullUpdate(ctx context.Context, u *user.User, c *Canonical) error {
	now := m.now()

	u.LicenseInitialUploadCompletedAt = &now

	// Trust provider licenses if they are not expired.
	if c.Recommendation != nil && c.Recommendation.Expires > now.Unix() {
		u.LicenseVerifiedBy = nil // auto-trusted, no human verifier
		u.LicenseVerifiedAt = &now
		u.PrestoLicenseNumber = c.Recommendation.IDNum
		u.MedicalLicenseUploadCompletedAt = &now
		u.LicenseInitialUploadCompletedAt = &now
	}

	// Keep a copy of the government issued ID so delivery can check
	// this is the right person. Approval stays empty until reviewed.
	if c.PhotoID != nil && c.PhotoID.URL != "" {
		if _, err := m.media.FetchAndStore(ctx, c.PhotoID.URL, u.ID, media.KindDrivingLicense); err != nil {
			return err
		}
	}

	u.ProviderState.FullDataUpdatedAt = &now
	return nil
}

// issuedChanged reports whether the recommendation issue date differs
// from the last known one, treating "no recommendation" as nil.
func issuedChanged(last *int64, rec *Recommendation) bool {
	var current *int64
	if rec != nil {
		current = &rec.Issued
	}

	switch {
	case last == nil && current == nil:
		return false
	case last == nil || current == nil:
		return true
	default:
		return *last != *current
	}
}
