// Package user owns the persistent user aggregate. Provider-sourced
// data lives in two typed sub-records instead of a free-form bag:
// Profile holds the last-known-good merged fields and ProviderState
// holds the prestodoctor bookkeeping markers.
package user

import "time"

// Profile is the last-known-good view of provider profile data.
// Fields are only overwritten by non-empty incoming values, so a feed
// that temporarily drops a field never erases what we already know.
type Profile struct {
	DOB                 int64      `json:"dob,omitempty"`
	PhotoURL            string     `json:"photo_url,omitempty"`
	Country             string     `json:"country,omitempty"`
	Zipcode             string     `json:"zipcode,omitempty"`
	Zip4                string     `json:"zip4,omitempty"`
	Gender              string     `json:"gender,omitempty"`
	FirstName           string     `json:"first_name,omitempty"`
	LastName            string     `json:"last_name,omitempty"`
	FullName            string     `json:"full_name,omitempty"`
	City                string     `json:"city,omitempty"`
	State               string     `json:"state,omitempty"`
	PostalCode          string     `json:"postal_code,omitempty"`
	Address             string     `json:"address,omitempty"`
	Apartment           string     `json:"apartment,omitempty"`
	ExternalDataUpdated *time.Time `json:"external_data_updated,omitempty"`
}

// ProviderState tracks the prestodoctor incremental-update markers.
// RecommendationIssued is the issue timestamp of the last recommendation
// seen (nil = none on file). FullDataUpdatedAt is set when, and only
// when, a heavy import has completed for the current issued value.
type ProviderState struct {
	RecommendationIssued *int64     `json:"recommendation_issued,omitempty"`
	FullDataUpdatedAt    *time.Time `json:"full_data_updated_at,omitempty"`
}

// User is the durable account record, keyed by email for social login.
type User struct {
	ID            string
	Email         string
	EmailVerified bool
	FullName      string

	LicenseVerifiedBy               *string
	LicenseVerifiedAt               *time.Time
	PrestoLicenseNumber             string
	MedicalLicenseUploadCompletedAt *time.Time
	LicenseInitialUploadCompletedAt *time.Time

	Profile       Profile
	ProviderState ProviderState

	FirstLoginAt *time.Time
	LastLoginAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LastFullImportAt reports when the heavy provider import last
// completed, or nil if it never ran.
func (u *User) LastFullImportAt() *time.Time {
	return u.ProviderState.FullDataUpdatedAt
}

// FirstLoginBase applies the provider-agnostic first-login bookkeeping.
// Provider-specific deltas run after it so they are not overwritten.
func FirstLoginBase(u *User, now time.Time) {
	if u.FirstLoginAt == nil {
		t := now
		u.FirstLoginAt = &t
	}
}

// EveryLoginBase applies the provider-agnostic every-login bookkeeping.
func EveryLoginBase(u *User, now time.Time) {
	t := now
	u.LastLoginAt = &t
}
