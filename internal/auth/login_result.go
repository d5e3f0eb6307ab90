package auth

// LoginResult is the transient outcome of one provider login attempt.
// It carries identity facts plus the raw data feeds fetched from the
// provider. It is consumed once by the mapper and then discarded.
type LoginResult struct {
	Provider       string // e.g. "prestodoctor", "google"
	ProviderUserID string // provider-scoped unique user identifier
	Email          string // email returned by provider, may be empty
	EmailVerified  bool   // whether provider asserts email ownership

	// BaseData is the mandatory profile payload. RecommendationData and
	// PhotoData are optional feeds: empty maps mean the user has no
	// medical evaluation or photo on file at the provider, which is a
	// normal state, not an error.
	BaseData           map[string]any
	RecommendationData map[string]any
	PhotoData          map[string]any
}
