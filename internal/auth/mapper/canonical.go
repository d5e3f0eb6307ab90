package mapper

import (
	"encoding/json"
	"strconv"
	"strings"

	"presto-auth/internal/auth"
)

// Canonical is the normalized view of one login's provider data. It
// is built fresh from the raw payloads on every login and never
// persisted directly.
type Canonical struct {
	DOB       int64
	PhotoURL  string
	FirstName string
	LastName  string
	Address   Address

	// Recommendation is nil when the user has no medical evaluation
	// on file; PhotoID is nil when no photo is on file.
	Recommendation *Recommendation
	PhotoID        *PhotoID
}

type Address struct {
	Zip5     string
	Zip4     string
	City     string
	State    string
	Address1 string
	Address2 string
}

// Recommendation is the provider's credential evaluation. Issued and
// Expires are unix timestamps as delivered by the provider.
type Recommendation struct {
	Issued  int64
	Expires int64
	IDNum   string
}

type PhotoID struct {
	URL string
}

// FullName joins first and last name, tolerating either being empty.
func (c *Canonical) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ParseCanonical converts the raw login payloads into the typed view.
// Values arrive as JSON numbers or query-string text depending on the
// provider endpoint, so both are accepted.
func ParseCanonical(result *auth.LoginResult) Canonical {
	base := result.BaseData

	c := Canonical{
		DOB:       asInt64(base["dob"]),
		PhotoURL:  asString(base["photo"]),
		FirstName: asString(base["first_name"]),
		LastName:  asString(base["last_name"]),
	}

	if addr, ok := base["address"].(map[string]any); ok {
		c.Address = Address{
			Zip5:     asString(addr["zip5"]),
			Zip4:     asString(addr["zip4"]),
			City:     asString(addr["city"]),
			State:    asString(addr["state"]),
			Address1: asString(addr["address1"]),
			Address2: asString(addr["address2"]),
		}
	}

	if rec := result.RecommendationData; len(rec) > 0 {
		c.Recommendation = &Recommendation{
			Issued:  asInt64(rec["issued"]),
			Expires: asInt64(rec["expires"]),
			IDNum:   asString(rec["id_num"]),
		}
	}

	if photo := result.PhotoData; len(photo) > 0 {
		c.PhotoID = &PhotoID{
			URL: asString(photo["url"]),
		}
	}

	return c
}

// setIfPresent implements the truthy-overwrite rule for a single
// profile field: an empty incoming value leaves the stored one alone.
func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	case json.Number:
		n, _ := t.Int64()
		return n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if ferr != nil {
				return 0
			}
			return int64(f)
		}
		return n
	default:
		return 0
	}
}
