package prestodoctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_JSON(t *testing.T) {
	m, err := parsePayload([]byte(`{"email":"a@x.com","dob":-621648001}`))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", m["email"])
	assert.Equal(t, float64(-621648001), m["dob"])
}

func TestParsePayload_QueryString(t *testing.T) {
	m, err := parsePayload([]byte("email=a%40x.com&state=CA"))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", m["email"])
	assert.Equal(t, "CA", m["state"])
}

func TestParsePayload_Empty(t *testing.T) {
	m, err := parsePayload([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestParsePayload_Garbage(t *testing.T) {
	_, err := parsePayload([]byte("%zz;=="))
	require.Error(t, err)
}
