package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstLoginBase_OnlySetsOnce(t *testing.T) {
	u := &User{}
	t1 := time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)

	FirstLoginBase(u, t1)
	require.NotNil(t, u.FirstLoginAt)
	assert.Equal(t, t1, *u.FirstLoginAt)

	FirstLoginBase(u, t2)
	assert.Equal(t, t1, *u.FirstLoginAt)
}

func TestEveryLoginBase_AlwaysAdvances(t *testing.T) {
	u := &User{}
	t1 := time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)

	EveryLoginBase(u, t1)
	EveryLoginBase(u, t2)

	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, t2, *u.LastLoginAt)
}

func TestLastFullImportAt(t *testing.T) {
	u := &User{}
	assert.Nil(t, u.LastFullImportAt())

	done := time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)
	u.ProviderState.FullDataUpdatedAt = &done
	require.NotNil(t, u.LastFullImportAt())
	assert.Equal(t, done, *u.LastFullImportAt())
}
