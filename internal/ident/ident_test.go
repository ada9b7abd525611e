package ident

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	require.True(t, Valid("65a1f0c2e4b0a1b2c3d4e5f6"))
	require.True(t, Valid(New()))

	for _, bad := range []string{
		"",
		"m1",
		"65a1f0c2e4b0a1b2c3d4e5f",   // 23 chars
		"65a1f0c2e4b0a1b2c3d4e5f6a", // 25 chars
		"zza1f0c2e4b0a1b2c3d4e5f6",
		"abcdefghijkl", // 12 raw bytes are not accepted
	} {
		require.False(t, Valid(bad), "expected %q to be rejected", bad)
	}
}

func TestObjectID(t *testing.T) {
	id := New()
	oid, ok := ObjectID(id)
	require.True(t, ok)
	require.Equal(t, id, oid.Hex())

	_, ok = ObjectID("not-an-id")
	require.False(t, ok)
}
