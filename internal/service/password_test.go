package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	for _, plain := range []string{"Sxs87!9LL", "", "unicode-пароль", strings.Repeat("x", MaxPasswordBytes)} {
		digest, err := h.Hash(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, digest)
		assert.True(t, h.Verify(plain, digest), "plaintext %q should verify", plain)
		assert.False(t, h.Verify(plain+"!", digest))
	}
}

func TestHasherSaltsEachDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash("Sxs87!9LL")
	require.NoError(t, err)
	b, err := h.Hash("Sxs87!9LL")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHasherMalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("Sxs87!9LL", ""))
	assert.False(t, h.Verify("Sxs87!9LL", "not-a-bcrypt-digest"))
}

func TestHasherRejectsOverlongInput(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("x", MaxPasswordBytes+1))
	require.Error(t, err)
}

func TestNewHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).cost)
}
