package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "configured cost", cost: 12, want: 12},
		{name: "minimum cost", cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{name: "zero falls back", cost: 0, want: DefaultCost},
		{name: "too high falls back", cost: bcrypt.MaxCost + 1, want: DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBcryptHasher(tt.cost).cost)
		})
	}
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, secret := range []string{"pw123", "p", "pässwörd ✓", strings.Repeat("x", 72)} {
		hash, err := h.Hash(secret)
		require.NoError(t, err)
		assert.NotEqual(t, secret, hash)
		assert.True(t, h.Verify(secret, hash), "secret %q should verify", secret)
	}
}

func TestBcryptHasher_Mismatch(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw123")
	require.NoError(t, err)

	assert.False(t, h.Verify("pw456", hash))
	assert.False(t, h.Verify("PW123", hash))
	assert.False(t, h.Verify("", hash))
}

func TestBcryptHasher_SaltedDigests(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same", first))
	assert.True(t, h.Verify("same", second))
}

func TestBcryptHasher_EmbedsCost(t *testing.T) {
	hash, err := NewBcryptHasher(DefaultCost).Hash("pw123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestBcryptHasher_LongSecrets(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	base := strings.Repeat("a", 100)

	hash, err := h.Hash(base + "1")
	require.NoError(t, err)

	assert.True(t, h.Verify(base+"1", hash))
	// Secrets sharing a 72-byte prefix must still be told apart.
	assert.False(t, h.Verify(base+"2", hash))
}

func TestBcryptHasher_EmptySecret(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "plain-text", "$2a$10$short", "$2a$99$" + strings.Repeat("a", 53)} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("pw123", hash), "hash %q should not verify", hash)
		})
	}
}
