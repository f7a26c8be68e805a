package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("Str0ngPW!")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotContains(t, digest, "Str0ngPW!")

	assert.True(t, Verify("Str0ngPW!", digest))
	assert.False(t, Verify("Str0ngPW!x", digest))
	assert.False(t, Verify("", digest))
}

func TestHash_Salted(t *testing.T) {
	first, err := Hash("Str0ngPW!")
	require.NoError(t, err)
	second, err := Hash("Str0ngPW!")
	require.NoError(t, err)

	// Per-call random salt: same password, different digests.
	assert.NotEqual(t, first, second)
	assert.True(t, Verify("Str0ngPW!", first))
	assert.True(t, Verify("Str0ngPW!", second))
}

func TestVerify_MalformedDigest(t *testing.T) {
	assert.False(t, Verify("anything", ""))
	assert.False(t, Verify("anything", "not-a-bcrypt-digest"))
	assert.False(t, Verify("anything", "$2a$broken"))
}

func TestCheckPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"ok", "Str0ngPW!", nil},
		{"ok long", "correct-horse-battery-staple-9", nil},
		{"too short", "abc1", ErrTooShort},
		{"seven chars", "abcde12", ErrTooShort},
		{"letters only", "abcdefgh", ErrTooWeak},
		{"digits only", "12345678901", ErrTooWeak},
		{"common", "password123", ErrWellKnown},
		{"common mixed case", "Admin123", ErrWellKnown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPolicy(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
