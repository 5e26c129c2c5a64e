package auth_test

import (
	"strings"
	"testing"

	"github.com/linguate/auth"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "Long secret such as a refresh token",
			password: strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 20),
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := auth.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

			err = auth.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestHashPasswordProducesUniqueDigests(t *testing.T) {
	a, err := auth.HashPassword("samePassword123!")
	assert.NoError(t, err)

	b, err := auth.HashPassword("samePassword123!")
	assert.NoError(t, err)

	assert.NotEqual(t, a, b, "salts should differ between digests")
}

func TestComparePasswordAndHash(t *testing.T) {
	password := "testPassword123!"
	hash, err := auth.HashPassword(password)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{
			name:     "Matching password",
			password: password,
			hash:     hash,
			wantErr:  false,
		},
		{
			name:     "Wrong password",
			password: "notThePassword123!",
			hash:     hash,
			wantErr:  true,
		},
		{
			name:     "Corrupt digest",
			password: password,
			hash:     "$argon2id$v=19$garbage",
			wantErr:  true,
		},
		{
			name:     "Digest from another scheme",
			password: password,
			hash:     "$2a$10$N9qo8uLOickgx2ZMRZoMye",
			wantErr:  true,
		},
		{
			name:     "Empty digest",
			password: password,
			hash:     "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ComparePasswordAndHash(tt.password, tt.hash)

			if tt.wantErr {
				assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
				return
			}

			assert.NoError(t, err)
		})
	}
}
