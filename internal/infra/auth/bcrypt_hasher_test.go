package auth

import (
	"regexp"
	"strings"
	"testing"

	"homeserve/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(newTestConfig())

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(newTestConfig())
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "not-a-bcrypt-hash"))
}

func TestBcryptHasher_CostFloor(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})

	hash, err := hasher.Hash("482913")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, config.MinBcryptCost, cost)
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	first, err := hasher.Hash("482913")
	require.NoError(t, err)
	second, err := hasher.Hash("482913")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOTPGenerator_Generate(t *testing.T) {
	gen := NewOTPGenerator(newTestConfig())
	digits := regexp.MustCompile(`^\d{6}$`)

	for range 200 {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Regexp(t, digits, code)
	}
}

func TestOTPGenerator_CustomLength(t *testing.T) {
	cfg := newTestConfig()
	cfg.OTP = &config.OTPConfig{Length: 8}

	code, err := NewOTPGenerator(cfg).Generate()
	require.NoError(t, err)
	assert.Len(t, code, 8)
	assert.Empty(t, strings.Trim(code, "0123456789"))
}
