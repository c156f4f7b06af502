package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, hasher.Compare(hash, "hunter22"))
	assert.Error(t, hasher.Compare(hash, "hunter23"))
	assert.Error(t, hasher.Compare("not-a-hash", "hunter22"))
}

func TestBcryptHasherSalts(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same-input")
	require.NoError(t, err)
	second, err := hasher.Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
