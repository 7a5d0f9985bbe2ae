package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPlainChecker(t *testing.T) {
	c := PlainChecker{}

	stored, err := c.Prepare("pw")
	require.NoError(t, err)
	assert.Equal(t, "pw", stored)

	assert.True(t, c.Check(stored, "pw"))
	assert.False(t, c.Check(stored, "PW"))
	assert.False(t, c.Check(stored, "pw "))
	assert.False(t, c.Check(stored, ""))
}

func TestBcryptChecker(t *testing.T) {
	c := BcryptChecker{Cost: bcrypt.MinCost}

	stored, err := c.Prepare("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored)

	assert.True(t, c.Check(stored, "pw"))
	assert.False(t, c.Check(stored, "nope"))
	assert.False(t, c.Check("not-a-hash", "pw"))
}

func TestNewPasswordChecker(t *testing.T) {
	c, err := NewPasswordChecker("plain")
	require.NoError(t, err)
	assert.IsType(t, PlainChecker{}, c)

	c, err = NewPasswordChecker("")
	require.NoError(t, err)
	assert.IsType(t, PlainChecker{}, c)

	c, err = NewPasswordChecker("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, BcryptChecker{}, c)

	_, err = NewPasswordChecker("rot13")
	assert.Error(t, err)
}
