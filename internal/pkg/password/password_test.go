//go:build unit

package password_test

import (
	"strings"
	"testing"

	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyRoundTrip(t *testing.T) {
	hash, err := password.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, password.Verify(hash, "correct horse battery staple"))
	assert.ErrorIs(t, password.Verify(hash, "wrong password"), password.ErrMismatch)
}

func TestHashRejectsUnusableInput(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)

	_, err = password.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, password.ErrTooLong)
}

func TestVerifyEmptyArgumentsMismatch(t *testing.T) {
	assert.ErrorIs(t, password.Verify("", "secret"), password.ErrMismatch)

	hash, err := password.Hash("secret")
	require.NoError(t, err)
	assert.ErrorIs(t, password.Verify(hash, ""), password.ErrMismatch)
}
