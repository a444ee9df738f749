package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
	assert.NotEqual(t, "correct horse battery staple", digest)
	assert.True(t, VerifyPassword(digest, "correct horse battery staple"))
	assert.False(t, VerifyPassword(digest, "correct horse battery staples"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	d1, err := HashPassword("samepassword")
	require.NoError(t, err)
	d2, err := HashPassword("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "random salt must make digests differ")
	assert.True(t, VerifyPassword(d1, "samepassword"))
	assert.True(t, VerifyPassword(d2, "samepassword"))
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	for _, digest := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1,p=4$notbase64!!$alsonot!!",
		"$argon2id$v=19$bogus$c2FsdA$a2V5",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$a2V5",
	} {
		assert.False(t, VerifyPassword(digest, "whatever"), "digest %q must verify false", digest)
	}
}
