package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAccessToken(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	first := HashAccessToken("at_1")
	second := HashAccessToken("at_1")
	other := HashAccessToken("at_2")

	require.Len(first, 32)
	assert.Equal(first, second)
	assert.NotEqual(first, other)

	// the digest never embeds the token itself
	assert.NotContains(string(first), "at_1")
}

func TestSession_TokenHashEquals(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	s := &Session{
		AccessToken:     "at_1",
		AccessTokenHash: HashAccessToken("at_1"),
	}
	assert.True(s.TokenHashEquals(HashAccessToken("at_1")))
	assert.False(s.TokenHashEquals(HashAccessToken("at_2")))
	assert.False(s.TokenHashEquals(nil))

	var nilSession *Session
	assert.False(nilSession.TokenHashEquals(HashAccessToken("at_1")))
}

func TestSession_CloneIsIndependent(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	s := &Session{
		AccessToken:     "at_1",
		AccessTokenHash: HashAccessToken("at_1"),
	}
	cp := s.clone()
	require.Equal(s, cp)

	cp.AccessTokenHash[0] ^= 0xff
	require.NotEqual(s.AccessTokenHash, cp.AccessTokenHash)
}
