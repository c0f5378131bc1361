package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T, validity time.Duration) *Session {
	t.Helper()
	id, err := NewUserID()
	require.NoError(t, err)
	return &Session{
		UserID:            id,
		AccessToken:       "test-access-token",
		AccessTokenHash:   HashAccessToken("test-access-token"),
		RemainingValidity: validity,
		LastRevalidatedAt: time.Now(),
	}
}

func TestCache_GetPut(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	c := NewCache()

	s := testSession(t, time.Hour)
	require.Nil(c.Get(s.UserID))

	c.Put(s)
	require.Equal(s, c.Get(s.UserID))

	c.Evict(s.UserID)
	require.Nil(c.Get(s.UserID))
}

func TestCache_EntryExpiresWithRecordValidity(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	c := NewCache()

	s := testSession(t, 50*time.Millisecond)
	c.Put(s)
	require.NotNil(c.Get(s.UserID))

	time.Sleep(80 * time.Millisecond)
	require.Nil(c.Get(s.UserID))
}

func TestCache_IdleTimeoutCapsEntryLifetime(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	c := NewCache(WithIdleTimeout(50 * time.Millisecond))

	// token validity far exceeds the idle floor
	s := testSession(t, time.Hour)
	c.Put(s)
	require.NotNil(c.Get(s.UserID))

	time.Sleep(80 * time.Millisecond)
	require.Nil(c.Get(s.UserID))
}

func TestCache_SkipsRecordsWithoutValidity(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	c := NewCache()

	s := testSession(t, 0)
	c.Put(s)
	require.Nil(c.Get(s.UserID))
	require.Equal(0, c.Len())
}

func TestCache_CapacityEviction(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	c := NewCache(WithMaxSessions(2))

	first := testSession(t, time.Hour)
	second := testSession(t, time.Hour)
	third := testSession(t, time.Hour)

	c.Put(first)
	c.Put(second)
	c.Put(third)

	require.Equal(2, c.Len())
	require.NotNil(c.Get(third.UserID))
}

func TestCache_PutOverwritesSameUser(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	c := NewCache()

	s := testSession(t, time.Hour)
	c.Put(s)

	replacement := s.clone()
	replacement.LastRevalidatedAt = s.LastRevalidatedAt.Add(10 * time.Second)
	c.Put(replacement)

	require.Equal(1, c.Len())
	require.Equal(replacement.LastRevalidatedAt, c.Get(s.UserID).LastRevalidatedAt)
}
