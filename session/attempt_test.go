package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptStore_TakeIsSingleUse(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	s := NewAttemptStore()

	id, err := s.Put(Attempt{Action: CreateNote{Content: "milk"}, Nonce: "n_1"})
	require.NoError(err)

	got, err := s.Take(id)
	require.NoError(err)
	assert.Equal(CreateNote{Content: "milk"}, got.Action)
	assert.Equal("n_1", got.Nonce)

	_, err = s.Take(id)
	require.ErrorIs(err, ErrUnknownOrReplayedState)
}

func TestAttemptStore_TakeUnknown(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	s := NewAttemptStore()

	_, err := s.Take(uuid.MustParse("00000000-0000-0000-0000-000000000000"))
	require.ErrorIs(err, ErrUnknownOrReplayedState)
}

func TestAttemptStore_ConcurrentTake(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	s := NewAttemptStore()

	id, err := s.Put(Attempt{Nonce: "n_1"})
	require.NoError(err)

	const callers = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(id); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	var winners int
	for range wins {
		winners++
	}
	require.Equal(1, winners)
}

func TestAttemptStore_Expiry(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	s := NewAttemptStore(WithAttemptTTL(time.Minute))

	id, err := s.Put(Attempt{Nonce: "n_1"})
	require.NoError(err)

	// shift the clock past the attempt's lifetime
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = s.Take(id)
	require.ErrorIs(err, ErrUnknownOrReplayedState)
	require.Equal(0, s.Len())
}

func TestAttemptStore_PutSweepsExpired(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	s := NewAttemptStore(WithAttemptTTL(time.Minute))

	_, err := s.Put(Attempt{Nonce: "n_1"})
	require.NoError(err)
	_, err = s.Put(Attempt{Nonce: "n_2"})
	require.NoError(err)
	require.Equal(2, s.Len())

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = s.Put(Attempt{Nonce: "n_3"})
	require.NoError(err)
	require.Equal(1, s.Len())
}
