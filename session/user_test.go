package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		subject string
		wantErr bool
	}{
		{
			name:    "valid",
			subject: "11111111-1111-1111-1111-111111111111",
		},
		{
			name:    "not-a-uuid",
			subject: "alice@example.com",
			wantErr: true,
		},
		{
			name:    "empty",
			subject: "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			got, err := ParseUserID(tt.subject)
			if tt.wantErr {
				require.ErrorIs(err, ErrInvalidParameter)
				return
			}
			require.NoError(err)
			assert.Equal(tt.subject, got.String())
		})
	}
}

func TestParseUserID_Deterministic(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	first, err := ParseUserID("11111111-1111-1111-1111-111111111111")
	require.NoError(err)
	second, err := ParseUserID("11111111-1111-1111-1111-111111111111")
	require.NoError(err)
	require.Equal(first, second)

	other, err := ParseUserID("22222222-2222-2222-2222-222222222222")
	require.NoError(err)
	require.NotEqual(first, other)
}

func TestNewUserID(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	first, err := NewUserID()
	require.NoError(err)
	second, err := NewUserID()
	require.NoError(err)
	require.NotEqual(first, second)
}
