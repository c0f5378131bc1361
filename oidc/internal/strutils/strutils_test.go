package strutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrListContains(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	haystack := []string{
		"openid",
		"profile",
		"email",
	}
	require.False(StrListContains(haystack, "groups"))
	require.True(StrListContains(haystack, "email"))
}

func TestRemoveDuplicatesStable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input  []string
		expect []string
	}{
		{[]string{}, []string{}},
		{[]string{"a", "b", "a"}, []string{"a", "b"}},
		{[]string{"A", "b", "a"}, []string{"A", "b", "a"}},
		{[]string{"", "d", "c", "d"}, []string{"d", "c"}},
	}
	for _, tc := range tests {
		require.Equal(t, tc.expect, RemoveDuplicatesStable(tc.input))
	}
}
