package session

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notabene-app/auth/oidc"
)

// TestBackend_EndToEnd drives a complete login through the real provider
// client against a local test IdP: authorization URL, code exchange, id_token
// verification, userinfo, introspection and the cached session afterwards.
func TestBackend_EndToEnd(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()

	tp := oidc.StartTestProvider(t)
	tp.SetClientCreds("client-id", "client-secret")
	tp.SetExpectedAuthCode("code_1")

	cfg, err := oidc.NewConfig(
		tp.Addr(),
		"client-id",
		"client-secret",
		[]oidc.Alg{oidc.ES256},
		"https://example.com/callback",
		oidc.WithProviderCA(tp.CACert()),
	)
	require.NoError(err)

	client, err := oidc.NewProvider(cfg)
	require.NoError(err)
	t.Cleanup(client.Done)

	b, err := NewBackend(client)
	require.NoError(err)
	t.Cleanup(b.Done)

	authURL, err := b.AuthenticationURL(ctx, CreateNote{Content: "buy milk"})
	require.NoError(err)

	// the user would be redirected through the IdP here; pull the state and
	// nonce out of the authorization URL the way the IdP would see them
	parsed, err := url.Parse(authURL)
	require.NoError(err)
	state := parsed.Query().Get("state")
	nonce := parsed.Query().Get("nonce")
	require.NotEmpty(state)
	require.NotEmpty(nonce)
	tp.SetExpectedAuthNonce(nonce)

	s, err := b.CompleteLogin(ctx, Callback{
		Iss:   tp.Addr(),
		State: state,
		Code:  "code_1",
	})
	require.NoError(err)

	wantID, err := ParseUserID("11111111-1111-1111-1111-111111111111")
	require.NoError(err)
	assert.Equal(wantID, s.UserID)
	assert.NotEmpty(s.AccessToken)
	assert.True(s.TokenHashEquals(HashAccessToken(s.AccessToken)))
	assert.Greater(s.RemainingValidity.Minutes(), 50.0)
	assert.Equal(1, tp.IntrospectionCount())

	// the deferred action survives the round-trip and is handed out once
	assert.Equal(CreateNote{Content: "buy milk"}, b.TakePendingAction(s.UserID))
	assert.Nil(b.TakePendingAction(s.UserID))

	// a fresh session is trusted without another introspection
	cached, err := b.LookupSession(ctx, s.UserID)
	require.NoError(err)
	assert.Equal(s.UserID, cached.UserID)
	assert.Equal(1, tp.IntrospectionCount())

	// the state was consumed
	_, err = b.CompleteLogin(ctx, Callback{Iss: tp.Addr(), State: state, Code: "code_1"})
	require.ErrorIs(err, ErrUnknownOrReplayedState)
}
