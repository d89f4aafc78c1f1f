package msal

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayforge/dayforge"
	"github.com/dayforge/dayforge/charmlog"
)

func testLogger() dayforge.Logger {
	return charmlog.NewLogger(charmlog.Options{Writer: io.Discard})
}

func testProvider(t *testing.T) *Provider {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	p, err := NewProvider(dayforge.Config{
		ClientID:  dayforge.DefaultClientID,
		Authority: dayforge.DefaultAuthority,
		APIScope:  "api://test/Todos.ReadWrite",
	}, testLogger())
	require.NoError(t, err)
	return p
}

func TestAcquireTokenWithoutAccountIsAuthRequired(t *testing.T) {
	p := testProvider(t)

	_, err := p.AcquireToken(context.Background())

	require.Error(t, err)
	assert.Equal(t, dayforge.KindAuthRequired, dayforge.KindOf(err))
}

func TestSilentFailureIsAuthRequired(t *testing.T) {
	cause := errors.New("AADSTS70043: refresh token has expired")

	err := silentAuthError(cause)

	assert.Equal(t, dayforge.KindAuthRequired, dayforge.KindOf(err))
	assert.ErrorIs(t, err, cause)
}
