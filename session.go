package dayforge

import (
	"context"
)

// DeviceCodePrompt is what the user must be shown to complete a device-code
// sign-in: visit the URL, enter the code.
type DeviceCodePrompt struct {
	UserCode        string
	VerificationURL string
	Message         string
}

// SignInFlow is a started interactive sign-in. The prompt is available
// immediately; Wait blocks until the user finishes (or ctx is done).
type SignInFlow interface {
	Prompt() DeviceCodePrompt
	Wait(ctx context.Context) (Session, error)
}

// TokenProvider owns the identity session. At most one account is active.
type TokenProvider interface {
	// ActiveAccount reports the cached account, if any.
	ActiveAccount(ctx context.Context) (Account, bool)
	// AcquireToken silently acquires an access token for the active account.
	// Fails with KindAuthRequired when there is no account or the silent
	// flow needs interaction.
	AcquireToken(ctx context.Context) (string, error)
	// BeginSignIn starts an interactive device-code sign-in.
	BeginSignIn(ctx context.Context) (SignInFlow, error)
	// SignOut removes the active account from the provider's cache.
	SignOut(ctx context.Context) error
}
