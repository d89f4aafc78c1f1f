// Package msal implements dayforge.TokenProvider on top of the Microsoft
// Authentication Library. Sign-in uses the device-code flow; tokens for API
// calls are acquired silently from the library's cache.
package msal

import (
	"context"
	"os"
	"path"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"

	"github.com/dayforge/dayforge"
)

type Provider struct {
	client      public.Client
	apiScopes   []string
	loginScopes []string
	l           dayforge.Logger
}

var _ dayforge.TokenProvider = (*Provider)(nil)

func NewProvider(conf dayforge.Config, l dayforge.Logger) (*Provider, error) {
	cfgDir, _ := os.UserConfigDir()
	accessor := NewFileCache(path.Join(cfgDir, "dayforge", "token_cache.json"))

	client, err := public.New(
		conf.ClientID,
		public.WithAuthority(conf.Authority),
		public.WithCache(accessor),
	)
	if err != nil {
		return nil, dayforge.NewError(dayforge.KindAuthFailure, "init identity client", err)
	}

	return &Provider{
		client:      client,
		apiScopes:   []string{conf.APIScope},
		loginScopes: dayforge.LoginScopes,
		l:           l,
	}, nil
}

func (p *Provider) ActiveAccount(ctx context.Context) (dayforge.Account, bool) {
	acct, ok := p.activeAccount(ctx)
	if !ok {
		return dayforge.Account{}, false
	}
	return accountOf(acct), true
}

func (p *Provider) AcquireToken(ctx context.Context) (string, error) {
	const op = "acquire token"

	acct, ok := p.activeAccount(ctx)
	if !ok {
		return "", dayforge.Errorf(dayforge.KindAuthRequired, op, "no signed-in account")
	}

	res, err := p.client.AcquireTokenSilent(ctx, p.apiScopes, public.WithSilentAccount(acct))
	if err != nil {
		p.l.Warn("silent token acquisition failed", "error", err)
		return "", silentAuthError(err)
	}
	return res.AccessToken, nil
}

// silentAuthError maps a failed silent acquisition to KindAuthRequired: the
// refresh token is gone or expired and only interactive sign-in recovers.
// KindAuthFailure is reserved for backend 401/403 responses.
func silentAuthError(err error) *dayforge.Error {
	return dayforge.NewError(dayforge.KindAuthRequired, "acquire token", err)
}

func (p *Provider) BeginSignIn(ctx context.Context) (dayforge.SignInFlow, error) {
	code, err := p.client.AcquireTokenByDeviceCode(ctx, p.signInScopes())
	if err != nil {
		p.l.Error("failed to start device code flow", "error", err)
		return nil, dayforge.NewError(dayforge.KindAuthFailure, "begin sign-in", err)
	}

	return &deviceCodeFlow{code: code}, nil
}

func (p *Provider) SignOut(ctx context.Context) error {
	acct, ok := p.activeAccount(ctx)
	if !ok {
		return nil
	}
	if err := p.client.RemoveAccount(ctx, acct); err != nil {
		p.l.Error("failed sign-out", "error", err)
		return dayforge.NewError(dayforge.KindAuthFailure, "sign out", err)
	}
	return nil
}

// activeAccount returns the first cached account; the client only ever uses
// one.
func (p *Provider) activeAccount(ctx context.Context) (public.Account, bool) {
	accounts, err := p.client.Accounts(ctx)
	if err != nil {
		p.l.Warn("failed account lookup", "error", err)
		return public.Account{}, false
	}
	if len(accounts) == 0 {
		return public.Account{}, false
	}
	return accounts[0], true
}

func (p *Provider) signInScopes() []string {
	return append(append([]string{}, p.loginScopes...), p.apiScopes...)
}

// accountOf narrows a provider account to the fixed-field identity the rest
// of the app sees.
func accountOf(acct public.Account) dayforge.Account {
	return dayforge.Account{
		Name:     acct.Name,
		Username: acct.PreferredUsername,
	}
}

type deviceCodeFlow struct {
	code public.DeviceCode
}

func (f *deviceCodeFlow) Prompt() dayforge.DeviceCodePrompt {
	return dayforge.DeviceCodePrompt{
		UserCode:        f.code.Result.UserCode,
		VerificationURL: f.code.Result.VerificationURL,
		Message:         f.code.Result.Message,
	}
}

func (f *deviceCodeFlow) Wait(ctx context.Context) (dayforge.Session, error) {
	res, err := f.code.AuthenticationResult(ctx)
	if err != nil {
		return dayforge.Session{}, dayforge.NewError(dayforge.KindAuthFailure, "sign in", err)
	}

	acct := accountOf(res.Account)
	if acct.Name == "" {
		acct.Name = res.IDToken.Name
	}
	return dayforge.Session{
		Account:   acct,
		ExpiresAt: res.ExpiresOn,
	}, nil
}
