package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// OAuthProvider wraps one delegated identity provider for the popup flow.
type OAuthProvider struct {
	Name   string
	Config *oauth2.Config
}

// AuthURL returns the provider's authorization URL for the given CSRF state.
func (p *OAuthProvider) AuthURL(state string) string {
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the callback code for a provider token.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.Config.Exchange(ctx, code)
}
