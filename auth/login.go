package auth

import (
	"strings"

	"golang.org/x/oauth2"
)

// DefaultProvider is the identity provider the row store federates to.
const DefaultProvider = "azure"

// Login builds the authorize redirect of the row store's auth service.
type Login struct {
	config     oauth2.Config
	provider   string
	redirectTo string
}

// NewLogin expects authURL to be the auth service root, for example
// https://project.example.co/auth/v1.
func NewLogin(authURL, clientID, redirectTo, provider string) *Login {
	authURL = strings.TrimRight(authURL, "/")
	if provider == "" {
		provider = DefaultProvider
	}
	return &Login{
		config: oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL + "/authorize",
				TokenURL: authURL + "/token",
			},
			RedirectURL: redirectTo,
			Scopes:      []string{"openid", "email", "profile"},
		},
		provider:   provider,
		redirectTo: redirectTo,
	}
}

// URL returns the redirect for state together with the PKCE verifier the
// caller must keep until the callback.
func (l *Login) URL(state string) (string, string) {
	verifier := oauth2.GenerateVerifier()
	url := l.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("provider", l.provider),
		oauth2.SetAuthURLParam("redirect_to", l.redirectTo),
		oauth2.S256ChallengeOption(verifier),
	)
	return url, verifier
}
