package spotify

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"

	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

// Endpoint URLs and scopes for the Spotify authorization-code flow.
var spotifyEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

var linkingScopes = []string{
	"user-read-email",
	"playlist-read-private",
	"user-read-playback-state",
	"user-modify-playback-state",
	"streaming",
}

// Linker implements the account-linking port with the Spotify OAuth
// authorization-code flow. The exchanged token backs every API request
// and is refreshed transparently by the token source.
type Linker struct {
	conf *oauth2.Config

	mu    sync.Mutex
	token *oauth2.Token
}

// compile-time interface assertion
var _ ports.AccountLinker = (*Linker)(nil)

// NewLinker constructs a Linker from client credentials and the
// registered redirect URL.
func NewLinker(clientID, clientSecret, redirectURL string) *Linker {
	return &Linker{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       linkingScopes,
			Endpoint:     spotifyEndpoint,
		},
	}
}

// Linked reports whether an account token is held.
func (l *Linker) Linked(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.token != nil
}

// AuthURL returns the external authorization URL carrying the opaque
// state value. show_dialog forces the consent screen so re-linking a
// different account works.
func (l *Linker) AuthURL(state string) string {
	return l.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Exchange completes the authorization-code exchange and stores the
// resulting token.
func (l *Linker) Exchange(ctx context.Context, code string) error {
	token, err := l.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("spotify adapter: code exchange: %w", err)
	}
	l.mu.Lock()
	l.token = token
	l.mu.Unlock()
	return nil
}

// HTTPClient returns a token-backed HTTP client for the linked
// account, or nil when no account is linked. The underlying token
// source refreshes expired access tokens with the stored refresh
// token.
func (l *Linker) HTTPClient(ctx context.Context) *http.Client {
	l.mu.Lock()
	token := l.token
	l.mu.Unlock()
	if token == nil {
		return nil
	}
	return oauth2.NewClient(ctx, l.conf.TokenSource(ctx, token))
}
