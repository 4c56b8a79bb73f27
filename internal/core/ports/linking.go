package ports

import "context"

// AccountLinker manages the playback-provider account-linking
// precondition: obtaining an authorization URL and completing the
// authorization-code exchange.
type AccountLinker interface {
	// Linked reports whether a provider account is currently linked.
	Linked(ctx context.Context) bool
	// AuthURL returns the external authorization URL for the given
	// opaque state value.
	AuthURL(state string) string
	// Exchange completes the authorization-code exchange.
	Exchange(ctx context.Context, code string) error
}
