package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-cli/internal/shared"
	"golang.org/x/oauth2"
)

const (
	authBaseURL = "https://accounts.spotify.com"
	authURL     = authBaseURL + "/authorize"
	tokenURL    = authBaseURL + "/api/token"
)

// Scopes is the full set of permissions the CLI requests.
var Scopes = []string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"user-library-read",
	"user-library-modify",
	"playlist-read-private",
	"playlist-read-collaborative",
	"playlist-modify-private",
	"playlist-modify-public",
	"user-read-private",
	"user-read-email",
	"user-top-read",
	"user-read-recently-played",
	"user-follow-read",
	"user-follow-modify",
}

// Flow drives the authorization code + PKCE login against the Spotify
// accounts service. Spotify's PKCE flow is public-client only, so there is
// no client secret anywhere.
type Flow struct {
	config      *oauth2.Config
	logger      *log.Logger
	openBrowser func(string) error
}

// NewFlow creates a login flow for the given application client id.
func NewFlow(clientID string, logger *log.Logger) (*Flow, error) {
	if clientID == "" {
		return nil, shared.ErrMissingClientID
	}
	return &Flow{
		config: &oauth2.Config{
			ClientID:    clientID,
			RedirectURL: RedirectURI,
			Scopes:      Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		logger:      logger,
		openBrowser: shared.OpenBrowser,
	}, nil
}

// AuthURL builds the authorization URL for a verifier and state token.
func (f *Flow) AuthURL(state, verifier string) string {
	return f.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("code_challenge", Challenge(verifier)),
	)
}

// Login runs the complete flow: opens the browser to the authorization
// page, waits on the loopback receiver, and exchanges the code.
func (f *Flow) Login(ctx context.Context) (*Token, error) {
	verifier, err := GenerateVerifier()
	if err != nil {
		return nil, err
	}
	state, err := GenerateState()
	if err != nil {
		return nil, err
	}

	url := f.AuthURL(state, verifier)
	f.logger.Debug("opening authorization page", "url", url)
	if err := f.openBrowser(url); err != nil {
		f.logger.Warn("could not open browser, visit the URL manually", "err", err)
		fmt.Println("Open this URL in your browser:")
		fmt.Println(url)
	}

	code, err := NewCallbackServer(state).Wait(ctx)
	if err != nil {
		return nil, err
	}

	return f.Exchange(ctx, code, verifier)
}

// Exchange trades an authorization code for a token.
func (f *Flow) Exchange(ctx context.Context, code, verifier string) (*Token, error) {
	tok, err := f.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return NewToken(tok, strings.Join(Scopes, " ")), nil
}

// Refresh obtains a fresh access token. Spotify may omit the refresh token
// from the response, in which case the old one is kept.
func (f *Flow) Refresh(ctx context.Context, current *Token) (*Token, error) {
	if current.RefreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	src := f.config.TokenSource(ctx, &oauth2.Token{RefreshToken: current.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	refreshed := NewToken(tok, current.Scope)
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = current.RefreshToken
	}
	return refreshed, nil
}
