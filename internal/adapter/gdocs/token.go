package gdocs

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/user/newsscrape-service/internal/repository"
)

// StaticToken is an OAuth access token supplied through configuration.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", fmt.Errorf("%w: no auth token received", repository.ErrCredentialUnavailable)
	}
	return string(t), nil
}

// RefreshingToken mints access tokens from an OAuth refresh token and
// reuses each one until shortly before it expires.
type RefreshingToken struct {
	source oauth2.TokenSource
}

// NewRefreshingToken builds a provider against tokenURL. ctx carries the
// HTTP client used for refreshes and must outlive the provider.
func NewRefreshingToken(ctx context.Context, clientID, clientSecret, refreshToken, tokenURL string) *RefreshingToken {
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL, AuthStyle: oauth2.AuthStyleInParams},
	}
	return &RefreshingToken{source: cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})}
}

func (t *RefreshingToken) Token(context.Context) (string, error) {
	tok, err := t.source.Token()
	if err != nil {
		return "", fmt.Errorf("%w: refresh access token: %v", repository.ErrCredentialUnavailable, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: token endpoint returned no access token", repository.ErrCredentialUnavailable)
	}
	return tok.AccessToken, nil
}
