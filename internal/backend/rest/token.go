package rest

import (
	"errors"
	"net/http"

	"golang.org/x/oauth2"

	"tasktrack/internal/storage"
)

// ErrNoToken is returned by a token source that has nothing persisted.
var ErrNoToken = errors.New("no token")

// StoreTokenSource reads the bearer token from persisted storage on every
// call, so a login or logout is picked up by the next request.
type StoreTokenSource struct {
	Store storage.Store
}

// Token implements oauth2.TokenSource.
func (s StoreTokenSource) Token() (*oauth2.Token, error) {
	v, ok, err := s.Store.Get(storage.TokenKey)
	if err != nil {
		return nil, err
	}
	if !ok || v == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: v, TokenType: "Bearer"}, nil
}

// bearerTransport sets the Authorization header when a token is available
// and sends the request anonymously otherwise (login, register, ...).
type bearerTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.source == nil {
		return t.base.RoundTrip(req)
	}
	tok, err := t.source.Token()
	if errors.Is(err, ErrNoToken) {
		return t.base.RoundTrip(req)
	}
	if err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}
	req2 := req.Clone(req.Context())
	tok.SetAuthHeader(req2)
	return t.base.RoundTrip(req2)
}
