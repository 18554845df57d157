package api

import (
	"net/http"

	"github.com/google/uuid"
)

// authTransport decorates every outbound request and inspects every response,
// independent of the call site:
//
//   - attaches "Authorization: Bearer <token>" when a token is stored;
//   - tags the request with an X-Request-Id for server-side correlation;
//   - captures a rotated token from the X-Auth-Token response header;
//   - on a 401 response clears the stored token and fires onUnauthorized,
//     which the application wires to "navigate to /login".
type authTransport struct {
	base           http.RoundTripper
	tokens         *TokenStore
	onUnauthorized func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per RoundTripper contract the request must not be mutated in place.
	req = req.Clone(req.Context())

	if tok := t.tokens.Get(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if tok := resp.Header.Get("X-Auth-Token"); tok != "" {
		t.tokens.Set(tok)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.tokens.Clear()
		if t.onUnauthorized != nil {
			t.onUnauthorized()
		}
	}

	return resp, nil
}
