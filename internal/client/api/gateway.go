// Package api is the HTTP gateway to the account backend. It owns the trust
// boundary: every response body is decoded and shape-validated here, and no
// unchecked external data crosses into the rest of the client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/amishiro/userportal/internal/client/models"
	"github.com/amishiro/userportal/internal/logging"
)

const (
	loginPath    = "/login"
	registerPath = "/registUser"

	// responses larger than this are not account envelopes
	maxBodyBytes = 1 << 20
)

// Gateway is the outbound surface the auth flow depends on. A call either
// resolves with a shape-validated envelope or fails with ErrUnavailable
// (transport) or ErrInvalidResponse (undecodable 2xx body).
type Gateway interface {
	Login(ctx context.Context, in *models.Credentials) (*models.APIEnvelope, error)
	Register(ctx context.Context, in *models.RegistrationInput) (*models.APIEnvelope, error)
}

// HTTPGateway implements Gateway over HTTP+JSON. Requests carry cookies (the
// jar) and the bearer token (authTransport); the configured timeout is the
// only bound on call lifetime.
type HTTPGateway struct {
	baseURL  string
	hc       *http.Client
	validate *validator.Validate
	log      logging.Logger
}

// NewHTTPGateway builds the gateway. onUnauthorized runs whenever any call
// sees a 401, after the bearer token has been cleared.
func NewHTTPGateway(baseURL string, timeout time.Duration, tokens *TokenStore, onUnauthorized func(), log logging.Logger) (*HTTPGateway, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	hc := &http.Client{
		Timeout: timeout,
		Jar:     jar,
		Transport: &authTransport{
			base:           http.DefaultTransport,
			tokens:         tokens,
			onUnauthorized: onUnauthorized,
		},
	}

	return &HTTPGateway{
		baseURL:  baseURL,
		hc:       hc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}, nil
}

// Login posts credentials to /login.
func (g *HTTPGateway) Login(ctx context.Context, in *models.Credentials) (*models.APIEnvelope, error) {
	return g.post(ctx, loginPath, in)
}

// Register posts registration input to /registUser. ConfirmPassword is
// excluded from the body by its json tag.
func (g *HTTPGateway) Register(ctx context.Context, in *models.RegistrationInput) (*models.APIEnvelope, error) {
	return g.post(ctx, registerPath, in)
}

func (g *HTTPGateway) post(ctx context.Context, path string, body any) (*models.APIEnvelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	g.log.Debug(ctx, "api request", "path", path)

	resp, err := g.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	env, verr := g.decodeEnvelope(data)
	if verr != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			// A non-2xx response without a readable envelope still has to
			// reach the classifier as an application error, not a shape
			// error. Map the HTTP status into a synthetic envelope.
			g.log.Warn(ctx, "api error response without envelope",
				"path", path, "status", resp.StatusCode)
			return &models.APIEnvelope{
				ResponseInfo: models.ResponseInfo{
					Code:    strconv.Itoa(resp.StatusCode),
					Message: resp.Status,
				},
			}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, verr)
	}

	g.log.Debug(ctx, "api response", "path", path, "code", env.ResponseInfo.Code)
	return env, nil
}

// decodeEnvelope parses and shape-checks a response body. Extra fields are
// ignored; a missing or empty responseInfo.code fails the check.
func (g *HTTPGateway) decodeEnvelope(data []byte) (*models.APIEnvelope, error) {
	var env models.APIEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.ResponseInfo.Code == "" {
		return nil, fmt.Errorf("envelope missing responseInfo.code")
	}
	if err := g.validate.Struct(&env); err != nil {
		return nil, fmt.Errorf("envelope shape: %w", err)
	}
	return &env, nil
}
