package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishiro/userportal/internal/client/api"
	"github.com/amishiro/userportal/internal/client/authflow"
	"github.com/amishiro/userportal/internal/client/models"
	"github.com/amishiro/userportal/internal/client/validation"
)

// scriptedGateway returns a fixed result for every call.
type scriptedGateway struct {
	env   *models.APIEnvelope
	err   error
	calls int
}

func (s *scriptedGateway) Login(context.Context, *models.Credentials) (*models.APIEnvelope, error) {
	s.calls++
	return s.env, s.err
}

func (s *scriptedGateway) Register(context.Context, *models.RegistrationInput) (*models.APIEnvelope, error) {
	s.calls++
	return s.env, s.err
}

// stubInputs replaces the interactive input seams with scripted values.
// Text inputs and passwords are consumed in order; exhaustion returns EOF,
// which views treat as quit.
func stubInputs(t *testing.T, texts []string, passwords [][]byte) {
	t.Helper()
	origText, origPass := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origText
		getPassword = origPass
	})

	ti, pi := 0, 0
	getSimpleText = func(_ *bufio.Reader, _ string, defaultValue string, _ io.Writer) (string, error) {
		if ti >= len(texts) {
			return "", io.EOF
		}
		v := texts[ti]
		ti++
		if v == "" {
			return defaultValue, nil
		}
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if pi >= len(passwords) {
			return nil, io.EOF
		}
		v := passwords[pi]
		pi++
		return append([]byte(nil), v...), nil
	}
}

func okAuthEnvelope() *models.APIEnvelope {
	return &models.APIEnvelope{
		ResponseInfo: models.ResponseInfo{Code: "200"},
		Data:         models.UserData{UserID: "u1", UserName: "n1", LoginCheck: true},
	}
}

type viewHarness struct {
	sess      *memSession
	ctrl      *authflow.Controller
	rules     *validation.Rules
	out       *bytes.Buffer
	homeNavs  int
	loginNavs int
}

func newViewHarness(gw api.Gateway) *viewHarness {
	h := &viewHarness{sess: &memSession{}, out: &bytes.Buffer{}}
	h.rules = validation.NewRules(8)
	h.ctrl = authflow.NewController(gw, h.sess, h.rules,
		func() { h.homeNavs++ }, func() { h.loginNavs++ }, testLog())
	return h
}

func TestLoginView_SuccessfulSubmit(t *testing.T) {
	h := newViewHarness(&scriptedGateway{env: okAuthEnvelope()})
	v := NewLoginView(h.ctrl, h.rules, true, nil, h.out)

	stubInputs(t, []string{"login", "u1"}, [][]byte{[]byte("longenough")})

	next, quit := v.Render(context.Background())

	assert.False(t, quit)
	assert.Empty(t, next, "controller navigation drives the next route")
	assert.Equal(t, 1, h.homeNavs)
	require.NotNil(t, h.sess.Current())
	assert.Equal(t, "u1", h.sess.Current().UserID)
	assert.Contains(t, h.out.String(), "signing in...")
	assert.Empty(t, v.lastError)
	assert.Empty(t, v.lastUserID, "form clears on success")
}

func TestLoginView_RejectedRetainsUserID(t *testing.T) {
	env := &models.APIEnvelope{
		ResponseInfo: models.ResponseInfo{Code: "200"},
		Data:         models.UserData{LoginCheck: false, Message: "bad credentials"},
	}
	h := newViewHarness(&scriptedGateway{env: env})
	v := NewLoginView(h.ctrl, h.rules, true, nil, h.out)

	// one failed attempt, then input exhaustion quits the view
	stubInputs(t, []string{"login", "u1"}, [][]byte{[]byte("longenough")})

	_, quit := v.Render(context.Background())

	assert.True(t, quit)
	assert.Contains(t, h.out.String(), "bad credentials")
	assert.Equal(t, "bad credentials", v.lastError)
	assert.Equal(t, "u1", v.lastUserID, "retain-input policy keeps the userId")
	assert.Nil(t, h.sess.Current())
	assert.Zero(t, h.homeNavs)
}

func TestLoginView_ClearPolicyDropsUserID(t *testing.T) {
	env := &models.APIEnvelope{
		ResponseInfo: models.ResponseInfo{Code: "200"},
		Data:         models.UserData{LoginCheck: false},
	}
	h := newViewHarness(&scriptedGateway{env: env})
	v := NewLoginView(h.ctrl, h.rules, false, nil, h.out)

	stubInputs(t, []string{"login", "u1"}, [][]byte{[]byte("longenough")})

	v.Render(context.Background())
	assert.Empty(t, v.lastUserID)
}

func TestLoginView_FieldValidatedOnEntry(t *testing.T) {
	gw := &scriptedGateway{env: okAuthEnvelope()}
	h := newViewHarness(gw)
	v := NewLoginView(h.ctrl, h.rules, true, nil, h.out)

	// empty userId is re-prompted before any submission happens; the short
	// password is re-prompted as well
	stubInputs(t,
		[]string{"login", "", "u1"},
		[][]byte{[]byte("short"), []byte("longenough")})

	_, quit := v.Render(context.Background())

	assert.False(t, quit)
	assert.Equal(t, 1, gw.calls, "only the valid form reaches the gateway")
	assert.Contains(t, h.out.String(), validation.MsgUserIDRequired)
	assert.Contains(t, h.out.String(), "password must be at least 8 characters")
}

func TestLoginView_NavigateToRegister(t *testing.T) {
	h := newViewHarness(&scriptedGateway{})
	v := NewLoginView(h.ctrl, h.rules, true, nil, h.out)

	stubInputs(t, []string{"register"}, nil)

	next, quit := v.Render(context.Background())
	assert.False(t, quit)
	assert.Equal(t, RouteRegister, next)
}

func TestLoginView_TransportFailureDisplayed(t *testing.T) {
	gwErr := fmt.Errorf("%w: dial tcp: connection refused", api.ErrUnavailable)
	h := newViewHarness(&scriptedGateway{err: gwErr})
	v := NewLoginView(h.ctrl, h.rules, true, nil, h.out)

	stubInputs(t, []string{"login", "u1"}, [][]byte{[]byte("longenough")})

	v.Render(context.Background())
	assert.Contains(t, h.out.String(), "connection refused")
	assert.Nil(t, h.sess.Current())
}

func TestRegisterView_SuccessfulSubmit(t *testing.T) {
	h := newViewHarness(&scriptedGateway{env: okAuthEnvelope()})
	v := NewRegisterView(h.ctrl, h.rules, true, nil, h.out)

	stubInputs(t,
		[]string{"register", "u1", "n1"},
		[][]byte{[]byte("longenough"), []byte("longenough")})

	next, quit := v.Render(context.Background())

	assert.False(t, quit)
	assert.Empty(t, next)
	assert.Equal(t, 1, h.homeNavs)
	require.NotNil(t, h.sess.Current())
	assert.Equal(t, "n1", h.sess.Current().UserName)
}

func TestRegisterView_MismatchReprompted(t *testing.T) {
	gw := &scriptedGateway{env: okAuthEnvelope()}
	h := newViewHarness(gw)
	v := NewRegisterView(h.ctrl, h.rules, true, nil, h.out)

	// first confirm attempt mismatches and is re-prompted
	stubInputs(t,
		[]string{"register", "u1", "n1"},
		[][]byte{[]byte("longenough"), []byte("different1"), []byte("longenough")})

	_, quit := v.Render(context.Background())

	assert.False(t, quit)
	assert.Equal(t, 1, gw.calls)
	assert.Contains(t, h.out.String(), validation.MsgPasswordMismatch)
}

func TestRegisterView_NavigateToLogin(t *testing.T) {
	h := newViewHarness(&scriptedGateway{})
	v := NewRegisterView(h.ctrl, h.rules, true, nil, h.out)

	stubInputs(t, []string{"login"}, nil)

	next, quit := v.Render(context.Background())
	assert.False(t, quit)
	assert.Equal(t, RouteLogin, next)
}

func TestHomeView_GreetsAndLogsOut(t *testing.T) {
	h := newViewHarness(&scriptedGateway{})
	require.NoError(t, h.sess.Set(context.Background(),
		&models.SessionUser{UserID: "u1", UserName: "n1", LoginCheck: true}))

	v := NewHomeView(h.ctrl, h.sess, nil, h.out)

	stubInputs(t, []string{"logout"}, nil)

	next, quit := v.Render(context.Background())

	assert.False(t, quit)
	assert.Empty(t, next)
	assert.Contains(t, h.out.String(), "Welcome, n1 (u1)")
	assert.Nil(t, h.sess.Current(), "logout clears the session")
	assert.Equal(t, 1, h.loginNavs, "logout navigates to login")
}

func TestHomeView_ExitQuits(t *testing.T) {
	h := newViewHarness(&scriptedGateway{})
	require.NoError(t, h.sess.Set(context.Background(),
		&models.SessionUser{UserID: "u1", UserName: "n1", LoginCheck: true}))

	v := NewHomeView(h.ctrl, h.sess, nil, h.out)
	stubInputs(t, []string{"exit"}, nil)

	_, quit := v.Render(context.Background())
	assert.True(t, quit)
}

func TestNotFoundView_RedirectsHome(t *testing.T) {
	var out bytes.Buffer
	v := NewNotFoundView(&out)
	v.pathFn = func() string { return "/nope" }

	next, quit := v.Render(context.Background())

	assert.False(t, quit)
	assert.Equal(t, RouteHome, next)
	assert.Contains(t, out.String(), "/nope")
}
