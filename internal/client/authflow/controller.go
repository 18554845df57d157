// Package authflow implements the submission state machine behind the login
// and registration forms: validate locally, call the gateway, classify the
// result, mutate the session store, and trigger navigation.
//
// States per form: Idle -> Submitting -> {Succeeded, Rejected, Failed} ->
// Idle. Validation failures block the Idle -> Submitting transition; a
// second submit while Submitting is ignored rather than interleaved.
package authflow

import (
	"context"
	"errors"
	"sync"

	"github.com/amishiro/userportal/internal/client/api"
	"github.com/amishiro/userportal/internal/client/models"
	"github.com/amishiro/userportal/internal/client/validation"
	"github.com/amishiro/userportal/internal/logging"
)

// Form identifies a form instance for the re-entrancy guard.
type Form string

const (
	FormLogin    Form = "login"
	FormRegister Form = "register"
)

// SessionStore is the slice of the session store the controller needs.
type SessionStore interface {
	Current() *models.SessionUser
	Set(ctx context.Context, user *models.SessionUser) error
	Clear(ctx context.Context) error
}

// Controller orchestrates one submission at a time per form.
type Controller struct {
	gw    api.Gateway
	store SessionStore
	rules *validation.Rules
	log   logging.Logger

	// navigation side effects, wired by the application
	navigateHome  func()
	navigateLogin func()

	mu       sync.Mutex
	inFlight map[Form]bool
}

func NewController(gw api.Gateway, store SessionStore, rules *validation.Rules, navigateHome, navigateLogin func(), log logging.Logger) *Controller {
	return &Controller{
		gw:            gw,
		store:         store,
		rules:         rules,
		log:           log,
		navigateHome:  navigateHome,
		navigateLogin: navigateLogin,
		inFlight:      make(map[Form]bool),
	}
}

// Submitting reports whether a request for the form is in flight. Views use
// it to drive the loading indicator.
func (c *Controller) Submitting(form Form) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[form]
}

// SubmitLogin runs the full login flow. A non-empty report means validation
// blocked the submission and nothing was sent.
func (c *Controller) SubmitLogin(ctx context.Context, in *models.Credentials) (validation.Report, *Outcome) {
	if rep := c.rules.CheckLogin(in); len(rep) > 0 {
		return rep, nil
	}

	if !c.begin(FormLogin) {
		return nil, &Outcome{Kind: Ignored}
	}
	defer c.end(FormLogin)

	env, err := c.gw.Login(ctx, in)
	return nil, c.settle(ctx, env, err, MsgLoginRejected)
}

// SubmitRegistration runs the full registration flow. The original backend
// signs the user in on successful registration, so the success effects are
// identical to login.
func (c *Controller) SubmitRegistration(ctx context.Context, in *models.RegistrationInput) (validation.Report, *Outcome) {
	if rep := c.rules.CheckRegistration(in); len(rep) > 0 {
		return rep, nil
	}

	if !c.begin(FormRegister) {
		return nil, &Outcome{Kind: Ignored}
	}
	defer c.end(FormRegister)

	env, err := c.gw.Register(ctx, in)
	return nil, c.settle(ctx, env, err, MsgRegistrationRejected)
}

// Logout clears the session unconditionally and returns to the login view.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	c.navigateLogin()
	return nil
}

// begin marks the form submitting. Returns false when a submission is
// already in flight, in which case the caller must drop the attempt.
func (c *Controller) begin(form Form) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[form] {
		return false
	}
	c.inFlight[form] = true
	return true
}

func (c *Controller) end(form Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight[form] = false
}

// settle classifies the gateway result and applies its effects. Only the
// Succeeded branch mutates the store and navigates; every other branch
// leaves both untouched. If the 401 interceptor cleared the session while
// this call was pending, the success below still applies: last writer wins.
func (c *Controller) settle(ctx context.Context, env *models.APIEnvelope, err error, rejectedFallback string) *Outcome {
	if err != nil {
		if errors.Is(err, api.ErrInvalidResponse) {
			c.log.Error(ctx, "response failed shape validation", "error", err)
			return &Outcome{Kind: FailedShape, Message: MsgInvalidResponse}
		}
		c.log.Warn(ctx, "transport failure", "error", err)
		return &Outcome{Kind: FailedTransport, Message: err.Error()}
	}

	if !env.Success() {
		msg := env.Data.Message
		if msg == "" {
			msg = MsgServerError
		}
		c.log.Warn(ctx, "application error",
			"code", env.ResponseInfo.Code, "message", env.ResponseInfo.Message)
		return &Outcome{Kind: FailedStatus, Message: msg}
	}

	if !env.Data.LoginCheck {
		msg := env.Data.Message
		if msg == "" {
			msg = rejectedFallback
		}
		return &Outcome{Kind: Rejected, Message: msg}
	}

	user := env.User()
	if err := c.store.Set(ctx, user); err != nil {
		c.log.Error(ctx, "failed to store session", "error", err)
		return &Outcome{Kind: FailedStatus, Message: MsgServerError}
	}

	c.log.Info(ctx, "authenticated", "userId", user.UserID)
	c.navigateHome()
	return &Outcome{Kind: Succeeded}
}
