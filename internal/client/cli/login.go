package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/amishiro/userportal/internal/client/authflow"
	"github.com/amishiro/userportal/internal/client/models"
	"github.com/amishiro/userportal/internal/client/validation"
	"github.com/amishiro/userportal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// LoginView renders the /login route: the login form plus navigation to the
// registration view.
type LoginView struct {
	ctrl        *authflow.Controller
	rules       *validation.Rules
	retainInput bool
	reader      *bufio.Reader
	out         io.Writer

	// transient form state
	lastUserID string
	lastError  string
}

func NewLoginView(ctrl *authflow.Controller, rules *validation.Rules, retainInput bool, reader *bufio.Reader, out io.Writer) *LoginView {
	return &LoginView{ctrl: ctrl, rules: rules, retainInput: retainInput, reader: reader, out: out}
}

func (v *LoginView) Path() string    { return RouteLogin }
func (v *LoginView) Protected() bool { return false }

func (v *LoginView) Render(ctx context.Context) (string, bool) {
	fmt.Fprintln(v.out, "== Login ==")
	if v.lastError != "" {
		fmt.Fprintln(v.out, "! "+v.lastError)
	}

	for {
		cmd, err := getSimpleText(v.reader, "Commands: login, register, exit", "", v.out)
		if err != nil {
			return "", true
		}

		switch cmd {
		case "login":
			if v.submit(ctx) {
				return "", false
			}
		case "register":
			return RouteRegister, false
		case "exit", "quit":
			fmt.Fprintln(v.out, "Bye!")
			return "", true
		default:
			fmt.Fprintln(v.out, "Unknown command:", cmd)
		}
	}
}

// submit walks the form and runs the login flow. Returns true when the
// session was established and the router should re-resolve.
func (v *LoginView) submit(ctx context.Context) bool {
	in, err := v.readForm()
	if err != nil {
		fmt.Fprintln(v.out, "input error:", err)
		return false
	}

	fmt.Fprintln(v.out, "signing in...")
	rep, out := v.ctrl.SubmitLogin(ctx, in)
	if len(rep) > 0 {
		for _, fe := range rep {
			fmt.Fprintf(v.out, "%s: %s\n", fe.Field, fe.Message)
		}
		v.keepOrClear(in)
		return false
	}

	switch out.Kind {
	case authflow.Succeeded:
		v.lastUserID = ""
		v.lastError = ""
		return true
	case authflow.Ignored:
		return false
	default:
		v.lastError = out.Message
		fmt.Fprintln(v.out, out.Message)
		v.keepOrClear(in)
		return false
	}
}

// keepOrClear applies the retain-input policy to the form state. Passwords
// are never retained.
func (v *LoginView) keepOrClear(in *models.Credentials) {
	if v.retainInput {
		v.lastUserID = in.UserID
	} else {
		v.lastUserID = ""
	}
}

// readForm prompts for each field, validating it as soon as it is entered
// and re-prompting until it passes.
func (v *LoginView) readForm() (*models.Credentials, error) {
	in := &models.Credentials{}

	for {
		id, err := getSimpleText(v.reader, "userId", v.lastUserID, v.out)
		if err != nil {
			return nil, err
		}
		in.UserID = id
		if rep := v.rules.CheckLogin(in).ForField("userId"); len(rep) > 0 {
			fmt.Fprintln(v.out, rep[0].Message)
			continue
		}
		break
	}

	for {
		pw, err := getPassword("password", v.out)
		if err != nil {
			return nil, err
		}
		in.Password = string(pw)
		common.WipeBytes(pw)
		if rep := v.rules.CheckLogin(in).ForField("password"); len(rep) > 0 {
			fmt.Fprintln(v.out, rep[0].Message)
			continue
		}
		break
	}

	return in, nil
}
