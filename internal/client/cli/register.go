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

// RegisterView renders the /registUser route. A successful registration
// signs the user in, same as login.
type RegisterView struct {
	ctrl        *authflow.Controller
	rules       *validation.Rules
	retainInput bool
	reader      *bufio.Reader
	out         io.Writer

	lastUserID   string
	lastUserName string
	lastError    string
}

func NewRegisterView(ctrl *authflow.Controller, rules *validation.Rules, retainInput bool, reader *bufio.Reader, out io.Writer) *RegisterView {
	return &RegisterView{ctrl: ctrl, rules: rules, retainInput: retainInput, reader: reader, out: out}
}

func (v *RegisterView) Path() string    { return RouteRegister }
func (v *RegisterView) Protected() bool { return false }

func (v *RegisterView) Render(ctx context.Context) (string, bool) {
	fmt.Fprintln(v.out, "== Register ==")
	if v.lastError != "" {
		fmt.Fprintln(v.out, "! "+v.lastError)
	}

	for {
		cmd, err := getSimpleText(v.reader, "Commands: register, login, exit", "", v.out)
		if err != nil {
			return "", true
		}

		switch cmd {
		case "register":
			if v.submit(ctx) {
				return "", false
			}
		case "login":
			return RouteLogin, false
		case "exit", "quit":
			fmt.Fprintln(v.out, "Bye!")
			return "", true
		default:
			fmt.Fprintln(v.out, "Unknown command:", cmd)
		}
	}
}

func (v *RegisterView) submit(ctx context.Context) bool {
	in, err := v.readForm()
	if err != nil {
		fmt.Fprintln(v.out, "input error:", err)
		return false
	}

	fmt.Fprintln(v.out, "registering...")
	rep, out := v.ctrl.SubmitRegistration(ctx, in)
	if len(rep) > 0 {
		for _, fe := range rep {
			fmt.Fprintf(v.out, "%s: %s\n", fe.Field, fe.Message)
		}
		v.keepOrClear(in)
		return false
	}

	switch out.Kind {
	case authflow.Succeeded:
		v.lastUserID, v.lastUserName = "", ""
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

func (v *RegisterView) keepOrClear(in *models.RegistrationInput) {
	if v.retainInput {
		v.lastUserID, v.lastUserName = in.UserID, in.UserName
	} else {
		v.lastUserID, v.lastUserName = "", ""
	}
}

func (v *RegisterView) readForm() (*models.RegistrationInput, error) {
	in := &models.RegistrationInput{}

	for {
		id, err := getSimpleText(v.reader, "userId", v.lastUserID, v.out)
		if err != nil {
			return nil, err
		}
		in.UserID = id
		if rep := v.rules.CheckRegistration(in).ForField("userId"); len(rep) > 0 {
			fmt.Fprintln(v.out, rep[0].Message)
			continue
		}
		break
	}

	for {
		name, err := getSimpleText(v.reader, "userName", v.lastUserName, v.out)
		if err != nil {
			return nil, err
		}
		in.UserName = name
		if rep := v.rules.CheckRegistration(in).ForField("userName"); len(rep) > 0 {
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
		if rep := v.rules.CheckRegistration(in).ForField("password"); len(rep) > 0 {
			fmt.Fprintln(v.out, rep[0].Message)
			continue
		}
		break
	}

	for {
		pw, err := getPassword("confirm password", v.out)
		if err != nil {
			return nil, err
		}
		in.ConfirmPassword = string(pw)
		common.WipeBytes(pw)
		if rep := v.rules.CheckRegistration(in).ForField("confirmPassword"); len(rep) > 0 {
			fmt.Fprintln(v.out, rep[0].Message)
			continue
		}
		break
	}

	return in, nil
}
