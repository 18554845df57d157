package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/amishiro/userportal/internal/client/authflow"
)

// HomeView renders the /home route. It is the only protected view; the
// router guard guarantees a session user exists before Render runs.
type HomeView struct {
	ctrl    *authflow.Controller
	session SessionReader
	reader  *bufio.Reader
	out     io.Writer
}

func NewHomeView(ctrl *authflow.Controller, session SessionReader, reader *bufio.Reader, out io.Writer) *HomeView {
	return &HomeView{ctrl: ctrl, session: session, reader: reader, out: out}
}

func (v *HomeView) Path() string    { return RouteHome }
func (v *HomeView) Protected() bool { return true }

func (v *HomeView) Render(ctx context.Context) (string, bool) {
	user := v.session.Current()
	if user == nil {
		// the guard redirects before this renders; re-resolve just in case
		return RouteLogin, false
	}

	fmt.Fprintln(v.out, "== Home ==")
	fmt.Fprintf(v.out, "Welcome, %s (%s)\n", user.UserName, user.UserID)

	for {
		cmd, err := getSimpleText(v.reader, "Commands: logout, exit", "", v.out)
		if err != nil {
			return "", true
		}

		switch cmd {
		case "logout":
			// no confirmation step: clear the session and go to login
			if err := v.ctrl.Logout(ctx); err != nil {
				fmt.Fprintln(v.out, "logout failed:", err)
				continue
			}
			return "", false
		case "exit", "quit":
			fmt.Fprintln(v.out, "Bye!")
			return "", true
		default:
			fmt.Fprintln(v.out, "Unknown command:", cmd)
		}
	}
}
