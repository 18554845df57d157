package cli

import (
	"context"
	"fmt"
	"io"
)

// NotFoundView is the catch-all for unmatched paths.
type NotFoundView struct {
	out io.Writer

	// pathFn reports the path that failed to match; wired after the router
	// exists to avoid a construction cycle.
	pathFn func() string
}

func NewNotFoundView(out io.Writer) *NotFoundView {
	return &NotFoundView{out: out, pathFn: func() string { return "" }}
}

func (v *NotFoundView) Path() string    { return "" }
func (v *NotFoundView) Protected() bool { return false }

func (v *NotFoundView) Render(ctx context.Context) (string, bool) {
	fmt.Fprintf(v.out, "page not found: %s\n", v.pathFn())
	return RouteHome, false
}
