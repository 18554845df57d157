package cli

import (
	"context"
	"sync"

	"github.com/amishiro/userportal/internal/client/models"
	"github.com/amishiro/userportal/internal/logging"
)

// Navigable routes. Everything else resolves to the not-found view.
const (
	RouteLogin    = "/login"
	RouteHome     = "/home"
	RouteRegister = "/registUser"
)

// View is a renderable route target. Render blocks for user interaction and
// returns the next route to navigate to ("" to re-resolve the current one)
// and whether the application should quit.
type View interface {
	Path() string
	Protected() bool
	Render(ctx context.Context) (next string, quit bool)
}

// SessionReader is the read-only slice of the session store the guard needs.
type SessionReader interface {
	Current() *models.SessionUser
}

// Router maps paths to views and applies the auth guard on every resolve:
// protected views are unreachable without a session user, and the login view
// is skipped when a user is already signed in. The guard redirect happens
// before the target view renders anything.
type Router struct {
	mu       sync.Mutex
	current  string
	views    map[string]View
	notFound View
	session  SessionReader
	log      logging.Logger
}

func NewRouter(session SessionReader, notFound View, log logging.Logger) *Router {
	return &Router{
		current:  RouteLogin,
		views:    make(map[string]View),
		notFound: notFound,
		session:  session,
		log:      log,
	}
}

// Register adds a view under its own path.
func (r *Router) Register(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[v.Path()] = v
}

// Navigate points the router at path. The change takes effect on the next
// Resolve; it is safe to call from the gateway's unauthorized hook.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = path
}

// Current returns the active path.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Resolve returns the view to render for the active path, applying the
// guard. The active path is updated when the guard redirects.
func (r *Router) Resolve(ctx context.Context) View {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, ok := r.views[r.current]
	if !ok {
		return r.notFound
	}

	user := r.session.Current()

	if view.Protected() && user == nil {
		r.log.Info(ctx, "redirecting unauthenticated access", "from", r.current, "to", RouteLogin)
		r.current = RouteLogin
		return r.views[RouteLogin]
	}

	if r.current == RouteLogin && user != nil {
		r.log.Info(ctx, "already signed in, redirecting", "to", RouteHome)
		r.current = RouteHome
		return r.views[RouteHome]
	}

	return view
}
