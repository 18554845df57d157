// Package cli wires the userportal client together and renders its views:
// login, registration, home, and the not-found catch-all. Navigation is
// route-based and guarded by the session store, mirroring a single-page
// application's router.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/amishiro/userportal/internal/client/api"
	"github.com/amishiro/userportal/internal/client/authflow"
	"github.com/amishiro/userportal/internal/client/config"
	"github.com/amishiro/userportal/internal/client/models"
	"github.com/amishiro/userportal/internal/client/session"
	"github.com/amishiro/userportal/internal/client/validation"
	"github.com/amishiro/userportal/internal/filex"
	"github.com/amishiro/userportal/internal/logging"
)

// App owns the client's long-lived components.
type App struct {
	cfg    *config.Config
	log    logging.Logger
	db     *sql.DB
	store  *session.Store
	tokens *api.TokenStore
	ctrl   *authflow.Controller
	router *Router
	out    io.Writer
}

// NewApp builds the application: opens the local state database, rehydrates
// the session, and wires gateway, controller, router, and views.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log, out: os.Stdout}

	dir, err := filex.EnsureDir(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}

	db, err := session.OpenDatabase(ctx, filepath.Join(dir, "client.db"))
	if err != nil {
		return nil, err
	}
	a.db = db

	a.store = session.NewStore(session.NewSQLiteRepository(db), log)
	if err := a.store.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	a.store.Subscribe(func(u *models.SessionUser) {
		if u == nil {
			log.Info(ctx, "session cleared")
			return
		}
		log.Info(ctx, "session established", "userId", u.UserID)
	})

	a.tokens = api.NewTokenStore()

	gw, err := api.NewHTTPGateway(cfg.ServerBaseURL, cfg.RequestTimeout, a.tokens,
		a.handleUnauthorized, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	rules := validation.NewRules(cfg.PasswordMinLen)
	reader := bufio.NewReader(os.Stdin)

	notFound := NewNotFoundView(a.out)
	a.router = NewRouter(a.store, notFound, log)
	notFound.pathFn = a.router.Current

	a.ctrl = authflow.NewController(gw, a.store, rules,
		func() { a.router.Navigate(RouteHome) },
		func() { a.router.Navigate(RouteLogin) },
		log)

	a.router.Register(NewLoginView(a.ctrl, rules, cfg.RetainInputOnFailure, reader, a.out))
	a.router.Register(NewRegisterView(a.ctrl, rules, cfg.RetainInputOnFailure, reader, a.out))
	a.router.Register(NewHomeView(a.ctrl, a.store, reader, a.out))

	return a, nil
}

// handleUnauthorized is the gateway's 401 hook: the bearer token is already
// cleared by the transport; drop the session and force the login view.
func (a *App) handleUnauthorized() {
	ctx := context.Background()
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session on 401", "error", err)
	}
	a.router.Navigate(RouteLogin)
}

// Run drives the view loop until a view quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		view := a.router.Resolve(ctx)
		next, quit := view.Render(ctx)
		if quit {
			return nil
		}
		if next != "" {
			a.router.Navigate(next)
		}
	}
}

// Close releases the local state database.
func (a *App) Close() error {
	return a.db.Close()
}
