package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/notify"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/dmitrijs2005/storefront/internal/logging"

	_ "modernc.org/sqlite"
)

// Authenticator exchanges credentials for a session.
type Authenticator interface {
	Login(ctx context.Context, username string, password []byte) (*client.LoginResult, error)
}

// App is one running client: the restored session, the cart store on top of
// it and the terminal it talks to.
type App struct {
	log      logging.Logger
	db       *sql.DB
	session  *session.Session
	auth     Authenticator
	cart     *cart.Store
	notifier notify.Notifier
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens local storage, restores the session persisted by the previous
// run and wires the API client and the cart store to it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, out io.Writer) (*App, error) {
	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}
	repo := localstore.NewSQLiteRepository(db)

	sess, err := session.Restore(ctx, repo,
		session.WithAdminRoles(cfg.AdminRoles),
		session.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		log:      log,
		db:       db,
		session:  sess,
		notifier: notify.NewConsole(out),
		reader:   bufio.NewReader(os.Stdin),
		out:      out,
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout,
		client.WithTokenSource(sess.Token),
		client.WithUnauthorizedHook(a.sessionExpired),
		client.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.auth = api

	a.cart = cart.NewStore(sess,
		cart.NewRemoteBackend(api),
		cart.NewLocalBackend(repo, log),
		cart.WithNotifier(a.notifier),
		cart.WithLogger(log),
		cart.WithMergeConcurrency(cfg.MergeConcurrency),
	)
	return a, nil
}

// Close releases local storage.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// sessionExpired runs when the backend rejects the stored credentials.
func (a *App) sessionExpired(ctx context.Context) {
	if !a.session.IsAuthenticated() {
		return
	}
	a.notifier.Info("Session expired", "Please log in again to continue.")
	if err := a.session.Logout(ctx); err != nil {
		a.log.Error(ctx, "failed to clear expired session", "error", err)
	}
	if err := a.cart.ClearCart(ctx); err != nil {
		a.log.Error(ctx, "failed to clear cart", "error", err)
	}
}

func (a *App) getStatus() string {
	s := string(a.cart.Mode())
	if name := a.session.User().DisplayName(); name != "" {
		s = name + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
