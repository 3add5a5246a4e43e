package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/guard"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email and password, authenticates against the backend
// and then moves the guest cart into the account.
//
// The password byte slice is wiped before returning. A rejected login leaves
// the session and the guest cart untouched.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		a.log.Warn(ctx, "login unsuccessful", "user", userName, "error", err)
		return fmt.Errorf("login: %w", err)
	}

	return a.completeLogin(ctx, res.User, res.Token)
}

// LoginWithToken records a session obtained elsewhere (single sign-on or a
// cookie flow) where only a token is known.
func (a *App) LoginWithToken(ctx context.Context, token string) error {
	return a.completeLogin(ctx, nil, token)
}

func (a *App) completeLogin(ctx context.Context, user models.User, token string) error {
	if err := a.session.Login(ctx, user, token); err != nil {
		// The session is usable in memory; only the next start will miss it.
		a.log.Error(ctx, "failed to persist session", "error", err)
	}
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("login: %w", guard.ErrLoginRequired)
	}
	a.log.Info(ctx, "login successful", "user", a.session.User().DisplayName())

	result, err := a.cart.SyncLocalCart(ctx)
	if n := result.Failed(); n > 0 {
		a.notifier.Error("Cart", fmt.Sprintf("%d item(s) from your guest cart could not be added.", n))
	}
	if err != nil {
		a.log.Warn(ctx, "cart reload after login failed", "error", err)
	}

	a.printf("Logged in as %s\n", a.displayName())
	return nil
}

// Logout forgets the session and the local cart. It is safe to run in guest
// mode or more than once.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	if err := a.cart.ClearCart(ctx); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

// Whoami prints the current identity, its role and token expiry.
func (a *App) Whoami(ctx context.Context) error {
	if err := guard.Check(a.session, guard.LoggedIn); err != nil {
		return err
	}

	user := a.session.User()
	a.printf("User:  %s\n", a.displayName())
	if role := user.RoleName(); role != "" {
		a.printf("Role:  %s\n", role)
	}
	a.printf("Admin: %t\n", a.session.IsAdmin())
	if exp, ok := a.session.TokenExpiry(); ok {
		a.printf("Token expires: %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

// AdminCheck succeeds only for sessions holding an admin role.
func (a *App) AdminCheck(ctx context.Context) error {
	if err := guard.Check(a.session, guard.Admin); err != nil {
		return err
	}
	a.printf("Admin access granted\n")
	return nil
}

func (a *App) displayName() string {
	if name := a.session.User().DisplayName(); name != "" {
		return name
	}
	return "(token session)"
}
