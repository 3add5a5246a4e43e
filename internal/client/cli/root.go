package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/buildinfo"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/spf13/cobra"
)

// appFactory builds the App a command runs against. Tests replace it.
type appFactory func(ctx context.Context, cfg *config.Config, log logging.Logger, out io.Writer) (*App, error)

// NewRootCmd returns the storefront command tree. Every command except
// version restores the persisted session first, the way a page reload does.
func NewRootCmd() *cobra.Command {
	return newRootCmd(NewApp)
}

func newRootCmd(newApp appFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront client: session and cart from the terminal",
		Long: `storefront keeps a shopping cart for the storefront backend.

Without a login the cart lives in local storage (guest mode). After login
the cart lives on the server, and anything collected as a guest is merged
into it.`,
		SilenceUsage: true,
	}
	config.BindFlags(root.PersistentFlags())

	run := func(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logging.NewTextLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, log, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			return fn(ctx, a, args)
		}
	}

	var token string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and merge the guest cart into the account",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, _ []string) error {
			if token != "" {
				return a.LoginWithToken(ctx, token)
			}
			return a.Login(ctx)
		}),
	}
	loginCmd.Flags().StringVar(&token, "token", "", "use an existing session token instead of prompting")

	root.AddCommand(
		loginCmd,
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the session and the local cart",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *App, _ []string) error {
				return a.Logout(ctx)
			}),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the logged-in user",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *App, _ []string) error {
				return a.Whoami(ctx)
			}),
		},
		&cobra.Command{
			Use:   "admin-check",
			Short: "Exit non-zero unless the session has an admin role",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *App, _ []string) error {
				return a.AdminCheck(ctx)
			}),
		},
		&cobra.Command{
			Use:   "sync",
			Short: "Merge guest cart lines left in local storage into the account",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *App, _ []string) error {
				return a.Sync(ctx)
			}),
		},
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *App, _ []string) error {
				return a.Shell(ctx)
			}),
		},
		newCartCmd(run),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
	)
	return root
}

type runner func(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error

func newCartCmd(run runner) *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, _ []string) error {
			return a.CartList(ctx)
		}),
	}

	var (
		name  string
		price float64
	)
	addCmd := &cobra.Command{
		Use:   "add <product-id> [qty]",
		Short: "Add a product",
		Args:  cobra.RangeArgs(1, 2),
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			qty := 1
			if len(args) == 2 {
				n, err := parseQuantity(args[1])
				if err != nil {
					return err
				}
				qty = n
			}
			return a.CartAdd(ctx, models.ID(args[0]), qty, name, price)
		}),
	}
	addCmd.Flags().StringVar(&name, "name", "", "product name shown in a guest cart")
	addCmd.Flags().Float64Var(&price, "price", 0, "unit price used for guest cart totals")

	cartCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the cart",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *App, _ []string) error {
				return a.CartList(ctx)
			}),
		},
		addCmd,
		&cobra.Command{
			Use:   "update <line-or-product-id> <qty>",
			Short: "Set the quantity of a line",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(ctx context.Context, a *App, args []string) error {
				qty, err := parseQuantity(args[1])
				if err != nil {
					return err
				}
				return a.CartUpdate(ctx, args[0], qty)
			}),
		},
		&cobra.Command{
			Use:   "remove <line-or-product-id>",
			Short: "Remove a line",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, a *App, args []string) error {
				return a.CartRemove(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the local cart",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *App, _ []string) error {
				return a.CartClear(ctx)
			}),
		},
	)
	return cartCmd
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("quantity must be a number: %q", s)
	}
	return n, nil
}
