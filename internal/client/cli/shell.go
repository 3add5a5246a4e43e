package cli

import "context"

// Shell loads the cart for the restored session and runs the interactive
// loop until the user exits.
func (a *App) Shell(ctx context.Context) error {
	a.printf("Welcome to the storefront CLI (type 'help' for commands)\n")

	if err := a.cart.FetchCart(ctx); err != nil {
		a.printf("Could not load the cart: %v\n", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}
