package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/guard"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

var errUnknownLine = errors.New("no such line in the cart")

// CartList reloads the cart from its backend and prints it.
func (a *App) CartList(ctx context.Context) error {
	if err := a.cart.FetchCart(ctx); err != nil {
		return err
	}
	a.printCart()
	return nil
}

func (a *App) printCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		a.printf("Cart is empty (%s)\n", a.cart.Mode())
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tPRODUCT\tNAME\tQTY\tPRICE\tAMOUNT")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\n",
			it.ID, it.Product.ID, it.Product.Name, it.Quantity, it.Product.Price, it.Amount())
	}
	_ = w.Flush()

	a.printf("Total: %d item(s), %.2f (%s)\n", a.cart.TotalQuantity(), a.cart.TotalAmount(), a.cart.Mode())
}

// CartAdd adds quantity units of a product. Name and price are only kept for
// guest carts; the server prices account carts itself.
func (a *App) CartAdd(ctx context.Context, productID models.ID, quantity int, name string, price float64) error {
	product := models.Product{ID: productID, Name: name, Price: price}
	return a.cart.AddToCart(ctx, product, quantity)
}

// CartUpdate sets the quantity of the line addressed by ref, which may be a
// line id or a product id.
func (a *App) CartUpdate(ctx context.Context, ref string, quantity int) error {
	if quantity < 1 {
		return cart.ErrInvalidQuantity
	}
	line, err := a.resolveLine(ctx, ref)
	if err != nil {
		return err
	}
	return a.cart.UpdateQuantity(ctx, line.LineID, line.ProductID, quantity)
}

// CartRemove drops the line addressed by ref.
func (a *App) CartRemove(ctx context.Context, ref string) error {
	line, err := a.resolveLine(ctx, ref)
	if err != nil {
		return err
	}
	return a.cart.RemoveItem(ctx, line.LineID, line.ProductID)
}

// CartClear empties the local cart.
func (a *App) CartClear(ctx context.Context) error {
	if err := a.cart.ClearCart(ctx); err != nil {
		return err
	}
	a.printf("Cart cleared\n")
	return nil
}

// Sync pushes any guest lines left in local storage into the account cart.
func (a *App) Sync(ctx context.Context) error {
	if err := guard.Check(a.session, guard.LoggedIn); err != nil {
		return err
	}

	result, err := a.cart.SyncLocalCart(ctx)
	for _, l := range result.FailedLines() {
		a.printf("not merged: product %s x%d: %v\n", l.ProductID, l.Quantity, l.Err)
	}
	if err != nil {
		return err
	}
	a.printCart()
	return nil
}

// resolveLine finds the line ref points at, matching line ids first and
// product ids second. One-shot commands start with an empty store, so the
// cart is loaded when nothing is known yet.
func (a *App) resolveLine(ctx context.Context, ref string) (cart.LineRef, error) {
	id := models.ID(ref)

	items := a.cart.Items()
	if len(items) == 0 {
		if err := a.cart.FetchCart(ctx); err != nil {
			return cart.LineRef{}, err
		}
		items = a.cart.Items()
	}

	for _, it := range items {
		if it.ID == id {
			return cart.LineRef{LineID: it.ID, ProductID: it.Product.ID}, nil
		}
	}
	for _, it := range items {
		if it.Product.ID == id {
			return cart.LineRef{LineID: it.ID, ProductID: it.Product.ID}, nil
		}
	}
	return cart.LineRef{}, fmt.Errorf("%w: %s", errUnknownLine, ref)
}
