package cart

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

var (
	// ErrInvalidQuantity rejects quantities below 1 before any backend call.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrMissingLineID is returned when a server-side line is addressed
	// without its line id.
	ErrMissingLineID = errors.New("line id is required")

	// ErrStale marks a mutation that succeeded remotely but whose follow-up
	// refresh failed; the in-memory list may lag behind the server.
	ErrStale = errors.New("cart refresh failed after update")
)

// Mode names the backing store a cart currently lives in.
type Mode string

const (
	ModeGuest   Mode = "guest"
	ModeAccount Mode = "account"
)

// LineRef addresses a line. Server carts key lines by LineID, guest carts by
// ProductID; callers pass both and each backend uses the one it needs.
type LineRef struct {
	LineID    models.ID
	ProductID models.ID
}

// Backend is one place a cart can live. Every mutation returns the complete
// list after the change.
type Backend interface {
	Mode() Mode
	Fetch(ctx context.Context) ([]models.LineItem, error)
	Add(ctx context.Context, product models.Product, quantity int) ([]models.LineItem, error)
	Update(ctx context.Context, ref LineRef, quantity int) ([]models.LineItem, error)
	Remove(ctx context.Context, ref LineRef) ([]models.LineItem, error)
}

// RemoteCart is the server-side backend plus the raw add used by the
// guest-cart merge.
type RemoteCart interface {
	Backend
	AddLine(ctx context.Context, productID models.ID, quantity int) error
}

// GuestCart is the local backend plus removal of the whole snapshot.
type GuestCart interface {
	Backend
	Clear(ctx context.Context) error
}
