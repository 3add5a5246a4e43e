package cart

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// API is the part of the backend client the remote cart needs.
type API interface {
	GetCart(ctx context.Context) ([]models.LineItem, error)
	AddToCart(ctx context.Context, productID models.ID, quantity int) error
	UpdateCartLine(ctx context.Context, lineID models.ID, quantity int) ([]models.LineItem, error)
	DeleteCartLine(ctx context.Context, lineID models.ID) ([]models.LineItem, error)
}

// RemoteBackend keeps the cart on the server. The server is authoritative:
// after an add it decides how quantities stack and whether stock allows it,
// so the list is always re-read rather than patched locally.
type RemoteBackend struct {
	api API
}

var _ RemoteCart = (*RemoteBackend)(nil)

func NewRemoteBackend(api API) *RemoteBackend {
	return &RemoteBackend{api: api}
}

func (b *RemoteBackend) Mode() Mode { return ModeAccount }

func (b *RemoteBackend) Fetch(ctx context.Context) ([]models.LineItem, error) {
	return b.api.GetCart(ctx)
}

func (b *RemoteBackend) AddLine(ctx context.Context, productID models.ID, quantity int) error {
	return b.api.AddToCart(ctx, productID, quantity)
}

// Add submits the product and then re-reads the cart. A failed re-read is
// reported as ErrStale.
func (b *RemoteBackend) Add(ctx context.Context, product models.Product, quantity int) ([]models.LineItem, error) {
	if err := b.AddLine(ctx, product.ID, quantity); err != nil {
		return nil, err
	}

	items, err := b.api.GetCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStale, err)
	}
	return items, nil
}

func (b *RemoteBackend) Update(ctx context.Context, ref LineRef, quantity int) ([]models.LineItem, error) {
	if ref.LineID.IsZero() {
		return nil, ErrMissingLineID
	}
	return b.api.UpdateCartLine(ctx, ref.LineID, quantity)
}

func (b *RemoteBackend) Remove(ctx context.Context, ref LineRef) ([]models.LineItem, error) {
	if ref.LineID.IsZero() {
		return nil, ErrMissingLineID
	}
	return b.api.DeleteCartLine(ctx, ref.LineID)
}
