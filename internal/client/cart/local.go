package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
)

// LocalBackend keeps a guest cart as a JSON snapshot under the "cart" key.
// The snapshot is the source of truth: every operation reads it, and every
// mutation writes it back before returning.
type LocalBackend struct {
	repo  localstore.Repository
	log   logging.Logger
	newID func() models.ID
}

var _ GuestCart = (*LocalBackend)(nil)

func NewLocalBackend(repo localstore.Repository, log logging.Logger) *LocalBackend {
	if log == nil {
		log = logging.Discard()
	}
	return &LocalBackend{
		repo:  repo,
		log:   log,
		newID: func() models.ID { return models.ID(uuid.NewString()) },
	}
}

func (b *LocalBackend) Mode() Mode { return ModeGuest }

// Fetch returns the snapshot. Absent means empty; a snapshot that does not
// parse is deleted and also treated as empty.
func (b *LocalBackend) Fetch(ctx context.Context) ([]models.LineItem, error) {
	raw, err := b.repo.Get(ctx, common.StorageKeyCart)
	if err != nil {
		return nil, fmt.Errorf("read guest cart: %w", err)
	}
	if len(raw) == 0 {
		return []models.LineItem{}, nil
	}

	var items []models.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		b.log.Warn(ctx, "discarding corrupt guest cart", "error", err)
		if err := b.repo.Delete(ctx, common.StorageKeyCart); err != nil {
			b.log.Warn(ctx, "failed to delete corrupt guest cart", "error", err)
		}
		return []models.LineItem{}, nil
	}
	if items == nil {
		items = []models.LineItem{}
	}
	return items, nil
}

// Add increments the line holding product, or appends a new line with a
// generated id. Stock is not checked; only the server knows it.
func (b *LocalBackend) Add(ctx context.Context, product models.Product, quantity int) ([]models.LineItem, error) {
	items, err := b.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOfProduct(items, product.ID); i >= 0 {
		items[i].Quantity += quantity
	} else {
		items = append(items, models.LineItem{ID: b.newID(), Product: product, Quantity: quantity})
	}

	return items, b.save(ctx, items)
}

// Update sets the quantity of the line holding ref.ProductID. An unknown
// product leaves the snapshot untouched.
func (b *LocalBackend) Update(ctx context.Context, ref LineRef, quantity int) ([]models.LineItem, error) {
	items, err := b.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOfProduct(items, ref.ProductID)
	if i < 0 {
		return items, nil
	}
	items[i].Quantity = quantity

	return items, b.save(ctx, items)
}

func (b *LocalBackend) Remove(ctx context.Context, ref LineRef) ([]models.LineItem, error) {
	items, err := b.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.Product.ID != ref.ProductID {
			kept = append(kept, item)
		}
	}

	return kept, b.save(ctx, kept)
}

// Clear deletes the snapshot.
func (b *LocalBackend) Clear(ctx context.Context) error {
	if err := b.repo.Delete(ctx, common.StorageKeyCart); err != nil {
		return fmt.Errorf("clear guest cart: %w", err)
	}
	return nil
}

func (b *LocalBackend) save(ctx context.Context, items []models.LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode guest cart: %w", err)
	}
	if err := b.repo.Set(ctx, common.StorageKeyCart, raw); err != nil {
		return fmt.Errorf("write guest cart: %w", err)
	}
	return nil
}

func indexOfProduct(items []models.LineItem, productID models.ID) int {
	for i, item := range items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}
