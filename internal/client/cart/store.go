package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/notify"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// AuthState is what the store needs to know about the session. The store
// reads it on every operation and never changes it.
type AuthState interface {
	IsAuthenticated() bool
}

const defaultMergeConcurrency = 4

// Store holds the current cart lines and routes every operation to the
// remote backend while the session is authenticated and to the guest
// backend otherwise.
//
// Two mutations started concurrently both run to completion; whichever
// response arrives last replaces the in-memory list.
type Store struct {
	mu    sync.Mutex
	items []models.LineItem

	auth   AuthState
	remote RemoteCart
	local  GuestCart

	notifier         notify.Notifier
	log              logging.Logger
	mergeConcurrency int
}

type Option func(*Store)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithMergeConcurrency bounds how many guest lines are pushed to the server
// at once during SyncLocalCart. Values below 1 mean sequential.
func WithMergeConcurrency(n int) Option {
	return func(s *Store) {
		if n < 1 {
			n = 1
		}
		s.mergeConcurrency = n
	}
}

func NewStore(auth AuthState, remote RemoteCart, local GuestCart, opts ...Option) *Store {
	s := &Store{
		items:            []models.LineItem{},
		auth:             auth,
		remote:           remote,
		local:            local,
		notifier:         notify.Discard{},
		log:              logging.Discard(),
		mergeConcurrency: defaultMergeConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) backend() Backend {
	if s.auth.IsAuthenticated() {
		return s.remote
	}
	return s.local
}

// Mode reports which backend the next operation will use.
func (s *Store) Mode() Mode {
	return s.backend().Mode()
}

// Items returns a copy of the current lines.
func (s *Store) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneLines(s.items)
}

// TotalQuantity sums line quantities; non-positive quantities count as zero.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		if item.Quantity > 0 {
			total += item.Quantity
		}
	}
	return total
}

// TotalAmount sums price × quantity over all lines.
func (s *Store) TotalAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Amount()
	}
	return total
}

func (s *Store) setItems(items []models.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = models.CloneLines(items)
}

// FetchCart replaces the in-memory lines with the backend's list. On
// failure the error is logged and returned, and the lines stay as they were.
func (s *Store) FetchCart(ctx context.Context) error {
	b := s.backend()

	items, err := b.Fetch(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch cart failed", "mode", b.Mode(), "error", err)
		return fmt.Errorf("fetch cart: %w", err)
	}

	s.setItems(items)
	return nil
}

// AddToCart adds quantity units of product.
func (s *Store) AddToCart(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	b := s.backend()

	items, err := b.Add(ctx, product, quantity)
	switch {
	case errors.Is(err, ErrStale):
		// The server accepted the line; only the refresh failed.
		s.log.Warn(ctx, "cart refresh after add failed", "product_id", product.ID, "error", err)
	case err != nil:
		s.log.Error(ctx, "add to cart failed", "mode", b.Mode(), "product_id", product.ID, "transient", client.IsTransient(err), "error", err)
		s.notifier.Error("Failed", messageOr(err, "Could not add the product to the cart."))
		return fmt.Errorf("add to cart: %w", err)
	default:
		s.setItems(items)
	}

	if b.Mode() == ModeGuest {
		s.notifier.Success("Added", "The product was saved to your cart for now.")
	} else {
		s.notifier.Success("Added", "The product was added to your cart.")
	}
	return nil
}

// UpdateQuantity sets the quantity of a line. Quantities below 1 are
// rejected without touching the backend.
func (s *Store) UpdateQuantity(ctx context.Context, lineID, productID models.ID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	b := s.backend()

	items, err := b.Update(ctx, LineRef{LineID: lineID, ProductID: productID}, quantity)
	if err != nil {
		s.log.Error(ctx, "update quantity failed", "mode", b.Mode(), "line_id", lineID, "transient", client.IsTransient(err), "error", err)
		s.notifier.Error("Error", messageOr(err, "Could not update the quantity."))
		return fmt.Errorf("update quantity: %w", err)
	}

	s.setItems(items)
	return nil
}

// RemoveItem drops a line. Failures are logged, not shown to the user.
func (s *Store) RemoveItem(ctx context.Context, lineID, productID models.ID) error {
	b := s.backend()

	items, err := b.Remove(ctx, LineRef{LineID: lineID, ProductID: productID})
	if err != nil {
		s.log.Error(ctx, "remove item failed", "mode", b.Mode(), "line_id", lineID, "error", err)
		return fmt.Errorf("remove item: %w", err)
	}

	s.setItems(items)
	return nil
}

// ClearCart empties the in-memory list and deletes the guest snapshot.
// Server-side lines are left alone; placing an order clears them.
func (s *Store) ClearCart(ctx context.Context) error {
	s.setItems(nil)
	return s.local.Clear(ctx)
}

const unreachableMessage = "The store cannot be reached right now. Please try again later."

// messageOr prefers the server-supplied message carried by err. Network
// failures and 5xx responses without a body get a retry hint instead of
// fallback.
func messageOr(err error, fallback string) string {
	if msg := client.ServerMessage(err); msg != "" {
		return msg
	}
	if client.IsTransient(err) {
		return unreachableMessage
	}
	return fallback
}
