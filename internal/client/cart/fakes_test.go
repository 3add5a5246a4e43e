package cart

import (
	"context"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// fakeAuth is a switchable session.
type fakeAuth struct {
	mu     sync.Mutex
	authed bool
}

func (f *fakeAuth) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authed
}

func (f *fakeAuth) set(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authed = v
}

// fakeAPI is an in-memory server cart that stacks quantities per product
// the way the real backend does.
type fakeAPI struct {
	mu     sync.Mutex
	lines  []models.LineItem
	nextID int

	// failAdd makes AddToCart fail for the listed product ids.
	failAdd map[models.ID]error
	getErr  error
	updErr  error
	delErr  error

	addCalls []models.ID
	getCalls int
	updCalls int
	delCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100, failAdd: map[models.ID]error{}}
}

func (f *fakeAPI) GetCart(ctx context.Context) ([]models.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return models.CloneLines(f.lines), nil
}

func (f *fakeAPI) AddToCart(ctx context.Context, productID models.ID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, productID)
	if err := f.failAdd[productID]; err != nil {
		return err
	}
	for i := range f.lines {
		if f.lines[i].Product.ID == productID {
			f.lines[i].Quantity += quantity
			return nil
		}
	}
	f.nextID++
	f.lines = append(f.lines, models.LineItem{
		ID:       models.ID(strconv.Itoa(f.nextID)),
		Product:  models.Product{ID: productID, Price: 10},
		Quantity: quantity,
	})
	return nil
}

func (f *fakeAPI) UpdateCartLine(ctx context.Context, lineID models.ID, quantity int) ([]models.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updCalls++
	if f.updErr != nil {
		return nil, f.updErr
	}
	for i := range f.lines {
		if f.lines[i].ID == lineID {
			f.lines[i].Quantity = quantity
		}
	}
	return models.CloneLines(f.lines), nil
}

func (f *fakeAPI) DeleteCartLine(ctx context.Context, lineID models.ID) ([]models.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delCalls++
	if f.delErr != nil {
		return nil, f.delErr
	}
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return models.CloneLines(f.lines), nil
}

func (f *fakeAPI) seed(lines ...models.LineItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, lines...)
}

func (f *fakeAPI) added() []models.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ID{}, f.addCalls...)
}

func (f *fakeAPI) snapshot() []models.LineItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.CloneLines(f.lines)
}
