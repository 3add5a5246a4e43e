package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/notify"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/stretchr/testify/require"
)

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ *bufio.Reader, _ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuthenticator struct {
	user string
	pass []byte
	res  *client.LoginResult
	err  error
}

func (f *fakeAuthenticator) Login(_ context.Context, user string, pass []byte) (*client.LoginResult, error) {
	f.user, f.pass = user, append([]byte(nil), pass...)
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

// fakeCartAPI is a server cart keyed by product id.
type fakeCartAPI struct {
	mu     sync.Mutex
	lines  []models.LineItem
	nextID int
	getErr error
}

func (f *fakeCartAPI) GetCart(context.Context) ([]models.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return models.CloneLines(f.lines), nil
}

func (f *fakeCartAPI) AddToCart(_ context.Context, productID models.ID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lines {
		if f.lines[i].Product.ID == productID {
			f.lines[i].Quantity += quantity
			return nil
		}
	}
	f.nextID++
	f.lines = append(f.lines, models.LineItem{
		ID:       models.ID(strconv.Itoa(f.nextID)),
		Product:  models.Product{ID: productID, Price: 1},
		Quantity: quantity,
	})
	return nil
}

func (f *fakeCartAPI) UpdateCartLine(_ context.Context, lineID models.ID, quantity int) ([]models.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lines {
		if f.lines[i].ID == lineID {
			f.lines[i].Quantity = quantity
		}
	}
	return models.CloneLines(f.lines), nil
}

func (f *fakeCartAPI) DeleteCartLine(_ context.Context, lineID models.ID) ([]models.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return models.CloneLines(f.lines), nil
}

type testApp struct {
	*App
	auth *fakeAuthenticator
	api  *fakeCartAPI
	repo *localstore.MemoryRepository
	buf  *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	repo := localstore.NewMemoryRepository()
	sess, err := session.Restore(context.Background(), repo)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	notifier := notify.NewConsole(buf)
	auth := &fakeAuthenticator{}
	api := &fakeCartAPI{}

	a := &App{
		log:      logging.Discard(),
		session:  sess,
		auth:     auth,
		notifier: notifier,
		reader:   bufio.NewReader(strings.NewReader("")),
		out:      buf,
	}
	a.cart = cart.NewStore(sess, cart.NewRemoteBackend(api), cart.NewLocalBackend(repo, nil), cart.WithNotifier(notifier))

	return &testApp{App: a, auth: auth, api: api, repo: repo, buf: buf}
}
