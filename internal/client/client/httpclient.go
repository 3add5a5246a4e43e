package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// TokenSource returns the credential to attach to the next request, or "".
type TokenSource func() string

type HTTPClient struct {
	baseURL        *url.URL
	httpClient     *http.Client
	token          TokenSource
	onUnauthorized func(ctx context.Context)
	log            logging.Logger
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithTokenSource sets where the bearer token is read from on every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.token = ts }
}

// WithUnauthorizedHook registers fn to run whenever the backend answers 401
// (expired or revoked session).
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for the backend rooted at baseURL
// (e.g. "http://localhost:8080/rest"). The default transport keeps a cookie
// jar so cookie-based sessions work alongside bearer tokens.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &HTTPClient{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		token:      func() string { return "" },
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*LoginResult, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: string(password)}

	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetCart(ctx context.Context) ([]models.LineItem, error) {
	var items []models.LineItem
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &items); err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

func (c *HTTPClient) AddToCart(ctx context.Context, productID models.ID, quantity int) error {
	body := struct {
		ProductID models.ID `json:"productId"`
		Quantity  int       `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}

	return c.do(ctx, http.MethodPost, "/cart/add", nil, body, nil)
}

func (c *HTTPClient) UpdateCartLine(ctx context.Context, lineID models.ID, quantity int) ([]models.LineItem, error) {
	q := url.Values{}
	q.Set("quantity", strconv.Itoa(quantity))

	var items []models.LineItem
	if err := c.do(ctx, http.MethodPut, "/cart/"+url.PathEscape(lineID.String()), q, nil, &items); err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

func (c *HTTPClient) DeleteCartLine(ctx context.Context, lineID models.ID) ([]models.LineItem, error) {
	var items []models.LineItem
	if err := c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(lineID.String()), nil, nil, &items); err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

// do sends one JSON request. A nil out discards the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.baseURL
	u.Path = u.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	c.log.Debug(ctx, "api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: decodeErrorBody(raw)}
		// A 401 from the login endpoint means bad credentials, not an expired session.
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil && !strings.HasPrefix(path, "/auth/") {
			c.onUnauthorized(ctx)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode %s %s: %v", common.ErrorInternal, method, path, err)
	}
	return nil
}

// mapError turns transport failures into ErrUnavailable, keeping the cause.
func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func nonNil(items []models.LineItem) []models.LineItem {
	if items == nil {
		return []models.LineItem{}
	}
	return items
}
