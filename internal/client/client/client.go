package client

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Client is the transport-agnostic contract of the storefront backend as the
// CLI uses it: the login endpoint and the cart resource.
type Client interface {
	Login(ctx context.Context, username string, password []byte) (*LoginResult, error)
	GetCart(ctx context.Context) ([]models.LineItem, error)
	AddToCart(ctx context.Context, productID models.ID, quantity int) error
	UpdateCartLine(ctx context.Context, lineID models.ID, quantity int) ([]models.LineItem, error)
	DeleteCartLine(ctx context.Context, lineID models.ID) ([]models.LineItem, error)
}

// LoginResult is the body of a successful POST /auth/login. Token is empty
// when the backend relies on a session cookie instead.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
