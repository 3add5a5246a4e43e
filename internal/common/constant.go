// Package common contains shared constants and helpers used across the
// storefront client components.
package common

// Durable storage keys. They are owned by the session and cart packages;
// nothing else writes them.
const (
	StorageKeyUser  = "user"
	StorageKeyToken = "token"
	StorageKeyCart  = "cart"
)

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in AuthorizationHeaderName.
const BearerPrefix = "Bearer "
