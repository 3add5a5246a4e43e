// Package client contains the client-side building blocks for talking to
// the storefront backend and bootstrapping local persistence.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): the login
//     endpoint and the cart resource (GET /cart, POST /cart/add,
//     PUT /cart/{id}?quantity=N, DELETE /cart/{id}).
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches the
//     bearer token from a TokenSource on every request, keeps a cookie jar for
//     cookie-based sessions, reports 401 responses to an optional hook, and
//     maps failures to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures and 5xx responses match ErrUnavailable; 401 matches
// ErrUnauthorized and 403 ErrForbidden. Every non-2xx response is an
// *APIError whose Message carries the server text; ServerMessage extracts it.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
