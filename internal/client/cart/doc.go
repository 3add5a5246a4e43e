// Package cart implements the shopping cart of the storefront client.
//
// A cart lives in one of two backends:
//   - RemoteBackend, the account cart held by the server, used while the
//     session is authenticated. The in-memory list is a cache refreshed
//     from every server response.
//   - LocalBackend, the guest cart, a JSON snapshot in local storage used
//     while nobody is logged in.
//
// Store picks the backend from the session on every call, keeps the current
// lines, derives totals, and reports outcomes through a notify.Notifier.
// SyncLocalCart merges the guest cart into the account cart after login.
package cart
