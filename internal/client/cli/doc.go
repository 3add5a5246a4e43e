// Package cli provides the storefront command-line client.
//
// It wires configuration, local storage, the restored session, the API
// client and the cart store, and exposes them as a cobra command tree:
//
//	storefront login [--token T]     authenticate, then merge the guest cart
//	storefront logout | whoami | admin-check
//	storefront cart [list|add|update|remove|clear]
//	storefront sync                  merge leftover guest lines
//	storefront shell                 interactive loop (see runREPL)
//	storefront version
//
// Each invocation starts by restoring the persisted session, so guest and
// account modes carry over between runs.
package cli
