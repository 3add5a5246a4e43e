// Package localstore implements the client's durable local storage: a flat
// key/value space that survives process restarts, the way browser storage
// survives a page reload.
//
// Two implementations are provided:
//   - SQLiteRepository: rows of the "storage" table in the local SQLite file,
//     created by the embedded goose migrations (see client.InitDatabase).
//   - MemoryRepository: a mutex-guarded map for tests and ephemeral runs.
//
// Values are opaque bytes; callers decide the encoding (JSON for the user
// record and the guest cart, raw text for the token).
package localstore
