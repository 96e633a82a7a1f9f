// Package client contains the client-side building blocks for the file
// storage backend.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): register/login, identity,
//     file listing, upload, binary fetches (thumbnail, preview, download),
//     soft delete, restore and metadata patching.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the bearer
//     credential read from a CredentialSource on every call, tags each request
//     with an X-Request-ID, records Prometheus metrics and normalizes error
//     bodies into *APIError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations): an SQLite
//     database with embedded goose migrations that stands in for browser
//     durable storage.
//
// # Error Handling
//
// Non-2xx responses become *APIError. The message is taken, in order, from
// the "detail" field of a JSON body, the JSON text of the body, a non-empty
// text body, and finally the HTTP status text. *APIError matches the
// sentinels ErrUnauthorized (401), ErrForbidden (403), ErrConflict (409) and
// ErrUnsupportedMedia (415) with errors.Is. Transport failures wrap
// ErrUnavailable. Nothing is retried.
package client
