// Package cli provides the interactive filebox command-line client.
//
// It wires configuration, the local SQLite store, the HTTP API client and
// the services, then runs a REPL. The REPL plays the part of a page: the
// file commands are only offered while a session is active, the file table
// is printed after every reload, and status messages appear as one styled
// line that expires after a few seconds.
//
// Key features:
//   - Register / Login / Logout, identity display
//   - Upload files with a shared tag set and folder
//   - List with search, tag and state filters, pagination
//   - Preview, download, delete, restore, rename and retag files
//   - Request counters of the current run (stats)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
