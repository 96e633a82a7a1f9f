// Package services orchestrates the client: authentication flows, uploads
// and the file list. Every operation reports its outcome to the user through
// a Notifier and also returns the error for the caller's logs.
package services

import (
	"context"

	"github.com/dmitrijs2005/filebox/internal/client/notify"
)

// Session is the credential holder the services drive.
type Session interface {
	Load(ctx context.Context) error
	Credential() string
	Authenticated() bool
	SetCredential(ctx context.Context, token string) error
	BlockEmail(ctx context.Context, email string) error
	IsBlocked(ctx context.Context, email string) bool
}

type Notifier interface {
	Notify(message string, severity notify.Severity)
}

// Reloader refreshes the file list from the server.
type Reloader interface {
	Reload(ctx context.Context) error
}

// TagSource supplies the tags of the next upload.
type TagSource interface {
	Snapshot() []string
	Clear()
}
