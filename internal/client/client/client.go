package client

import (
	"context"

	"github.com/dmitrijs2005/filebox/internal/client/models"
)

// CredentialSource yields the current bearer token, or "" when logged out.
// It is consulted on every request, never cached.
type CredentialSource interface {
	Credential() string
}

type Client interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*models.User, error)
	ListFiles(ctx context.Context, filter models.ListFilter) (*models.FileList, error)
	Upload(ctx context.Context, up models.Upload) error
	Thumbnail(ctx context.Context, id int64) (*models.Blob, error)
	Preview(ctx context.Context, id int64) (*models.Blob, error)
	Download(ctx context.Context, id int64) (*models.Blob, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	UpdateMeta(ctx context.Context, id int64, patch models.MetaPatch) (*models.FileItem, error)
}
