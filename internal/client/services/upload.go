package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filebox/internal/client/client"
	"github.com/dmitrijs2005/filebox/internal/client/models"
	"github.com/dmitrijs2005/filebox/internal/client/notify"
	"github.com/dmitrijs2005/filebox/internal/logging"
)

// Uploader sends local files one after another with the current tags and a
// shared folder.
type Uploader struct {
	client   client.Client
	tags     TagSource
	files    Reloader
	notifier Notifier
	keepTags bool
	log      logging.Logger
}

func NewUploader(c client.Client, tags TagSource, files Reloader, n Notifier, keepTags bool, log logging.Logger) *Uploader {
	if log == nil {
		log = logging.Discard()
	}
	return &Uploader{client: c, tags: tags, files: files, notifier: n, keepTags: keepTags, log: log}
}

// Upload sends paths in order. The first failure is notified and stops the
// batch without a reload; files already sent stay on the server. A complete
// batch, or an empty one, reloads the file list.
func (u *Uploader) Upload(ctx context.Context, paths []string, folder string) error {
	tags := u.tags.Snapshot()

	for _, p := range paths {
		if err := u.uploadOne(ctx, p, tags, folder); err != nil {
			u.log.Warn(ctx, "upload stopped", "path", p, "status", client.StatusCode(err), "error", err)
			u.notifier.Notify(err.Error(), notify.Error)
			return err
		}
		u.log.Info(ctx, "uploaded", "path", p)
	}

	if len(paths) > 0 && !u.keepTags {
		u.tags.Clear()
	}
	return u.files.Reload(ctx)
}

func (u *Uploader) uploadOne(ctx context.Context, path string, tags []string, folder string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}
	if st.IsDir() {
		return fmt.Errorf("%s: is a directory", path)
	}

	contentType, err := detectContentType(path, f)
	if err != nil {
		return err
	}

	return u.client.Upload(ctx, models.Upload{
		FileName:    filepath.Base(path),
		ContentType: contentType,
		Content:     f,
		Tags:        tags,
		Folder:      folder,
	})
}

// detectContentType resolves the bare media type of a local file from its
// extension, falling back to sniffing the first 512 bytes. f is rewound.
func detectContentType(path string, f io.ReadSeeker) (string, error) {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt, nil
		}
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", path, err)
	}

	mt, _, err := mime.ParseMediaType(http.DetectContentType(head[:n]))
	if err != nil {
		return "application/octet-stream", nil
	}
	return mt, nil
}
