package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/filebox/internal/client/client"
	"github.com/dmitrijs2005/filebox/internal/client/models"
	"github.com/dmitrijs2005/filebox/internal/client/notify"
	"github.com/dmitrijs2005/filebox/internal/filex"
	"github.com/dmitrijs2005/filebox/internal/logging"
)

var ErrActionUnavailable = errors.New("action not available for this file")

const DefaultPreviewTTL = 30 * time.Second

// FilterSource returns the filter form as it is right now.
type FilterSource func() models.ListFilter

// Opener shows a local file to the user.
type Opener func(path string) error

// SystemOpener hands path to the desktop's default application.
func SystemOpener(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

type FileListOption func(*FileList)

func WithOpener(o Opener) FileListOption {
	return func(f *FileList) { f.opener = o }
}

func WithDownloadDir(dir string) FileListOption {
	return func(f *FileList) { f.downloadDir = dir }
}

func WithPreviewTTL(d time.Duration) FileListOption {
	return func(f *FileList) { f.previewTTL = d }
}

func WithFileListLogger(l logging.Logger) FileListOption {
	return func(f *FileList) { f.log = l }
}

// FileList keeps the rendered table in step with the server.
//
// Every Reload takes a sequence number; a result that arrives after a newer
// Reload has started is dropped, so the table always shows the latest
// request. Mutating actions reload on success and leave the table untouched
// on failure.
type FileList struct {
	client   client.Client
	session  Session
	notifier Notifier
	view     View
	filter   FilterSource

	opener      Opener
	downloadDir string
	previewTTL  time.Duration
	log         logging.Logger

	seq  atomic.Uint64
	mu   sync.Mutex
	rows map[int64]Row

	thumbs   sync.WaitGroup
	previews map[string]*time.Timer
}

func NewFileList(c client.Client, s Session, n Notifier, v View, filter FilterSource, opts ...FileListOption) *FileList {
	f := &FileList{
		client:      c,
		session:     s,
		notifier:    n,
		view:        v,
		filter:      filter,
		opener:      SystemOpener,
		downloadDir: ".",
		previewTTL:  DefaultPreviewTTL,
		log:         logging.Discard(),
		rows:        map[int64]Row{},
		previews:    map[string]*time.Timer{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FileList) Reload(ctx context.Context) error {
	seq := f.seq.Add(1)
	filter := f.filter().Normalized()

	list, err := f.client.ListFiles(ctx, filter)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seq.Load() != seq {
		f.log.Debug(ctx, "reload superseded", "seq", seq)
		return nil
	}

	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if cErr := f.session.SetCredential(ctx, ""); cErr != nil {
				f.log.Warn(ctx, "credential not removed", "error", cErr)
			}
			f.notifier.Notify(msgLoginFirst, notify.Error)
			return err
		}
		f.log.Warn(ctx, "list failed", "status", client.StatusCode(err), "error", err)
		f.notifier.Notify(err.Error(), notify.Error)
		return err
	}

	rows := Project(list.Items, filter.State)
	f.rows = make(map[int64]Row, len(rows))
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	f.view.Render(rows)

	for _, r := range rows {
		if !r.Thumb {
			continue
		}
		f.thumbs.Add(1)
		go f.loadThumbnail(ctx, seq, r.ID)
	}
	return nil
}

func (f *FileList) loadThumbnail(ctx context.Context, seq uint64, id int64) {
	defer f.thumbs.Done()

	blob, err := f.client.Thumbnail(ctx, id)

	// Render also runs under f.mu, so a newer table cannot appear between
	// the check and the update.
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq.Load() != seq {
		return
	}
	if err != nil {
		f.log.Debug(ctx, "thumbnail unavailable", "id", id, "error", err)
		f.view.HideThumbnail(id)
		return
	}
	f.view.SetThumbnail(id, blob)
}

// Wait blocks until the thumbnail fetches started by past reloads finish.
func (f *FileList) Wait() {
	f.thumbs.Wait()
}

// Rows returns the table as last rendered.
func (f *FileList) Rows() map[int64]Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int64]Row, len(f.rows))
	for k, v := range f.rows {
		out[k] = v
	}
	return out
}

// Dispatch runs an action that needs no input.
func (f *FileList) Dispatch(ctx context.Context, id int64, action Action) error {
	switch action {
	case ActionPreview:
		return f.Preview(ctx, id)
	case ActionDownload:
		return f.Download(ctx, id)
	case ActionDelete:
		return f.Delete(ctx, id)
	case ActionRestore:
		return f.Restore(ctx, id)
	default:
		return f.reject(ctx, id, action)
	}
}

// row returns the rendered row if it offers action.
func (f *FileList) row(ctx context.Context, id int64, action Action) (Row, error) {
	f.mu.Lock()
	r, ok := f.rows[id]
	f.mu.Unlock()

	if !ok || !r.Allows(action) {
		return Row{}, f.reject(ctx, id, action)
	}
	return r, nil
}

func (f *FileList) reject(ctx context.Context, id int64, action Action) error {
	f.log.Debug(ctx, "action rejected", "id", id, "action", action)
	f.notifier.Notify(msgActionUnavailable, notify.Error)
	return fmt.Errorf("%w: %s on %d", ErrActionUnavailable, action, id)
}

func (f *FileList) Preview(ctx context.Context, id int64) error {
	r, err := f.row(ctx, id, ActionPreview)
	if err != nil {
		return err
	}

	blob, err := f.client.Preview(ctx, id)
	if err != nil {
		f.previewFailed(ctx, err)
		return err
	}

	path, err := f.writeTemp(r.Name, blob.Data)
	if err != nil {
		f.notifier.Notify(err.Error(), notify.Error)
		return err
	}
	f.schedulePreviewCleanup(path)

	if err := f.opener(path); err != nil {
		f.log.Warn(ctx, "preview not opened", "path", path, "error", err)
		f.notifier.Notify(msgPreviewBlocked, notify.Info)
		return nil
	}
	return nil
}

func (f *FileList) previewFailed(ctx context.Context, err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		f.notifier.Notify(msgPreviewSessionExpired, notify.Error)
		if cErr := f.session.SetCredential(ctx, ""); cErr != nil {
			f.log.Warn(ctx, "credential not removed", "error", cErr)
		}
	case errors.Is(err, client.ErrForbidden):
		f.notifier.Notify(msgPreviewForbidden, notify.Error)
	case errors.Is(err, client.ErrUnsupportedMedia):
		f.notifier.Notify(msgPreviewUnsupported, notify.Info)
	case errors.As(err, &apiErr):
		f.notifier.Notify(msgPreviewFailedPrefix+apiErr.StatusText, notify.Error)
	default:
		f.notifier.Notify(err.Error(), notify.Error)
	}
}

func (f *FileList) writeTemp(name string, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "filebox-preview-*"+filepath.Ext(filex.SafeName(name)))
	if err != nil {
		return "", fmt.Errorf("create preview file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write preview file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close preview file: %w", err)
	}
	return tmp.Name(), nil
}

func (f *FileList) schedulePreviewCleanup(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.previews[path] = time.AfterFunc(f.previewTTL, func() {
		f.mu.Lock()
		delete(f.previews, path)
		f.mu.Unlock()
		_ = os.Remove(path)
	})
}

// Close removes preview files whose TTL has not run out yet.
func (f *FileList) Close() {
	f.mu.Lock()
	pending := f.previews
	f.previews = map[string]*time.Timer{}
	f.mu.Unlock()

	for path, t := range pending {
		if t.Stop() {
			_ = os.Remove(path)
		}
	}
}

// Download saves the file into the download directory under the name the
// server reports, or the listed name.
func (f *FileList) Download(ctx context.Context, id int64) error {
	r, err := f.row(ctx, id, ActionDownload)
	if err != nil {
		return err
	}

	blob, err := f.client.Download(ctx, id)
	if err != nil {
		f.notifier.Notify(err.Error(), notify.Error)
		return err
	}

	name := blob.FileName
	if name == "" {
		name = r.Name
	}

	dir, err := filex.EnsureDir(f.downloadDir)
	if err == nil {
		var dst string
		dst, err = filex.WriteAtomic(dir, name, blob.Data)
		if err == nil {
			f.log.Info(ctx, "downloaded", "id", id, "path", dst)
			f.notifier.Notify(fmt.Sprintf(msgSavedFmt, dst), notify.Success)
			return nil
		}
	}
	f.notifier.Notify(err.Error(), notify.Error)
	return err
}

func (f *FileList) Delete(ctx context.Context, id int64) error {
	if _, err := f.row(ctx, id, ActionDelete); err != nil {
		return err
	}
	return f.mutate(ctx, f.client.Delete(ctx, id))
}

func (f *FileList) Restore(ctx context.Context, id int64) error {
	if _, err := f.row(ctx, id, ActionRestore); err != nil {
		return err
	}
	return f.mutate(ctx, f.client.Restore(ctx, id))
}

func (f *FileList) Rename(ctx context.Context, id int64, name string) error {
	if _, err := f.row(ctx, id, ActionRename); err != nil {
		return err
	}
	_, err := f.client.UpdateMeta(ctx, id, models.MetaPatch{Name: &name})
	return f.mutate(ctx, err)
}

// Retag replaces the tags of a file. An empty list clears them.
func (f *FileList) Retag(ctx context.Context, id int64, tags []string) error {
	if _, err := f.row(ctx, id, ActionRetag); err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	_, err := f.client.UpdateMeta(ctx, id, models.MetaPatch{Tags: &tags})
	return f.mutate(ctx, err)
}

func (f *FileList) mutate(ctx context.Context, err error) error {
	if err != nil {
		f.notifier.Notify(err.Error(), notify.Error)
		return err
	}
	return f.Reload(ctx)
}
