package services

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"

	"github.com/dmitrijs2005/filebox/internal/client/models"
	"github.com/dmitrijs2005/filebox/internal/client/notify"
	"github.com/dmitrijs2005/filebox/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/filebox/internal/client/session"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func newRepo(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return metadata.NewSQLiteRepository(db)
}

func newSession(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(newRepo(t))
}

// ---- fake client ----

// fakeClient implements client.Client. Unset funcs succeed with zero values.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	RegisterFn   func(email, password string) (string, error)
	LoginFn      func(email, password string) (string, error)
	MeFn         func() (*models.User, error)
	ListFn       func(filter models.ListFilter) (*models.FileList, error)
	UploadFn     func(up models.Upload, content []byte) error
	ThumbnailFn  func(id int64) (*models.Blob, error)
	PreviewFn    func(id int64) (*models.Blob, error)
	DownloadFn   func(id int64) (*models.Blob, error)
	DeleteFn     func(id int64) error
	RestoreFn    func(id int64) error
	UpdateMetaFn func(id int64, patch models.MetaPatch) (*models.FileItem, error)

	Filters []models.ListFilter
	Uploads []models.Upload
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Register(ctx context.Context, email, password string) (string, error) {
	f.record("register")
	if f.RegisterFn != nil {
		return f.RegisterFn(email, password)
	}
	return "", nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.record("login")
	if f.LoginFn != nil {
		return f.LoginFn(email, password)
	}
	return "", nil
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.record("me")
	if f.MeFn != nil {
		return f.MeFn()
	}
	return &models.User{}, nil
}

func (f *fakeClient) ListFiles(ctx context.Context, filter models.ListFilter) (*models.FileList, error) {
	f.record("list")
	f.mu.Lock()
	f.Filters = append(f.Filters, filter)
	f.mu.Unlock()
	if f.ListFn != nil {
		return f.ListFn(filter)
	}
	return &models.FileList{}, nil
}

func (f *fakeClient) Upload(ctx context.Context, up models.Upload) error {
	f.record("upload " + up.FileName)
	var content []byte
	if up.Content != nil {
		content, _ = io.ReadAll(up.Content)
	}
	f.mu.Lock()
	f.Uploads = append(f.Uploads, up)
	f.mu.Unlock()
	if f.UploadFn != nil {
		return f.UploadFn(up, content)
	}
	return nil
}

func (f *fakeClient) Thumbnail(ctx context.Context, id int64) (*models.Blob, error) {
	f.record("thumb")
	if f.ThumbnailFn != nil {
		return f.ThumbnailFn(id)
	}
	return &models.Blob{}, nil
}

func (f *fakeClient) Preview(ctx context.Context, id int64) (*models.Blob, error) {
	f.record("preview")
	if f.PreviewFn != nil {
		return f.PreviewFn(id)
	}
	return &models.Blob{}, nil
}

func (f *fakeClient) Download(ctx context.Context, id int64) (*models.Blob, error) {
	f.record("download")
	if f.DownloadFn != nil {
		return f.DownloadFn(id)
	}
	return &models.Blob{}, nil
}

func (f *fakeClient) Delete(ctx context.Context, id int64) error {
	f.record("delete")
	if f.DeleteFn != nil {
		return f.DeleteFn(id)
	}
	return nil
}

func (f *fakeClient) Restore(ctx context.Context, id int64) error {
	f.record("restore")
	if f.RestoreFn != nil {
		return f.RestoreFn(id)
	}
	return nil
}

func (f *fakeClient) UpdateMeta(ctx context.Context, id int64, patch models.MetaPatch) (*models.FileItem, error) {
	f.record("patch")
	if f.UpdateMetaFn != nil {
		return f.UpdateMetaFn(id, patch)
	}
	return &models.FileItem{ID: id}, nil
}

// ---- fake notifier / view / reloader ----

type fakeNotifier struct {
	mu  sync.Mutex
	all []notify.Notification
}

func (n *fakeNotifier) Notify(message string, severity notify.Severity) {
	n.mu.Lock()
	n.all = append(n.all, notify.Notification{Message: message, Severity: severity})
	n.mu.Unlock()
}

func (n *fakeNotifier) All() []notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Notification(nil), n.all...)
}

func (n *fakeNotifier) Last() notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.all) == 0 {
		return notify.Notification{}
	}
	return n.all[len(n.all)-1]
}

type fakeView struct {
	mu      sync.Mutex
	renders [][]Row
	thumbs  map[int64]*models.Blob
	hidden  map[int64]bool
}

func newFakeView() *fakeView {
	return &fakeView{thumbs: map[int64]*models.Blob{}, hidden: map[int64]bool{}}
}

func (v *fakeView) Render(rows []Row) {
	v.mu.Lock()
	v.renders = append(v.renders, rows)
	v.mu.Unlock()
}

func (v *fakeView) SetThumbnail(id int64, blob *models.Blob) {
	v.mu.Lock()
	v.thumbs[id] = blob
	v.mu.Unlock()
}

func (v *fakeView) HideThumbnail(id int64) {
	v.mu.Lock()
	v.hidden[id] = true
	v.mu.Unlock()
}

func (v *fakeView) Renders() [][]Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([][]Row(nil), v.renders...)
}

type fakeReloader struct {
	mu    sync.Mutex
	count int
	err   error
}

func (r *fakeReloader) Reload(ctx context.Context) error {
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
	return r.err
}

func (r *fakeReloader) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
