package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/filebox/internal/client/client"
	"github.com/dmitrijs2005/filebox/internal/client/config"
	"github.com/dmitrijs2005/filebox/internal/client/notify"
	"github.com/dmitrijs2005/filebox/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/filebox/internal/client/services"
	"github.com/dmitrijs2005/filebox/internal/client/session"
	"github.com/dmitrijs2005/filebox/internal/client/tags"
	"github.com/dmitrijs2005/filebox/internal/logging"
	"github.com/prometheus/client_golang/prometheus"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	session  *session.Store
	auth     services.AuthService
	uploader *services.Uploader
	files    *services.FileList
	tags     *tags.Set
	editor   *tags.Editor
	sink     *notify.Sink
	term     *terminal
	form     *filterForm
	folder   string
	registry prometheus.Gatherer
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdin, os.Stdout, os.Stderr)
}

func newApp(c *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	ctx := context.Background()
	logger := logging.NewTextLogger(errOut, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	sess := session.NewStore(metadata.NewSQLiteRepository(db))

	registry := prometheus.NewRegistry()
	apiClient, err := client.NewHTTPClient(c.ServerURL, sess,
		client.WithMetrics(client.NewMetrics(registry)),
		client.WithLogger(logger.With("component", "api")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	term := newTerminal(out)
	sess.Subscribe(term.setVisible)
	sink := notify.NewSink(term, c.NotifyDuration)
	form := &filterForm{}
	set := tags.NewSet()

	files := services.NewFileList(apiClient, sess, sink, term, form.filter,
		services.WithDownloadDir(c.DownloadDir),
		services.WithPreviewTTL(c.PreviewTTL),
		services.WithFileListLogger(logger.With("component", "files")),
	)

	return &App{
		config:   c,
		db:       db,
		session:  sess,
		auth:     services.NewAuthService(apiClient, sess, files, sink, logger.With("component", "auth")),
		uploader: services.NewUploader(apiClient, set, files, sink, c.KeepTags, logger.With("component", "upload")),
		files:    files,
		tags:     set,
		editor:   tags.NewEditor(set),
		sink:     sink,
		term:     term,
		form:     form,
		registry: registry,
		log:      logger,
		reader:   bufio.NewReader(in),
		out:      out,
	}, nil
}

// Run restores the previous session and serves commands until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to filebox (type 'help' for commands)")
	if err := a.auth.Start(ctx); err != nil {
		a.log.Warn(ctx, "startup", "error", err)
	}
	runREPL(ctx, a, a.status, a.reader)
}

// Close removes pending preview files and closes the local store.
func (a *App) Close() {
	a.files.Close()
	a.files.Wait()
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "close database", "error", err)
	}
}

func (a *App) visible() bool {
	return a.term.isVisible()
}

func (a *App) status() string {
	s := a.auth.Identity()
	if a.visible() {
		f := a.form.filter().Normalized()
		s += " | " + string(f.State)
	}
	return s
}

// fail reports an unexpected failure of a command.
func (a *App) fail(msg string) {
	a.sink.Notify(msg, notify.Error)
}
