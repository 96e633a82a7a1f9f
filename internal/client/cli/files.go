package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/filebox/internal/client/models"
	"github.com/dmitrijs2005/filebox/internal/client/services"
	dto "github.com/prometheus/client_model/go"
)

var errUsage = errors.New("usage")

func usage(text string) error {
	printlnFn("Usage:", text)
	return errUsage
}

// Upload sends every path with the current tag set and folder, then
// reloads the table.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("upload <path> [path...]")
	}
	return a.uploader.Upload(ctx, args, a.folder)
}

// Folder sets the folder sent with uploads. Without arguments it clears it.
func (a *App) Folder(args []string) error {
	a.folder = joinArgs(args)
	if a.folder == "" {
		printlnFn("Folder: (none)")
	} else {
		printlnFn("Folder:", a.folder)
	}
	return nil
}

// Tag feeds the text to the tag editor followed by Enter, so commas and the
// end of the line both commit a tag.
func (a *App) Tag(args []string) error {
	if len(args) == 0 {
		return usage("tag <tag>[,tag...]")
	}
	a.editor.Type(strings.Join(args, " ") + "\n")
	return a.Tags()
}

func (a *App) Untag(args []string) error {
	if len(args) == 0 {
		return usage("untag <tag>")
	}
	tag := joinArgs(args)
	if !a.tags.Remove(tag) {
		printlnFn("No such tag:", tag)
	}
	return a.Tags()
}

// Tags prints the upload tag set the way it is sent to the server.
func (a *App) Tags() error {
	if a.tags.Len() == 0 {
		printlnFn("Tags: (none)")
		return nil
	}
	printlnFn("Tags:", a.tags.JSON())
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	q := joinArgs(args)
	a.form.update(func(v *models.ListFilter) {
		v.Query = q
		v.Page = 0
	})
	return a.files.Reload(ctx)
}

func (a *App) TagFilter(ctx context.Context, args []string) error {
	tag := joinArgs(args)
	a.form.update(func(v *models.ListFilter) {
		v.Tag = tag
		v.Page = 0
	})
	return a.files.Reload(ctx)
}

func (a *App) State(ctx context.Context, args []string) error {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	}
	s, err := models.ParseState(raw)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	a.form.update(func(v *models.ListFilter) {
		v.State = s
		v.Page = 0
	})
	return a.files.Reload(ctx)
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usage("page <n> [size]")
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		return usage("page <n> [size]")
	}
	size := 0
	if len(args) == 2 {
		size, err = strconv.Atoi(args[1])
		if err != nil || size < 1 {
			return usage("page <n> [size]")
		}
	}

	a.form.update(func(v *models.ListFilter) {
		v.Page = page
		if size > 0 {
			v.PageSize = size
		}
	})
	return a.files.Reload(ctx)
}

func (a *App) List(ctx context.Context) error {
	return a.files.Reload(ctx)
}

// Show prints the last table again with the thumbnails loaded since, followed
// by the status message if it has not expired yet.
func (a *App) Show() error {
	a.term.redraw()
	if n, ok := a.sink.Current(); ok {
		a.term.Show(n)
	}
	return nil
}

// FileAction runs preview, download, delete or restore on the row with the
// given id.
func (a *App) FileAction(ctx context.Context, cmd string, args []string) error {
	if len(args) != 1 {
		return usage(cmd + " <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return usage(cmd + " <id>")
	}
	return a.files.Dispatch(ctx, id, services.Action(cmd))
}

func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("rename <id> <name>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return usage("rename <id> <name>")
	}
	return a.files.Rename(ctx, id, joinArgs(args[1:]))
}

// Retag replaces the tags of a file. Without a tag list the file's tags are
// cleared.
func (a *App) Retag(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("retag <id> [tag,tag...]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return usage("retag <id> [tag,tag...]")
	}
	return a.files.Retag(ctx, id, splitTags(strings.Join(args[1:], " ")))
}

// Stats prints the API request counters collected in this run.
func (a *App) Stats() error {
	families, err := a.registry.Gather()
	if err != nil {
		a.fail(err.Error())
		return err
	}
	printlnFn(statsTable(families))
	return nil
}

// joinArgs rebuilds a free-text argument from the words the line was split
// into. Spaces inside a quoted word are kept.
func joinArgs(args []string) string {
	words := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			words = append(words, a)
		}
	}
	return strings.Join(words, " ")
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func statsTable(families []*dto.MetricFamily) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Metric", "Labels", "Value").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})

	n := 0
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value string
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				value = strconv.FormatFloat(m.GetCounter().GetValue(), 'f', -1, 64)
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				value = fmt.Sprintf("n=%d sum=%.3fs", h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			tbl.Row(mf.GetName(), labelString(m.GetLabel()), value)
			n++
		}
	}
	if n == 0 {
		return emptyStyle.Render("(no requests yet)")
	}
	return tbl.String()
}

func labelString(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
