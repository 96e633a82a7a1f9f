package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/filebox/internal/client/models"
	"github.com/dmitrijs2005/filebox/internal/client/notify"
	"github.com/dmitrijs2005/filebox/internal/client/services"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A90E2"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF80"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
)

type thumbState int

const (
	thumbNone thumbState = iota
	thumbLoading
	thumbReady
	thumbHidden
)

// terminal renders the file table and the status line. It implements both
// services.View and notify.Display.
type terminal struct {
	mu      sync.Mutex
	w       io.Writer
	rows    []services.Row
	thumbs  map[int64]thumbState
	visible bool
}

func newTerminal(w io.Writer) *terminal {
	return &terminal{w: w, thumbs: map[int64]thumbState{}}
}

func (t *terminal) Render(rows []services.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = rows
	t.thumbs = make(map[int64]thumbState, len(rows))
	for _, r := range rows {
		if r.Thumb {
			t.thumbs[r.ID] = thumbLoading
		}
	}
	fmt.Fprintln(t.w, t.table())
}

func (t *terminal) SetThumbnail(id int64, _ *models.Blob) {
	t.setThumb(id, thumbReady)
}

func (t *terminal) HideThumbnail(id int64) {
	t.setThumb(id, thumbHidden)
}

func (t *terminal) setThumb(id int64, s thumbState) {
	t.mu.Lock()
	t.thumbs[id] = s
	t.mu.Unlock()
}

// Show prints the notification on its own line.
func (t *terminal) Show(n notify.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, styleFor(n.Severity).Render(fmt.Sprintf("[%s] %s", n.Severity, n.Message)))
}

// Hide is a no-op; printed lines cannot be taken back.
func (t *terminal) Hide() {}

// setVisible follows the session: hiding the regions forgets the table.
func (t *terminal) setVisible(v bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = v
	if !v {
		t.rows = nil
		t.thumbs = map[int64]thumbState{}
	}
}

func (t *terminal) isVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// redraw prints the last rendered table again with current thumbnail state.
func (t *terminal) redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, t.table())
}

// table must be called with t.mu held.
func (t *terminal) table() string {
	if len(t.rows) == 0 {
		return emptyStyle.Render("(no files)")
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "Name", "Path", "Size", "Thumb", "Tags", "Actions").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 3 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	for _, r := range t.rows {
		actions := make([]string, len(r.Actions))
		for i, a := range r.Actions {
			actions[i] = string(a)
		}
		tbl.Row(
			strconv.FormatInt(r.ID, 10),
			r.Name,
			r.Path,
			r.Size,
			thumbLabel(t.thumbs[r.ID]),
			strings.Join(r.Tags, ", "),
			strings.Join(actions, " "),
		)
	}
	return tbl.String()
}

func thumbLabel(s thumbState) string {
	switch s {
	case thumbLoading:
		return "…"
	case thumbReady:
		return "yes"
	default:
		return "-"
	}
}

func styleFor(s notify.Severity) lipgloss.Style {
	switch s {
	case notify.Success:
		return successStyle
	case notify.Error:
		return errorStyle
	default:
		return infoStyle
	}
}
