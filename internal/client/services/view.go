package services

import (
	"slices"

	"github.com/dmitrijs2005/filebox/internal/client/models"
)

type Action string

const (
	ActionPreview  Action = "preview"
	ActionDownload Action = "download"
	ActionDelete   Action = "delete"
	ActionRestore  Action = "restore"
	ActionRename   Action = "rename"
	ActionRetag    Action = "retag"
)

var (
	activeActions  = []Action{ActionPreview, ActionDownload, ActionDelete, ActionRename, ActionRetag}
	deletedActions = []Action{ActionRestore}
)

// Row is one rendered line of the file table.
type Row struct {
	ID      int64
	Name    string
	Path    string
	Size    string
	Thumb   bool
	Tags    []string
	Actions []Action
	Item    models.FileItem
}

func (r Row) Allows(a Action) bool {
	return slices.Contains(r.Actions, a)
}

// Project maps a list result to rows in server order. Deleted files only
// offer restore; everything else offers the full action set.
func Project(items []models.FileItem, state models.State) []Row {
	actions := activeActions
	if state == models.StateDeleted {
		actions = deletedActions
	}

	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			ID:      it.ID,
			Name:    it.Name,
			Path:    it.Path,
			Size:    models.HumanSize(it.Size),
			Thumb:   it.ThumbAvailable,
			Tags:    slices.Clone(it.Tags),
			Actions: slices.Clone(actions),
			Item:    it,
		})
	}
	return rows
}

// View displays the file table.
type View interface {
	Render(rows []Row)
	SetThumbnail(id int64, thumb *models.Blob)
	HideThumbnail(id int64)
}
