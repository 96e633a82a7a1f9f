package cli

import (
	"sync"

	"github.com/dmitrijs2005/filebox/internal/client/models"
)

// filterForm holds the search fields of the list view. The file list reads
// it at the start of every reload.
type filterForm struct {
	mu     sync.Mutex
	values models.ListFilter
}

func (f *filterForm) filter() models.ListFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *filterForm) update(fn func(v *models.ListFilter)) {
	f.mu.Lock()
	fn(&f.values)
	f.mu.Unlock()
}
