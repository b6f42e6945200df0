package services

import (
	"context"
	"errors"
	"sync"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/pkg/collection"
)

// DraftState is the reorder editor's mode.
type DraftState int

const (
	Viewing DraftState = iota
	Editing
	Saving
)

func (s DraftState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "viewing"
	}
}

var (
	ErrReorderLocked = errors.New("reorder requires no search and no filters")
	ErrNoDraft       = errors.New("no reorder draft in progress")
)

// ReorderDraft holds an in-progress drag-and-drop ordering until it is
// saved or discarded. A failed save keeps the draft for retry.
type ReorderDraft struct {
	mu    sync.Mutex
	state DraftState
	items []models.Product
}

func (d *ReorderDraft) State() DraftState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Items returns a copy of the draft ordering.
func (d *ReorderDraft) Items() []models.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Product(nil), d.items...)
}

// IDs returns the draft ordering as product ids.
func (d *ReorderDraft) IDs() []string {
	return collection.Map(d.Items(), func(p models.Product) string { return p.ID })
}

// Begin enters Editing with items sorted by display order. It is refused
// while a search or filter narrows the list.
func (d *ReorderDraft) Begin(items []models.Product, query, gender, typ string) error {
	if !CanReorder(query, gender, typ) {
		return ErrReorderLocked
	}

	draft := append([]models.Product(nil), items...)
	SortProducts(draft)

	d.mu.Lock()
	d.items = draft
	d.state = Editing
	d.mu.Unlock()
	return nil
}

// Move relocates activeID to overID's position. Unknown ids, identical ids
// and calls outside Editing are ignored.
func (d *ReorderDraft) Move(activeID, overID string) {
	if activeID == overID {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Editing {
		return
	}

	id := func(p models.Product) string { return p.ID }
	from := collection.IndexBy(d.items, activeID, id)
	to := collection.IndexBy(d.items, overID, id)
	if from < 0 || to < 0 {
		return
	}
	d.items = collection.Move(d.items, from, to)
}

// Save persists the draft through r. On success the editor returns to
// Viewing; on failure it stays in Editing with the draft intact.
func (d *ReorderDraft) Save(ctx context.Context, r Reorderer) error {
	d.mu.Lock()
	if d.state != Editing {
		d.mu.Unlock()
		return ErrNoDraft
	}
	d.state = Saving
	ids := collection.Map(d.items, func(p models.Product) string { return p.ID })
	d.mu.Unlock()

	err := r.Reorder(ctx, ids, DefaultStartingSortOrder)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.state = Editing
		return err
	}
	d.state = Viewing
	d.items = nil
	return nil
}

// Discard drops the draft and returns to Viewing.
func (d *ReorderDraft) Discard() {
	d.mu.Lock()
	d.state = Viewing
	d.items = nil
	d.mu.Unlock()
}
