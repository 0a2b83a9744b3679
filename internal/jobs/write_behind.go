package jobs

import (
	"context"
	"sort"
	"sync"

	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/repository"
	"github.com/vytor/speakflash/internal/worker"
)

// Scheduler queues a job without blocking. *worker.Pool satisfies it.
type Scheduler interface {
	TrySubmit(job worker.Job) error
}

// WriteBehind receives ledger changes and persists them in the background.
// Pending progress is keyed by item id so only the latest state of a card is
// written. At most one flush job is queued at any time.
type WriteBehind struct {
	progress  repository.ProgressRepository
	prefs     repository.PreferenceRepository
	scheduler Scheduler
	log       *logger.Logger

	mu        sync.Mutex
	pending   map[int64]models.CardProgress
	reset     bool
	resets    uint64
	filter    *models.CategoryFilter
	scheduled bool

	// serializes flushes
	flushMu sync.Mutex
}

func NewWriteBehind(progress repository.ProgressRepository, prefs repository.PreferenceRepository, scheduler Scheduler) *WriteBehind {
	return &WriteBehind{
		progress:  progress,
		prefs:     prefs,
		scheduler: scheduler,
		log:       logger.Default().WithPrefix("write-behind"),
		pending:   make(map[int64]models.CardProgress),
	}
}

// ProgressChanged records the latest state of a card.
func (w *WriteBehind) ProgressChanged(card models.CardProgress) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[card.ItemID] = card
	w.scheduleLocked()
}

// LedgerReset drops pending card writes and records a wipe.
func (w *WriteBehind) LedgerReset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = make(map[int64]models.CardProgress)
	w.reset = true
	w.resets++
	w.scheduleLocked()
}

// CategoryFilterChanged records the selected category filter.
func (w *WriteBehind) CategoryFilterChanged(filter models.CategoryFilter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filter = &filter
	w.scheduleLocked()
}

// Pending reports the number of card writes waiting for a flush.
func (w *WriteBehind) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *WriteBehind) scheduleLocked() {
	if w.scheduled || w.scheduler == nil {
		return
	}
	if err := w.scheduler.TrySubmit(&FlushJob{WriteBehind: w}); err != nil {
		// Left pending; the next change or an explicit Flush picks it up.
		w.log.Warn("could not schedule flush: %v", err)
		return
	}
	w.scheduled = true
}

type batch struct {
	cards  []models.CardProgress
	reset  bool
	resets uint64
	filter *models.CategoryFilter
}

func (b batch) empty() bool {
	return len(b.cards) == 0 && !b.reset && b.filter == nil
}

func (w *WriteBehind) drain() batch {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := batch{reset: w.reset, resets: w.resets, filter: w.filter}
	b.cards = make([]models.CardProgress, 0, len(w.pending))
	for _, c := range w.pending {
		b.cards = append(b.cards, c)
	}
	sort.Slice(b.cards, func(i, j int) bool { return b.cards[i].ItemID < b.cards[j].ItemID })

	w.pending = make(map[int64]models.CardProgress)
	w.reset = false
	w.filter = nil
	w.scheduled = false
	return b
}

// requeue puts back the part of a failed batch that nothing newer replaced.
// A reset recorded after the drain supersedes the batch's cards.
func (w *WriteBehind) requeue(b batch, resetDone bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.resets == b.resets {
		if b.reset && !resetDone {
			w.reset = true
		}
		for _, c := range b.cards {
			if _, newer := w.pending[c.ItemID]; !newer {
				w.pending[c.ItemID] = c
			}
		}
	}
	if b.filter != nil && w.filter == nil {
		w.filter = b.filter
	}
}

// Flush writes everything pending: the wipe first, then card upserts, then
// the category filter. On failure the unwritten state stays pending.
func (w *WriteBehind) Flush(ctx context.Context) error {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	b := w.drain()
	if b.empty() {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("write-behind")
	log.Debug("flushing: reset=%t cards=%d filter=%t", b.reset, len(b.cards), b.filter != nil)

	if b.reset {
		if err := w.progress.DeleteAll(ctx); err != nil {
			w.requeue(b, false)
			return err
		}
	}
	if err := w.progress.UpsertBatch(ctx, b.cards); err != nil {
		w.requeue(batch{cards: b.cards, resets: b.resets, filter: b.filter}, true)
		return err
	}
	if b.filter != nil {
		if err := w.prefs.SetCategoryFilter(ctx, *b.filter); err != nil {
			w.requeue(batch{resets: b.resets, filter: b.filter}, true)
			return err
		}
	}
	log.Debug("flushed %d cards", len(b.cards))
	return nil
}
