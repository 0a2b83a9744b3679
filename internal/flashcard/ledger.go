package flashcard

import (
	"sort"
	"sync"
	"time"

	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
)

// Notifier is told about every ledger mutation so the host can persist it.
// Calls are made while the ledger lock is held, in mutation order, so a
// Notifier must not call back into the ledger.
type Notifier interface {
	ProgressChanged(card models.CardProgress)
	LedgerReset()
}

// Ledger owns the progress of every card that has been exposed at least once.
// Each call is applied atomically; concurrent reviews of the same session are
// still expected to be serialized by the caller.
type Ledger struct {
	mu       sync.RWMutex
	cards    map[int64]models.CardProgress
	now      func() time.Time
	notifier Notifier
	log      *logger.Logger
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithClock sets the clock used to date default progress.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithNotifier registers the mutation observer.
func WithNotifier(n Notifier) LedgerOption {
	return func(l *Ledger) {
		l.notifier = n
	}
}

// WithLogger sets the ledger logger.
func WithLogger(log *logger.Logger) LedgerOption {
	return func(l *Ledger) {
		l.log = log
	}
}

func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{
		cards: make(map[int64]models.CardProgress),
		now:   time.Now,
		log:   logger.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.WithPrefix("ledger")
	return l
}

// Restore seeds the ledger from a stored snapshot, replacing its contents.
// It does not notify: the data is already persisted.
func (l *Ledger) Restore(cards map[int64]models.CardProgress) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cards = make(map[int64]models.CardProgress, len(cards))
	for id, c := range cards {
		c.ItemID = id
		l.cards[id] = Sanitize(c)
	}
	l.log.Debug("restored %d cards", len(l.cards))
}

// Progress returns the stored progress of id, or the default progress of a
// new card if id has never been exposed.
func (l *Ledger) Progress(id int64) models.CardProgress {
	if c, ok := l.Lookup(id); ok {
		return c
	}
	return models.NewCardProgress(id, l.now())
}

// Lookup returns the stored progress of id and whether it exists.
func (l *Ledger) Lookup(id int64) (models.CardProgress, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.cards[id]
	return c, ok
}

// Initialize stores default progress for id unless it already has some.
func (l *Ledger) Initialize(id int64) {
	l.mu.Lock()
	if _, ok := l.cards[id]; ok {
		l.mu.Unlock()
		return
	}
	c := models.NewCardProgress(id, l.now())
	l.cards[id] = c
	l.notify(c)
	l.mu.Unlock()

	l.log.Debug("initialized card: id=%d", id)
}

// ApplyReview schedules id after a review on today and stores the result.
// Unknown ids are treated as new cards.
func (l *Ledger) ApplyReview(id int64, outcome models.Outcome, today time.Time) models.CardProgress {
	l.mu.Lock()
	current, ok := l.cards[id]
	if !ok {
		current = models.NewCardProgress(id, today)
	}
	next := ApplyReview(current, outcome, today)
	l.cards[id] = next
	l.notify(next)
	l.mu.Unlock()

	l.log.Debug("reviewed card: id=%d, outcome=%s, level=%d, ease=%.2f, next=%s",
		id, outcome, next.Level, next.EaseFactor, next.NextReviewDate.Format(models.DateLayout))
	return next
}

// Reset drops every stored card.
func (l *Ledger) Reset() {
	l.mu.Lock()
	n := len(l.cards)
	l.cards = make(map[int64]models.CardProgress)
	if l.notifier != nil {
		l.notifier.LedgerReset()
	}
	l.mu.Unlock()

	l.log.Info("ledger reset: %d cards dropped", n)
}

// Snapshot returns a copy of every stored card keyed by item id.
func (l *Ledger) Snapshot() map[int64]models.CardProgress {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[int64]models.CardProgress, len(l.cards))
	for id, c := range l.cards {
		out[id] = c
	}
	return out
}

// Cards returns every stored card ordered by item id.
func (l *Ledger) Cards() []models.CardProgress {
	l.mu.RLock()
	out := make([]models.CardProgress, 0, len(l.cards))
	for _, c := range l.cards {
		out = append(out, c)
	}
	l.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cards)
}

func (l *Ledger) notify(c models.CardProgress) {
	if l.notifier != nil {
		l.notifier.ProgressChanged(c)
	}
}
