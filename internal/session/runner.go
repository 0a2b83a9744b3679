package session

import (
	"sync"
	"time"

	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
)

// State is the lifecycle stage of a Runner.
type State int

const (
	Idle State = iota
	Active
	Complete
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Complete:
		return "complete"
	default:
		return "idle"
	}
}

// Reviewer applies a review to the card ledger.
type Reviewer interface {
	ApplyReview(id int64, outcome models.Outcome, today time.Time) models.CardProgress
}

// Runner walks a learner through one study session at a time. Reviews are
// written to the ledger as they happen; ending a session never undoes them.
type Runner struct {
	mu      sync.Mutex
	ledger  Reviewer
	session *models.StudySession
	log     *logger.Logger
}

func NewRunner(ledger Reviewer, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Default()
	}
	return &Runner{ledger: ledger, log: log.WithPrefix("session")}
}

// Start replaces any current session with a new one over ids.
func (r *Runner) Start(ids []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned := make([]int64, len(ids))
	copy(owned, ids)
	if r.session != nil {
		r.log.Debug("discarding unfinished session: reviewed=%d/%d", r.session.Total, len(r.session.ItemIDs))
	}
	r.session = &models.StudySession{ItemIDs: owned}
	r.log.Debug("session started: cards=%d", len(owned))
}

// Current returns the id under the cursor. ok is false when there is no
// session or every card has been reviewed.
func (r *Runner) Current() (id int64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current()
}

func (r *Runner) current() (int64, bool) {
	if r.session == nil || r.session.Cursor >= len(r.session.ItemIDs) {
		return 0, false
	}
	return r.session.ItemIDs[r.session.Cursor], true
}

// ReviewCurrent records outcome for the current card and moves the cursor.
// It is a no-op returning ok=false when there is nothing left to review.
func (r *Runner) ReviewCurrent(outcome models.Outcome, today time.Time) (models.CardProgress, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.current()
	if !ok {
		return models.CardProgress{}, false
	}
	card := r.ledger.ApplyReview(id, outcome, today)
	r.session.Total++
	if outcome == models.Correct {
		r.session.Correct++
	}
	r.session.Cursor++
	return card, true
}

// End returns the session score and forgets the session.
func (r *Runner) End() models.SessionSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return models.SessionSummary{}
	}
	summary := models.SessionSummary{Correct: r.session.Correct, Total: r.session.Total}
	r.log.Debug("session ended: correct=%d, total=%d, planned=%d", summary.Correct, summary.Total, len(r.session.ItemIDs))
	r.session = nil
	return summary
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.session == nil:
		return Idle
	case r.session.Cursor >= len(r.session.ItemIDs):
		return Complete
	default:
		return Active
	}
}

// Session returns a copy of the current session, if any.
func (r *Runner) Session() (models.StudySession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return models.StudySession{}, false
	}
	s := *r.session
	s.ItemIDs = append([]int64(nil), r.session.ItemIDs...)
	return s, true
}
