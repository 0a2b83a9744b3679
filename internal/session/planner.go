// Package session builds and runs study sessions over the card ledger.
package session

import (
	"time"

	"github.com/vytor/speakflash/internal/catalog"
	"github.com/vytor/speakflash/internal/flashcard"
	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
)

const (
	DefaultSessionSize = 15
	DefaultMaxDue      = 10
)

// ProgressSource is the read side of the card ledger.
type ProgressSource interface {
	Lookup(id int64) (models.CardProgress, bool)
}

// Planner picks the cards of a study session. It never mutates the ledger.
type Planner struct {
	catalog *catalog.Catalog
	ledger  ProgressSource
	size    int
	maxDue  int
	log     *logger.Logger
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithSessionSize sets the maximum number of cards in a session.
func WithSessionSize(n int) PlannerOption {
	return func(p *Planner) {
		if n > 0 {
			p.size = n
		}
	}
}

// WithMaxDue sets how many due reviews a session may hold.
func WithMaxDue(n int) PlannerOption {
	return func(p *Planner) {
		if n >= 0 {
			p.maxDue = n
		}
	}
}

// WithPlannerLogger sets the planner logger.
func WithPlannerLogger(log *logger.Logger) PlannerOption {
	return func(p *Planner) {
		p.log = log
	}
}

func NewPlanner(c *catalog.Catalog, ledger ProgressSource, opts ...PlannerOption) *Planner {
	p := &Planner{
		catalog: c,
		ledger:  ledger,
		size:    DefaultSessionSize,
		maxDue:  DefaultMaxDue,
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithPrefix("planner")
	return p
}

// DueCards returns the ids of started, unmastered cards whose review date has
// arrived, in catalog order.
func (p *Planner) DueCards(filter models.CategoryFilter, today time.Time) []int64 {
	return p.dueCards(filter, today, -1)
}

func (p *Planner) dueCards(filter models.CategoryFilter, today time.Time, limit int) []int64 {
	ids := []int64{}
	if limit == 0 {
		return ids
	}
	p.catalog.Each(filter, func(item models.LearnableItem) bool {
		card, ok := p.ledger.Lookup(item.ID)
		if !ok || card.Level.IsMastered() || !flashcard.IsDue(card, today) {
			return true
		}
		ids = append(ids, item.ID)
		return limit < 0 || len(ids) < limit
	})
	return ids
}

// NewCards returns up to limit ids of cards that have never been exposed, in
// catalog order.
func (p *Planner) NewCards(limit int, filter models.CategoryFilter) []int64 {
	ids := []int64{}
	if limit <= 0 {
		return ids
	}
	p.catalog.Each(filter, func(item models.LearnableItem) bool {
		if _, ok := p.ledger.Lookup(item.ID); ok {
			return true
		}
		ids = append(ids, item.ID)
		return len(ids) < limit
	})
	return ids
}

// Plan composes a session: due reviews first, then new cards up to the
// session size. The result has no duplicates and may be shorter than the
// session size.
func (p *Planner) Plan(filter models.CategoryFilter, today time.Time) []int64 {
	due := p.dueCards(filter, today, min(p.maxDue, p.size))

	seen := make(map[int64]bool, p.size)
	ids := make([]int64, 0, p.size)
	for _, id := range due {
		seen[id] = true
		ids = append(ids, id)
	}
	for _, id := range p.NewCards(p.size, filter) {
		if len(ids) >= p.size {
			break
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	p.log.Debug("planned session: filter=%q, due=%d, new=%d", filter, len(due), len(ids)-len(due))
	return ids
}
