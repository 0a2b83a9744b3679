// Package progress derives read-only learning statistics from the card
// ledger and the catalog.
package progress

import (
	"math"
	"time"

	"github.com/vytor/speakflash/internal/catalog"
	"github.com/vytor/speakflash/internal/flashcard"
	"github.com/vytor/speakflash/internal/models"
)

// Source is the read side of the card ledger.
type Source interface {
	Lookup(id int64) (models.CardProgress, bool)
}

type Queries struct {
	catalog *catalog.Catalog
	ledger  Source
}

func NewQueries(c *catalog.Catalog, ledger Source) *Queries {
	return &Queries{catalog: c, ledger: ledger}
}

// MasteredCount counts catalog items at the mastered level.
func (q *Queries) MasteredCount(filter models.CategoryFilter) int {
	n := 0
	q.each(filter, func(_ models.LearnableItem, card models.CardProgress, ok bool) {
		if ok && card.Level.IsMastered() {
			n++
		}
	})
	return n
}

// LearningCount counts catalog items that have been reviewed but are not
// mastered yet.
func (q *Queries) LearningCount(filter models.CategoryFilter) int {
	n := 0
	q.each(filter, func(_ models.LearnableItem, card models.CardProgress, ok bool) {
		if ok && card.Level.IsLearning() {
			n++
		}
	})
	return n
}

// ReviewCount counts the cards that would be offered as due reviews today.
func (q *Queries) ReviewCount(filter models.CategoryFilter, today time.Time) int {
	n := 0
	q.each(filter, func(_ models.LearnableItem, card models.CardProgress, ok bool) {
		if isDueReview(card, ok, today) {
			n++
		}
	})
	return n
}

// CategoryStats breaks the catalog down by category, in catalog order.
func (q *Queries) CategoryStats(today time.Time) []models.CategoryStat {
	index := map[string]int{}
	stats := make([]models.CategoryStat, 0, len(q.catalog.Categories()))
	for _, cat := range q.catalog.Categories() {
		index[cat] = len(stats)
		stats = append(stats, models.CategoryStat{Category: cat})
	}

	q.each(models.AllCategories, func(item models.LearnableItem, card models.CardProgress, ok bool) {
		s := &stats[index[item.Category]]
		s.TotalItems++
		switch {
		case !ok || card.Level.IsNew():
			s.NewCards++
		case card.Level.IsMastered():
			s.MasteredCards++
		default:
			s.LearningCards++
		}
		if isDueReview(card, ok, today) {
			s.DueCards++
		}
	})
	return stats
}

// Summary aggregates every count for one filter.
func (q *Queries) Summary(filter models.CategoryFilter, today time.Time) models.ProgressStat {
	var (
		stat    models.ProgressStat
		correct int
		easeSum float64
	)
	q.each(filter, func(_ models.LearnableItem, card models.CardProgress, ok bool) {
		stat.TotalItems++
		if !ok {
			stat.NewCards++
			return
		}
		stat.StartedCards++
		easeSum += card.EaseFactor
		correct += card.CorrectCount
		stat.TotalReviews += card.CorrectCount + card.IncorrectCount
		switch {
		case card.Level.IsNew():
			stat.NewCards++
		case card.Level.IsMastered():
			stat.MasteredCards++
		default:
			stat.LearningCards++
		}
		if isDueReview(card, ok, today) {
			stat.DueCards++
		}
	})
	if stat.TotalReviews > 0 {
		stat.Accuracy = round1(100 * float64(correct) / float64(stat.TotalReviews))
	}
	if stat.StartedCards > 0 {
		stat.AvgEaseFactor = math.Round(easeSum/float64(stat.StartedCards)*100) / 100
	}
	return stat
}

func (q *Queries) each(filter models.CategoryFilter, fn func(models.LearnableItem, models.CardProgress, bool)) {
	q.catalog.Each(filter, func(item models.LearnableItem) bool {
		card, ok := q.ledger.Lookup(item.ID)
		fn(item, card, ok)
		return true
	})
}

// isDueReview mirrors the planner's due rule: started, not mastered, and
// scheduled on or before today.
func isDueReview(card models.CardProgress, started bool, today time.Time) bool {
	return started && !card.Level.IsMastered() && flashcard.IsDue(card, today)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
