package flashcard

import (
	"math"
	"time"

	"github.com/vytor/speakflash/internal/models"
)

const (
	MinEaseFactor = 1.3
	MaxEaseFactor = 3.0

	easeStepCorrect   = 0.1
	easeStepIncorrect = 0.2
)

// baseIntervals holds the review interval in days for each level. Index 0 is
// never used after a review because the level floor is 1.
var baseIntervals = [...]int{0, 1, 3, 7, 14, 30}

// ApplyReview computes the progress of a card after one review on today.
// It is the only place where level and ease arithmetic happens.
func ApplyReview(card models.CardProgress, outcome models.Outcome, today time.Time) models.CardProgress {
	day := models.Day(today)

	if outcome == models.Correct {
		card.Level = min(models.LevelMastered, card.Level+1)
		card.EaseFactor = math.Min(MaxEaseFactor, card.EaseFactor+easeStepCorrect)
		card.CorrectCount++
	} else {
		card.Level = max(models.LevelNew+1, card.Level-1)
		card.EaseFactor = math.Max(MinEaseFactor, card.EaseFactor-easeStepIncorrect)
		card.IncorrectCount++
	}
	card.EaseFactor = clampEase(card.EaseFactor)

	card.NextReviewDate = day.AddDate(0, 0, IntervalDays(card.Level, card.EaseFactor))
	card.LastReviewed = &day
	return card
}

// IntervalDays is the number of days until the next review of a card at
// level with the given ease.
func IntervalDays(level models.Level, ease float64) int {
	if level < models.LevelNew {
		level = models.LevelNew
	}
	if level > models.LevelMastered {
		level = models.LevelMastered
	}
	return int(math.Round(float64(baseIntervals[level]) * ease))
}

// IsDue reports whether the card should be reviewed on today.
func IsDue(card models.CardProgress, today time.Time) bool {
	return !card.NextReviewDate.After(models.Day(today))
}

// Sanitize brings a stored card back inside its invariants. Stored snapshots
// come from outside the engine and may have been edited by hand.
func Sanitize(card models.CardProgress) models.CardProgress {
	card.Level = min(models.LevelMastered, max(models.LevelNew, card.Level))
	if card.LastReviewed != nil && card.Level == models.LevelNew {
		card.Level = models.LevelNew + 1
	}
	if card.EaseFactor == 0 {
		card.EaseFactor = models.DefaultEaseFactor
	}
	card.EaseFactor = clampEase(card.EaseFactor)
	card.CorrectCount = max(0, card.CorrectCount)
	card.IncorrectCount = max(0, card.IncorrectCount)
	card.NextReviewDate = models.Day(card.NextReviewDate)
	return card
}

func clampEase(ef float64) float64 {
	return math.Min(MaxEaseFactor, math.Max(MinEaseFactor, ef))
}
