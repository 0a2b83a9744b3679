package models

import "time"

// Level is the mastery stage of a card, from LevelNew to LevelMastered.
type Level int

const (
	LevelNew      Level = 0
	LevelMastered Level = 5
)

func (l Level) IsNew() bool      { return l <= LevelNew }
func (l Level) IsMastered() bool { return l >= LevelMastered }

// IsLearning reports whether the card has been reviewed but not mastered.
func (l Level) IsLearning() bool { return l > LevelNew && l < LevelMastered }

// Outcome is the result of a single review or timed round.
type Outcome int

const (
	Incorrect Outcome = iota
	Correct
)

func (o Outcome) String() string {
	if o == Correct {
		return "correct"
	}
	return "incorrect"
}

// ParseOutcome accepts "correct", "incorrect" and "timeout". A timeout is an
// incorrect outcome.
func ParseOutcome(s string) (Outcome, bool) {
	switch s {
	case "correct":
		return Correct, true
	case "incorrect", "timeout":
		return Incorrect, true
	default:
		return Incorrect, false
	}
}

// DefaultEaseFactor is the ease assigned to cards that have never been reviewed.
const DefaultEaseFactor = 2.5

// CardProgress is the learning state of one catalog item.
type CardProgress struct {
	ItemID         int64      `json:"item_id"`
	Level          Level      `json:"level"`
	NextReviewDate time.Time  `json:"next_review_date"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	LastReviewed   *time.Time `json:"last_reviewed"`
	EaseFactor     float64    `json:"ease_factor"`
}

// NewCardProgress returns the progress of a card nobody has reviewed yet.
func NewCardProgress(itemID int64, today time.Time) CardProgress {
	return CardProgress{
		ItemID:         itemID,
		Level:          LevelNew,
		NextReviewDate: Day(today),
		EaseFactor:     DefaultEaseFactor,
	}
}

// Day truncates t to its calendar date in t's own location, expressed in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the storage and wire format for card dates.
const DateLayout = "2006-01-02"
