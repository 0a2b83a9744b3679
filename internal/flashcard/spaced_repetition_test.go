package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/speakflash/internal/flashcard"
	"github.com/vytor/speakflash/internal/models"
)

var d0 = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func days(n int) time.Time { return d0.AddDate(0, 0, n) }

func TestApplyReview_FirstCorrect(t *testing.T) {
	card := models.NewCardProgress(42, d0)

	updated := flashcard.ApplyReview(card, models.Correct, d0)

	assert.Equal(t, models.Level(1), updated.Level)
	assert.InDelta(t, 2.6, updated.EaseFactor, 1e-9)
	assert.Equal(t, days(3), updated.NextReviewDate, "round(1 * 2.6) = 3 days")
	assert.Equal(t, 1, updated.CorrectCount)
	assert.Equal(t, 0, updated.IncorrectCount)
	require.NotNil(t, updated.LastReviewed)
	assert.Equal(t, d0, *updated.LastReviewed)
}

func TestApplyReview_IncorrectDropsOneLevel(t *testing.T) {
	card := models.CardProgress{ItemID: 7, Level: 3, EaseFactor: 2.5, NextReviewDate: d0}

	updated := flashcard.ApplyReview(card, models.Incorrect, d0)

	assert.Equal(t, models.Level(2), updated.Level)
	assert.InDelta(t, 2.3, updated.EaseFactor, 1e-9)
	assert.Equal(t, days(7), updated.NextReviewDate, "round(3 * 2.3) = 7 days")
	assert.Equal(t, 1, updated.IncorrectCount)
}

func TestApplyReview_FirstIncorrectStillLeavesNew(t *testing.T) {
	card := models.NewCardProgress(1, d0)

	updated := flashcard.ApplyReview(card, models.Incorrect, d0)

	assert.Equal(t, models.Level(1), updated.Level, "a reviewed card is never new again")
	assert.InDelta(t, 2.3, updated.EaseFactor, 1e-9)
	assert.Equal(t, days(2), updated.NextReviewDate, "round(1 * 2.3) = 2 days")
}

func TestApplyReview_CapsAtMastered(t *testing.T) {
	card := models.CardProgress{Level: models.LevelMastered, EaseFactor: 2.95}

	updated := flashcard.ApplyReview(card, models.Correct, d0)

	assert.Equal(t, models.LevelMastered, updated.Level)
	assert.Equal(t, flashcard.MaxEaseFactor, updated.EaseFactor)
	assert.Equal(t, days(90), updated.NextReviewDate, "round(30 * 3.0) = 90 days")
}

func TestApplyReview_EaseFloor(t *testing.T) {
	card := models.CardProgress{Level: 2, EaseFactor: 1.4}

	updated := flashcard.ApplyReview(card, models.Incorrect, d0)

	assert.Equal(t, flashcard.MinEaseFactor, updated.EaseFactor)
	assert.Equal(t, models.Level(1), updated.Level)
}

func TestApplyReview_UsesCalendarDay(t *testing.T) {
	card := models.NewCardProgress(1, d0)
	lateEvening := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)

	updated := flashcard.ApplyReview(card, models.Correct, lateEvening)

	assert.Equal(t, days(3), updated.NextReviewDate)
	assert.Equal(t, d0, *updated.LastReviewed)
}

func TestApplyReview_DoesNotMutateInput(t *testing.T) {
	card := models.NewCardProgress(1, d0)
	before := card

	_ = flashcard.ApplyReview(card, models.Correct, d0)

	assert.Equal(t, before, card)
}

func TestApplyReview_InvariantsHoldForAllSequences(t *testing.T) {
	// Every outcome sequence of length 8 from a new card.
	const length = 8
	for mask := 0; mask < 1<<length; mask++ {
		card := models.NewCardProgress(1, d0)
		for step := 0; step < length; step++ {
			outcome := models.Incorrect
			if mask&(1<<step) != 0 {
				outcome = models.Correct
			}
			prev := card
			card = flashcard.ApplyReview(card, outcome, days(step))

			require.GreaterOrEqual(t, card.Level, models.Level(1), "mask=%b step=%d", mask, step)
			require.LessOrEqual(t, card.Level, models.LevelMastered)
			require.GreaterOrEqual(t, card.EaseFactor, flashcard.MinEaseFactor)
			require.LessOrEqual(t, card.EaseFactor, flashcard.MaxEaseFactor)
			require.GreaterOrEqual(t, card.CorrectCount, prev.CorrectCount)
			require.GreaterOrEqual(t, card.IncorrectCount, prev.IncorrectCount)
		}
	}
}

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		level models.Level
		ease  float64
		want  int
	}{
		{1, 2.5, 3}, // 2.5 rounds away from zero
		{2, 2.5, 8}, // 7.5
		{3, 1.3, 9}, // 9.1
		{4, 2.0, 28},
		{5, 2.5, 75},
		{0, 2.5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, flashcard.IntervalDays(tt.level, tt.ease), "level=%d ease=%.1f", tt.level, tt.ease)
	}
}

func TestIsDue(t *testing.T) {
	card := models.CardProgress{NextReviewDate: days(2)}

	assert.False(t, flashcard.IsDue(card, days(1)))
	assert.True(t, flashcard.IsDue(card, days(2)))
	assert.True(t, flashcard.IsDue(card, days(2).Add(20*time.Hour)))
	assert.True(t, flashcard.IsDue(card, days(5)))
}

func TestSanitize(t *testing.T) {
	reviewed := d0
	card := models.CardProgress{
		ItemID:         3,
		Level:          9,
		EaseFactor:     4.2,
		CorrectCount:   -2,
		NextReviewDate: d0.Add(13 * time.Hour),
	}

	got := flashcard.Sanitize(card)
	assert.Equal(t, models.LevelMastered, got.Level)
	assert.Equal(t, flashcard.MaxEaseFactor, got.EaseFactor)
	assert.Equal(t, 0, got.CorrectCount)
	assert.Equal(t, d0, got.NextReviewDate)

	got = flashcard.Sanitize(models.CardProgress{Level: 0, LastReviewed: &reviewed})
	assert.Equal(t, models.Level(1), got.Level, "a reviewed card cannot be new")
	assert.Equal(t, models.DefaultEaseFactor, got.EaseFactor)
}
