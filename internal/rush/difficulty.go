// Package rush paces timed speaking rounds.
package rush

import (
	"math"

	"github.com/vytor/speakflash/internal/models"
)

const (
	MinDifficulty     = 1
	MaxDifficulty     = 10
	InitialDifficulty = 5

	correctToLevelUp = 3
	wrongToLevelDown = 2
	timerBaseSeconds = 8.0
	timerStepSeconds = 0.5
)

// Controller adjusts the difficulty of a timed game from streaks of outcomes.
// A controller lives for one game and is not safe for concurrent use.
type Controller struct {
	state models.DifficultyState
}

func NewController() *Controller {
	return &Controller{state: models.DifficultyState{Difficulty: InitialDifficulty}}
}

// Record feeds one round outcome into the controller. A round whose timer ran
// out must be recorded as Incorrect.
func (c *Controller) Record(outcome models.Outcome) models.DifficultyState {
	s := &c.state
	if outcome == models.Correct {
		s.ConsecutiveCorrect++
		s.ConsecutiveWrong = 0
		s.Streak++
		s.BestStreak = max(s.BestStreak, s.Streak)
		if s.ConsecutiveCorrect >= correctToLevelUp {
			s.Difficulty = min(MaxDifficulty, s.Difficulty+1)
			s.ConsecutiveCorrect = 0
		}
	} else {
		s.ConsecutiveWrong++
		s.ConsecutiveCorrect = 0
		s.Streak = 0
		if s.ConsecutiveWrong >= wrongToLevelDown {
			s.Difficulty = max(MinDifficulty, s.Difficulty-1)
			s.ConsecutiveWrong = 0
		}
	}
	return *s
}

func (c *Controller) State() models.DifficultyState { return c.state }

// TimerSeconds is the response budget for the next round.
func (c *Controller) TimerSeconds() int { return TimerSeconds(c.state.Difficulty) }

// TimerSeconds maps a difficulty to a response budget: 8 seconds at the
// easiest setting down to 3 at the hardest.
func TimerSeconds(difficulty int) int {
	return int(math.Round(timerBaseSeconds - float64(difficulty)*timerStepSeconds))
}
