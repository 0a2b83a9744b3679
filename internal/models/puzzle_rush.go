package models

import "time"

// DifficultyState paces one timed game. It is never persisted.
type DifficultyState struct {
	Difficulty         int `json:"difficulty"`
	ConsecutiveCorrect int `json:"consecutive_correct"`
	ConsecutiveWrong   int `json:"consecutive_wrong"`
	Streak             int `json:"streak"`
	BestStreak         int `json:"best_streak"`
}

// RushGame is the stored summary of a finished timed game.
type RushGame struct {
	ID              int64     `json:"id"`
	GameID          string    `json:"game_id"`
	Rounds          int       `json:"rounds"`
	Correct         int       `json:"correct"`
	BestStreak      int       `json:"best_streak"`
	FinalDifficulty int       `json:"final_difficulty"`
	DurationSeconds float64   `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
}

type RushStatus struct {
	GameID       string          `json:"game_id"`
	State        DifficultyState `json:"state"`
	TimerSeconds int             `json:"timer_seconds"`
	Rounds       int             `json:"rounds"`
	Correct      int             `json:"correct"`
	StartedAt    time.Time       `json:"started_at"`
}

// RushRound is the prompt of the next timed round.
type RushRound struct {
	Number       int           `json:"number"`
	Item         LearnableItem `json:"item"`
	TimerSeconds int           `json:"timer_seconds"`
	Difficulty   int           `json:"difficulty"`
}
