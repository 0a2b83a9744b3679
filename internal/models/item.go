package models

// Difficulty tags carried by catalog items.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// LearnableItem is one prompt/target pair from the catalog. Items are never
// mutated once the catalog is loaded.
type LearnableItem struct {
	ID         int64  `json:"id" toml:"id" validate:"gt=0"`
	PromptText string `json:"prompt_text" toml:"prompt" validate:"required"`
	TargetText string `json:"target_text" toml:"target" validate:"required"`
	Category   string `json:"category" toml:"category" validate:"required"`
	Difficulty string `json:"difficulty" toml:"difficulty" validate:"oneof=easy medium hard"`
}

// CategoryFilter restricts catalog queries to one category. The zero value
// matches every item.
type CategoryFilter string

// AllCategories is the filter that matches every item.
const AllCategories CategoryFilter = ""

func (f CategoryFilter) Matches(item LearnableItem) bool {
	return f == AllCategories || string(f) == item.Category
}
