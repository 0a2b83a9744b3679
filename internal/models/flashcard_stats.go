package models

type ProgressStat struct {
	TotalItems    int     `json:"total_items"`
	StartedCards  int     `json:"started_cards"`
	NewCards      int     `json:"new_cards"`
	LearningCards int     `json:"learning_cards"`
	MasteredCards int     `json:"mastered_cards"`
	DueCards      int     `json:"due_cards"`
	TotalReviews  int     `json:"total_reviews"`
	Accuracy      float64 `json:"accuracy"`
	AvgEaseFactor float64 `json:"avg_ease_factor"`
}

type CategoryStat struct {
	Category      string `json:"category"`
	TotalItems    int    `json:"total_items"`
	NewCards      int    `json:"new_cards"`
	LearningCards int    `json:"learning_cards"`
	MasteredCards int    `json:"mastered_cards"`
	DueCards      int    `json:"due_cards"`
}
