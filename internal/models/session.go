package models

// StudySession is the working set of one sitting. It only lives until the
// session ends.
type StudySession struct {
	ItemIDs []int64 `json:"item_ids"`
	Cursor  int     `json:"cursor"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
}

func (s *StudySession) Remaining() int {
	if s.Cursor >= len(s.ItemIDs) {
		return 0
	}
	return len(s.ItemIDs) - s.Cursor
}

type SessionSummary struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Snapshot is the persisted engine state handed back by the host at startup.
type Snapshot struct {
	CardProgress   map[int64]CardProgress `json:"card_progress"`
	CategoryFilter CategoryFilter         `json:"category_filter"`
}

// StudyCard is a catalog item together with its current progress.
type StudyCard struct {
	Item     LearnableItem `json:"item"`
	Progress CardProgress  `json:"progress"`
}

type SessionStatus struct {
	SessionID string       `json:"session_id,omitempty"`
	State     string       `json:"state"`
	Session   StudySession `json:"session"`
	Current   *StudyCard   `json:"current,omitempty"`
}
