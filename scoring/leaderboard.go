package scoring

import "sort"

// RowInput is an unranked leaderboard entry.
type RowInput struct {
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	Team           string `json:"team"`
	Country        string `json:"country"`
	Points         int    `json:"points"`
	Form           int    `json:"form"`
	LastRacePoints int    `json:"lastRacePoints"`
	IsSelf         bool   `json:"isSelf"`
}

// Row is a ranked leaderboard entry.
type Row struct {
	RowInput
	Rank int `json:"rank"`
}

// MergeRows inserts the acting player's computed row after the stored rows.
// The computed row is never dropped: if a stored row carries the same username
// or display name, the player's username is suffixed so both stay visible.
func MergeRows(self RowInput, others []RowInput) []RowInput {
	self.IsSelf = true

	collides := false
	for _, o := range others {
		if o.Username == self.Username || (self.DisplayName != "" && o.DisplayName == self.DisplayName) {
			collides = true
			break
		}
	}
	if collides {
		self.Username += "~self"
	}

	merged := make([]RowInput, 0, len(others)+1)
	merged = append(merged, others...)
	return append(merged, self)
}

// Rank sorts rows by points descending and assigns 1-based sequential ranks.
// The sort is stable: equal-point rows keep their insertion order, so a row
// merged earlier wins the tie. Ties get consecutive distinct ranks, never a
// shared one.
func Rank(rows []RowInput) []Row {
	sorted := make([]RowInput, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	out := make([]Row, len(sorted))
	for i, r := range sorted {
		out[i] = Row{RowInput: r, Rank: i + 1}
	}
	return out
}
