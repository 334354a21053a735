package assessment

import (
	"sort"
	"strings"
)

type Medal string

const (
	NoMedal Medal = ""
	Gold    Medal = "gold"
	Silver  Medal = "silver"
	Bronze  Medal = "bronze"
)

// MedalFor decorates the top three positions. It is display only.
func MedalFor(rank int) Medal {
	switch rank {
	case 1:
		return Gold
	case 2:
		return Silver
	case 3:
		return Bronze
	default:
		return NoMedal
	}
}

// Matches applies the filter to one entry. Empty fields match everything.
func (f LeaderboardFilter) Matches(e RankEntry) bool {
	if f.CourseID != "" && e.CourseID != f.CourseID {
		return false
	}
	if f.ItemType != "" && e.ItemType != f.ItemType {
		return false
	}
	if q := strings.TrimSpace(f.NameQuery); q != "" {
		if !strings.Contains(strings.ToLower(e.LearnerName), strings.ToLower(q)) {
			return false
		}
	}
	return true
}

// Rank filters and orders entries: higher score first, then earlier
// completion. Entries that tie on both are ordered by learner and item id so
// the output never depends on input order.
func Rank(entries []RankEntry, f LeaderboardFilter) []LeaderboardRow {
	kept := make([]RankEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			kept = append(kept, e)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		if a.LearnerID != b.LearnerID {
			return a.LearnerID < b.LearnerID
		}
		return a.ItemID < b.ItemID
	})

	rows := make([]LeaderboardRow, len(kept))
	for i, e := range kept {
		rows[i] = LeaderboardRow{
			Rank:        i + 1,
			Medal:       MedalFor(i + 1),
			LearnerID:   e.LearnerID,
			LearnerName: e.LearnerName,
			CourseID:    e.CourseID,
			ItemID:      e.ItemID,
			ItemType:    e.ItemType,
			Score:       e.Score,
			CompletedAt: e.SubmittedAt,
		}
	}
	return rows
}
