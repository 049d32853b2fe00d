package ranking

import (
	"cmp"
	"slices"
)

// Entry is one ranked character.
type Entry struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	IsNPC       bool   `json:"npc"`
	Realm       string `json:"realm"`
	Score       int64  `json:"score"`
	Potential   int64  `json:"potential"`
	Rank        int    `json:"rank"`
}

// Leaderboard is an ordered ranking snapshot.
type Leaderboard struct {
	Entries []Entry `json:"entries"`
}

// NewLeaderboard sorts entries by score desc, potential desc, id asc
// and assigns 1-based ranks. The input slice is not modified.
func NewLeaderboard(entries []Entry) *Leaderboard {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(b.Potential, a.Potential),
			cmp.Compare(a.CharacterID, b.CharacterID),
		)
	})
	for i := range sorted {
		sorted[i].Rank = i + 1
	}
	return &Leaderboard{Entries: sorted}
}

// Top returns the first n entries (all if n ≤ 0 or n exceeds the size).
func (l *Leaderboard) Top(n int) []Entry {
	if n <= 0 || n >= len(l.Entries) {
		return l.Entries
	}
	return l.Entries[:n]
}

// Find returns the entry of a character.
func (l *Leaderboard) Find(id string) (Entry, bool) {
	for _, e := range l.Entries {
		if e.CharacterID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// NPCs returns only NPC entries, keeping their global rank.
func (l *Leaderboard) NPCs() []Entry {
	var out []Entry
	for _, e := range l.Entries {
		if e.IsNPC {
			out = append(out, e)
		}
	}
	return out
}
