package game

import (
	"cmp"
	"slices"
)

// Rank returns a copy of players ordered by descending score. Equal scores keep
// their input order, so ranking an already ranked list is a no-op.
func Rank(players []Player) []Player {
	ranked := slices.Clone(players)
	if ranked == nil {
		ranked = []Player{}
	}
	slices.SortStableFunc(ranked, func(a, b Player) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return ranked
}

// RankOf returns the 1-based position of playerID in ranked, or 0 if absent.
func RankOf(ranked []Player, playerID string) int {
	for i, p := range ranked {
		if p.ID == playerID {
			return i + 1
		}
	}
	return 0
}

type ReportRow struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Correct int    `json:"correct"`
	Wrong   int    `json:"wrong"`
}

// Report builds the export table of a room.
func Report(players []Player) []ReportRow {
	ranked := Rank(players)
	rows := make([]ReportRow, 0, len(ranked))
	for i, p := range ranked {
		rows = append(rows, ReportRow{
			Rank:    i + 1,
			Name:    p.Name,
			Score:   p.Score,
			Correct: p.CorrectCount,
			Wrong:   p.WrongCount,
		})
	}
	return rows
}
