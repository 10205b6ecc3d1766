// Package store persists the survival high score and leaderboard.
package store

import (
	"sort"
	"time"
)

// Namespace keys every persisted record.
const Namespace = "waveMaster"

// LeaderboardSize is how many entries a leaderboard keeps.
const LeaderboardSize = 5

// Entry is one leaderboard row.
type Entry struct {
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// Store reads and writes the survival records.
type Store interface {
	HighScore() (int, error)
	SetHighScore(score int) error
	Leaderboard() ([]Entry, error)
	// AppendScore inserts e and returns the leaderboard sorted by descending
	// score and capped at LeaderboardSize.
	AppendScore(e Entry) ([]Entry, error)
}

// record is the persisted document for one namespace.
type record struct {
	HighScore   int     `json:"highScore"`
	Leaderboard []Entry `json:"leaderboard"`
}

// insert adds e to board, keeping it sorted and capped. Equal scores keep
// their insertion order.
func insert(board []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(board)+1)
	out = append(out, board...)
	out = append(out, e)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > LeaderboardSize {
		out = out[:LeaderboardSize]
	}
	return out
}

func clone(board []Entry) []Entry {
	if len(board) == 0 {
		return nil
	}
	out := make([]Entry, len(board))
	copy(out, board)
	return out
}
