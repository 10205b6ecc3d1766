// Package entity provides lane minions and the player champion.
package entity

// Team identifies which side of the lane a unit fights for.
type Team int

const (
	TeamAlly Team = iota
	TeamEnemy
)

// String returns the team name.
func (t Team) String() string {
	switch t {
	case TeamAlly:
		return "ally"
	case TeamEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamAlly {
		return TeamEnemy
	}
	return TeamAlly
}
