package combat

import "github.com/google/uuid"

// Reward is what one last hit paid out.
type Reward struct {
	UnitID uuid.UUID
	Gold   int // includes Bonus
	XP     int
	Bonus  int // combo bonus gold
	Combo  int // combo after this kill
}

// Ledger accumulates last-hit rewards and the combo streak.
type Ledger struct {
	Gold     int
	XP       int
	LastHits int
	Combo    int
	MaxCombo int

	comboThreshold int
	comboBonus     int
}

// NewLedger creates a ledger paying bonus gold on every kill once the combo
// reaches threshold.
func NewLedger(threshold, bonus int) *Ledger {
	return &Ledger{comboThreshold: threshold, comboBonus: bonus}
}

// Credit books the kill of target and returns the reward for it.
func (l *Ledger) Credit(target Target) Reward {
	gold, xp := target.Bounty()

	l.LastHits++
	l.Combo++
	if l.Combo > l.MaxCombo {
		l.MaxCombo = l.Combo
	}

	reward := Reward{UnitID: target.ID(), Gold: gold, XP: xp, Combo: l.Combo}
	if l.comboThreshold > 0 && l.Combo >= l.comboThreshold {
		reward.Bonus = l.comboBonus
		reward.Gold += l.comboBonus
	}

	l.Gold += reward.Gold
	l.XP += reward.XP
	return reward
}

// ResetCombo ends the current streak.
func (l *Ledger) ResetCombo() {
	l.Combo = 0
}

// Reset zeroes every counter.
func (l *Ledger) Reset() {
	l.Gold, l.XP, l.LastHits, l.Combo, l.MaxCombo = 0, 0, 0, 0, 0
}
