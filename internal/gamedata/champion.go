package gamedata

import (
	"fmt"
	"time"

	"github.com/samdwyer/wavemaster/data"
)

// ChampionDef defines the player champion's base stats.
type ChampionDef struct {
	Name             string  `yaml:"name"`
	Glyph            string  `yaml:"glyph"`
	Color            string  `yaml:"color"`
	StartX           float64 `yaml:"startX"`
	StartZ           float64 `yaml:"startZ"`
	MoveSpeed        float64 `yaml:"moveSpeed"`
	AttackDamage     int     `yaml:"attackDamage"`
	AttackRange      float64 `yaml:"attackRange"`
	AttackCooldownMs int     `yaml:"attackCooldownMs"`
	ComboThreshold   int     `yaml:"comboThreshold"` // combo at which the bonus starts
	ComboBonusGold   int     `yaml:"comboBonusGold"`
}

// AttackCooldown returns the basic attack cooldown.
func (c *ChampionDef) AttackCooldown() time.Duration {
	return time.Duration(c.AttackCooldownMs) * time.Millisecond
}

// GlyphRune returns the glyph as a rune for rendering.
func (c *ChampionDef) GlyphRune() rune {
	if len(c.Glyph) == 0 {
		return '@'
	}
	return []rune(c.Glyph)[0]
}

// ChampionFile represents the structure of champion.yaml.
type ChampionFile struct {
	Champion  ChampionDef  `yaml:"champion"`
	Abilities []AbilityDef `yaml:"abilities"`
}

// LoadChampion loads the champion definition and its ability table.
func LoadChampion() (*ChampionDef, *AbilityTable, error) {
	file, err := Load[ChampionFile](data.ChampionFile)
	if err != nil {
		return nil, nil, err
	}

	var table AbilityTable
	seen := make(map[Slot]bool, slotCount)
	for _, def := range file.Abilities {
		slot, err := ParseSlot(def.Slot)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", data.ChampionFile, err)
		}
		if seen[slot] {
			return nil, nil, fmt.Errorf("%s: duplicate slot %q", data.ChampionFile, def.Slot)
		}
		seen[slot] = true
		table[slot] = def
	}
	if len(seen) != int(slotCount) {
		return nil, nil, fmt.Errorf("%s: expected %d abilities, got %d", data.ChampionFile, slotCount, len(seen))
	}

	return &file.Champion, &table, nil
}
