package gamedata

import (
	"fmt"
	"time"
)

// =============================================================================
// CHAMPION ABILITY DESIGN
// =============================================================================
//
// The champion has exactly three ability slots, bound to the A, Z and E keys.
// Each slot carries one effect:
//
//   - strike: burst damage on the currently targeted enemy minion, only when
//     it is within the ability range
//   - burst:  area damage on every enemy minion within the ability range
//     around the champion
//   - sprint: multiplies champion move speed for a fixed duration
//
// Cooldowns are measured against the session clock. A cast on cooldown is
// silently rejected; a successful cast always consumes the cooldown, even
// when a strike finds no valid target.
//
// YAML Schema:
// ------------
//   - slot: A
//     name: Power Strike
//     icon: "⚔️"
//     effect: strike
//     damage: 150
//     range: 4
//     cooldownMs: 8000
//
// Telemetry:
// ----------
// Casts are not traced individually; their kills surface as reward pops.

// Slot identifies one of the champion's ability keys.
type Slot int

const (
	SlotA Slot = iota
	SlotZ
	SlotE

	slotCount
)

// Slots lists every ability slot in key order.
var Slots = [...]Slot{SlotA, SlotZ, SlotE}

// String returns the key bound to the slot.
func (s Slot) String() string {
	switch s {
	case SlotA:
		return "A"
	case SlotZ:
		return "Z"
	case SlotE:
		return "E"
	default:
		return "?"
	}
}

// ParseSlot maps a key name to a Slot.
func ParseSlot(key string) (Slot, error) {
	for _, s := range Slots {
		if s.String() == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown ability slot %q", key)
}

// EffectType represents what an ability does.
type EffectType string

const (
	EffectStrike EffectType = "strike"
	EffectBurst  EffectType = "burst"
	EffectSprint EffectType = "sprint"
)

// AbilityDef defines a champion ability loaded from YAML.
type AbilityDef struct {
	Slot            string     `yaml:"slot"`
	Name            string     `yaml:"name"`
	Icon            string     `yaml:"icon"`
	Effect          EffectType `yaml:"effect"`
	Damage          int        `yaml:"damage,omitempty"`
	Range           float64    `yaml:"range,omitempty"`
	CooldownMs      int        `yaml:"cooldownMs"`
	DurationMs      int        `yaml:"durationMs,omitempty"`
	SpeedMultiplier float64    `yaml:"speedMultiplier,omitempty"`
}

// Cooldown returns the ability cooldown.
func (a *AbilityDef) Cooldown() time.Duration {
	return time.Duration(a.CooldownMs) * time.Millisecond
}

// Duration returns how long a timed effect lasts.
func (a *AbilityDef) Duration() time.Duration {
	return time.Duration(a.DurationMs) * time.Millisecond
}

// IsOffensive returns true if the ability damages enemy units.
func (a *AbilityDef) IsOffensive() bool {
	return a.Effect == EffectStrike || a.Effect == EffectBurst
}

// AbilityTable is the ability lookup table, indexed by Slot.
type AbilityTable [slotCount]AbilityDef

// Get returns the ability bound to s, or nil for an unknown slot.
func (t *AbilityTable) Get(s Slot) *AbilityDef {
	if s < 0 || s >= slotCount {
		return nil
	}
	return &t[s]
}
