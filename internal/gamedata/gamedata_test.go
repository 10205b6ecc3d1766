package gamedata

import (
	"testing"
	"time"
)

func TestLoadArchetypes(t *testing.T) {
	table, _, err := LoadArchetypes()
	if err != nil {
		t.Fatalf("Failed to load archetypes: %v", err)
	}

	tests := []struct {
		archetype Archetype
		maxHealth int
		damage    int
		rng       float64
		gold      int
		xp        int
	}{
		{ArchetypeLight, 480, 12, 2.5, 21, 30},
		{ArchetypeRanged, 290, 23, 8, 14, 30},
		{ArchetypeHeavy, 900, 40, 10, 60, 93},
	}

	for _, tt := range tests {
		def := table.Get(tt.archetype)
		if def.MaxHealth != tt.maxHealth {
			t.Errorf("%s MaxHealth = %d, want %d", tt.archetype, def.MaxHealth, tt.maxHealth)
		}
		if def.Damage != tt.damage {
			t.Errorf("%s Damage = %d, want %d", tt.archetype, def.Damage, tt.damage)
		}
		if def.AttackRange != tt.rng {
			t.Errorf("%s AttackRange = %v, want %v", tt.archetype, def.AttackRange, tt.rng)
		}
		if def.Gold != tt.gold || def.XP != tt.xp {
			t.Errorf("%s reward = %d/%d, want %d/%d", tt.archetype, def.Gold, def.XP, tt.gold, tt.xp)
		}
		if def.AttackInterval() != time.Second {
			t.Errorf("%s AttackInterval = %v, want 1s", tt.archetype, def.AttackInterval())
		}
		if def.MoveSpeed != 2 {
			t.Errorf("%s MoveSpeed = %v, want 2", tt.archetype, def.MoveSpeed)
		}
	}
}

func TestStatTableUnknownArchetype(t *testing.T) {
	table, _, err := LoadArchetypes()
	if err != nil {
		t.Fatalf("Failed to load archetypes: %v", err)
	}

	if got := table.Get(Archetype(42)); got != table.Get(ArchetypeLight) {
		t.Error("unknown archetype should fall back to the light profile")
	}
}

func TestParseArchetype(t *testing.T) {
	for _, a := range Archetypes {
		got, err := ParseArchetype(a.String())
		if err != nil || got != a {
			t.Errorf("ParseArchetype(%q) = %v, %v; want %v", a.String(), got, err, a)
		}
	}
	if _, err := ParseArchetype("siege"); err == nil {
		t.Error("ParseArchetype(\"siege\") should fail")
	}
}

func TestLoadChampion(t *testing.T) {
	champion, abilities, err := LoadChampion()
	if err != nil {
		t.Fatalf("Failed to load champion: %v", err)
	}

	if champion.AttackDamage != 65 || champion.AttackRange != 5 {
		t.Errorf("champion attack = %d@%v, want 65@5", champion.AttackDamage, champion.AttackRange)
	}
	if champion.AttackCooldown() != 600*time.Millisecond {
		t.Errorf("AttackCooldown = %v, want 600ms", champion.AttackCooldown())
	}

	tests := []struct {
		slot     Slot
		effect   EffectType
		cooldown time.Duration
	}{
		{SlotA, EffectStrike, 8 * time.Second},
		{SlotZ, EffectBurst, 12 * time.Second},
		{SlotE, EffectSprint, 15 * time.Second},
	}
	for _, tt := range tests {
		def := abilities.Get(tt.slot)
		if def == nil {
			t.Fatalf("slot %s missing", tt.slot)
		}
		if def.Effect != tt.effect {
			t.Errorf("slot %s effect = %q, want %q", tt.slot, def.Effect, tt.effect)
		}
		if def.Cooldown() != tt.cooldown {
			t.Errorf("slot %s cooldown = %v, want %v", tt.slot, def.Cooldown(), tt.cooldown)
		}
	}

	if sprint := abilities.Get(SlotE); sprint.Duration() != 2*time.Second || sprint.SpeedMultiplier != 2 {
		t.Errorf("sprint = %v x%v, want 2s x2", sprint.Duration(), sprint.SpeedMultiplier)
	}
	if abilities.Get(Slot(9)) != nil {
		t.Error("Get on an unknown slot should return nil")
	}
}

func TestRegistryModes(t *testing.T) {
	registry := MustLoadRegistry()

	tests := []struct {
		id       string
		interval time.Duration
	}{
		{"tutorial", 20 * time.Second},
		{"freeplay", 15 * time.Second},
		{"survival", 0},
	}
	for _, tt := range tests {
		mode := registry.Mode(tt.id)
		if mode == nil {
			t.Fatalf("mode %q not found", tt.id)
		}
		if mode.WaveInterval() != tt.interval {
			t.Errorf("mode %q interval = %v, want %v", tt.id, mode.WaveInterval(), tt.interval)
		}
	}

	if registry.Mode("ranked") != nil {
		t.Error("unknown mode should be nil")
	}
	if len(registry.Tutorial) != 5 {
		t.Errorf("tutorial steps = %d, want 5", len(registry.Tutorial))
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"3B82F6", true},
		{"#ef4444", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GGGGGG", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestGlyphRune(t *testing.T) {
	def := ArchetypeDef{Glyph: "C"}
	if def.GlyphRune() != 'C' {
		t.Errorf("GlyphRune() = %c, want C", def.GlyphRune())
	}
	empty := ArchetypeDef{}
	if empty.GlyphRune() != '?' {
		t.Errorf("empty GlyphRune() = %c, want ?", empty.GlyphRune())
	}
}
