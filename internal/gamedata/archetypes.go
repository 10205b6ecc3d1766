package gamedata

import (
	"fmt"
	"time"

	"github.com/samdwyer/wavemaster/data"
)

// Archetype identifies a minion stat profile.
type Archetype int

const (
	// ArchetypeLight is the front-line melee minion.
	ArchetypeLight Archetype = iota
	// ArchetypeRanged is the caster minion that stands behind the melee line.
	ArchetypeRanged
	// ArchetypeHeavy is the siege minion added every third wave.
	ArchetypeHeavy

	archetypeCount
)

// Archetypes lists every archetype in table order.
var Archetypes = [...]Archetype{ArchetypeLight, ArchetypeRanged, ArchetypeHeavy}

// String returns the archetype identifier used in the data files.
func (a Archetype) String() string {
	switch a {
	case ArchetypeLight:
		return "light"
	case ArchetypeRanged:
		return "ranged"
	case ArchetypeHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// ParseArchetype maps a data-file identifier to an Archetype.
func ParseArchetype(id string) (Archetype, error) {
	for _, a := range Archetypes {
		if a.String() == id {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown archetype %q", id)
}

// ArchetypeDef holds the fixed stats of one minion archetype.
type ArchetypeDef struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Glyph            string  `yaml:"glyph"`
	MaxHealth        int     `yaml:"maxHealth"`
	Damage           int     `yaml:"damage"`
	AttackRange      float64 `yaml:"attackRange"`
	CollisionRadius  float64 `yaml:"collisionRadius"`
	AttackIntervalMs int     `yaml:"attackIntervalMs"`
	MoveSpeed        float64 `yaml:"moveSpeed"` // lane units per second
	Gold             int     `yaml:"gold"`
	XP               int     `yaml:"xp"`
}

// AttackInterval returns the minimum time between two attacks.
func (d *ArchetypeDef) AttackInterval() time.Duration {
	return time.Duration(d.AttackIntervalMs) * time.Millisecond
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *ArchetypeDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '?'
	}
	return []rune(d.Glyph)[0]
}

// TeamDef holds presentation data for one team.
type TeamDef struct {
	Color string `yaml:"color"`
}

// ArchetypesFile represents the structure of archetypes.yaml.
type ArchetypesFile struct {
	Archetypes []ArchetypeDef `yaml:"archetypes"`
	Teams      struct {
		Ally  TeamDef `yaml:"ally"`
		Enemy TeamDef `yaml:"enemy"`
	} `yaml:"teams"`
}

// StatTable is the archetype lookup table, indexed by Archetype.
type StatTable [archetypeCount]ArchetypeDef

// Get returns the stats for a. Unknown archetypes resolve to the light profile.
func (t *StatTable) Get(a Archetype) *ArchetypeDef {
	if a < 0 || a >= archetypeCount {
		return &t[ArchetypeLight]
	}
	return &t[a]
}

// LoadArchetypes loads the archetype file and builds the stat table.
// Every archetype must be present exactly once.
func LoadArchetypes() (*StatTable, *ArchetypesFile, error) {
	file, err := Load[ArchetypesFile](data.ArchetypesFile)
	if err != nil {
		return nil, nil, err
	}

	var table StatTable
	seen := make(map[Archetype]bool, archetypeCount)
	for _, def := range file.Archetypes {
		a, err := ParseArchetype(def.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", data.ArchetypesFile, err)
		}
		if seen[a] {
			return nil, nil, fmt.Errorf("%s: duplicate archetype %q", data.ArchetypesFile, def.ID)
		}
		seen[a] = true
		table[a] = def
	}
	if len(seen) != int(archetypeCount) {
		return nil, nil, fmt.Errorf("%s: expected %d archetypes, got %d", data.ArchetypesFile, archetypeCount, len(seen))
	}

	return &table, &file, nil
}
