package gamedata

import (
	"errors"
	"fmt"
)

// Registry holds every embedded table, resolved once at startup.
type Registry struct {
	Stats     *StatTable
	Champion  *ChampionDef
	Abilities *AbilityTable
	Tutorial  []TutorialStep

	allyColor  string
	enemyColor string
	modes      map[string]*ModeDef
	modeOrder  []ModeDef
}

// LoadRegistry loads and validates all embedded data files.
func LoadRegistry() (*Registry, error) {
	stats, archetypes, err := LoadArchetypes()
	if err != nil {
		return nil, err
	}

	champion, abilities, err := LoadChampion()
	if err != nil {
		return nil, err
	}

	modes, err := LoadModes()
	if err != nil {
		return nil, err
	}
	if len(modes) == 0 {
		return nil, errors.New("no modes loaded from modes.yaml")
	}

	tutorial, err := LoadTutorial()
	if err != nil {
		return nil, err
	}
	if len(tutorial) == 0 {
		return nil, errors.New("no steps loaded from tutorial.yaml")
	}

	r := &Registry{
		Stats:      stats,
		Champion:   champion,
		Abilities:  abilities,
		Tutorial:   tutorial,
		allyColor:  archetypes.Teams.Ally.Color,
		enemyColor: archetypes.Teams.Enemy.Color,
		modes:      make(map[string]*ModeDef, len(modes)),
		modeOrder:  modes,
	}
	for i := range r.modeOrder {
		id := r.modeOrder[i].ID
		if _, dup := r.modes[id]; dup {
			return nil, fmt.Errorf("duplicate mode %q", id)
		}
		r.modes[id] = &r.modeOrder[i]
	}

	return r, nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Mode returns the preset with the given ID, or nil if not found.
func (r *Registry) Mode(id string) *ModeDef {
	return r.modes[id]
}

// Modes returns all mode presets in file order.
func (r *Registry) Modes() []ModeDef {
	return r.modeOrder
}

// TeamColors returns the hex colors of the ally and enemy teams.
func (r *Registry) TeamColors() (ally, enemy string) {
	return r.allyColor, r.enemyColor
}
