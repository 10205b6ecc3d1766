// Package data provides the embedded, read-only balancing tables.
package data

import "embed"

// dataFS embeds all YAML files from the data directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS

// Embedded file names.
const (
	ArchetypesFile = "archetypes.yaml"
	ChampionFile   = "champion.yaml"
	ModesFile      = "modes.yaml"
	TutorialFile   = "tutorial.yaml"
)

// FS returns the embedded filesystem containing game data.
func FS() embed.FS {
	return dataFS
}
