package gamedata

import (
	"time"

	"github.com/samdwyer/wavemaster/data"
)

// ModeDef holds the wave preset for one game mode.
type ModeDef struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	WaveIntervalMs int    `yaml:"waveIntervalMs"`
	ForceFirstWave bool   `yaml:"forceFirstWave"`
}

// WaveInterval returns the time between two automatic waves.
// Zero means the mode does not run the lane.
func (m *ModeDef) WaveInterval() time.Duration {
	return time.Duration(m.WaveIntervalMs) * time.Millisecond
}

// ModesFile represents the structure of modes.yaml.
type ModesFile struct {
	Modes []ModeDef `yaml:"modes"`
}

// LoadModes loads mode presets from the embedded modes.yaml file.
func LoadModes() ([]ModeDef, error) {
	file, err := Load[ModesFile](data.ModesFile)
	if err != nil {
		return nil, err
	}
	return file.Modes, nil
}

// TutorialStep is one page of the tutorial.
type TutorialStep struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// TutorialFile represents the structure of tutorial.yaml.
type TutorialFile struct {
	Steps []TutorialStep `yaml:"steps"`
}

// LoadTutorial loads the tutorial steps from the embedded tutorial.yaml file.
func LoadTutorial() ([]TutorialStep, error) {
	file, err := Load[TutorialFile](data.TutorialFile)
	if err != nil {
		return nil, err
	}
	return file.Steps, nil
}
