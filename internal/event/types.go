package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/wavemaster/internal/entity"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/store"
	"github.com/samdwyer/wavemaster/internal/world"
)

const (
	TypeWaveStateChanged Type = "WaveStateChanged" // lane label changed
	TypeWaveSpawned      Type = "WaveSpawned"
	TypeTowerShot        Type = "TowerShot"
	TypeRewardPop        Type = "RewardPop" // champion landed a last hit
	TypeTickSnapshot     Type = "TickSnapshot"
	TypeDodgeLevelUp     Type = "DodgeLevelUp"
	TypeDodgeOver        Type = "DodgeOver"
	TypeModeChanged      Type = "ModeChanged"
	TypeTutorialStep     Type = "TutorialStep"
)

// WaveStateChanged is sent once per change of the lane's tactical label.
type WaveStateChanged struct {
	Previous     string
	Current      string
	Differential int
	Aggregate    float64
}

func (WaveStateChanged) Type() Type { return TypeWaveStateChanged }

// WaveSpawned is sent after a wave has been added to both teams.
type WaveSpawned struct {
	Wave    int
	Heavy   bool
	PerTeam int
	Forced  bool
}

func (WaveSpawned) Type() Type { return TypeWaveSpawned }

// TowerShot is sent for every shot a tower guard fires.
type TowerShot struct {
	Tower  entity.Team // side owning the tower
	Target uuid.UUID
	From   world.Vec2
	To     world.Vec2
	Damage int
	Killed bool
}

func (TowerShot) Type() Type { return TypeTowerShot }

// RewardPop is sent for every unit the champion last-hits.
type RewardPop struct {
	UnitID uuid.UUID
	At     world.Vec2
	Gold   int
	XP     int
	Bonus  int
	Combo  int
}

func (RewardPop) Type() Type { return TypeRewardPop }

// UnitView is the read-only state of one unit for presentation.
type UnitView struct {
	ID             uuid.UUID
	Team           entity.Team
	Archetype      gamedata.Archetype
	Position       world.Vec2
	Health         int
	MaxHealth      int
	Alive          bool
	AttackingTower bool
}

// LaneView summarises the lane for presentation.
type LaneView struct {
	Wave         int
	Label        string
	Position     float64 // -1 ally tower .. 1 enemy tower
	AllyAlive    int
	EnemyAlive   int
	Differential int
	NextWave     time.Duration // time until the next automatic wave, 0 when disabled
}

// DodgeView summarises a running dodge game for presentation.
type DodgeView struct {
	Running     bool
	Score       int
	Level       int
	HighScore   int
	Projectiles []world.Vec2
}

// TickSnapshot is sent at the end of every simulated tick.
type TickSnapshot struct {
	Now       time.Duration
	Mode      string
	State     string
	Stats     entity.Stats
	Cooldowns [len(gamedata.Slots)]entity.CooldownStatus
	Champion  world.Vec2
	MoveOrder *world.Vec2
	TargetID  uuid.UUID
	Units     []UnitView
	Lane      LaneView
	Dodge     DodgeView
}

func (TickSnapshot) Type() Type { return TypeTickSnapshot }

// DodgeLevelUp is sent when the dodge difficulty rises.
type DodgeLevelUp struct {
	Level    int
	Interval time.Duration
	Speed    float64
}

func (DodgeLevelUp) Type() Type { return TypeDodgeLevelUp }

// DodgeOver is sent when a projectile hits the champion.
type DodgeOver struct {
	Score       int
	HighScore   int
	NewHigh     bool
	Leaderboard []store.Entry
}

func (DodgeOver) Type() Type { return TypeDodgeOver }

// ModeChanged is sent when the session switches mode or play state.
type ModeChanged struct {
	Mode  string
	State string
}

func (ModeChanged) Type() Type { return TypeModeChanged }

// TutorialStep is sent when the tutorial page changes.
type TutorialStep struct {
	Index int
	Total int
	Title string
	Body  string
}

func (TutorialStep) Type() Type { return TypeTutorialStep }
