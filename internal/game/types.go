package game

import "github.com/pefman/citadel-calc/internal/catalog"

// SlotLabels names the attack waves in order.
var SlotLabels = [catalog.SlotCount]string{
	"First Striker",
	"Second Striker",
	"Third Striker",
	"Cleanup 1",
	"Cleanup 2",
	"Cleanup 3",
	"Cleanup 4",
	"Cleanup 5",
	"Cleanup 6",
}

// Assignment holds the canonical troop name per attack slot, "" when empty.
type Assignment [catalog.SlotCount]string

// Line is one entry of the aggregated shopping list.
type Line struct {
	Troop    string `json:"troop"`
	Required int    `json:"required"`
}

// SlotResult is the computed requirement for one attack slot.
type SlotResult struct {
	Index          int     `json:"index"`
	Label          string  `json:"label"`
	Troop          string  `json:"troop,omitempty"`
	EffectiveBonus float64 `json:"effective_bonus"`
	Target         float64 `json:"target"`
	Required       int     `json:"required"`
}

// WallResult is the computed wall breacher requirement.
type WallResult struct {
	Troop          string  `json:"troop,omitempty"`
	EffectiveBonus float64 `json:"effective_bonus"`
	WallHP         float64 `json:"wall_hp"`
	Required       int     `json:"required"`
}

// Report captures a full calculation and the step log shown to the player.
type Report struct {
	Mode              catalog.Mode `json:"mode"`
	ModeLabel         string       `json:"mode_label"`
	Citadel           string       `json:"citadel"`
	CitadelLabel      string       `json:"citadel_label"`
	FirstStrikeLosses int          `json:"first_strike_losses"`
	Slots             []SlotResult `json:"slots"`
	Wall              WallResult   `json:"wall"`
	Lines             []Line       `json:"lines"`
	Text              string       `json:"text"`
	Logs              []string     `json:"logs"`
}

// Tuning holds the adjustable safety margins and multipliers.
type Tuning struct {
	FirstStrikeMargin     int     `yaml:"first_strike_margin" json:"first_strike_margin"`
	WallMargin            int     `yaml:"wall_margin" json:"wall_margin"`
	MonsterHunterDiscount int     `yaml:"monster_hunter_discount" json:"monster_hunter_discount"`
	SiegeMultiplier       float64 `yaml:"siege_multiplier" json:"siege_multiplier"`
}

func DefaultTuning() Tuning {
	return Tuning{
		MonsterHunterDiscount: 5,
		SiegeMultiplier:       20,
	}
}

// CitadelLabel is the display name of a citadel level.
func CitadelLabel(level string) string { return "Elven " + level }
