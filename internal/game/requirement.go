package game

import (
	"github.com/pefman/citadel-calc/internal/catalog"
)

// Calculator turns troop stats and bonuses into troop counts for one citadel.
type Calculator struct {
	cat     *catalog.Catalog
	citadel catalog.Citadel
	mode    catalog.Mode
	tuning  Tuning
}

func NewCalculator(cat *catalog.Catalog, citadel catalog.Citadel, mode catalog.Mode, tuning Tuning) *Calculator {
	return &Calculator{cat: cat, citadel: citadel, mode: mode, tuning: tuning}
}

// Target is the hit point pool slot must deplete, 0 when the table is short.
func (c *Calculator) Target(slot int) float64 {
	t := c.citadel.Targets(c.mode)
	if slot < 0 || slot >= len(t) {
		return 0
	}
	return t[slot]
}

// EffectiveBonus adds catalog overrides to the entered bonus.
func (c *Calculator) EffectiveBonus(slot int, troop string, bonusPct float64) float64 {
	name, ok := c.cat.Resolve(troop)
	if !ok {
		return bonusPct
	}
	b := bonusPct + c.cat.AdditionalBonus(name)
	if slot == 1 && c.mode == catalog.ModeWith {
		b += c.cat.PhoenixExtra(name)
	}
	return b
}

// FirstStrikeLosses is the number of first striker units killed by the citadel's opening strike.
func (c *Calculator) FirstStrikeLosses(troop string, healthPct float64) int {
	effHealth := c.cat.Stat(troop, catalog.FieldHealth) * (1 + healthPct/100)
	if !(effHealth > 0) {
		return 0
	}
	return floorCount(c.citadel.FirstStrikeDamage / effHealth)
}

// SlotRequirement is floor(target / damage per unit) with the slot specific adjustments.
// losses only applies to the first striker.
func (c *Calculator) SlotRequirement(slot int, troop string, bonusPct, target float64, losses int) int {
	name, ok := c.cat.Resolve(troop)
	if !ok {
		return 0
	}
	bonus := c.EffectiveBonus(slot, name, bonusPct)
	dpu := c.cat.Stat(name, catalog.FieldStrength) * (1 + bonus/100)
	if !(dpu > 0) {
		return 0
	}
	required := floorCount(target / dpu)
	if slot == 0 {
		required += max(losses, 0) + c.tuning.FirstStrikeMargin
	}
	if slot >= firstCleanupSlot && isMonsterHunter(name) {
		required -= c.tuning.MonsterHunterDiscount
	}
	return max(required, 0)
}

// WallRequirement rounds up: the wall must fall.
func (c *Calculator) WallRequirement(troop string, bonusPct float64) int {
	name, ok := c.cat.Resolve(troop)
	if !ok {
		return 0
	}
	bonus := bonusPct + c.cat.Stat(name, catalog.FieldFortBonus)
	mult := c.tuning.SiegeMultiplier
	if mult <= 0 {
		mult = DefaultTuning().SiegeMultiplier
	}
	dpu := c.cat.Stat(name, catalog.FieldStrength) * (1 + bonus/100) * mult
	if !(dpu > 0) {
		return 0
	}
	return max(ceilCount(c.citadel.WallHP/dpu)+c.tuning.WallMargin, 0)
}

func isMonsterHunter(name string) bool {
	return catalog.Normalize(name) == catalog.Normalize(MonsterHunter)
}
