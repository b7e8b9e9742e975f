package game

import (
	"testing"

	"github.com/pefman/citadel-calc/internal/catalog"
)

func newTestCalculator(t *testing.T, mode catalog.Mode, tuning Tuning) *Calculator {
	t.Helper()
	cat := testCatalog(t)
	cit, ok := cat.Citadel("1")
	if !ok {
		t.Fatal("citadel 1 missing")
	}
	return NewCalculator(cat, cit, mode, tuning)
}

func TestFirstStrikeScenario(t *testing.T) {
	c := newTestCalculator(t, catalog.ModeWithout, DefaultTuning())
	losses := c.FirstStrikeLosses("Vulture V", 0)
	if losses != 3 {
		t.Fatalf("FirstStrikeLosses = %d, want 3", losses)
	}
	if got := c.SlotRequirement(0, "Vulture V", 0, c.Target(0), losses); got != 53 {
		t.Errorf("first striker requirement = %d, want 53", got)
	}

	margin := DefaultTuning()
	margin.FirstStrikeMargin = 10
	c = newTestCalculator(t, catalog.ModeWithout, margin)
	if got := c.SlotRequirement(0, "Vulture V", 0, 5000, losses); got != 63 {
		t.Errorf("first striker requirement with margin = %d, want 63", got)
	}
}

func TestFirstStrikeLossesHealthBonus(t *testing.T) {
	c := newTestCalculator(t, catalog.ModeWithout, DefaultTuning())
	tests := []struct {
		troop string
		pct   float64
		want  int
	}{
		{"Vulture V", 0, 3},
		{"Vulture V", 50, 2},
		{"Vulture V", -100, 0},
		{"Vulture V", -300, 0},
		{"Nobody", 0, 0},
	}
	for _, tt := range tests {
		if got := c.FirstStrikeLosses(tt.troop, tt.pct); got != tt.want {
			t.Errorf("FirstStrikeLosses(%q, %v) = %d, want %d", tt.troop, tt.pct, got, tt.want)
		}
	}
}

func TestRoundingDirection(t *testing.T) {
	c := newTestCalculator(t, catalog.ModeWithout, DefaultTuning())
	// Griffin V deals 300 per unit.
	if got := c.SlotRequirement(2, "Griffin V", 0, 1000, 0); got != 3 {
		t.Errorf("attack slot = %d, want 3", got)
	}
	// Catapult V deals 15*20 = 300 per unit against the 1000 HP wall.
	if got := c.WallRequirement("Catapult V", 0); got != 4 {
		t.Errorf("wall = %d, want 4", got)
	}

	tuning := DefaultTuning()
	tuning.WallMargin = 2
	c = newTestCalculator(t, catalog.ModeWithout, tuning)
	if got := c.WallRequirement("Catapult V", 0); got != 6 {
		t.Errorf("wall with margin = %d, want 6", got)
	}
}

func TestWallFortBonus(t *testing.T) {
	c := newTestCalculator(t, catalog.ModeWithout, DefaultTuning())
	// Ariel: 100 * 1.5 (fort) * 20 = 3000 per unit
	if got := c.WallRequirement("Ariel", 0); got != 1 {
		t.Errorf("Ariel wall = %d, want 1", got)
	}
	// Bonus applies before the siege multiplier: 15 * 2 * 20 = 600 -> ceil(1000/600) = 2
	if got := c.WallRequirement("Catapult V", 100); got != 2 {
		t.Errorf("Catapult V +100%% = %d, want 2", got)
	}
}

func TestEffectiveBonus(t *testing.T) {
	with := newTestCalculator(t, catalog.ModeWith, DefaultTuning())
	without := newTestCalculator(t, catalog.ModeWithout, DefaultTuning())
	tests := []struct {
		name  string
		c     *Calculator
		slot  int
		troop string
		bonus float64
		want  float64
	}{
		{"catalog override", without, 3, "Wyvern", 5, 15},
		{"phoenix extra on slot 1", with, 1, "Fire Phoenix II", 0, 50},
		{"phoenix extra only on slot 1", with, 4, "Fire Phoenix II", 0, 0},
		{"phoenix extra only WITH", without, 1, "Fire Phoenix II", 0, 0},
		{"unknown troop", without, 3, "Nobody", 7, 7},
	}
	for _, tt := range tests {
		if got := tt.c.EffectiveBonus(tt.slot, tt.troop, tt.bonus); got != tt.want {
			t.Errorf("%s: EffectiveBonus = %v, want %v", tt.name, got, tt.want)
		}
	}
	// Fire Phoenix II at 150 per unit against 9000 HP.
	if got := with.SlotRequirement(1, "Fire Phoenix II", 0, with.Target(1), 0); got != 60 {
		t.Errorf("phoenix requirement = %d, want 60", got)
	}
}

func TestMonsterHunterDiscount(t *testing.T) {
	c := newTestCalculator(t, catalog.ModeWithout, DefaultTuning())
	tests := []struct {
		slot   int
		target float64
		want   int
	}{
		{3, 9000, 4},
		{4, 2000, 0},
		{8, 1000, 0},
	}
	for _, tt := range tests {
		if got := c.SlotRequirement(tt.slot, "Epic Monster Hunter", 0, tt.target, 0); got != tt.want {
			t.Errorf("SlotRequirement(%d, EMH, %v) = %d, want %d", tt.slot, tt.target, got, tt.want)
		}
	}

	noDiscount := DefaultTuning()
	noDiscount.MonsterHunterDiscount = 0
	c = newTestCalculator(t, catalog.ModeWithout, noDiscount)
	if got := c.SlotRequirement(3, "Epic Monster Hunter", 0, 9000, 0); got != 9 {
		t.Errorf("undiscounted = %d, want 9", got)
	}
}

func TestRequirementsNeverNegative(t *testing.T) {
	tuning := DefaultTuning()
	tuning.FirstStrikeMargin = -50
	tuning.WallMargin = -50
	c := newTestCalculator(t, catalog.ModeWithout, tuning)
	bonuses := []float64{-1000, -200, -100, -99.9, -50, 0, 50, 1e6}
	targets := []float64{-5000, -1, 0, 1, 1000, 1e9}
	troops := []string{"Vulture V", "Epic Monster Hunter", "Griffin V", "Nobody", ""}
	for _, troop := range troops {
		for _, b := range bonuses {
			if got := c.WallRequirement(troop, b); got < 0 {
				t.Errorf("WallRequirement(%q, %v) = %d", troop, b, got)
			}
			for _, target := range targets {
				for slot := 0; slot < catalog.SlotCount; slot++ {
					if got := c.SlotRequirement(slot, troop, b, target, -3); got < 0 {
						t.Errorf("SlotRequirement(%d, %q, %v, %v) = %d", slot, troop, b, target, got)
					}
				}
			}
		}
	}
}

func TestRequirementMonotonic(t *testing.T) {
	c := newTestCalculator(t, catalog.ModeWithout, DefaultTuning())
	for slot := 0; slot < catalog.SlotCount; slot++ {
		prevSlot, prevWall := -1, -1
		for b := -95.0; b <= 400; b += 7.5 {
			got := c.SlotRequirement(slot, "Griffin V", b, 12345, 3)
			if prevSlot >= 0 && got > prevSlot {
				t.Errorf("slot %d: bonus %v raised requirement %d -> %d", slot, b, prevSlot, got)
			}
			prevSlot = got
			wall := c.WallRequirement("Catapult V", b)
			if prevWall >= 0 && wall > prevWall {
				t.Errorf("wall: bonus %v raised requirement %d -> %d", b, prevWall, wall)
			}
			prevWall = wall
		}
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"  ", 0},
		{"25", 25},
		{" 12.5 ", 12.5},
		{"30%", 0},
		{"-10", -10},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tt := range tests {
		if got := ParsePercent(tt.in); got != tt.want {
			t.Errorf("ParsePercent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999.9, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1500, "-1,500"},
	}
	for _, tt := range tests {
		if got := formatInt(tt.in); got != tt.want {
			t.Errorf("formatInt(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
