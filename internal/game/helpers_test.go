package game

import (
	"testing"

	"github.com/pefman/citadel-calc/internal/catalog"
)

func ptr(v float64) *float64 { return &v }

// testCatalog is a small synthetic catalog with round numbers.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	d := catalog.Data{
		Troops: []catalog.Troop{
			{Name: "Wyvern", Strength: 1000, Health: 1000},
			{Name: "Ariel", Strength: 100, Health: 100, FortBonus: ptr(50)},
			{Name: "Epic Monster Hunter", Strength: 1000, Health: 100},
			{Name: "Fire Phoenix II", Strength: 100, Health: 300},
			{Name: "Fire Phoenix I", Strength: 80, Health: 240},
			{Name: "Manticore", Strength: 100, Health: 300},
			{Name: "Corax II", Strength: 250, Health: 150},
			{Name: "Corax I", Strength: 200, Health: 200},
			{Name: "Royal Lion I", Strength: 150, Health: 150},
			{Name: "Griffin VII", Strength: 500, Health: 500},
			{Name: "Griffin V", Strength: 300, Health: 100},
			{Name: "Catapult V", Strength: 15, Health: 50},
			{Name: "Vulture V", Strength: 100, Health: 200},
		},
		Citadels: map[string]catalog.Citadel{
			"1": {
				WallHP:            1000,
				FirstStrikeDamage: 600,
				NormalTargets:     []float64{5000, 9000, 1000, 9000, 2000, 1000, 1000, 1000, 1000},
				M8M9Targets:       []float64{6000, 9000, 1000, 9000, 2000, 1000, 1000, 1000, 1000},
			},
			"2": {
				WallHP:            2000,
				FirstStrikeDamage: 0,
				NormalTargets:     []float64{100, 100, 100, 100, 100, 100, 100, 100, 100},
				M8M9Targets:       []float64{100, 100, 100, 100, 100, 100, 100, 100, 100},
			},
		},
		AdditionalBonusNormal: map[string]float64{"Wyvern": 10},
		PhoenixExtra:          map[string]float64{"Fire Phoenix II": 50},
	}
	d.FirstStrikerAllowed.Without = []string{"Vulture V", "corax i", "Griffin VII", "Royla Lion I", "Ariel", "Nobody"}
	d.FirstStrikerAllowed.With = []string{"Corax I", "Corax II", "Griffin VII"}
	c, err := catalog.New(d)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
