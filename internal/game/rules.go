package game

import (
	"errors"
	"fmt"

	"github.com/pefman/citadel-calc/internal/catalog"
)

var troopsWithAdvanced = []string{
	"Wyvern", "Warregal", "Jago", "Ariel", "Epic Monster Hunter", "Fire Phoenix II",
	"Fire Phoenix I", "Manticore", "Corax II", "Royal Lion II", "Corax I",
	"Royal Lion I", "Griffin VII", "Josephine II", "Griffin VI", "Josephine I",
	"Griffin V", "Siege Ballistae VII", "Siege Ballistae VI", "Catapult V",
	"Vulture VII", "Catapult IV", "Vulture VI", "Vulture V",
}

var troopsWithoutAdvanced = []string{
	"Wyvern", "Warregal", "Jago", "Ariel", "Epic Monster Hunter", "Manticore",
	"Corax I", "Royal Lion I", "Griffin VII", "Josephine II", "Griffin VI",
	"Josephine I", "Griffin V", "Siege Ballistae VII", "Siege Ballistae VI",
	"Punisher I", "Duelist I", "Catapult V", "Vulture VII", "Heavy Halberdier VII",
	"Heavy Knight VII", "Catapult IV", "Vulture VI", "Heavy Halberdier VI",
	"Heavy Knight VI", "Spearmen V", "Swordsmen V", "Vulture V",
}

var wallBreachers = []string{
	"Ariel", "Josephine II", "Josephine I", "Siege Ballistae VII",
	"Siege Ballistae VI", "Catapult V", "Catapult IV",
}

var secondStrikers = map[catalog.Mode][]string{
	catalog.ModeWithout: {"Manticore"},
	catalog.ModeWith:    {"Fire Phoenix II", "Fire Phoenix I"},
}

// MonsterHunter may only fight from the first cleanup wave onwards.
const MonsterHunter = "Epic Monster Hunter"

// firstCleanupSlot is the lowest slot index MonsterHunter may occupy.
const firstCleanupSlot = 3

// ErrSelectionOrder rejects picks for later waves while the first striker is empty.
var ErrSelectionOrder = errors.New("must select first striker first")

// OrderViolation is raised when a later wave would outclass the first striker.
type OrderViolation struct {
	Slot           int     `json:"slot"`
	Label          string  `json:"label"`
	Picked         string  `json:"picked"`
	PickedStrength float64 `json:"picked_strength"`
	PickedHealth   float64 `json:"picked_health"`
	First          string  `json:"first"`
	FirstStrength  float64 `json:"first_strength"`
	FirstHealth    float64 `json:"first_health"`
}

func (e *OrderViolation) Error() string {
	return fmt.Sprintf("%s (%s) has higher BASE strength (%s) and BASE health (%s) than your First striker (%s, %s / %s).\n\nChoose a stronger First striker troops!!",
		e.Label, e.Picked, formatInt(e.PickedStrength), formatInt(e.PickedHealth),
		e.First, formatInt(e.FirstStrength), formatInt(e.FirstHealth))
}

// PlacementError reports a troop that is not offered at a slot, or at the
// wall breacher position when Wall is set.
type PlacementError struct {
	Slot  int    `json:"slot"`
	Wall  bool   `json:"wall,omitempty"`
	Troop string `json:"troop"`
}

func (e *PlacementError) Error() string {
	if e.Wall {
		return fmt.Sprintf("%s cannot breach the wall", e.Troop)
	}
	if e.Slot < 0 || e.Slot >= catalog.SlotCount {
		return fmt.Sprintf("slot %d does not exist", e.Slot)
	}
	return fmt.Sprintf("%s cannot be placed as %s", e.Troop, SlotLabels[e.Slot])
}

// Pools are the eligible troop lists for one mode.
type Pools struct {
	All     []string `json:"all"`
	Wall    []string `json:"wall"`
	NonWall []string `json:"non_wall"`
	First   []string `json:"first"`
	Second  []string `json:"second"`
}

// Rules answers eligibility questions for one catalog and mode.
type Rules struct {
	Pools
	cat        *catalog.Catalog
	mode       catalog.Mode
	firstRaw   map[string]bool // resolved allow-list before the non-wall filter
	wallSet    map[string]bool
	nonWallSet map[string]bool
	firstSet   map[string]bool
	secondSet  map[string]bool
}

func NewRules(cat *catalog.Catalog, mode catalog.Mode) *Rules {
	raw := troopsWithoutAdvanced
	if mode == catalog.ModeWith {
		raw = troopsWithAdvanced
	}
	r := &Rules{cat: cat, mode: mode}
	r.All = resolvePool(cat, raw)
	r.Wall = resolvePool(cat, wallBreachers)
	r.wallSet = toSet(r.Wall)
	r.NonWall = []string{}
	for _, n := range r.All {
		if !r.wallSet[n] {
			r.NonWall = append(r.NonWall, n)
		}
	}
	r.nonWallSet = toSet(r.NonWall)
	allowed := resolvePool(cat, cat.FirstStrikerAllowed(mode))
	r.firstRaw = toSet(allowed)
	r.First = []string{}
	for _, n := range allowed {
		if r.nonWallSet[n] {
			r.First = append(r.First, n)
		}
	}
	r.firstSet = toSet(r.First)
	r.Second = resolvePool(cat, secondStrikers[mode])
	r.secondSet = toSet(r.Second)
	return r
}

func (r *Rules) Mode() catalog.Mode { return r.mode }

// resolvePool canonicalizes raw names, dropping unknown ones and repeats.
func resolvePool(cat *catalog.Catalog, raw []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, n := range raw {
		c, ok := cat.Resolve(n)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func toSet(names []string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

func (r *Rules) canon(name string) string {
	c, _ := r.cat.Resolve(name)
	return c
}

// Normalize repairs an assignment so every slot holds an eligible, unique troop.
func (r *Rules) Normalize(a Assignment) Assignment {
	var next Assignment
	for i, n := range a {
		next[i] = r.canon(n)
	}
	if !r.secondSet[next[1]] {
		next[1] = ""
		if len(r.Second) > 0 {
			next[1] = r.Second[0]
		}
	}
	if next[0] != "" && !r.firstSet[next[0]] {
		next[0] = ""
	}
	for i := 2; i < len(next); i++ {
		if next[i] != "" && !r.nonWallSet[next[i]] {
			next[i] = ""
		}
	}
	seen := map[string]bool{}
	for i, n := range next {
		if n == "" {
			continue
		}
		if seen[n] {
			next[i] = ""
			continue
		}
		seen[n] = true
	}
	for i, n := range next {
		if i != 1 && r.wallSet[n] {
			next[i] = ""
		}
	}
	return next
}

func (r *Rules) basePool(slot int) []string {
	switch slot {
	case 0:
		return r.First
	case 1:
		return r.Second
	}
	return r.NonWall
}

func (r *Rules) forbidden(slot int, name string) bool {
	if slot < firstCleanupSlot && isMonsterHunter(name) {
		return true
	}
	if slot == 2 && r.secondSet[name] {
		return true
	}
	return false
}

// OptionsFor lists the choices for slot given the other slots of a.
// Every slot except the second striker starts with the empty choice.
func (r *Rules) OptionsFor(slot int, a Assignment) []string {
	if slot < 0 || slot >= catalog.SlotCount {
		return nil
	}
	taken := map[string]bool{}
	for i, n := range a {
		if i == slot {
			continue
		}
		if c := r.canon(n); c != "" {
			taken[c] = true
		}
	}
	out := []string{}
	if slot != 1 {
		out = append(out, "")
	}
	for _, n := range r.basePool(slot) {
		if taken[n] || r.forbidden(slot, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// WallOptions lists the wall breacher choices.
func (r *Rules) WallOptions() []string {
	return append([]string(nil), r.Wall...)
}

// IsFirstStrikerCaliber reports whether name is on the mode's first striker allow-list.
func (r *Rules) IsFirstStrikerCaliber(name string) bool {
	return r.firstRaw[r.canon(name)]
}

// Check validates placing troop at slot. Clearing a slot is always allowed.
// The result is nil, ErrSelectionOrder, a *PlacementError or an *OrderViolation.
func (r *Rules) Check(slot int, troop string, a Assignment) error {
	if slot < 0 || slot >= catalog.SlotCount {
		return &PlacementError{Slot: slot, Troop: troop}
	}
	picked := r.canon(troop)
	if picked == "" {
		return nil
	}
	first := r.canon(a[0])
	if slot >= 1 && first == "" {
		return ErrSelectionOrder
	}
	offered := false
	for _, n := range r.OptionsFor(slot, a) {
		if n != "" && n == picked {
			offered = true
			break
		}
	}
	if !offered {
		return &PlacementError{Slot: slot, Troop: picked}
	}
	if slot >= 2 && r.IsFirstStrikerCaliber(picked) {
		fs := r.cat.Stat(first, catalog.FieldBaseStrength)
		fh := r.cat.Stat(first, catalog.FieldBaseHealth)
		ps := r.cat.Stat(picked, catalog.FieldBaseStrength)
		ph := r.cat.Stat(picked, catalog.FieldBaseHealth)
		if ps > fs || ph > fh {
			return &OrderViolation{
				Slot: slot, Label: SlotLabels[slot],
				Picked: picked, PickedStrength: ps, PickedHealth: ph,
				First: first, FirstStrength: fs, FirstHealth: fh,
			}
		}
	}
	return nil
}
