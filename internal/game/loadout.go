package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pefman/citadel-calc/internal/catalog"
)

var ErrUnknownCitadel = errors.New("unknown citadel level")

// Loadout owns the calculator form: selections, bonus inputs and the last result.
// Every mutation re-normalizes the selection and drops the cached result.
// A Loadout is not safe for concurrent use.
type Loadout struct {
	cat         *catalog.Catalog
	tuning      Tuning
	level       string
	mode        catalog.Mode
	rules       *Rules
	troops      Assignment
	bonus       [catalog.SlotCount]string
	groups      map[BonusGroup]string
	firstHealth string
	wallTroop   string
	wallBonus   string
	report      *Report
}

func NewLoadout(cat *catalog.Catalog, tuning Tuning) *Loadout {
	l := &Loadout{cat: cat, tuning: tuning, mode: catalog.ModeWithout}
	if levels := cat.CitadelLevels(); len(levels) > 0 {
		l.level = levels[0]
	}
	l.rules = NewRules(cat, l.mode)
	l.resetSelections()
	return l
}

func (l *Loadout) Mode() catalog.Mode { return l.mode }
func (l *Loadout) Citadel() string    { return l.level }
func (l *Loadout) Rules() *Rules      { return l.rules }
func (l *Loadout) Troops() Assignment { return l.troops }

// Bonus returns the raw bonus input of slot.
func (l *Loadout) Bonus(slot int) string {
	if slot < 0 || slot >= catalog.SlotCount {
		return ""
	}
	return l.bonus[slot]
}

func (l *Loadout) Wall() (troop, bonus string) { return l.wallTroop, l.wallBonus }

// resetSelections keeps only the second striker, which normalization re-validates.
func (l *Loadout) resetSelections() {
	l.troops = l.rules.Normalize(Assignment{1: l.troops[1]})
	l.bonus = [catalog.SlotCount]string{}
	l.groups = map[BonusGroup]string{}
	l.firstHealth = ""
	l.wallTroop = ""
	if len(l.rules.Wall) > 0 {
		l.wallTroop = l.rules.Wall[0]
	}
	l.wallBonus = ""
	l.report = nil
}

// Reset clears the form back to defaults.
func (l *Loadout) Reset() {
	l.resetSelections()
}

func (l *Loadout) SetMode(m catalog.Mode) {
	if m == l.mode {
		return
	}
	l.mode = m
	l.rules = NewRules(l.cat, m)
	l.resetSelections()
}

func (l *Loadout) SetCitadel(level string) error {
	level = strings.TrimSpace(level)
	if _, ok := l.cat.Citadel(level); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCitadel, level)
	}
	if level == l.level {
		return nil
	}
	l.level = level
	l.resetSelections()
	return nil
}

// SetTroop assigns troop to slot. Unknown names clear the slot.
// On an *OrderViolation the slot is cleared and the error returned; any other
// error leaves the loadout untouched.
func (l *Loadout) SetTroop(slot int, troop string) error {
	picked, _ := l.cat.Resolve(troop)
	err := l.rules.Check(slot, picked, l.troops)
	var ov *OrderViolation
	if errors.As(err, &ov) {
		l.troops[slot] = ""
		l.bonus[slot] = ""
		l.troops = l.rules.Normalize(l.troops)
		l.report = nil
		return err
	}
	if err != nil {
		return err
	}
	l.troops[slot] = picked
	l.troops = l.rules.Normalize(l.troops)
	if g, ok := ClassifyBonusGroup(l.troops[slot]); ok {
		l.bonus[slot] = l.groups[g]
	} else if l.troops[slot] == "" {
		l.bonus[slot] = ""
	}
	for i, n := range l.troops {
		if n == "" {
			l.bonus[i] = ""
		}
	}
	l.report = nil
	return nil
}

// Check reports whether SetTroop(slot, troop) would be accepted, without changing anything.
func (l *Loadout) Check(slot int, troop string) error {
	picked, _ := l.cat.Resolve(troop)
	return l.rules.Check(slot, picked, l.troops)
}

// SetBonus stores the bonus input for slot. A grouped troop shares the value
// with every slot holding the same group.
func (l *Loadout) SetBonus(slot int, raw string) error {
	if slot < 0 || slot >= catalog.SlotCount {
		return &PlacementError{Slot: slot}
	}
	if g, ok := ClassifyBonusGroup(l.troops[slot]); ok {
		l.groups[g] = raw
		for i, n := range l.troops {
			if gi, ok := ClassifyBonusGroup(n); ok && gi == g {
				l.bonus[i] = raw
			}
		}
	} else {
		l.bonus[slot] = raw
	}
	l.report = nil
	return nil
}

func (l *Loadout) SetFirstHealthBonus(raw string) {
	l.firstHealth = raw
	l.report = nil
}

// SetWallTroop picks the wall breacher; an empty name selects the default.
func (l *Loadout) SetWallTroop(troop string) error {
	if troop == "" {
		l.wallTroop = ""
		if len(l.rules.Wall) > 0 {
			l.wallTroop = l.rules.Wall[0]
		}
		l.report = nil
		return nil
	}
	name, ok := l.cat.Resolve(troop)
	if !ok || !l.rules.wallSet[name] {
		return &PlacementError{Slot: -1, Wall: true, Troop: troop}
	}
	l.wallTroop = name
	l.report = nil
	return nil
}

func (l *Loadout) SetWallBonus(raw string) {
	l.wallBonus = raw
	l.report = nil
}

// Result returns the cached report of the last Calculate, if still valid.
func (l *Loadout) Result() (*Report, bool) {
	return l.report, l.report != nil
}

// Calculate computes every slot, the wall breacher and the shopping list.
func (l *Loadout) Calculate() *Report {
	rep := &Report{
		Mode:         l.mode,
		ModeLabel:    l.mode.Label(),
		Citadel:      l.level,
		CitadelLabel: CitadelLabel(l.level),
		Slots:        make([]SlotResult, 0, catalog.SlotCount),
		Lines:        []Line{},
		Logs:         []string{},
	}
	cit, ok := l.cat.Citadel(l.level)
	if !ok {
		rep.Logs = append(rep.Logs, fmt.Sprintf("No data for citadel %q", l.level))
		l.report = rep
		return rep
	}
	calc := NewCalculator(l.cat, cit, l.mode, l.tuning)

	if l.troops[0] != "" {
		rep.FirstStrikeLosses = calc.FirstStrikeLosses(l.troops[0], ParsePercent(l.firstHealth))
		rep.Logs = append(rep.Logs, fmt.Sprintf("Citadel first strike %s dmg kills %d %s",
			formatInt(cit.FirstStrikeDamage), rep.FirstStrikeLosses, l.troops[0]))
	}

	slotLines := make([]Line, 0, catalog.SlotCount)
	for i, troop := range l.troops {
		bonus := ParsePercent(l.bonus[i])
		res := SlotResult{
			Index:          i,
			Label:          SlotLabels[i],
			Troop:          troop,
			EffectiveBonus: calc.EffectiveBonus(i, troop, bonus),
			Target:         calc.Target(i),
		}
		if troop != "" {
			res.Required = calc.SlotRequirement(i, troop, bonus, res.Target, rep.FirstStrikeLosses)
			rep.Logs = append(rep.Logs, fmt.Sprintf("%s: %s +%g%% vs %s HP -> %d",
				res.Label, troop, res.EffectiveBonus, formatInt(res.Target), res.Required))
		}
		rep.Slots = append(rep.Slots, res)
		slotLines = append(slotLines, Line{Troop: troop, Required: res.Required})
	}

	wallBonus := ParsePercent(l.wallBonus)
	rep.Wall = WallResult{
		Troop:          l.wallTroop,
		EffectiveBonus: wallBonus + l.cat.Stat(l.wallTroop, catalog.FieldFortBonus),
		WallHP:         cit.WallHP,
	}
	if l.wallTroop != "" {
		rep.Wall.Required = calc.WallRequirement(l.wallTroop, wallBonus)
		rep.Logs = append(rep.Logs, fmt.Sprintf("Wall: %s +%g%% vs %s HP -> %d",
			l.wallTroop, rep.Wall.EffectiveBonus, formatInt(cit.WallHP), rep.Wall.Required))
	}

	rep.Lines = Aggregate(Line{Troop: rep.Wall.Troop, Required: rep.Wall.Required}, slotLines)
	rep.Text = FormatLines(rep.Lines)
	l.report = rep
	return rep
}
