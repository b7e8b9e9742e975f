package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// Mode selects the troop pool, target table and bonus overrides.
type Mode string

const (
	ModeWithout Mode = "WITHOUT"
	ModeWith    Mode = "WITH"
)

// ParseMode accepts WITH/WITHOUT in any case. Anything else is the default (WITHOUT).
func ParseMode(s string) (Mode, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ModeWith):
		return ModeWith, true
	case string(ModeWithout):
		return ModeWithout, true
	}
	return ModeWithout, false
}

func (m Mode) Label() string {
	if m == ModeWith {
		return "With M8/M9"
	}
	return "Without M8/M9"
}

// Troop is one catalog record. Optional fields are nil when the data omits them.
type Troop struct {
	Name         string   `json:"name"`
	Strength     float64  `json:"strength"`
	Health       float64  `json:"health"`
	BaseStrength *float64 `json:"baseStrength,omitempty"`
	BaseHealth   *float64 `json:"baseHealth,omitempty"`
	FortBonus    *float64 `json:"fortBonus,omitempty"`
}

// Citadel holds the per-level target profile. Both target tables have one entry per attack slot.
type Citadel struct {
	WallHP            float64   `json:"wallHP"`
	FirstStrikeDamage float64   `json:"firstStrikeDamage"`
	NormalTargets     []float64 `json:"normalTargets"`
	M8M9Targets       []float64 `json:"m8m9Targets"`
}

// Targets returns the hit point table for mode.
func (c Citadel) Targets(mode Mode) []float64 {
	if mode == ModeWith {
		return c.M8M9Targets
	}
	return c.NormalTargets
}

// Field names a numeric troop stat.
type Field string

const (
	FieldStrength     Field = "strength"
	FieldHealth       Field = "health"
	FieldBaseStrength Field = "baseStrength"
	FieldBaseHealth   Field = "baseHealth"
	FieldFortBonus    Field = "fortBonus"
)

// known misspellings kept so older selections still resolve
var aliases = map[string]string{
	"Royla Lion I": "Royal Lion I",
	"Warregel":     "Warregal",
}

// Catalog is the read-only game data. Build one with Load, LoadFile or Default.
type Catalog struct {
	troops          []Troop
	byName          map[string]Troop
	canon           map[string]string // normalized -> canonical
	citadels        map[string]Citadel
	levels          []string
	additionalBonus map[string]float64
	phoenixExtra    map[string]float64
	firstAllowed    map[Mode][]string
}

// Normalize lowercases, trims and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func build(d Data) *Catalog {
	c := &Catalog{
		byName:          map[string]Troop{},
		canon:           map[string]string{},
		citadels:        map[string]Citadel{},
		additionalBonus: map[string]float64{},
		phoenixExtra:    map[string]float64{},
		firstAllowed:    map[Mode][]string{},
	}
	for _, t := range d.Troops {
		if strings.TrimSpace(t.Name) == "" {
			continue
		}
		if _, dup := c.byName[t.Name]; dup {
			continue
		}
		c.troops = append(c.troops, t)
		c.byName[t.Name] = t
		c.canon[Normalize(t.Name)] = t.Name
	}
	for typo, name := range aliases {
		if target, ok := c.canon[Normalize(name)]; ok {
			c.canon[Normalize(typo)] = target
		}
	}
	for lvl, cit := range d.Citadels {
		c.citadels[lvl] = cit
		c.levels = append(c.levels, lvl)
	}
	sort.Slice(c.levels, func(i, j int) bool { return levelLess(c.levels[i], c.levels[j]) })
	for k, v := range d.AdditionalBonusNormal {
		c.additionalBonus[k] = v
	}
	for k, v := range d.PhoenixExtra {
		c.phoenixExtra[k] = v
	}
	c.firstAllowed[ModeWith] = append([]string(nil), d.FirstStrikerAllowed.With...)
	c.firstAllowed[ModeWithout] = append([]string(nil), d.FirstStrikerAllowed.Without...)
	return c
}

func levelLess(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a < b
}

// Resolve maps a loosely typed name to its canonical catalog spelling.
func (c *Catalog) Resolve(raw string) (string, bool) {
	n := Normalize(raw)
	if n == "" {
		return "", false
	}
	name, ok := c.canon[n]
	return name, ok
}

// Troop looks a troop up by any resolvable spelling.
func (c *Catalog) Troop(name string) (Troop, bool) {
	canon, ok := c.Resolve(name)
	if !ok {
		return Troop{}, false
	}
	t, ok := c.byName[canon]
	return t, ok
}

// Troops returns the catalog troops in data order.
func (c *Catalog) Troops() []Troop {
	return append([]Troop(nil), c.troops...)
}

// Stat returns a numeric stat, 0 when the troop or the field is missing.
// Base stats fall back to the plain stat when the data has no separate value.
func (c *Catalog) Stat(name string, f Field) float64 {
	t, ok := c.Troop(name)
	if !ok {
		return 0
	}
	switch f {
	case FieldStrength:
		return t.Strength
	case FieldHealth:
		return t.Health
	case FieldBaseStrength:
		if t.BaseStrength != nil {
			return *t.BaseStrength
		}
		return t.Strength
	case FieldBaseHealth:
		if t.BaseHealth != nil {
			return *t.BaseHealth
		}
		return t.Health
	case FieldFortBonus:
		if t.FortBonus != nil {
			return *t.FortBonus
		}
	}
	return 0
}

func (c *Catalog) Citadel(level string) (Citadel, bool) {
	cit, ok := c.citadels[strings.TrimSpace(level)]
	return cit, ok
}

// CitadelLevels lists the level keys in ascending numeric order.
func (c *Catalog) CitadelLevels() []string {
	return append([]string(nil), c.levels...)
}

// AdditionalBonus is the flat bonus keyed by exact canonical name.
func (c *Catalog) AdditionalBonus(name string) float64 { return c.additionalBonus[name] }

// PhoenixExtra is the second-striker bonus used only in WITH mode.
func (c *Catalog) PhoenixExtra(name string) float64 { return c.phoenixExtra[name] }

// FirstStrikerAllowed returns the raw first striker allow-list for mode.
func (c *Catalog) FirstStrikerAllowed(mode Mode) []string {
	return append([]string(nil), c.firstAllowed[mode]...)
}

// Unordered returns catalog troops that do not appear in order, in data order.
func (c *Catalog) Unordered(order []string) []string {
	seen := map[string]bool{}
	for _, n := range order {
		seen[Normalize(n)] = true
	}
	var out []string
	for _, t := range c.troops {
		if !seen[Normalize(t.Name)] {
			out = append(out, t.Name)
		}
	}
	return out
}
