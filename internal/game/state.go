package game

import (
	"fmt"

	"github.com/pefman/citadel-calc/internal/catalog"
)

// SlotState is one attack slot as the form shows it.
type SlotState struct {
	Index   int        `json:"index"`
	Label   string     `json:"label"`
	Troop   string     `json:"troop"`
	Bonus   string     `json:"bonus"`
	Group   BonusGroup `json:"group,omitempty"`
	Locked  bool       `json:"locked"`
	Options []string   `json:"options"`
}

type WallState struct {
	Troop   string   `json:"troop"`
	Bonus   string   `json:"bonus"`
	Options []string `json:"options"`
}

// State is a snapshot of the whole form.
type State struct {
	Citadel          string                `json:"citadel"`
	CitadelLabel     string                `json:"citadel_label"`
	Levels           []string              `json:"levels"`
	Mode             catalog.Mode          `json:"mode"`
	ModeLabel        string                `json:"mode_label"`
	Slots            []SlotState           `json:"slots"`
	FirstHealthBonus string                `json:"first_health_bonus"`
	Wall             WallState             `json:"wall"`
	Groups           map[BonusGroup]string `json:"groups"`
	Result           *Report               `json:"result,omitempty"`
}

func (l *Loadout) State() State {
	st := State{
		Citadel:          l.level,
		CitadelLabel:     CitadelLabel(l.level),
		Levels:           l.cat.CitadelLevels(),
		Mode:             l.mode,
		ModeLabel:        l.mode.Label(),
		Slots:            make([]SlotState, 0, catalog.SlotCount),
		FirstHealthBonus: l.firstHealth,
		Wall:             WallState{Troop: l.wallTroop, Bonus: l.wallBonus, Options: l.rules.WallOptions()},
		Groups:           map[BonusGroup]string{},
		Result:           l.report,
	}
	for g, v := range l.groups {
		st.Groups[g] = v
	}
	for i, troop := range l.troops {
		s := SlotState{
			Index:   i,
			Label:   SlotLabels[i],
			Troop:   troop,
			Bonus:   l.bonus[i],
			Locked:  i >= 1 && l.troops[0] == "",
			Options: l.rules.OptionsFor(i, l.troops),
		}
		if g, ok := ClassifyBonusGroup(troop); ok {
			s.Group = g
		}
		st.Slots = append(st.Slots, s)
	}
	return st
}

// SlotInput is a troop and its raw bonus as submitted by a client or a loadout file.
type SlotInput struct {
	Troop string  `json:"troop" yaml:"troop"`
	Bonus Percent `json:"bonus" yaml:"bonus"`
}

// Input is a complete form submission.
type Input struct {
	Citadel          string      `json:"citadel" yaml:"citadel"`
	Mode             string      `json:"mode" yaml:"mode"`
	Slots            []SlotInput `json:"slots" yaml:"slots"`
	FirstHealthBonus Percent     `json:"first_health_bonus" yaml:"first_health_bonus"`
	Wall             SlotInput   `json:"wall" yaml:"wall"`
}

// Apply replays in through the same commands a player would issue, in slot order.
// Rejected picks are collected and the rest of the input still applies.
func (l *Loadout) Apply(in Input) []error {
	var errs []error
	if in.Mode != "" {
		m, ok := catalog.ParseMode(in.Mode)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown mode %q", in.Mode))
		} else {
			l.SetMode(m)
		}
	}
	if in.Citadel != "" {
		if err := l.SetCitadel(in.Citadel); err != nil {
			errs = append(errs, err)
		}
	}
	slots := in.Slots
	if len(slots) > catalog.SlotCount {
		errs = append(errs, fmt.Errorf("%d slots given, only %d attack slots exist", len(slots), catalog.SlotCount))
		slots = slots[:catalog.SlotCount]
	}
	for i, s := range slots {
		if s.Troop == "" {
			continue
		}
		if err := l.SetTroop(i, s.Troop); err != nil {
			errs = append(errs, err)
		}
	}
	for i, s := range slots {
		if s.Bonus != "" {
			if err := l.SetBonus(i, string(s.Bonus)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if in.FirstHealthBonus != "" {
		l.SetFirstHealthBonus(string(in.FirstHealthBonus))
	}
	if in.Wall.Troop != "" {
		if err := l.SetWallTroop(in.Wall.Troop); err != nil {
			errs = append(errs, err)
		}
	}
	if in.Wall.Bonus != "" {
		l.SetWallBonus(string(in.Wall.Bonus))
	}
	return errs
}
