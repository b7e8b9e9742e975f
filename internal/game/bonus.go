package game

import (
	"strings"

	"github.com/pefman/citadel-calc/internal/catalog"
)

// BonusGroup ties troop variants whose strength bonus is entered once.
type BonusGroup string

const (
	GroupCorax     BonusGroup = "CORAX"
	GroupPhoenix   BonusGroup = "PHOENIX"
	GroupSpear     BonusGroup = "PHH_SPEAR"
	GroupSword     BonusGroup = "DUEL_HK_SW"
	GroupVulture   BonusGroup = "VULTURE"
	GroupRoyalLion BonusGroup = "ROYAL_LION"
	GroupGriffin   BonusGroup = "GRIFFIN"
)

var BonusGroups = []BonusGroup{
	GroupCorax, GroupPhoenix, GroupSpear, GroupSword, GroupVulture, GroupRoyalLion, GroupGriffin,
}

var groupExact = map[string]BonusGroup{
	"jago":     GroupRoyalLion,
	"warregal": GroupGriffin,
	"warregel": GroupGriffin,
}

var groupPrefixes = []struct {
	prefix string
	group  BonusGroup
}{
	{"corax", GroupCorax},
	{"fire phoenix", GroupPhoenix},
	{"vulture", GroupVulture},
	{"royal lion", GroupRoyalLion},
	{"griffin", GroupGriffin},
	{"punisher", GroupSpear},
	{"heavy halberdier", GroupSpear},
	{"spearmen", GroupSpear},
	{"duelist", GroupSword},
	{"heavy knight", GroupSword},
	{"swordsmen", GroupSword},
}

// ClassifyBonusGroup returns the group of a troop name, false when it has none.
func ClassifyBonusGroup(name string) (BonusGroup, bool) {
	n := catalog.Normalize(name)
	if n == "" {
		return "", false
	}
	if g, ok := groupExact[n]; ok {
		return g, true
	}
	for _, p := range groupPrefixes {
		if strings.HasPrefix(n, p.prefix) {
			return p.group, true
		}
	}
	return "", false
}
