package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pefman/citadel-calc/internal/catalog"
)

// DisplayOrder is the order of the shopping list.
var DisplayOrder = []string{
	"Wyvern", "Warregal", "Jago", "Ariel", "Epic Monster Hunter", "Fire Phoenix II",
	"Fire Phoenix I", "Manticore", "Corax II", "Royal Lion II", "Corax I",
	"Royal Lion I", "Griffin VII", "Josephine II", "Griffin VI", "Josephine I",
	"Griffin V", "Siege Ballistae VII", "Siege Ballistae VI", "Punisher I",
	"Duelist I", "Catapult V", "Vulture VII", "Heavy Halberdier VII",
	"Heavy Knight VII", "Catapult IV", "Vulture VI", "Heavy Halberdier VI",
	"Heavy Knight VI", "Spearmen V", "Swordsmen V", "Vulture V",
}

// Aggregate sums requirements per troop and sorts them by DisplayOrder.
// Troops missing from DisplayOrder follow in alphabetical order.
func Aggregate(wall Line, slots []Line) []Line {
	counts := map[string]int{}
	names := map[string]string{}
	add := func(l Line) {
		k := catalog.Normalize(l.Troop)
		if k == "" || l.Required <= 0 {
			return
		}
		if _, ok := names[k]; !ok {
			names[k] = l.Troop
		}
		counts[k] += l.Required
	}
	add(wall)
	for _, l := range slots {
		add(l)
	}

	out := make([]Line, 0, len(counts))
	for _, name := range DisplayOrder {
		k := catalog.Normalize(name)
		if n, ok := counts[k]; ok {
			out = append(out, Line{Troop: name, Required: n})
			delete(counts, k)
		}
	}
	rest := make([]string, 0, len(counts))
	for k := range counts {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		out = append(out, Line{Troop: names[k], Required: counts[k]})
	}
	return out
}

// FormatLines renders the list as "<Troop> - <n>" lines for the clipboard.
func FormatLines(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s - %d", l.Troop, l.Required))
	}
	return strings.Join(parts, "\n")
}
