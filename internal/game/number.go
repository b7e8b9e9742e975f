package game

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParsePercent reads a bonus input such as "25" or " 12.5 ".
// Empty, malformed and non-finite input is 0.
func ParsePercent(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// Percent is a raw bonus input. It decodes from JSON strings and numbers alike.
type Percent string

func (p *Percent) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Percent(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		// null and other shapes count as empty input
		*p = ""
		return nil
	}
	*p = Percent(n.String())
	return nil
}

func (p Percent) Value() float64 { return ParsePercent(string(p)) }

// formatInt floors n and groups thousands, e.g. 12345.7 -> "12,345".
func formatInt(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "-"
	}
	s := strconv.FormatInt(int64(math.Floor(n)), 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// floorCount converts a non-negative quotient to a troop count.
func floorCount(x float64) int {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(x))
}

func ceilCount(x float64) int {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Ceil(x))
}
