package sketch

import "fmt"

// Level selects how finely curves are tessellated. Lower levels are
// smoother and produce more triangles.
type Level int

const (
	VeryHigh Level = 1
	High     Level = 3
	Medium   Level = 5
	Low      Level = 7
	VeryLow  Level = 9
)

// Factor returns the maximum chord error in pixels for the level.
// Non-positive levels use Medium.
func (l Level) Factor() float64 {
	if l <= 0 {
		l = Medium
	}
	return float64(l) * 0.1
}

// String returns the level name.
func (l Level) String() string {
	switch l {
	case VeryHigh:
		return "very-high"
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	case VeryLow:
		return "very-low"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel parses a level name as returned by String.
func ParseLevel(s string) (Level, error) {
	for _, l := range []Level{VeryHigh, High, Medium, Low, VeryLow} {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("sketch: unknown quality level %q", s)
}
