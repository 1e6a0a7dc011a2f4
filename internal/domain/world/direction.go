package world

import "strings"

type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

var CardinalDirections = []Direction{North, South, East, West}

// ParseDirection finds the first cardinal direction mentioned anywhere in
// the given text. Free-text model output rarely answers with a bare word,
// so substring containment is intentional.
func ParseDirection(text string) (Direction, bool) {
	lower := strings.ToLower(text)
	for _, d := range CardinalDirections {
		if strings.Contains(lower, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Opposite returns the reverse cardinal direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}

func ContainsDirection(list []Direction, d Direction) bool {
	for _, c := range list {
		if c == d {
			return true
		}
	}
	return false
}
