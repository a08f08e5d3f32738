package grid

import (
	"fmt"
	"math"
)

// Position is an integer (x, y) coordinate on the grid.
type Position struct {
	X, Y int
}

// MarshalText renders a Position as "x,y", letting it serve as a JSON
// object key (map[Position]T otherwise has no valid JSON encoding).
func (p Position) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d", p.X, p.Y)), nil
}

// UnmarshalText parses the "x,y" form MarshalText produces.
func (p *Position) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d,%d", &p.X, &p.Y)
	if err != nil {
		return fmt.Errorf("grid: invalid position %q: %w", text, err)
	}
	return nil
}

// Add returns the sum of two positions.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the difference of two positions.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// SquaredDistance returns the squared Euclidean distance between two
// positions, computed in 32-bit IEEE-754 to match the reference
// generator's tie-breaking behavior (spec §9 "Deterministic floats").
func (p Position) SquaredDistance(o Position) float32 {
	dx := float32(p.X - o.X)
	dy := float32(p.Y - o.Y)
	return dx*dx + dy*dy
}

// ObjectID uniquely identifies a scenario object within the map. Zero is
// never a valid minted id.
type ObjectID uint64

// ZoneID uniquely identifies a zone within the template/scenario.
type ZoneID string

// VPosition is a normalized (fx, fy) position in [0, 1) used for zone
// centers, independent of final map size.
type VPosition struct {
	FX, FY float32
}

// SetCenter wraps both coordinates modulo 1 so that any finite input
// (including negative values) yields a center with both components in
// [0, 1).
func (v *VPosition) SetCenter(fx, fy float32) {
	v.FX = wrapUnit(fx)
	v.FY = wrapUnit(fy)
}

// wrapUnit reduces x modulo 1 into [0, 1), wrapping negatives upward.
func wrapUnit(x float32) float32 {
	if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
		return 0
	}
	f := x - float32(math.Floor(float64(x)))
	// Guard against floating point edge cases landing exactly at 1.
	if f >= 1 {
		f = 0
	}
	if f < 0 {
		f = 0
	}
	return f
}

// ToPosition converts a normalized center to an absolute tile position
// given the enclosing map's width and height.
func (v VPosition) ToPosition(width, height int) Position {
	return Position{
		X: int(v.FX * float32(width)),
		Y: int(v.FY * float32(height)),
	}
}
