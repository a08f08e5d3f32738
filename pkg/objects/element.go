package objects

import "github.com/bartonsun/D2RSG/pkg/grid"

// GapMask marks footprint offsets that stay walkable ("soft") instead of
// becoming Used when a fortification is placed, forming an approach
// corridor through its own footprint. Each bit names one of the
// footprint's four corners.
type GapMask uint8

const (
	GapTopLeft GapMask = 1 << iota
	GapTopRight
	GapBottomLeft
	GapBottomRight
)

// MapElement is the rectangular on-map footprint shared by every
// scenario object: a size, a position once placed, and a computed
// entrance. Entrance defaults to the bottom-center tile of the
// footprint unless EntranceOverride is set.
type MapElement struct {
	Width, Height int

	// Pos is the top-left corner once the element has been placed.
	Pos grid.Position

	// EntranceOverride, if non-nil, replaces the default bottom-center
	// entrance with an offset relative to Pos.
	EntranceOverride *grid.Position

	// Gap selects footprint corners that remain walkable rather than
	// Used, per spec.md's gapMask (fortifications only).
	Gap GapMask
}

// Footprint returns every absolute tile position covered by the
// element's size at its current Pos.
func (m *MapElement) Footprint() []grid.Position {
	out := make([]grid.Position, 0, m.Width*m.Height)
	for dy := 0; dy < m.Height; dy++ {
		for dx := 0; dx < m.Width; dx++ {
			out = append(out, grid.Position{X: m.Pos.X + dx, Y: m.Pos.Y + dy})
		}
	}
	return out
}

// gapOffsets returns the relative offsets exempted from blocking by Gap.
func (m *MapElement) gapOffsets() map[grid.Position]bool {
	offsets := make(map[grid.Position]bool)
	if m.Width == 0 || m.Height == 0 {
		return offsets
	}
	if m.Gap&GapTopLeft != 0 {
		offsets[grid.Position{X: 0, Y: 0}] = true
	}
	if m.Gap&GapTopRight != 0 {
		offsets[grid.Position{X: m.Width - 1, Y: 0}] = true
	}
	if m.Gap&GapBottomLeft != 0 {
		offsets[grid.Position{X: 0, Y: m.Height - 1}] = true
	}
	if m.Gap&GapBottomRight != 0 {
		offsets[grid.Position{X: m.Width - 1, Y: m.Height - 1}] = true
	}
	return offsets
}

// BlockedOffsets returns the absolute tile positions that must become
// Used when the element is placed: its full footprint minus any tiles
// exempted by Gap.
func (m *MapElement) BlockedOffsets() []grid.Position {
	gaps := m.gapOffsets()
	out := make([]grid.Position, 0, m.Width*m.Height)
	for dy := 0; dy < m.Height; dy++ {
		for dx := 0; dx < m.Width; dx++ {
			if gaps[grid.Position{X: dx, Y: dy}] {
				continue
			}
			out = append(out, grid.Position{X: m.Pos.X + dx, Y: m.Pos.Y + dy})
		}
	}
	return out
}

// Entrance returns the absolute entrance tile: the bottom-center tile of
// the footprint, i.e. Pos + (floor(Width/2), Height-1), unless
// EntranceOverride is set.
func (m *MapElement) Entrance() grid.Position {
	if m.EntranceOverride != nil {
		return m.Pos.Add(*m.EntranceOverride)
	}
	return m.Pos.Add(grid.Position{X: m.Width / 2, Y: m.Height - 1})
}

// EntranceOffsets returns the 8-neighborhood around the entrance used by
// the placement search to test whether the entrance is reachable.
// Callers must still check each returned position against the map's
// bounds; an offset may legitimately fall outside the grid.
func (m *MapElement) EntranceOffsets() []grid.Position {
	e := m.Entrance()
	offsets := make([]grid.Position, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			offsets = append(offsets, e.Add(grid.Position{X: dx, Y: dy}))
		}
	}
	return offsets
}

// TouchesBorder reports whether any footprint tile of the element placed
// at pos would fall on the map border.
func (m *MapElement) TouchesBorder(tm *grid.TileMap, pos grid.Position) bool {
	for dy := 0; dy < m.Height; dy++ {
		for dx := 0; dx < m.Width; dx++ {
			p := grid.Position{X: pos.X + dx, Y: pos.Y + dy}
			if !tm.IsInTheMap(p) || tm.IsAtTheBorder(p) {
				return true
			}
		}
	}
	return false
}
