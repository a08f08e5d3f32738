package zone

import (
	"sort"

	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/template"
)

// Zone is the mutable per-zone bookkeeping a Filler threads through
// every stage: its tile set, the carving state derived from it, and
// the ids of every object placed inside it so far.
type Zone struct {
	ID         grid.ZoneID
	Type       template.ZoneType
	OwnerID    string
	GapChance  int
	Center     grid.Position
	Pos        grid.Position // alias of Center; kept distinct to mirror the reference zone/pos split

	Tiles         map[grid.Position]bool // the zone's full area
	PossibleTiles map[grid.Position]bool
	FreePaths     []grid.Position
	RoadNodes     []grid.Position
	Roads         []RoadSegment

	RequiredObjects []grid.ObjectID
	CloseObjects    []grid.ObjectID

	NeutralCities []grid.ObjectID
	Merchants     []grid.ObjectID
	Mages         []grid.ObjectID
	Mercenaries   []grid.ObjectID
	Trainers      []grid.ObjectID
	Markets       []grid.ObjectID
	Ruins         []grid.ObjectID
	Stacks        []grid.ObjectID
	Bags          []grid.ObjectID
	Decorations   []grid.ObjectID

	Mines map[template.MineKind]int

	CapitalID grid.ObjectID
}

// RoadSegment is a completed road link recorded against a zone for
// export/debug purposes.
type RoadSegment struct {
	Source, Dest grid.Position
	Path         []grid.Position
}

// NewZone builds an empty Zone over the given tile set, claiming every
// tile in tm for this zone id.
func NewZone(tm *grid.TileMap, id grid.ZoneID, zoneType template.ZoneType, owner string, tiles []grid.Position, center grid.Position) *Zone {
	z := &Zone{
		ID:            id,
		Type:          zoneType,
		OwnerID:       owner,
		Center:        center,
		Pos:           center,
		Tiles:         make(map[grid.Position]bool, len(tiles)),
		PossibleTiles: make(map[grid.Position]bool, len(tiles)),
		Mines:         make(map[template.MineKind]int),
	}
	for _, t := range tiles {
		z.Tiles[t] = true
		z.PossibleTiles[t] = true
		tm.SetZoneID(t, id)
	}
	return z
}

// SortedTiles returns the zone's tile set as a deterministically
// ordered slice (row-major), for any stage that must scan the zone in
// a reproducible order.
func (z *Zone) SortedTiles() []grid.Position {
	out := make([]grid.Position, 0, len(z.Tiles))
	for p := range z.Tiles {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

// SortedPossibleTiles returns PossibleTiles as a deterministically
// ordered slice.
func (z *Zone) SortedPossibleTiles() []grid.Position {
	out := make([]grid.Position, 0, len(z.PossibleTiles))
	for p := range z.PossibleTiles {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []grid.Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}

// dropPossible removes pos from PossibleTiles, matching the reference
// generator's "remove from possibleTiles" bookkeeping whenever a tile
// transitions to Free, Blocked, or Used.
func (z *Zone) dropPossible(pos grid.Position) {
	delete(z.PossibleTiles, pos)
}

func (z *Zone) addRoadNode(pos grid.Position) {
	z.RoadNodes = append(z.RoadNodes, pos)
}
