// Package scenario wires the template, catalog, and seed inputs
// through the zone filler to produce a fully populated map, the
// Output record spec.md §6 names.
package scenario

import (
	"context"
	"fmt"

	"github.com/bartonsun/D2RSG/pkg/catalog"
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/objects"
	"github.com/bartonsun/D2RSG/pkg/rng"
	"github.com/bartonsun/D2RSG/pkg/template"
	"github.com/bartonsun/D2RSG/pkg/zone"
)

// Scenario is the complete generated map: per-tile content, every
// placed object, road tiles, and the per-zone bookkeeping the filler
// produced along the way.
type Scenario struct {
	Width, Height int
	Tiles         [][]grid.Tile
	Objects       map[grid.ObjectID]objects.Object
	Roads         []grid.Position
	Zones         map[grid.ZoneID]*zone.Zone
	Seed          uint64
	Report        *ValidationReport
}

// Generate runs the full (template, catalog, seed) -> Scenario
// pipeline: validate inputs, lay out zone rectangles, carve the
// declared inter-zone connections, then fill every zone in template
// order. The same three inputs always produce a byte-identical
// Scenario. Context cancellation stops generation between zones and
// returns the first resulting error.
func Generate(ctx context.Context, tmpl *template.Template, cat *catalog.Catalog, seed uint64) (*Scenario, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: invalid template: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: invalid catalog: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// One continuous PRNG sequence for the entire run: layout, connection
	// carving, and every zone fill in template order all draw from it in
	// turn, per spec.md §5 ("the PRNG is process-wide for a run... all
	// algorithms must be strictly sequential in a fixed order"). Nothing
	// here mints an independent substream.
	configHash := tmpl.Hash()
	genRNG := rng.NewRNG(seed, "scenario", configHash)
	mapSize := tmpl.Settings.SizeMin
	if tmpl.Settings.SizeMax > tmpl.Settings.SizeMin {
		mapSize = genRNG.IntRange(tmpl.Settings.SizeMin, tmpl.Settings.SizeMax)
	}

	tm := grid.NewTileMap(mapSize, mapSize)
	cells := layoutZones(mapSize, tmpl.Content.Zones)

	carveConnections(tm, cells, tmpl.Content.Connections, genRNG)

	store := objects.NewStore()
	zones := make(map[grid.ZoneID]*zone.Zone, len(tmpl.Content.Zones))
	for _, zd := range tmpl.Content.Zones {
		cell := cells[zd.ID]
		z := zone.NewZone(tm, grid.ZoneID(zd.ID), zd.Type, zd.Owner, cell.tiles, cell.center)
		zones[z.ID] = z
	}

	for _, zd := range tmpl.Content.Zones {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		z := zones[grid.ZoneID(zd.ID)]
		trace := zone.NewTrace()
		filler := zone.NewFiller(tm, store, cat, genRNG, trace)

		borderType, gapChance := dominantBorder(zd.ID, tmpl.Content.Connections)
		if err := filler.Fill(z, &zd, borderType, gapChance, tmpl.Settings.Forest); err != nil {
			return nil, fmt.Errorf("scenario: filling zone %q: %w\n%s", zd.ID, err, trace)
		}
	}

	report := Validate(tm, zones, store)
	if !report.Passed {
		return nil, fmt.Errorf("scenario: %w: %v", zone.ErrInternal, report.Errors)
	}

	return &Scenario{
		Width:   mapSize,
		Height:  mapSize,
		Tiles:   snapshotTiles(tm, mapSize),
		Objects: snapshotObjects(store),
		Roads:   snapshotRoads(tm, mapSize),
		Zones:   zones,
		Seed:    seed,
		Report:  report,
	}, nil
}

func snapshotTiles(tm *grid.TileMap, size int) [][]grid.Tile {
	tiles := make([][]grid.Tile, size)
	for y := 0; y < size; y++ {
		row := make([]grid.Tile, size)
		for x := 0; x < size; x++ {
			row[x] = tm.Tile(grid.Position{X: x, Y: y})
		}
		tiles[y] = row
	}
	return tiles
}

func snapshotRoads(tm *grid.TileMap, size int) []grid.Position {
	var roads []grid.Position
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pos := grid.Position{X: x, Y: y}
			if tm.IsRoad(pos) {
				roads = append(roads, pos)
			}
		}
	}
	return roads
}

func snapshotObjects(store *objects.Store) map[grid.ObjectID]objects.Object {
	all := store.All()
	out := make(map[grid.ObjectID]objects.Object, len(all))
	for _, o := range all {
		out[o.ID] = *o
	}
	return out
}
