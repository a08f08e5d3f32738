package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/objects"
	"github.com/bartonsun/D2RSG/pkg/scenario"
)

// SVGOptions configures SVG visualization export.
type SVGOptions struct {
	TileSize    int    // Pixel size of one map tile (default: 12)
	ShowRoads   bool   // Overlay road tiles
	ShowObjects bool   // Draw placed objects on top of terrain
	ShowLabels  bool   // Label objects with their kind
	ShowLegend  bool   // Show legend explaining colors/symbols
	ShowStats   bool   // Show scenario statistics
	Margin      int    // Canvas margin in pixels (default: 40)
	Title       string // Optional title for the visualization
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		TileSize:    12,
		ShowRoads:   true,
		ShowObjects: true,
		ShowLabels:  false,
		ShowLegend:  true,
		ShowStats:   true,
		Margin:      40,
		Title:       "Scenario Map",
	}
}

// ExportSVG generates an SVG visualization of a generated scenario: one
// colored rect per tile (terrain/ground), road tiles overlaid, and
// placed objects drawn as markers on top.
func ExportSVG(s *scenario.Scenario, opts SVGOptions) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}
	if opts.TileSize <= 0 {
		opts.TileSize = 12
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	headerHeight := 0
	if opts.Title != "" || opts.ShowStats {
		headerHeight = 50
	}
	legendWidth := 0
	if opts.ShowLegend {
		legendWidth = 160
	}

	width := s.Width*opts.TileSize + 2*opts.Margin + legendWidth
	height := s.Height*opts.TileSize + 2*opts.Margin + headerHeight

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	originX, originY := opts.Margin, opts.Margin+headerHeight

	drawTerrain(canvas, s, opts, originX, originY)
	if opts.ShowRoads {
		drawRoads(canvas, s, opts, originX, originY)
	}
	if opts.ShowObjects {
		drawObjects(canvas, s, opts, originX, originY)
	}
	if opts.ShowLegend {
		drawLegend(canvas, opts, originX+s.Width*opts.TileSize+20, originY)
	}
	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, s, opts, width)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile generates an SVG visualization and saves it to a file.
// The file is created with 0644 permissions (readable by all, writable by owner).
func SaveSVGToFile(s *scenario.Scenario, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(s, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// drawTerrain renders every tile as a filled rect colored by ground type,
// tinted by terrain owner when the ground is plain.
func drawTerrain(canvas *svg.SVG, s *scenario.Scenario, opts SVGOptions, originX, originY int) {
	ts := opts.TileSize
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			tile := s.Tiles[y][x]
			canvas.Rect(originX+x*ts, originY+y*ts, ts, ts,
				fmt.Sprintf("fill:%s;stroke:#0f0f1a;stroke-width:0.5", groundColor(tile)))
		}
	}
}

// groundColor returns the fill color for a tile's ground, tinted by
// terrain owner for plain tiles; water, mountain and forest tiles each
// get one fixed color.
func groundColor(t grid.Tile) string {
	switch t.Ground {
	case grid.GroundWater:
		return "#1e5a8a"
	case grid.GroundMountain:
		return "#6b6b6b"
	case grid.GroundForest:
		return "#1f5c3a"
	default:
		return terrainColor(t.Terrain)
	}
}

func terrainColor(terrain grid.Terrain) string {
	switch terrain {
	case grid.TerrainHuman:
		return "#7ca653"
	case grid.TerrainUndead:
		return "#4b3b52"
	case grid.TerrainHeretic:
		return "#8a3a3a"
	case grid.TerrainDwarf:
		return "#8a7a4a"
	case grid.TerrainElf:
		return "#3a7a5a"
	default:
		return "#4a6b3a"
	}
}

// drawRoads overlays a thin lighter square on every road tile.
func drawRoads(canvas *svg.SVG, s *scenario.Scenario, opts SVGOptions, originX, originY int) {
	ts := opts.TileSize
	for _, pos := range s.Roads {
		cx := originX + pos.X*ts + ts/2
		cy := originY + pos.Y*ts + ts/2
		canvas.Rect(cx-ts/4, cy-ts/4, ts/2, ts/2, "fill:#c9a96a;opacity:0.85")
	}
}

// drawObjects renders every placed object as a marker colored by its
// Kind, centered on its footprint.
func drawObjects(canvas *svg.SVG, s *scenario.Scenario, opts SVGOptions, originX, originY int) {
	ts := opts.TileSize
	ids := make([]grid.ObjectID, 0, len(s.Objects))
	for id := range s.Objects {
		ids = append(ids, id)
	}
	sortObjectIDs(ids)

	for _, id := range ids {
		o := s.Objects[id]
		cx := originX + (o.Elem.Pos.X+o.Elem.Width/2)*ts + ts/2
		cy := originY + (o.Elem.Pos.Y+o.Elem.Height/2)*ts + ts/2
		radius := ts / 2
		if radius < 3 {
			radius = 3
		}
		canvas.Circle(cx, cy, radius, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", objectColor(o.Kind)))

		if opts.ShowLabels {
			canvas.Text(cx, cy+radius+10, o.Kind.String(),
				"text-anchor:middle;font-size:9px;font-family:monospace;fill:#e2e8f0")
		}
	}
}

func sortObjectIDs(ids []grid.ObjectID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

// objectColor returns the marker color for an object kind.
func objectColor(k objects.Kind) string {
	switch k {
	case objects.KindFortification:
		return "#48bb78"
	case objects.KindStack:
		return "#f56565"
	case objects.KindSite:
		return "#9f7aea"
	case objects.KindRuin:
		return "#718096"
	case objects.KindCrystal:
		return "#4299e1"
	case objects.KindBag:
		return "#ffd700"
	case objects.KindLandmark:
		return "#ed8936"
	default:
		return "#cbd5e0"
	}
}

// drawLegend renders a legend explaining object marker colors.
func drawLegend(canvas *svg.SVG, opts SVGOptions, legendX, legendY int) {
	canvas.Rect(legendX-10, legendY-15, 160, 200,
		"fill:#2d3748;stroke:#4a5568;stroke-width:1;opacity:0.95;rx:5")
	canvas.Text(legendX, legendY, "Objects", "font-size:14px;font-weight:bold;fill:#e2e8f0")
	legendY += 25

	entries := []struct {
		name string
		kind objects.Kind
	}{
		{"Fortification", objects.KindFortification},
		{"Stack", objects.KindStack},
		{"Site", objects.KindSite},
		{"Ruin", objects.KindRuin},
		{"Crystal", objects.KindCrystal},
		{"Bag", objects.KindBag},
		{"Landmark", objects.KindLandmark},
	}
	for _, e := range entries {
		canvas.Circle(legendX+8, legendY, 7, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", objectColor(e.kind)))
		canvas.Text(legendX+25, legendY+4, e.name, "font-size:11px;fill:#cbd5e0")
		legendY += 20
	}
}

// drawHeader renders title and statistics at the top of the visualization.
func drawHeader(canvas *svg.SVG, s *scenario.Scenario, opts SVGOptions, width int) {
	headerY := 22
	if opts.Title != "" {
		canvas.Text(width/2, headerY, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		headerY += 22
	}
	if opts.ShowStats {
		stats := fmt.Sprintf("Zones: %d | Objects: %d | Roads: %d | Seed: %d",
			len(s.Zones), len(s.Objects), len(s.Roads), s.Seed)
		canvas.Text(width/2, headerY, stats,
			"text-anchor:middle;font-size:11px;fill:#a0aec0;font-family:monospace")
	}
}
