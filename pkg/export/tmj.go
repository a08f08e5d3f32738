package export

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/scenario"
)

// TMJ Format Types
// Based on Tiled Map Editor JSON specification (TMJ 1.10)
// Reference: https://doc.mapeditor.org/en/stable/reference/json-map-format/

// TMJMap represents the root TMJ map structure.
type TMJMap struct {
	Type             string        `json:"type"`
	Version          string        `json:"version"`
	TiledVersion     string        `json:"tiledversion"`
	Width            int           `json:"width"`
	Height           int           `json:"height"`
	TileWidth        int           `json:"tilewidth"`
	TileHeight       int           `json:"tileheight"`
	Orientation      string        `json:"orientation"`
	RenderOrder      string        `json:"renderorder"`
	Infinite         bool          `json:"infinite"`
	NextLayerID      int           `json:"nextlayerid"`
	NextObjectID     int           `json:"nextobjectid"`
	BackgroundColor  *string       `json:"backgroundcolor,omitempty"`
	Class            string        `json:"class,omitempty"`
	CompressionLevel int           `json:"compressionlevel"`
	Layers           []TMJLayer    `json:"layers"`
	Tilesets         []TMJTileset  `json:"tilesets"`
	Properties       []TMJProperty `json:"properties,omitempty"`
}

// TMJLayer represents any layer type (tile, object, image, group).
type TMJLayer struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Type       string        `json:"type"` // "tilelayer" or "objectgroup"
	Visible    bool          `json:"visible"`
	Opacity    float64       `json:"opacity"`
	X          int           `json:"x"`
	Y          int           `json:"y"`
	Width      int           `json:"width,omitempty"`
	Height     int           `json:"height,omitempty"`
	OffsetX    int           `json:"offsetx,omitempty"`
	OffsetY    int           `json:"offsety,omitempty"`
	Class      string        `json:"class,omitempty"`
	Properties []TMJProperty `json:"properties,omitempty"`

	// Tile layer specific
	Data        interface{} `json:"data,omitempty"`        // []uint32 or string (base64)
	Encoding    string      `json:"encoding,omitempty"`    // "csv" or "base64"
	Compression string      `json:"compression,omitempty"` // "" or "gzip"

	// Object layer specific
	DrawOrder string      `json:"draworder,omitempty"`
	Objects   []TMJObject `json:"objects,omitempty"`
}

// TMJObject represents a placed scenario object as a Tiled point entity.
type TMJObject struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Type       string        `json:"type,omitempty"`
	Class      string        `json:"class,omitempty"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Visible    bool          `json:"visible"`
	Properties []TMJProperty `json:"properties,omitempty"`
}

// TMJTileset references a collection of tiles.
type TMJTileset struct {
	FirstGID    uint32        `json:"firstgid"`
	Name        string        `json:"name,omitempty"`
	TileWidth   int           `json:"tilewidth,omitempty"`
	TileHeight  int           `json:"tileheight,omitempty"`
	TileCount   int           `json:"tilecount,omitempty"`
	Columns     int           `json:"columns,omitempty"`
	Image       string        `json:"image,omitempty"`
	ImageWidth  int           `json:"imagewidth,omitempty"`
	ImageHeight int           `json:"imageheight,omitempty"`
	Properties  []TMJProperty `json:"properties,omitempty"`
}

// TMJProperty represents a custom property.
type TMJProperty struct {
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// groundGID maps a tile's Ground (and forest TreeImage, when set) to a
// local tileset tile ID. Plain ground is GID 1, each Ground variant
// after it claims the next ID, and forest tiles with a nonzero
// TreeImage are offset past the base ground IDs so distinct tree art
// still round-trips.
const groundTileCount = 16

func groundGID(t grid.Tile) uint32 {
	switch t.Ground {
	case grid.GroundForest:
		if t.TreeImage > 0 && t.TreeImage < groundTileCount-4 {
			return uint32(4 + t.TreeImage)
		}
		return 2
	case grid.GroundWater:
		return 3
	case grid.GroundMountain:
		return 4
	default:
		return 1
	}
}

// Builder Functions

// NewTMJMap creates a new TMJ map with default settings.
func NewTMJMap(width, height, tileWidth, tileHeight int) *TMJMap {
	return &TMJMap{
		Type:             "map",
		Version:          "1.10",
		TiledVersion:     "1.10.2",
		Width:            width,
		Height:           height,
		TileWidth:        tileWidth,
		TileHeight:       tileHeight,
		Orientation:      "orthogonal",
		RenderOrder:      "right-down",
		Infinite:         false,
		NextLayerID:      1,
		NextObjectID:     1,
		CompressionLevel: -1,
		Layers:           []TMJLayer{},
		Tilesets:         []TMJTileset{},
		Properties:       []TMJProperty{},
	}
}

// AddTileLayer adds a tile layer to the map.
func (m *TMJMap) AddTileLayer(name string, data []uint32) *TMJLayer {
	layer := TMJLayer{
		ID:       m.NextLayerID,
		Name:     name,
		Type:     "tilelayer",
		Visible:  true,
		Opacity:  1.0,
		Width:    m.Width,
		Height:   m.Height,
		Data:     data,
		Encoding: "csv",
	}
	m.NextLayerID++
	m.Layers = append(m.Layers, layer)
	return &m.Layers[len(m.Layers)-1]
}

// AddObjectLayer adds an object layer to the map.
func (m *TMJMap) AddObjectLayer(name string) *TMJLayer {
	layer := TMJLayer{
		ID:        m.NextLayerID,
		Name:      name,
		Type:      "objectgroup",
		Visible:   true,
		Opacity:   1.0,
		DrawOrder: "topdown",
		Objects:   []TMJObject{},
	}
	m.NextLayerID++
	m.Layers = append(m.Layers, layer)
	return &m.Layers[len(m.Layers)-1]
}

// AddObject adds an object to an object layer.
func (l *TMJLayer) AddObject(obj TMJObject, m *TMJMap) {
	if l.Type != "objectgroup" {
		return
	}
	obj.ID = m.NextObjectID
	m.NextObjectID++
	l.Objects = append(l.Objects, obj)
}

// AddTileset adds a tileset reference to the map.
func (m *TMJMap) AddTileset(name, imagePath string, tileWidth, tileHeight, tileCount, columns int) *TMJTileset {
	firstGID := uint32(1)
	if len(m.Tilesets) > 0 {
		last := m.Tilesets[len(m.Tilesets)-1]
		firstGID = last.FirstGID + uint32(last.TileCount)
	}

	imageWidth := columns * tileWidth
	imageHeight := (tileCount / columns) * tileHeight
	if tileCount%columns != 0 {
		imageHeight += tileHeight
	}

	tileset := TMJTileset{
		FirstGID:    firstGID,
		Name:        name,
		TileWidth:   tileWidth,
		TileHeight:  tileHeight,
		TileCount:   tileCount,
		Columns:     columns,
		Image:       imagePath,
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
	}
	m.Tilesets = append(m.Tilesets, tileset)
	return &m.Tilesets[len(m.Tilesets)-1]
}

// Compression Support

// CompressLayerData compresses tile data with gzip and encodes as base64.
func (l *TMJLayer) CompressLayerData() error {
	if l.Type != "tilelayer" {
		return fmt.Errorf("cannot compress non-tile layer")
	}

	data, ok := l.Data.([]uint32)
	if !ok {
		return fmt.Errorf("layer data is not []uint32")
	}

	buf := new(bytes.Buffer)
	for _, gid := range data {
		buf.WriteByte(byte(gid))
		buf.WriteByte(byte(gid >> 8))
		buf.WriteByte(byte(gid >> 16))
		buf.WriteByte(byte(gid >> 24))
	}

	var compressed bytes.Buffer
	gzipWriter := gzip.NewWriter(&compressed)
	if _, err := gzipWriter.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := gzipWriter.Close(); err != nil {
		return err
	}

	l.Data = base64.StdEncoding.EncodeToString(compressed.Bytes())
	l.Encoding = "base64"
	l.Compression = "gzip"
	return nil
}

// Export Functions

// ExportTMJ converts a generated scenario to Tiled TMJ format: one
// "terrain" tile layer keyed by ground type, a "roads" tile layer flagging
// road tiles, and an "objects" entity layer with every placed object.
func ExportTMJ(s *scenario.Scenario, compress bool) (*TMJMap, error) {
	if s == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}

	const tileSize = 32
	tmjMap := NewTMJMap(s.Width, s.Height, tileSize, tileSize)
	tmjMap.Class = "scenario"
	tmjMap.AddTileset("terrain", "tilesets/terrain.png", tileSize, tileSize, groundTileCount, 4)

	terrainData := make([]uint32, 0, s.Width*s.Height)
	roadData := make([]uint32, 0, s.Width*s.Height)
	roadSet := make(map[grid.Position]bool, len(s.Roads))
	for _, pos := range s.Roads {
		roadSet[pos] = true
	}
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			tile := s.Tiles[y][x]
			terrainData = append(terrainData, groundGID(tile))
			if roadSet[grid.Position{X: x, Y: y}] {
				roadData = append(roadData, 1)
			} else {
				roadData = append(roadData, 0)
			}
		}
	}

	terrainLayer := tmjMap.AddTileLayer("terrain", terrainData)
	terrainLayer.Class = "terrain"
	roadLayer := tmjMap.AddTileLayer("roads", roadData)
	roadLayer.Class = "roads"

	if compress {
		if err := terrainLayer.CompressLayerData(); err != nil {
			return nil, fmt.Errorf("failed to compress terrain layer: %w", err)
		}
		if err := roadLayer.CompressLayerData(); err != nil {
			return nil, fmt.Errorf("failed to compress roads layer: %w", err)
		}
	}

	objLayer := tmjMap.AddObjectLayer("objects")
	objLayer.Class = "objects"
	ids := make([]grid.ObjectID, 0, len(s.Objects))
	for id := range s.Objects {
		ids = append(ids, id)
	}
	sortObjectIDs(ids)
	for _, id := range ids {
		o := s.Objects[id]
		tmjObj := TMJObject{
			Name:    o.Kind.String(),
			Type:    o.Kind.String(),
			Class:   o.Kind.String(),
			X:       float64(o.Elem.Pos.X * tileSize),
			Y:       float64(o.Elem.Pos.Y * tileSize),
			Width:   float64(o.Elem.Width * tileSize),
			Height:  float64(o.Elem.Height * tileSize),
			Visible: true,
			Properties: []TMJProperty{
				{Name: "zoneId", Type: "string", Value: string(o.ZoneID)},
			},
		}
		objLayer.AddObject(tmjObj, tmjMap)
	}

	tmjMap.Properties = append(tmjMap.Properties,
		TMJProperty{Name: "generator", Type: "string", Value: "d2rsg"},
		TMJProperty{Name: "seed", Type: "int", Value: int(s.Seed)},
	)

	return tmjMap, nil
}

// MarshalTMJ serializes a TMJ map to JSON with indentation.
func MarshalTMJ(tmjMap *TMJMap) ([]byte, error) {
	return json.MarshalIndent(tmjMap, "", "  ")
}

// MarshalTMJCompact serializes a TMJ map to compact JSON.
func MarshalTMJCompact(tmjMap *TMJMap) ([]byte, error) {
	return json.Marshal(tmjMap)
}

// SaveTMJToFile exports a TMJ map to a file.
func SaveTMJToFile(tmjMap *TMJMap, filepath string) error {
	data, err := MarshalTMJ(tmjMap)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// EncodeTMJ writes a TMJ map to a writer with indentation.
func EncodeTMJ(tmjMap *TMJMap, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tmjMap)
}

// Convenience Functions

// ExportScenarioToTMJ exports a scenario to TMJ format with options.
func ExportScenarioToTMJ(s *scenario.Scenario, compress bool) ([]byte, error) {
	tmjMap, err := ExportTMJ(s, compress)
	if err != nil {
		return nil, err
	}
	return MarshalTMJ(tmjMap)
}

// SaveScenarioToTMJFile exports a scenario directly to a TMJ file.
func SaveScenarioToTMJFile(s *scenario.Scenario, filepath string, compress bool) error {
	tmjMap, err := ExportTMJ(s, compress)
	if err != nil {
		return err
	}
	return SaveTMJToFile(tmjMap, filepath)
}
