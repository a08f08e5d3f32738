package export_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bartonsun/D2RSG/pkg/catalog"
	"github.com/bartonsun/D2RSG/pkg/export"
	"github.com/bartonsun/D2RSG/pkg/scenario"
	"github.com/bartonsun/D2RSG/pkg/template"
)

const exportTestCatalogYAML = `
units:
  - id: unit.swordsman
    value: 10
    reach: Adjacent
    subrace: neutral
leaders:
  - id: leader.knight
    value: 20
    subrace: neutral
    baseLeadership: 3
items:
  - id: item.sword
    type: Weapon
    value: 20
cityNames:
  names: [Ravenhold]
minValues:
  minLeaderValue: 15
  minSoldierValue: 5
`

const exportTestTemplateYAML = `
settings:
  name: Export Sample
  maxPlayers: 1
  sizeMin: 48
  sizeMax: 48
  roads: 50
  forest: 10
content:
  zones:
    - id: junction-1
      type: Junction
      owner: neutral
      stacks:
        - valueMin: 20
          valueMax: 40
          owner: neutral
          subrace: neutral
          required: true
`

func generateExportTestScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	tmpl, err := template.LoadTemplateFromBytes([]byte(exportTestTemplateYAML))
	if err != nil {
		t.Fatalf("LoadTemplateFromBytes: %v", err)
	}
	cat, err := catalog.LoadCatalogFromBytes([]byte(exportTestCatalogYAML))
	if err != nil {
		t.Fatalf("LoadCatalogFromBytes: %v", err)
	}
	s, err := scenario.Generate(context.Background(), tmpl, cat, 99)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return s
}

func TestExportJSON_RoundTrips(t *testing.T) {
	s := generateExportTestScenario(t)

	data, err := export.ExportJSON(s)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("ExportJSON output does not look indented")
	}

	var decoded scenario.Scenario
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding exported JSON: %v", err)
	}
	if decoded.Width != s.Width || decoded.Height != s.Height {
		t.Errorf("decoded dims = %dx%d, want %dx%d", decoded.Width, decoded.Height, s.Width, s.Height)
	}
}

func TestExportJSONCompact_SmallerThanIndented(t *testing.T) {
	s := generateExportTestScenario(t)

	compact, err := export.ExportJSONCompact(s)
	if err != nil {
		t.Fatalf("ExportJSONCompact: %v", err)
	}
	formatted, err := export.ExportJSON(s)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if len(compact) >= len(formatted) {
		t.Errorf("compact JSON (%d bytes) not smaller than formatted (%d bytes)", len(compact), len(formatted))
	}
}

func TestSaveJSONToFile(t *testing.T) {
	s := generateExportTestScenario(t)
	path := t.TempDir() + "/scenario.json"
	if err := export.SaveJSONToFile(s, path); err != nil {
		t.Fatalf("SaveJSONToFile: %v", err)
	}
}

func TestExportSVG_ProducesWellFormedDocument(t *testing.T) {
	s := generateExportTestScenario(t)

	data, err := export.ExportSVG(s, export.DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("ExportSVG output missing <svg>...</svg> wrapper")
	}
	if !strings.Contains(out, export.DefaultSVGOptions().Title) {
		t.Error("ExportSVG output missing configured title")
	}
}

func TestExportSVG_RejectsNilScenario(t *testing.T) {
	if _, err := export.ExportSVG(nil, export.DefaultSVGOptions()); err == nil {
		t.Fatal("ExportSVG(nil, ...) should fail")
	}
}

func TestExportTMJ_LayersMatchScenarioDimensions(t *testing.T) {
	s := generateExportTestScenario(t)

	tmj, err := export.ExportTMJ(s, false)
	if err != nil {
		t.Fatalf("ExportTMJ: %v", err)
	}
	if tmj.Width != s.Width || tmj.Height != s.Height {
		t.Errorf("TMJ dims = %dx%d, want %dx%d", tmj.Width, tmj.Height, s.Width, s.Height)
	}

	var terrainLayer, roadLayer, objLayer *export.TMJLayer
	for i := range tmj.Layers {
		switch tmj.Layers[i].Name {
		case "terrain":
			terrainLayer = &tmj.Layers[i]
		case "roads":
			roadLayer = &tmj.Layers[i]
		case "objects":
			objLayer = &tmj.Layers[i]
		}
	}
	if terrainLayer == nil || roadLayer == nil || objLayer == nil {
		t.Fatal("ExportTMJ did not produce terrain, roads, and objects layers")
	}

	data, ok := terrainLayer.Data.([]uint32)
	if !ok {
		t.Fatalf("terrain layer data is %T, want []uint32", terrainLayer.Data)
	}
	if len(data) != s.Width*s.Height {
		t.Errorf("terrain layer has %d cells, want %d", len(data), s.Width*s.Height)
	}
	if len(objLayer.Objects) != len(s.Objects) {
		t.Errorf("TMJ objects layer has %d entries, want %d", len(objLayer.Objects), len(s.Objects))
	}
}

func TestExportTMJ_CompressionShrinksTerrainLayer(t *testing.T) {
	s := generateExportTestScenario(t)

	plain, err := export.ExportTMJ(s, false)
	if err != nil {
		t.Fatalf("ExportTMJ(plain): %v", err)
	}
	compressed, err := export.ExportTMJ(s, true)
	if err != nil {
		t.Fatalf("ExportTMJ(compressed): %v", err)
	}

	plainJSON, _ := export.MarshalTMJCompact(plain)
	compressedJSON, _ := export.MarshalTMJCompact(compressed)
	if len(compressedJSON) >= len(plainJSON) {
		t.Errorf("compressed TMJ (%d bytes) not smaller than plain (%d bytes)", len(compressedJSON), len(plainJSON))
	}

	var terrainLayer *export.TMJLayer
	for i := range compressed.Layers {
		if compressed.Layers[i].Name == "terrain" {
			terrainLayer = &compressed.Layers[i]
		}
	}
	if terrainLayer.Encoding != "base64" || terrainLayer.Compression != "gzip" {
		t.Errorf("compressed terrain layer encoding=%q compression=%q, want base64/gzip",
			terrainLayer.Encoding, terrainLayer.Compression)
	}
}

func TestExportTMJ_RejectsNilScenario(t *testing.T) {
	if _, err := export.ExportTMJ(nil, false); err == nil {
		t.Fatal("ExportTMJ(nil, false) should fail")
	}
}
