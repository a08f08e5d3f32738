package scenario_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/bartonsun/D2RSG/pkg/catalog"
	"github.com/bartonsun/D2RSG/pkg/scenario"
	"github.com/bartonsun/D2RSG/pkg/template"
)

const scenarioTestCatalogYAML = `
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

const scenarioTestTemplateYAML = `
settings:
  name: Single Junction
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

func loadScenarioTestInputs(t *testing.T) (*template.Template, *catalog.Catalog) {
	t.Helper()
	tmpl, err := template.LoadTemplateFromBytes([]byte(scenarioTestTemplateYAML))
	if err != nil {
		t.Fatalf("LoadTemplateFromBytes: %v", err)
	}
	cat, err := catalog.LoadCatalogFromBytes([]byte(scenarioTestCatalogYAML))
	if err != nil {
		t.Fatalf("LoadCatalogFromBytes: %v", err)
	}
	return tmpl, cat
}

func TestGenerate_SingleJunctionZone(t *testing.T) {
	tmpl, cat := loadScenarioTestInputs(t)

	s, err := scenario.Generate(context.Background(), tmpl, cat, 1)
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	if s.Width != 48 || s.Height != 48 {
		t.Errorf("Width/Height = %d/%d, want 48/48", s.Width, s.Height)
	}
	if len(s.Zones) != 1 {
		t.Fatalf("len(Zones) = %d, want 1", len(s.Zones))
	}
	if len(s.Objects) == 0 {
		t.Error("Generate() placed zero objects for a zone with a required stack")
	}
	if s.Report == nil || !s.Report.Passed {
		t.Errorf("Report.Passed = %v, want true (errors: %v)", s.Report.Passed, s.Report.Errors)
	}
}

func TestGenerate_IsDeterministic(t *testing.T) {
	tmpl, cat := loadScenarioTestInputs(t)

	a, err := scenario.Generate(context.Background(), tmpl, cat, 7)
	if err != nil {
		t.Fatalf("Generate() run 1 = %v", err)
	}
	b, err := scenario.Generate(context.Background(), tmpl, cat, 7)
	if err != nil {
		t.Fatalf("Generate() run 2 = %v", err)
	}

	if !reflect.DeepEqual(a.Tiles, b.Tiles) {
		t.Error("Generate() with the same seed produced different tile content across runs")
	}
	if len(a.Objects) != len(b.Objects) {
		t.Fatalf("len(Objects) differ: %d vs %d", len(a.Objects), len(b.Objects))
	}
	for id, oa := range a.Objects {
		ob, ok := b.Objects[id]
		if !ok {
			t.Fatalf("object %d missing from second run", id)
		}
		if !reflect.DeepEqual(oa, ob) {
			t.Errorf("object %d differs across runs: %+v vs %+v", id, oa, ob)
		}
	}
}

func TestGenerate_RejectsInvalidCatalog(t *testing.T) {
	tmpl, _ := loadScenarioTestInputs(t)
	badCatalog := &catalog.Catalog{Units: []catalog.Unit{{ID: ""}}}

	if _, err := scenario.Generate(context.Background(), tmpl, badCatalog, 1); err == nil {
		t.Fatal("Generate() with an invalid catalog should fail")
	}
}
