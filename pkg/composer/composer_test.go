package composer_test

import (
	"crypto/sha256"
	"testing"

	"pgregory.net/rapid"

	"github.com/bartonsun/D2RSG/pkg/catalog"
	"github.com/bartonsun/D2RSG/pkg/composer"
	"github.com/bartonsun/D2RSG/pkg/rng"
)

const testCatalogYAML = `
units:
  - id: unit.swordsman
    value: 10
    reach: Adjacent
    subrace: human
  - id: unit.archer
    value: 12
    reach: Near
    subrace: human
  - id: unit.ogre
    value: 30
    reach: Adjacent
    isBig: true
    subrace: human
leaders:
  - id: leader.knight
    value: 50
    subrace: human
    baseLeadership: 3
items:
  - id: item.sword
    type: Weapon
    value: 20
  - id: item.shield
    type: Armor
    value: 15
  - id: item.potion
    type: Consumable
    value: 5
  - id: item.relic
    type: Valuable
    value: 100
minValues:
  minLeaderValue: 20
  minSoldierValue: 5
`

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.LoadCatalogFromBytes([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("LoadCatalogFromBytes: %v", err)
	}
	return c
}

func newTestRNG(stage string) *rng.RNG {
	hash := sha256.Sum256([]byte(stage))
	return rng.NewRNG(7, stage, hash[:])
}

func TestConstrainedSum_SumsToTotalAndStaysPositive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.IntRange(1, 8).Draw(rt, "parts")
		total := rapid.IntRange(parts, parts+200).Draw(rt, "total")
		r := newTestRNG("rapid:constrainedsum")

		got := composer.ConstrainedSum(r, total, parts)
		if len(got) != parts {
			rt.Fatalf("len(ConstrainedSum()) = %d, want %d", len(got), parts)
		}
		sum := 0
		for _, v := range got {
			if v < 1 {
				rt.Fatalf("ConstrainedSum() produced non-positive part %d in %v", v, got)
			}
			sum += v
		}
		if sum != total {
			rt.Fatalf("ConstrainedSum() sums to %d, want %d", sum, total)
		}
	})
}

func TestConstrainedSum_SinglePart(t *testing.T) {
	r := newTestRNG("single")
	got := composer.ConstrainedSum(r, 42, 1)
	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("ConstrainedSum(42, 1) = %v, want [42]", got)
	}
}

func TestComposeStack_Deterministic(t *testing.T) {
	cat := mustCatalog(t)
	spec := composer.StackSpec{
		Value:   rng.RandomValue{Min: 80, Max: 100},
		Owner:   "player1",
		Subrace: "human",
	}

	r1 := newTestRNG("stacks")
	got1, err := composer.ComposeStack(r1, cat, spec)
	if err != nil {
		t.Fatalf("ComposeStack: %v", err)
	}

	r2 := newTestRNG("stacks")
	got2, err := composer.ComposeStack(r2, cat, spec)
	if err != nil {
		t.Fatalf("ComposeStack (second run): %v", err)
	}

	if got1.LeaderID != got2.LeaderID {
		t.Errorf("LeaderID differs across runs: %q vs %q", got1.LeaderID, got2.LeaderID)
	}
	if got1.Value != got2.Value {
		t.Errorf("Value differs across runs: %d vs %d", got1.Value, got2.Value)
	}
	for i := range got1.Group.Slots {
		a, b := got1.Group.Slots[i], got2.Group.Slots[i]
		if a.Occupied != b.Occupied || a.UnitID != b.UnitID || a.Value != b.Value {
			t.Errorf("slot %d differs across runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestComposeStack_HasLeaderAndValidGroup(t *testing.T) {
	cat := mustCatalog(t)
	spec := composer.StackSpec{
		Value:   rng.RandomValue{Min: 60, Max: 200},
		Subrace: "human",
	}
	r := newTestRNG("budget-check")
	got, err := composer.ComposeStack(r, cat, spec)
	if err != nil {
		t.Fatalf("ComposeStack: %v", err)
	}
	if got.LeaderID == "" {
		t.Fatal("ComposeStack() produced no leader")
	}
	leader, found := got.Group.Leader()
	if !found {
		t.Fatal("Group.Leader() reports no leader placed")
	}
	if leader.UnitID != got.LeaderID {
		t.Errorf("leader slot unit id %q != ComposedStack.LeaderID %q", leader.UnitID, got.LeaderID)
	}
	if err := got.Group.Validate(1, 3); err != nil {
		t.Errorf("Group.Validate() = %v, want nil", err)
	}
}

func TestComposeLoot_RequiredItemsAlwaysIncluded(t *testing.T) {
	cat := mustCatalog(t)
	spec := composer.LootSpec{
		Value:         rng.RandomValue{Min: 0, Max: 0},
		RequiredItems: []string{"item.sword", "item.potion"},
	}
	r := newTestRNG("loot-required")
	got, err := composer.ComposeLoot(r, cat, spec)
	if err != nil {
		t.Fatalf("ComposeLoot: %v", err)
	}
	if len(got) != 2 || got[0] != "item.sword" || got[1] != "item.potion" {
		t.Fatalf("ComposeLoot() = %v, want required items only", got)
	}
}

func TestComposeLoot_FillsWithinBudgetAndForbidsListedItems(t *testing.T) {
	cat := mustCatalog(t)
	spec := composer.LootSpec{
		Value:          rng.RandomValue{Min: 30, Max: 30},
		ForbiddenItems: []string{"item.relic"},
	}
	r := newTestRNG("loot-budget")
	got, err := composer.ComposeLoot(r, cat, spec)
	if err != nil {
		t.Fatalf("ComposeLoot: %v", err)
	}
	spent := 0
	for _, id := range got {
		if id == "item.relic" {
			t.Fatalf("ComposeLoot() included forbidden item %q", id)
		}
		it, err := cat.Item(id)
		if err != nil {
			t.Fatalf("cat.Item(%q): %v", id, err)
		}
		spent += it.Value
	}
	if spent > 30 {
		t.Fatalf("ComposeLoot() spent %d, exceeds budget 30", spent)
	}
}

func TestComposeLoot_MerchantLootExcludesValuables(t *testing.T) {
	cat := mustCatalog(t)
	spec := composer.LootSpec{
		Value:        rng.RandomValue{Min: 200, Max: 200},
		AllowedTypes: []string{"Weapon", "Armor", "Consumable"},
	}
	r := newTestRNG("loot-merchant")
	got, err := composer.ComposeLoot(r, cat, spec)
	if err != nil {
		t.Fatalf("ComposeLoot: %v", err)
	}
	for _, id := range got {
		if id == "item.relic" {
			t.Fatalf("ComposeLoot() included Valuable item %q despite AllowedTypes filter", id)
		}
	}
}
