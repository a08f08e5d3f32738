package composer

import (
	"fmt"
	"sort"

	"github.com/bartonsun/D2RSG/pkg/catalog"
	"github.com/bartonsun/D2RSG/pkg/objects"
	"github.com/bartonsun/D2RSG/pkg/rng"
)

const (
	maxSoldiers          = 5
	leaderFrontSlot      = 2
	tightenMaxFailures   = 200
	leaderSweepCount     = 5
	leaderCoeffStart     = 0.65
	leaderCoeffStep      = 0.15
	leadershipPerItem    = 1 // one "+1 Leadership" item grants one leadership point
)

// StackSpec is the input to ComposeStack: the target value range and
// the constraints a candidate unit or leader must satisfy.
type StackSpec struct {
	Value          rng.RandomValue
	Owner          string
	Subrace        string // empty means no subrace constraint
	LeaderIDs      []string
	ForbiddenUnits []string
}

// ComposedStack is the result of running the stack composer: the
// filled combat Group (the leader's slot carries the leadership items
// attached to cover the soldier count), the leader's id, and the value
// rolled from the spec.
type ComposedStack struct {
	Group    objects.Group
	LeaderID string
	Value    int
}

// ComposeStack rolls a target value from spec.Value and fills a
// six-slot Group against it: one leader plus zero-or-more soldiers
// whose values sum to no more than the rolled value.
func ComposeStack(r *rng.RNG, cat *catalog.Catalog, spec StackSpec) (ComposedStack, error) {
	v := spec.Value.PickValue(r)

	minLeaderValue := cat.MinValues.MinLeaderValue
	minSoldierValue := cat.MinValues.MinSoldierValue
	if minSoldierValue <= 0 {
		minSoldierValue = 1
	}

	soldiersStrength := v - minLeaderValue
	maxUnits := 0
	if soldiersStrength > 0 {
		maxUnits = soldiersStrength / minSoldierValue
	}
	if maxUnits > maxSoldiers {
		maxUnits = maxSoldiers
	}

	soldiersTotal := 0
	if maxUnits > 0 {
		soldiersTotal = r.IntRange(0, maxUnits)
	}
	unitsTotal := soldiersTotal + 1

	var parts []int
	if unitsTotal == 1 {
		parts = []int{v}
	} else {
		parts = ConstrainedSum(r, v, unitsTotal)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(parts)))
	leaderValue := parts[0]
	soldierValues := append([]int(nil), parts[1:]...)

	group := objects.NewGroup()

	leader, unusedLeaderPool, err := pickLeader(r, cat, spec, leaderValue)
	if err != nil {
		return ComposedStack{}, err
	}

	// Catalog leaders carry no reach field, so the front/back split the
	// spec bases on "big or ranged leader" can't be read back from Input
	// 2 as given; every leader takes the front-center slot.
	leaderSlot := leaderFrontSlot
	if err := group.PlaceLeader(leaderSlot, leader.ID, leader.Value); err != nil {
		return ComposedStack{}, fmt.Errorf("composer: placing leader: %w", err)
	}

	unusedValue := unusedLeaderPool

	candidates := eligibleUnits(cat, spec)
	unusedValue = placeSoldiers(r, &group, candidates, soldierValues, unusedValue)
	unusedValue = tighten(r, &group, candidates, unusedValue, minSoldierValue)

	leadershipNeeded := group.SoldierSlotCount()
	baseLeadership := leader.BaseLeadership
	for baseLeadership+leadershipPerItem*len(group.Slots[leaderSlot].ModifierItems) < leadershipNeeded {
		group.Slots[leaderSlot].ModifierItems = append(group.Slots[leaderSlot].ModifierItems, "item.leadership_plus_one")
	}

	return ComposedStack{Group: group, LeaderID: leader.ID, Value: v}, nil
}

// pickLeader selects the leader unit, following the sweep-with-
// decreasing-coefficient search, falling back to the weakest eligible
// leader if every sweep fails. It returns the chosen leader and the
// portion of leaderValue left over after the leader's own cost, which
// rolls into the soldier budget.
func pickLeader(r *rng.RNG, cat *catalog.Catalog, spec StackSpec, leaderValue int) (*catalog.Leader, int, error) {
	var pool []*catalog.Leader
	if len(spec.LeaderIDs) > 0 {
		for _, id := range spec.LeaderIDs {
			l, err := cat.Leader(id)
			if err != nil {
				return nil, 0, err
			}
			pool = append(pool, l)
		}
	} else if spec.Subrace != "" {
		pool = cat.LeadersBySubrace(spec.Subrace)
	} else {
		for i := range cat.Leaders {
			pool = append(pool, &cat.Leaders[i])
		}
	}
	if len(pool) == 0 {
		return nil, 0, fmt.Errorf("composer: %w: no leader available for subrace %q", catalog.ErrCatalogMissing, spec.Subrace)
	}

	unused := leaderValue
	coeff := leaderCoeffStart
	for sweep := 0; sweep < leaderSweepCount; sweep++ {
		for _, l := range pool {
			if l.Value <= unused && float64(l.Value) >= coeff*float64(leaderValue) {
				return l, unused - l.Value, nil
			}
		}
		coeff -= leaderCoeffStep
	}

	weakest := pool[0]
	for _, l := range pool[1:] {
		if l.Value < weakest.Value {
			weakest = l
		}
	}
	leftover := unused - weakest.Value
	if leftover < 0 {
		leftover = 0
	}
	return weakest, leftover, nil
}

// eligibleUnits filters the catalog's recruitable pool by subrace and
// the stack spec's forbidden-unit list.
func eligibleUnits(cat *catalog.Catalog, spec StackSpec) []*catalog.Unit {
	forbidden := make(map[string]bool, len(spec.ForbiddenUnits))
	for _, id := range spec.ForbiddenUnits {
		forbidden[id] = true
	}
	var pool []*catalog.Unit
	source := cat.Units
	if spec.Subrace != "" {
		src := cat.UnitsBySubrace(spec.Subrace)
		pool = make([]*catalog.Unit, 0, len(src))
		for _, u := range src {
			if !forbidden[u.ID] {
				pool = append(pool, u)
			}
		}
		return pool
	}
	for i := range source {
		if !forbidden[source[i].ID] {
			pool = append(pool, &source[i])
		}
	}
	return pool
}

// placeSoldiers walks soldierValues left to right, picking a random
// free slot for each and filtering candidates by value range, subrace,
// front/back reach compatibility, and bigness. A value that finds no
// placement rolls over into the next iteration's budget; it returns
// whatever remains unused after the final value.
func placeSoldiers(r *rng.RNG, group *objects.Group, candidates []*catalog.Unit, soldierValues []int, carry int) int {
	unused := carry
	for _, val := range soldierValues {
		budget := val + unused
		free := group.FreeSlots()
		if len(free) == 0 {
			unused = budget
			continue
		}
		slot := free[r.PickIndex(len(free))]
		frontline := objects.IsFrontLine(slot)

		freeSlots := len(free)
		coeff := 0.95 - 0.05*float64(freeSlots)
		if coeff < 0 {
			coeff = 0
		}

		a, b := objects.ColumnOf(slot)
		other := a
		if slot == a {
			other = b
		}
		bigPossible := !group.Slots[other].Occupied && freeSlots >= 2

		pick := selectUnit(candidates, frontline, bigPossible, coeff, budget)
		if pick == nil {
			unused = budget
			continue
		}
		big := bigPossible && pick.IsBig
		if err := group.PlaceSoldier(slot, pick.ID, pick.Value, big); err != nil {
			unused = budget
			continue
		}
		unused = budget - pick.Value
	}
	return unused
}

// selectUnit finds the first candidate whose value falls in
// [coeff*budget, budget], whose bigness matches bigPossible when the
// unit itself is big, and whose reach matches the line (front wants
// Adjacent reach, back wants anything else).
func selectUnit(candidates []*catalog.Unit, frontline, bigPossible bool, coeff float64, budget int) *catalog.Unit {
	lower := coeff * float64(budget)
	for _, u := range candidates {
		if u.IsBig && !bigPossible {
			continue
		}
		if float64(u.Value) < lower || u.Value > budget {
			continue
		}
		if frontline && u.Reach != "Adjacent" {
			continue
		}
		if !frontline && u.Reach == "Adjacent" {
			continue
		}
		return u
	}
	return nil
}

// tighten repeatedly attempts one more soldier placement while free
// slots remain and unused value clears the soldier floor, using a
// coefficient that tightens with the remaining free-slot count. It
// gives up after tightenMaxFailures consecutive failures.
func tighten(r *rng.RNG, group *objects.Group, candidates []*catalog.Unit, unused, minSoldierValue int) int {
	failures := 0
	for unused >= minSoldierValue && failures < tightenMaxFailures {
		free := group.FreeSlots()
		if len(free) == 0 {
			break
		}
		slot := free[r.PickIndex(len(free))]
		frontline := objects.IsFrontLine(slot)
		freeSlots := len(free)
		coeff := 1 - 0.05*float64(freeSlots)
		if coeff < 0 {
			coeff = 0
		}

		a, b := objects.ColumnOf(slot)
		other := a
		if slot == a {
			other = b
		}
		bigPossible := !group.Slots[other].Occupied && freeSlots >= 2

		pick := selectUnit(candidates, frontline, bigPossible, coeff, unused)
		if pick == nil {
			failures++
			continue
		}
		big := bigPossible && pick.IsBig
		if err := group.PlaceSoldier(slot, pick.ID, pick.Value, big); err != nil {
			failures++
			continue
		}
		unused -= pick.Value
		failures = 0
	}
	return unused
}
