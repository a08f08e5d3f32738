package composer

import (
	"github.com/bartonsun/D2RSG/pkg/catalog"
	"github.com/bartonsun/D2RSG/pkg/rng"
)

// LootSpec is the input to ComposeLoot.
type LootSpec struct {
	Value          rng.RandomValue
	RequiredItems  []string
	ForbiddenItems []string
	AllowedTypes   []string // empty means any type is allowed
	MinItemValue   int      // 0 means no floor
	MaxItemValue   int      // 0 means no ceiling
}

// ComposeLoot instantiates spec.RequiredItems first, then draws random
// items to fill a rolled desiredValue, stopping as soon as no
// candidate fits the remaining budget.
func ComposeLoot(r *rng.RNG, cat *catalog.Catalog, spec LootSpec) ([]string, error) {
	var inventory []string
	spent := 0

	for _, id := range spec.RequiredItems {
		item, err := cat.Item(id)
		if err != nil {
			return nil, err
		}
		inventory = append(inventory, item.ID)
		spent += item.Value
	}

	desired := spec.Value.PickValue(r)
	remaining := desired - spent
	if remaining <= 0 {
		return inventory, nil
	}

	forbidden := make(map[string]bool, len(spec.ForbiddenItems))
	for _, id := range spec.ForbiddenItems {
		forbidden[id] = true
	}
	allowedType := make(map[string]bool, len(spec.AllowedTypes))
	for _, t := range spec.AllowedTypes {
		allowedType[t] = true
	}

	var candidates []*catalog.Item
	for i := range cat.Items {
		it := &cat.Items[i]
		if forbidden[it.ID] {
			continue
		}
		if len(allowedType) > 0 && !allowedType[it.Type] {
			continue
		}
		if spec.MinItemValue > 0 && it.Value < spec.MinItemValue {
			continue
		}
		if spec.MaxItemValue > 0 && it.Value > spec.MaxItemValue {
			continue
		}
		candidates = append(candidates, it)
	}

	for remaining > 0 {
		pick := bestFit(r, candidates, remaining)
		if pick == nil {
			break
		}
		inventory = append(inventory, pick.ID)
		remaining -= pick.Value
	}

	return inventory, nil
}

// bestFit draws a uniformly random candidate whose value does not
// exceed budget, or nil if none fits.
func bestFit(r *rng.RNG, candidates []*catalog.Item, budget int) *catalog.Item {
	var fits []*catalog.Item
	for _, c := range candidates {
		if c.Value <= budget {
			fits = append(fits, c)
		}
	}
	if len(fits) == 0 {
		return nil
	}
	return fits[r.PickIndex(len(fits))]
}
