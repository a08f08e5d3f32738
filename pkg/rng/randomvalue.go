package rng

// RandomValue is an inclusive integer range {Min,Max} with Min <= Max,
// the shape used throughout the catalogs and templates for any
// "roll a value in this range" field (stack value, loot value, guard
// strength, ...).
type RandomValue struct {
	Min, Max int
}

// PickValue draws a uniform integer in [v.Min, v.Max] from r.
func (v RandomValue) PickValue(r *RNG) int {
	return r.IntRange(v.Min, v.Max)
}
