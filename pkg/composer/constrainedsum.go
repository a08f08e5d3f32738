package composer

import "github.com/bartonsun/D2RSG/pkg/rng"

// ConstrainedSum splits total into parts positive integers summing to
// exactly total. It draws left to right: each summand but the last is
// sampled uniformly from [1, remaining-(unitsLeft-1)], guaranteeing at
// least 1 is left for every unit still to be drawn; the final summand
// takes whatever remains. parts must be >= 1 and total >= parts, or
// ConstrainedSum panics — callers compute maxUnits from total before
// calling this, so the precondition always holds in practice.
func ConstrainedSum(r *rng.RNG, total, parts int) []int {
	if parts < 1 {
		panic("composer: ConstrainedSum requires parts >= 1")
	}
	if total < parts {
		panic("composer: ConstrainedSum requires total >= parts")
	}

	out := make([]int, parts)
	remaining := total
	unitsLeft := parts
	for i := 0; i < parts-1; i++ {
		max := remaining - (unitsLeft - 1)
		v := rng.RandomValue{Min: 1, Max: max}.PickValue(r)
		out[i] = v
		remaining -= v
		unitsLeft--
	}
	out[parts-1] = remaining
	return out
}
