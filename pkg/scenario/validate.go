package scenario

import (
	"fmt"
	"math"

	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/objects"
	"github.com/bartonsun/D2RSG/pkg/zone"
)

// ConstraintResult is one invariant's pass/fail outcome.
type ConstraintResult struct {
	Name      string
	Satisfied bool
	Details   string
}

// ValidationReport is the outcome of Validate: every hard constraint
// result, an overall pass/fail, and headline metrics.
type ValidationReport struct {
	Passed  bool
	Results []ConstraintResult
	Errors  []string
	Metrics ReportMetrics
}

// ReportMetrics are the scalar counts spec.md §8's invariants imply a
// caller wants without walking the full report.
type ReportMetrics struct {
	ZoneCount     int
	ObjectCount   int
	RoadTiles     int
	PossibleTiles int
}

// Validate checks a scenario's live tile map and object store against
// spec.md §8's per-fill invariants: every placed object's non-gap
// footprint tiles are Used, every remaining Possible tile has a finite
// nearest-object distance, and the free-path/road network is a single
// 4-connected component. It must run before the tile map is
// discarded, so Generate calls it with the live *grid.TileMap right
// after the fill loop, not from a post-hoc Scenario snapshot.
func Validate(tm *grid.TileMap, zones map[grid.ZoneID]*zone.Zone, store *objects.Store) *ValidationReport {
	r := &ValidationReport{Passed: true}

	r.check("object footprints are Used", checkObjectFootprints(tm, store))
	r.check("possible tiles have finite nearest-object distance", checkNearestDistanceFinite(tm, zones))
	r.check("free paths and roads form one connected component", checkNetworkConnected(tm, zones))

	r.Metrics = computeMetrics(tm, zones, store)
	return r
}

func (r *ValidationReport) check(name, detail string) {
	result := ConstraintResult{Name: name, Satisfied: detail == ""}
	if !result.Satisfied {
		result.Details = detail
		r.Passed = false
		r.Errors = append(r.Errors, detail)
	}
	r.Results = append(r.Results, result)
}

func checkObjectFootprints(tm *grid.TileMap, store *objects.Store) string {
	for _, o := range store.All() {
		for _, pos := range o.Elem.BlockedOffsets() {
			if !tm.IsInTheMap(pos) || !tm.IsUsed(pos) {
				return fmt.Sprintf("object %d footprint tile %v is not Used", o.ID, pos)
			}
		}
	}
	return ""
}

func checkNearestDistanceFinite(tm *grid.TileMap, zones map[grid.ZoneID]*zone.Zone) string {
	for _, z := range zones {
		for pos := range z.PossibleTiles {
			if d := tm.GetNearestObjectDistance(pos); math.IsInf(float64(d), 1) {
				return fmt.Sprintf("zone %s tile %v is Possible with infinite nearest-object distance", z.ID, pos)
			}
		}
	}
	return ""
}

func checkNetworkConnected(tm *grid.TileMap, zones map[grid.ZoneID]*zone.Zone) string {
	var all []grid.Position
	seen := map[grid.Position]bool{}
	for _, z := range zones {
		for _, pos := range z.SortedTiles() {
			if seen[pos] {
				continue
			}
			if tm.IsFree(pos) || tm.IsRoad(pos) {
				seen[pos] = true
				all = append(all, pos)
			}
		}
	}
	if len(all) == 0 {
		return ""
	}

	visited := map[grid.Position]bool{all[0]: true}
	queue := []grid.Position{all[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		tm.ForeachDirectNeighbor(cur, func(next grid.Position) bool {
			if visited[next] || !seen[next] {
				return true
			}
			visited[next] = true
			queue = append(queue, next)
			return true
		})
	}

	if len(visited) != len(all) {
		return fmt.Sprintf("free/road network has %d tiles but only %d reachable from one seed", len(all), len(visited))
	}
	return ""
}

func computeMetrics(tm *grid.TileMap, zones map[grid.ZoneID]*zone.Zone, store *objects.Store) ReportMetrics {
	m := ReportMetrics{ZoneCount: len(zones), ObjectCount: store.Count()}
	for _, z := range zones {
		m.PossibleTiles += len(z.PossibleTiles)
		for _, pos := range z.SortedTiles() {
			if tm.IsRoad(pos) {
				m.RoadTiles++
			}
		}
	}
	return m
}
