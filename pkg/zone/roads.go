package zone

import (
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/pathfind"
)

// ConnectRoads computes a spanning tree over z.RoadNodes: it repeatedly
// takes the first unprocessed node, connects it to the closest
// already-processed node (or, before any node is processed, the
// closest other unprocessed node), and records the resulting road
// segment. It returns the number of road segments it failed to route,
// which the caller may treat as non-fatal per spec.md §4.10 (road
// gaps degrade connectivity but do not abort the zone).
func ConnectRoads(tm *grid.TileMap, z *Zone) int {
	if len(z.RoadNodes) < 2 {
		return 0
	}

	remaining := append([]grid.Position(nil), z.RoadNodes...)
	var processed []grid.Position

	failures := 0
	for len(remaining) > 0 {
		node := remaining[0]
		remaining = remaining[1:]

		pool := processed
		if len(pool) == 0 {
			pool = remaining
		}
		target := closestPosition(node, pool)
		if info, ok := pathfind.CreateRoad(tm, z.ID, node, target); ok {
			z.Roads = append(z.Roads, RoadSegment{Source: info.Source, Dest: info.Dest, Path: info.Path})
		} else {
			failures++
		}
		processed = append(processed, node)
		if len(processed) == 1 {
			processed = append(processed, target)
			for i, p := range remaining {
				if p == target {
					remaining = append(remaining[:i], remaining[i+1:]...)
					break
				}
			}
		}
	}
	return failures
}
