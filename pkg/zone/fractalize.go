package zone

import (
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/pathfind"
	"github.com/bartonsun/D2RSG/pkg/rng"
	"github.com/bartonsun/D2RSG/pkg/template"
)

// minFractalDistance is the squared-tile-unit separation a new fractal
// node must keep from every already-cleared tile.
const minFractalDistance = 75

// Fractalize carves a sparse passage network through z's PossibleTiles,
// seeded from whatever tiles are already Free (the zone's connection
// entry points). Junction zones skip it entirely: their external
// path-ins are assumed sufficient.
func Fractalize(tm *grid.TileMap, z *Zone, r *rng.RNG) {
	if z.Type == template.ZoneJunction {
		return
	}

	cleared := collectFree(tm, z)
	var nodes []grid.Position

	for len(z.PossibleTiles) > 0 {
		candidates := z.SortedPossibleTiles()
		r.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

		foundNode := false
		var ignored []grid.Position
		for _, t := range candidates {
			d := nearestSquaredDistance(t, cleared)
			if d <= minFractalDistance {
				ignored = append(ignored, t)
				continue
			}
			nodes = append(nodes, t)
			cleared = append(cleared, t)
			foundNode = true
			break
		}
		for _, t := range ignored {
			z.dropPossible(t)
		}
		if !foundNode {
			break
		}
	}

	for i, node := range nodes {
		closest := closestPosition(node, z.FreePaths)
		pathfind.CrunchPath(tm, z.ID, node, closest, true)

		if n1, ok := nearestOther(node, nodes, i); ok {
			pathfind.CrunchPath(tm, z.ID, node, n1, true)
		}
		if n2, ok := secondNearestOther(node, nodes, i); ok {
			pathfind.CrunchPath(tm, z.ID, node, n2, true)
		}

		tm.SetOccupied(node, grid.Free)
		z.dropPossible(node)
		z.FreePaths = append(z.FreePaths, node)
	}

	blockDistant(tm, z)
}

func collectFree(tm *grid.TileMap, z *Zone) []grid.Position {
	var out []grid.Position
	for p := range z.Tiles {
		if tm.IsFree(p) {
			out = append(out, p)
			z.FreePaths = append(z.FreePaths, p)
		}
	}
	return out
}

func nearestSquaredDistance(p grid.Position, set []grid.Position) float32 {
	best := float32(1<<31 - 1)
	for _, s := range set {
		d := p.SquaredDistance(s)
		if d < best {
			best = d
		}
	}
	return best
}

func closestPosition(p grid.Position, set []grid.Position) grid.Position {
	best := p
	bestDist := float32(-1)
	for _, s := range set {
		d := p.SquaredDistance(s)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best
}

// nearestOther returns the closest node to nodes[idx] other than
// itself.
func nearestOther(p grid.Position, nodes []grid.Position, idx int) (grid.Position, bool) {
	best := grid.Position{}
	bestDist := float32(-1)
	found := false
	for i, n := range nodes {
		if i == idx {
			continue
		}
		d := p.SquaredDistance(n)
		if !found || d < bestDist {
			bestDist = d
			best = n
			found = true
		}
	}
	return best, found
}

// secondNearestOther returns the second-closest node to nodes[idx].
func secondNearestOther(p grid.Position, nodes []grid.Position, idx int) (grid.Position, bool) {
	type cand struct {
		pos  grid.Position
		dist float32
	}
	var cands []cand
	for i, n := range nodes {
		if i == idx {
			continue
		}
		cands = append(cands, cand{n, p.SquaredDistance(n)})
	}
	if len(cands) < 2 {
		return grid.Position{}, false
	}
	for i := range cands {
		for j := i + 1; j < len(cands); j++ {
			if cands[j].dist < cands[i].dist {
				cands[i], cands[j] = cands[j], cands[i]
			}
		}
	}
	return cands[1].pos, true
}

// blockDistant sets every remaining Possible tile Blocked when its
// squared distance to every FreePaths tile exceeds a quarter of
// minFractalDistance, reserving the leftover space for obstacles.
func blockDistant(tm *grid.TileMap, z *Zone) {
	threshold := float32(minFractalDistance) * 0.25
	for _, t := range z.SortedPossibleTiles() {
		if nearestSquaredDistance(t, z.FreePaths) > threshold {
			tm.SetOccupied(t, grid.Blocked)
			z.dropPossible(t)
		}
	}
}
