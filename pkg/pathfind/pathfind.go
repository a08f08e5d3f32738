package pathfind

import (
	"github.com/bartonsun/D2RSG/pkg/grid"
)

func key(p grid.Position) [2]int { return [2]int{p.X, p.Y} }

func neighbors(tm *grid.TileMap, pos grid.Position, onlyStraight bool, fn func(grid.Position)) {
	if onlyStraight {
		tm.ForeachDirectNeighbor(pos, func(n grid.Position) bool { fn(n); return true })
		return
	}
	tm.ForeachNeighbor(pos, func(n grid.Position) bool { fn(n); return true })
}

func inZone(tm *grid.TileMap, zone grid.ZoneID, pos grid.Position) bool {
	return tm.GetZoneID(pos) == zone
}

// reconstructAndPaint walks cameFrom back from goal to start, painting
// every tile (other than start) Free, and returns the tiles it
// touched in root-to-goal order.
func reconstructAndPaint(tm *grid.TileMap, cameFrom map[[2]int]grid.Position, start, goal grid.Position) []grid.Position {
	var path []grid.Position
	cur := goal
	for cur != start {
		path = append(path, cur)
		prev, ok := cameFrom[key(cur)]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	for _, p := range path {
		tm.SetOccupied(p, grid.Free)
	}
	return path
}

// ConnectWithCenter runs an A*-shaped search (no heuristic, so
// effectively Dijkstra) from start toward the zone's center. The cost
// of stepping onto a tile is 1 for Free, 2 for Possible, and 3 for
// Blocked when passThroughBlocked is set (Blocked tiles are otherwise
// impassable). On success every tile on the found path other than
// start becomes Free and it returns true.
func ConnectWithCenter(tm *grid.TileMap, zone grid.ZoneID, start, center grid.Position, onlyStraight, passThroughBlocked bool) bool {
	if !inZone(tm, zone, start) || !inZone(tm, zone, center) {
		return false
	}

	gScore := map[[2]int]float64{key(start): 0}
	cameFrom := map[[2]int]grid.Position{}
	visited := map[[2]int]bool{}

	pq := newFrontier()
	seq := 0
	pushItem := func(pos grid.Position, priority float64) {
		pushFrontier(pq, &seq, pos, priority)
	}
	pushItem(start, 0)

	for pq.Len() > 0 {
		cur, _ := popFrontier(pq)
		if visited[key(cur)] {
			continue
		}
		visited[key(cur)] = true

		if cur == center {
			reconstructAndPaint(tm, cameFrom, start, center)
			return true
		}

		curG := gScore[key(cur)]
		neighbors(tm, cur, onlyStraight, func(n grid.Position) {
			if !inZone(tm, zone, n) || visited[key(n)] {
				return
			}
			var stepCost float64
			switch {
			case tm.IsFree(n):
				stepCost = 1
			case tm.IsPossible(n):
				stepCost = 2
			case tm.IsBlocked(n) && passThroughBlocked:
				stepCost = 3
			default:
				return
			}
			g := curG + stepCost
			if old, ok := gScore[key(n)]; !ok || g < old {
				gScore[key(n)] = g
				cameFrom[key(n)] = cur
				pushItem(n, g)
			}
		})
	}
	return false
}

func pushFrontier(pq *priorityQueue, seq *int, pos grid.Position, priority float64) {
	item := &queueItem{pos: key(pos), priority: priority, seq: *seq}
	*seq++
	pushHeap(pq, item)
}

// CrunchPath performs a greedy steepest-descent walk from src toward
// dst by squared distance. At each step it prefers a neighbor strictly
// closer to dst than the current tile; failing that, it accepts any
// in-zone Possible neighbor within 2x the current squared distance.
// It stops on reaching dst or an existing Free tile, carving every
// Possible tile it steps on to Free. It reports whether it reached
// dst or an existing free tile.
func CrunchPath(tm *grid.TileMap, zone grid.ZoneID, src, dst grid.Position, onlyStraight bool) bool {
	if !inZone(tm, zone, src) {
		return false
	}

	cur := src
	for {
		if cur != src && tm.IsFree(cur) {
			return true
		}
		if tm.IsPossible(cur) {
			tm.SetOccupied(cur, grid.Free)
		}
		if cur == dst {
			return true
		}

		curDist := cur.SquaredDistance(dst)
		var best grid.Position
		bestDist := curDist
		found := false
		var fallback grid.Position
		fallbackFound := false

		neighbors(tm, cur, onlyStraight, func(n grid.Position) {
			if !inZone(tm, zone, n) || tm.IsBlocked(n) || tm.IsUsed(n) {
				return
			}
			d := n.SquaredDistance(dst)
			if d < bestDist {
				bestDist = d
				best = n
				found = true
			}
			if !fallbackFound && tm.IsPossible(n) && d <= 2*curDist {
				fallback = n
				fallbackFound = true
			}
		})

		if found {
			cur = best
			continue
		}
		if fallbackFound {
			cur = fallback
			continue
		}
		return false
	}
}

// ConnectPathResult reports the outcome of ConnectPath.
type ConnectPathResult struct {
	Reached   bool
	SealedOff []grid.Position
}

// ConnectPath runs a uniform-cost search from src seeking the first
// Free tile, rejecting Blocked tiles and tiles outside zone. On
// success the backtracked path is painted Free. On exhaustion, every
// Possible tile in the closed set is converted to Blocked and
// reported in SealedOff so the caller can drop it from any
// possible-tile tracking set of its own.
func ConnectPath(tm *grid.TileMap, zone grid.ZoneID, src grid.Position, onlyStraight bool) ConnectPathResult {
	if !inZone(tm, zone, src) {
		return ConnectPathResult{}
	}
	if tm.IsFree(src) {
		return ConnectPathResult{Reached: true}
	}

	cameFrom := map[[2]int]grid.Position{}
	visited := map[[2]int]bool{}
	closed := []grid.Position{}

	pq := newFrontier()
	seq := 0
	pushFrontier(pq, &seq, src, 0)
	gScore := map[[2]int]float64{key(src): 0}

	for pq.Len() > 0 {
		cur, _ := popFrontier(pq)
		if visited[key(cur)] {
			continue
		}
		visited[key(cur)] = true
		closed = append(closed, cur)

		if cur != src && tm.IsFree(cur) {
			reconstructAndPaint(tm, cameFrom, src, cur)
			return ConnectPathResult{Reached: true}
		}

		curG := gScore[key(cur)]
		neighbors(tm, cur, onlyStraight, func(n grid.Position) {
			if !inZone(tm, zone, n) || visited[key(n)] || tm.IsBlocked(n) || tm.IsUsed(n) {
				return
			}
			g := curG + 1
			if old, ok := gScore[key(n)]; !ok || g < old {
				gScore[key(n)] = g
				cameFrom[key(n)] = cur
				pushFrontier(pq, &seq, n, g)
			}
		})
	}

	var sealed []grid.Position
	for _, p := range closed {
		if tm.IsPossible(p) {
			tm.SetOccupied(p, grid.Blocked)
			sealed = append(sealed, p)
		}
	}
	return ConnectPathResult{Reached: false, SealedOff: sealed}
}

// RoadInfo is one completed road segment between two road nodes.
type RoadInfo struct {
	Source grid.Position
	Dest   grid.Position
	Path   []grid.Position
}

const (
	roadStraightCost = 1.0
	roadDiagonalCost = 2.1
)

// CreateRoad searches from src to dst preferring straight steps (cost
// 1) over diagonal ones (cost 2.1), rejects water tiles and diagonal
// corner-cuts, and only allows stepping onto a tile when both src and
// dst legs of the move are Free, or either side's tile is Visitable
// (an object entrance), or the destination is the final dst. On
// success the path is marked as road tiles.
func CreateRoad(tm *grid.TileMap, zone grid.ZoneID, src, dst grid.Position) (RoadInfo, bool) {
	if !inZone(tm, zone, src) || !inZone(tm, zone, dst) {
		return RoadInfo{}, false
	}

	cameFrom := map[[2]int]grid.Position{}
	visited := map[[2]int]bool{}
	gScore := map[[2]int]float64{key(src): 0}

	pq := newFrontier()
	seq := 0
	pushFrontier(pq, &seq, src, heuristic(src, dst))

	for pq.Len() > 0 {
		cur, _ := popFrontier(pq)
		if visited[key(cur)] {
			continue
		}
		visited[key(cur)] = true

		if cur == dst {
			path := reconstructAndPaint(tm, cameFrom, src, dst)
			for _, p := range path {
				tm.SetRoad(p, true)
			}
			tm.SetRoad(src, true)
			return RoadInfo{Source: src, Dest: dst, Path: path}, true
		}

		curG := gScore[key(cur)]
		tm.ForeachNeighbor(cur, func(n grid.Position) bool {
			if !inZone(tm, zone, n) || visited[key(n)] {
				return true
			}
			if tm.Tile(n).Ground == grid.GroundWater {
				return true
			}
			straight := cur.X == n.X || cur.Y == n.Y
			if !straight && !tm.CanMoveBetween(cur, n) {
				return true
			}
			if !roadTransitionAllowed(tm, cur, n, dst) {
				return true
			}
			cost := roadStraightCost
			if !straight {
				cost = roadDiagonalCost
			}
			g := curG + cost
			if old, ok := gScore[key(n)]; !ok || g < old {
				gScore[key(n)] = g
				cameFrom[key(n)] = cur
				pushFrontier(pq, &seq, n, g+heuristic(n, dst))
			}
			return true
		})
	}
	return RoadInfo{}, false
}

func roadTransitionAllowed(tm *grid.TileMap, from, to, finalDst grid.Position) bool {
	if to == finalDst {
		return true
	}
	if tm.Tile(from).Visitable || tm.Tile(to).Visitable {
		return true
	}
	return tm.IsFree(from) && tm.IsFree(to)
}

func heuristic(a, b grid.Position) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx < dy {
		return dx*roadDiagonalCost + (dy-dx)*roadStraightCost
	}
	return dy*roadDiagonalCost + (dx-dy)*roadStraightCost
}
