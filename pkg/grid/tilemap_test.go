package grid

import (
	"math"
	"testing"
)

func TestNewTileMap_InitialState(t *testing.T) {
	tm := NewTileMap(10, 8)

	if tm.Width != 10 || tm.Height != 8 {
		t.Fatalf("dimensions = (%d,%d), want (10,8)", tm.Width, tm.Height)
	}

	pos := Position{X: 3, Y: 4}
	if !tm.IsPossible(pos) {
		t.Error("freshly created tile should be Possible")
	}
	if d := tm.GetNearestObjectDistance(pos); !math.IsInf(float64(d), 1) {
		t.Errorf("nearest object distance = %v, want +Inf", d)
	}
}

func TestIsAtTheBorder(t *testing.T) {
	tm := NewTileMap(5, 5)
	cases := []struct {
		pos  Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{4, 4}, true},
		{Position{0, 2}, true},
		{Position{2, 0}, true},
		{Position{2, 2}, false},
	}
	for _, c := range cases {
		if got := tm.IsAtTheBorder(c.pos); got != c.want {
			t.Errorf("IsAtTheBorder(%v) = %v, want %v", c.pos, got, c.want)
		}
	}
}

func TestSetOccupied_StateTransitions(t *testing.T) {
	tm := NewTileMap(5, 5)
	pos := Position{X: 2, Y: 2}

	tm.SetOccupied(pos, Free)
	if !tm.IsFree(pos) {
		t.Error("expected Free")
	}

	tm.SetOccupied(pos, Blocked)
	if !tm.IsBlocked(pos) || !tm.ShouldBeBlocked(pos) {
		t.Error("expected Blocked == ShouldBeBlocked")
	}

	tm.SetOccupied(pos, Used)
	if !tm.IsUsed(pos) {
		t.Error("expected Used")
	}
}

func TestForeachNeighbor_Counts(t *testing.T) {
	tm := NewTileMap(5, 5)

	// Interior tile: 8 neighbors, 4 straight, 4 diagonal.
	center := Position{X: 2, Y: 2}
	var all, straight, diag int
	tm.ForeachNeighbor(center, func(Position) bool { all++; return true })
	tm.ForeachDirectNeighbor(center, func(Position) bool { straight++; return true })
	tm.ForeachDiagonalNeighbor(center, func(Position) bool { diag++; return true })

	if all != 8 {
		t.Errorf("ForeachNeighbor count = %d, want 8", all)
	}
	if straight != 4 {
		t.Errorf("ForeachDirectNeighbor count = %d, want 4", straight)
	}
	if diag != 4 {
		t.Errorf("ForeachDiagonalNeighbor count = %d, want 4", diag)
	}

	// Corner tile: fewer in-map neighbors.
	corner := Position{X: 0, Y: 0}
	all = 0
	tm.ForeachNeighbor(corner, func(Position) bool { all++; return true })
	if all != 3 {
		t.Errorf("corner ForeachNeighbor count = %d, want 3", all)
	}
}

func TestForeachNeighbor_EarlyStop(t *testing.T) {
	tm := NewTileMap(5, 5)
	count := 0
	tm.ForeachNeighbor(Position{2, 2}, func(Position) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("early-stop count = %d, want 2", count)
	}
}

func TestUpdateDistances_TakesMinimum(t *testing.T) {
	tm := NewTileMap(5, 5)
	area := []Position{{0, 0}, {1, 0}, {2, 0}}

	tm.UpdateDistances(Position{0, 0}, area)
	d0 := tm.GetNearestObjectDistance(Position{2, 0})
	if d0 != 4 {
		t.Errorf("distance to (2,0) from (0,0) = %v, want 4", d0)
	}

	// A second, closer object should lower the recorded distance.
	tm.UpdateDistances(Position{1, 0}, area)
	d1 := tm.GetNearestObjectDistance(Position{2, 0})
	if d1 != 1 {
		t.Errorf("distance to (2,0) after closer update = %v, want 1", d1)
	}

	// A farther object must not raise it back up.
	tm.UpdateDistances(Position{4, 4}, area)
	d2 := tm.GetNearestObjectDistance(Position{2, 0})
	if d2 != 1 {
		t.Errorf("distance to (2,0) after farther update = %v, want still 1", d2)
	}
}

func TestTile_SetTerrainGround_WaterForcesNeutral(t *testing.T) {
	var tile Tile
	tile.SetTerrainGround(TerrainHuman, GroundWater)
	if tile.Terrain != TerrainNeutral {
		t.Errorf("Terrain = %v, want Neutral when Ground=Water", tile.Terrain)
	}

	var tile2 Tile
	tile2.SetTerrainGround(TerrainHuman, GroundMountain)
	if tile2.Terrain != TerrainNeutral {
		t.Errorf("Terrain = %v, want Neutral when Ground=Mountain", tile2.Terrain)
	}

	var tile3 Tile
	tile3.SetTerrainGround(TerrainHuman, GroundPlain)
	if tile3.Terrain != TerrainHuman {
		t.Errorf("Terrain = %v, want Human when Ground=Plain", tile3.Terrain)
	}
}

func TestSetCenter_WrapsIntoUnitRange(t *testing.T) {
	cases := []struct {
		fx, fy float32
	}{
		{0.5, 0.25},
		{-0.25, -0.75},
		{1.5, 2.75},
		{0, 0},
		{-1, -1},
	}
	for _, c := range cases {
		var v VPosition
		v.SetCenter(c.fx, c.fy)
		if v.FX < 0 || v.FX >= 1 {
			t.Errorf("SetCenter(%v,%v).FX = %v, want [0,1)", c.fx, c.fy, v.FX)
		}
		if v.FY < 0 || v.FY >= 1 {
			t.Errorf("SetCenter(%v,%v).FY = %v, want [0,1)", c.fx, c.fy, v.FY)
		}
	}
}

func TestCanMoveBetween_RejectsBothCornersBlocked(t *testing.T) {
	tm := NewTileMap(5, 5)
	tm.SetOccupied(Position{1, 0}, Blocked)
	tm.SetOccupied(Position{0, 1}, Blocked)

	if tm.CanMoveBetween(Position{0, 0}, Position{1, 1}) {
		t.Error("expected diagonal cut through two blocked corners to be rejected")
	}

	tm2 := NewTileMap(5, 5)
	tm2.SetOccupied(Position{1, 0}, Blocked)
	if !tm2.CanMoveBetween(Position{0, 0}, Position{1, 1}) {
		t.Error("expected diagonal step to be allowed when only one corner is blocked")
	}
}
