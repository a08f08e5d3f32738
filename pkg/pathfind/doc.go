// Package pathfind implements the four search variants the zone
// filler runs over a grid.TileMap: connecting a start tile toward a
// zone's center, greedily crunching a straight line toward a target,
// connecting a tile to the nearest already-free path (sealing off
// dead ends it exhausts), and building a straight-preferring road
// between two endpoints. Every search stays inside a single zone;
// a neighbor in a different zone is never expanded.
package pathfind
