// Package grid owns the rectangular tile array the scenario is carved
// into: per-tile terrain/ground, and a parallel occupancy layer
// (Possible/Free/Blocked/Used, road flag, zone id, nearest-object
// distance) that the zone filler and pathfinder mutate as they work.
//
// Tile content (terrain, ground, decoration) and occupancy state are
// deliberately separate: the filler paints terrain once an object or
// decoration commits to a tile, but occupancy state changes many times
// during placement search and path carving before anything is painted.
package grid
