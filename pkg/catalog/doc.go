// Package catalog holds the immutable game data tables a scenario is
// generated against: units, items, spells, leaders, landmarks, city
// names, site text pools, site images, the mountain size table, bag
// image sets, and the minimum leader/soldier value thresholds.
//
// A Catalog is loaded once from YAML and handed to the zone filler as
// a borrowed pointer, never as a process-wide singleton — this is what
// lets tests substitute a small fixture catalog without touching
// global state.
package catalog
