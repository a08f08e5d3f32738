// Package zone implements the zone filling engine: the core of the
// scenario generator. Given a zone's tile set and its declared
// contents, Filler carves a network of free tiles, places every
// required object so it is reachable, generates combat stacks and loot
// from value budgets, and surrounds the result with obstacles, forests,
// and roads.
package zone
