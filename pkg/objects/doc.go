// Package objects defines the scenario object model: the rectangular
// footprint geometry every placeable thing shares (MapElement), the
// six-slot combat Group composition, and the tagged-variant record that
// represents a Fortification, Stack, Site, Ruin, Crystal, Bag, or
// Landmark.
//
// The map owns every object by id; grid cells hold only weak references
// (an ObjectID) back into the Store. This avoids the reference
// generator's reliance on runtime downcasts — dispatch over an Object's
// variant is a switch on its Kind field rather than a type assertion
// chain, matching spec.md §9's "Ownership graph" design note.
package objects
