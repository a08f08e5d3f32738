// Package template holds the scenario template description: the
// player-authored, YAML-loadable input that names the zones a map
// should have, how they connect, the diplomatic relations between
// their owners, and the content (cities, ruins, sites, stacks, bags)
// each zone should receive. A Template is validated once on load and
// treated as read-only input to the zone filler from then on.
package template
