// Package composer builds the two value-budget-driven content pieces
// a zone filler attaches to placed objects: a combat Group filled
// under a stack's total value (the stack composer), and an item
// inventory filled under a desired value (the loot composer).
package composer
