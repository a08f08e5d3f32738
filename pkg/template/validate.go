package template

import (
	"fmt"
)

// Validate checks every range and consistency rule spec.md's Input 1
// validation list names: settings bounds, zone/connection id
// consistency, the starting-zone count against maxPlayers, and the
// diplomacy relation rules.
func (t *Template) Validate() error {
	if err := t.Settings.Validate(); err != nil {
		return fmt.Errorf("template: settings: %w", err)
	}

	ids := make(map[string]bool, len(t.Content.Zones))
	startCount := 0
	for i, z := range t.Content.Zones {
		if z.ID == "" {
			return fmt.Errorf("template: zones[%d]: empty id", i)
		}
		if ids[z.ID] {
			return fmt.Errorf("template: duplicate zone id %q", z.ID)
		}
		ids[z.ID] = true
		if z.Type == ZonePlayerStart {
			startCount++
		}
		if err := z.Validate(); err != nil {
			return fmt.Errorf("template: zone %q: %w", z.ID, err)
		}
	}
	if startCount > t.Settings.MaxPlayers {
		return fmt.Errorf("template: %d PlayerStart zones exceeds maxPlayers %d", startCount, t.Settings.MaxPlayers)
	}

	for i, c := range t.Content.Connections {
		if !ids[c.From] {
			return fmt.Errorf("template: connections[%d]: unknown zone %q", i, c.From)
		}
		if !ids[c.To] {
			return fmt.Errorf("template: connections[%d]: unknown zone %q", i, c.To)
		}
		if c.Size < 0 || c.Size > 1 {
			return fmt.Errorf("template: connections[%d]: size %v out of [0,1]", i, c.Size)
		}
		switch c.Border {
		case BorderOpen, BorderSemiOpen, BorderClosed, BorderWater:
		default:
			return fmt.Errorf("template: connections[%d]: unknown border type %q", i, c.Border)
		}
		if c.Border == BorderSemiOpen && (c.GapChance < 0 || c.GapChance > 100) {
			return fmt.Errorf("template: connections[%d]: gapChance %d out of [0,100]", i, c.GapChance)
		}
	}

	seenRelation := make(map[[2]string]bool, len(t.Content.Diplomacy))
	for i, d := range t.Content.Diplomacy {
		if d.Relation < 0 || d.Relation > 100 {
			return fmt.Errorf("template: diplomacy[%d]: relation %d out of [0,100]", i, d.Relation)
		}
		if d.Alliance && d.AlwaysAtWar {
			return fmt.Errorf("template: diplomacy[%d]: alliance and alwaysAtWar both set", i)
		}
		if d.PermanentAlliance && !d.Alliance {
			return fmt.Errorf("template: diplomacy[%d]: permanentAlliance requires alliance", i)
		}
		key := relationKey(d.PlayerA, d.PlayerB)
		if seenRelation[key] {
			return fmt.Errorf("template: diplomacy[%d]: duplicate relation between %q and %q", i, d.PlayerA, d.PlayerB)
		}
		seenRelation[key] = true
	}

	return nil
}

// relationKey normalizes a pair of player ids so (a,b) and (b,a)
// collide as the same relation.
func relationKey(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// Validate checks Settings' range constraints.
func (s *Settings) Validate() error {
	if s.MaxPlayers < 1 || s.MaxPlayers > 4 {
		return fmt.Errorf("maxPlayers %d out of [1,4]", s.MaxPlayers)
	}
	if s.SizeMin < 48 || s.SizeMin > 144 {
		return fmt.Errorf("sizeMin %d out of [48,144]", s.SizeMin)
	}
	if s.SizeMax < 48 || s.SizeMax > 144 {
		return fmt.Errorf("sizeMax %d out of [48,144]", s.SizeMax)
	}
	if s.SizeMin > s.SizeMax {
		return fmt.Errorf("sizeMin %d > sizeMax %d", s.SizeMin, s.SizeMax)
	}
	if s.Roads < 0 || s.Roads > 100 {
		return fmt.Errorf("roads %d out of [0,100]", s.Roads)
	}
	if s.Forest < 0 || s.Forest > 100 {
		return fmt.Errorf("forest %d out of [0,100]", s.Forest)
	}
	if s.StartingGold < 0 || s.StartingGold > 9999 {
		return fmt.Errorf("startingGold %d out of [0,9999]", s.StartingGold)
	}
	if s.NativeMana < 0 || s.NativeMana > 9999 {
		return fmt.Errorf("nativeMana %d out of [0,9999]", s.NativeMana)
	}
	return nil
}

// Validate checks a single zone's content descriptions for internal
// consistency (every value range non-negative and ordered).
func (z *ZoneDescription) Validate() error {
	for i, c := range z.Cities {
		if c.ValueMin < 0 || c.ValueMin > c.ValueMax {
			return fmt.Errorf("cities[%d]: valueMin %d > valueMax %d", i, c.ValueMin, c.ValueMax)
		}
	}
	for i, r := range z.Ruins {
		if r.ValueMin < 0 || r.ValueMin > r.ValueMax {
			return fmt.Errorf("ruins[%d]: valueMin %d > valueMax %d", i, r.ValueMin, r.ValueMax)
		}
	}
	for i, s := range z.Stacks {
		if s.ValueMin < 0 || s.ValueMin > s.ValueMax {
			return fmt.Errorf("stacks[%d]: valueMin %d > valueMax %d", i, s.ValueMin, s.ValueMax)
		}
	}
	for i, b := range z.Bags {
		if b.ValueMin < 0 || b.ValueMin > b.ValueMax {
			return fmt.Errorf("bags[%d]: valueMin %d > valueMax %d", i, b.ValueMin, b.ValueMax)
		}
	}
	return nil
}
