package zone

import (
	"fmt"

	"github.com/bartonsun/D2RSG/pkg/catalog"
	"github.com/bartonsun/D2RSG/pkg/composer"
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/objects"
	"github.com/bartonsun/D2RSG/pkg/rng"
	"github.com/bartonsun/D2RSG/pkg/template"
)

const (
	siteMinDistance      = 6
	cityMinDistance      = 8
	requiredMinDistWidth = 2 // multiplied by elem.Width
	closeObjectRadius    = 12
	closeObjectPenalty   = 10
)

// Filler orchestrates a single zone's fill, threading the tile map,
// object store, catalog, and RNG through every stage in the fixed
// order spec.md §2 names.
type Filler struct {
	TM      *grid.TileMap
	Store   *objects.Store
	Catalog *catalog.Catalog
	RNG     *rng.RNG
	Trace   *Trace
}

// NewFiller builds a Filler over the given shared resources. trace may
// be nil to disable debug tracing.
func NewFiller(tm *grid.TileMap, store *objects.Store, cat *catalog.Catalog, r *rng.RNG, trace *Trace) *Filler {
	return &Filler{TM: tm, Store: store, Catalog: cat, RNG: r, Trace: trace}
}

// Fill runs the full control flow for z against desc: terrain and
// free-tile setup, fractalize, the capital (PlayerStart zones only),
// then cities/sites/ruins/mines, stacks, bags, and finally
// border/obstacles/forests/roads. It stops and returns the first
// stage's error, wrapped with a Diagnostic naming the zone and seed.
func (f *Filler) Fill(z *Zone, desc *template.ZoneDescription, borderType template.BorderType, gapChance int, forestPercent int) error {
	type stage = struct {
		name string
		fn   func() error
	}

	cities := desc.Cities

	stages := []stage{
		{"initTerrain", func() error { InitTerrain(f.TM, z, desc.Owner); return nil }},
		{"initFreeTiles", func() error { InitFreeTiles(f.TM, z); return nil }},
		{"fractalize", func() error { Fractalize(f.TM, z, f.RNG); return nil }},
	}

	if z.Type == template.ZonePlayerStart && len(cities) > 0 {
		capital := cities[0]
		cities = cities[1:]
		stages = append(stages, stage{"placeCapital", func() error {
			return f.PlaceCapital(z, desc.Owner, capital.Subrace, f.pickCityName(), capital.Tier, capital.Garrison, capital.ValueMin, capital.ValueMax)
		}})
	}

	rest := []stage{
		{"placeCities", func() error { return f.placeCities(z, cities) }},
		{"placeMerchants", func() error { return f.placeMerchants(z, desc.Merchants) }},
		{"placeMages", func() error { return f.placeMages(z, desc.Mages) }},
		{"placeMercenaries", func() error { return f.placeMercenaries(z, desc.Mercenaries) }},
		{"placeTrainers", func() error { return f.placeTrainers(z, desc.Trainers) }},
		{"placeMarkets", func() error { return f.placeMarkets(z, desc.Markets) }},
		{"placeRuins", func() error { return f.placeRuins(z, desc.Ruins) }},
		{"placeMines", func() error { return f.placeMines(z, desc.Mines) }},
		{"placeStacks", func() error { return f.placeStacks(z, desc.Stacks) }},
		{"placeBags", func() error { return f.placeBags(z, desc.Bags) }},
		{"createBorder", func() error { CreateBorder(f.TM, z, borderType, gapChance, f.RNG); return nil }},
		{"createObstacles", func() error { return CreateObstacles(f.TM, z, f.Store, f.Catalog, f.RNG) }},
		{"paintForests", func() error { PaintForests(f.TM, z, f.RNG, forestPercent, 4); return nil }},
		{"connectRoads", func() error { ConnectRoads(f.TM, z); return nil }},
	}
	stages = append(stages, rest...)

	for _, s := range stages {
		f.Trace.begin(s.name)
		if err := s.fn(); err != nil {
			f.Trace.fail(s.name, err)
			return err
		}
	}
	return nil
}

func (f *Filler) diag(z *Zone, pos grid.Position) Diagnostic {
	return Diagnostic{ZoneID: z.ID, Position: pos, Seed: fmt.Sprintf("%d", f.RNG.Seed())}
}

// placeCities places every city/village described for z, each guarded
// per its HasGuard flag.
func (f *Filler) placeCities(z *Zone, descs []template.CityDescription) error {
	for _, cd := range descs {
		elem := &objects.MapElement{Width: 4, Height: 4}
		pos, ok := FindPlaceForObject(f.TM, z, z.SortedPossibleTiles(), elem, cityMinDistance, true)
		if !ok {
			return lackOfSpace(f.diag(z, grid.Position{}), "no room for city (tier %d)", cd.Tier)
		}
		outcome, accessible := TryToPlaceObjectAndConnectToPath(f.TM, z, elem, pos)
		if outcome != Success {
			return lackOfSpace(f.diag(z, pos), "city placement failed: %v", outcome)
		}

		name := f.pickCityName()
		fort := &objects.Fortification{
			Type:    objects.Village,
			Owner:   cd.Owner,
			Subrace: cd.Subrace,
			Name:    name,
			Tier:    cd.Tier,
		}
		if len(cd.Garrison) > 0 {
			spec := composer.StackSpec{
				Value:          rng.RandomValue{Min: cd.ValueMin, Max: cd.ValueMax},
				Owner:          cd.Owner,
				Subrace:        cd.Subrace,
				LeaderIDs:      cd.Garrison,
				ForbiddenUnits: nil,
			}
			composed, err := composer.ComposeStack(f.RNG, f.Catalog, spec)
			if err != nil {
				return catalogMissing(f.diag(z, pos), err)
			}
			fort.Garrison = composed.Group
		}

		id := f.Store.MintID()
		obj := &objects.Object{ID: id, Kind: objects.KindFortification, Elem: *elem, ZoneID: z.ID, Fortification: fort}
		if err := f.Store.Insert(obj); err != nil {
			return internalError(f.diag(z, pos), "%v", err)
		}
		z.NeutralCities = append(z.NeutralCities, id)
		z.addRoadNode(elem.Entrance())

		if cd.HasGuard {
			if _, err := f.guardObject(z, id, accessible, cd.Owner, cd.Subrace, cd.GuardValue); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Filler) pickCityName() string {
	if len(f.Catalog.CityNames.Names) == 0 {
		return ""
	}
	return f.Catalog.CityNames.Names[f.RNG.PickIndex(len(f.Catalog.CityNames.Names))]
}

// placeMerchants places z's merchant sites, each stocked by the loot
// composer and guarded.
func (f *Filler) placeMerchants(z *Zone, descs []template.MerchantDescription) error {
	for _, md := range descs {
		id, accessible, err := f.placeSite(z, objects.SiteMerchant)
		if err != nil {
			return err
		}
		loot, err := composer.ComposeLoot(f.RNG, f.Catalog, composer.LootSpec{
			Value:        rng.RandomValue{Min: md.ItemValueMin * md.ItemCount, Max: md.ItemValueMax * md.ItemCount},
			AllowedTypes: []string{"Weapon", "Armor", "Consumable"}, // merchants never stock Valuable
		})
		if err != nil {
			return catalogMissing(f.diag(z, grid.Position{}), err)
		}
		obj, _ := f.Store.Get(id)
		obj.Site.Items = loot
		text := f.Catalog.SiteTextsFor(objects.SiteMerchant.String())
		images := f.Catalog.SiteImagesFor(objects.SiteMerchant.String())
		f.applySiteText(obj.Site, text, images)
		z.Merchants = append(z.Merchants, id)

		if _, err := f.guardObject(z, id, accessible, "", "", 0); err != nil {
			return err
		}
	}
	return nil
}

// placeMages places z's mage guild sites, filling each spellbook with
// 1 to 4 distinct spells from the guild's level range.
func (f *Filler) placeMages(z *Zone, descs []template.MageDescription) error {
	for _, md := range descs {
		id, accessible, err := f.placeSite(z, objects.SiteMage)
		if err != nil {
			return err
		}
		obj, _ := f.Store.Get(id)
		obj.Site.Spells = f.pickSpells(md.SpellLevelMin, md.SpellLevelMax)
		text := f.Catalog.SiteTextsFor(objects.SiteMage.String())
		images := f.Catalog.SiteImagesFor(objects.SiteMage.String())
		f.applySiteText(obj.Site, text, images)
		z.Mages = append(z.Mages, id)

		if _, err := f.guardObject(z, id, accessible, "", "", 0); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) pickSpells(levelMin, levelMax int) []string {
	var picked []string
	seen := map[string]bool{}
	desired := f.RNG.IntRange(1, 4)
	total := 0
	for total < desired {
		var candidates []*catalog.Spell
		for i := range f.Catalog.Spells {
			s := &f.Catalog.Spells[i]
			if seen[s.ID] || s.Level < levelMin || s.Level > levelMax {
				continue
			}
			candidates = append(candidates, s)
		}
		if len(candidates) == 0 {
			break
		}
		pick := candidates[f.RNG.PickIndex(len(candidates))]
		picked = append(picked, pick.ID)
		seen[pick.ID] = true
		total++
	}
	return picked
}

// placeMercenaries places z's mercenary camps, each offering 1 to 3
// units drawn from the whole catalog unit pool; the description's
// fields do not constrain the pick.
func (f *Filler) placeMercenaries(z *Zone, descs []template.MercenaryDescription) error {
	for range descs {
		id, accessible, err := f.placeSite(z, objects.SiteMercenary)
		if err != nil {
			return err
		}
		obj, _ := f.Store.Get(id)
		obj.Site.Units = f.pickMercenaryUnits()
		z.Mercenaries = append(z.Mercenaries, id)

		if _, err := f.guardObject(z, id, accessible, "", "", 0); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) pickMercenaryUnits() []string {
	n := f.RNG.IntRange(1, 3)
	var out []string
	for i := 0; i < n && i < len(f.Catalog.Units); i++ {
		out = append(out, f.Catalog.Units[f.RNG.PickIndex(len(f.Catalog.Units))].ID)
	}
	return out
}

// placeTrainers places z's trainer sites, offering units from a
// subrace-scoped pool.
func (f *Filler) placeTrainers(z *Zone, descs []template.TrainerDescription) error {
	for _, td := range descs {
		id, accessible, err := f.placeSite(z, objects.SiteTrainer)
		if err != nil {
			return err
		}
		obj, _ := f.Store.Get(id)
		pool := f.Catalog.Units
		if td.UnitSubrace != "" {
			pool = derefUnits(f.Catalog.UnitsBySubrace(td.UnitSubrace))
		}
		obj.Site.Stock = len(pool)
		z.Trainers = append(z.Trainers, id)

		if _, err := f.guardObject(z, id, accessible, "", "", 0); err != nil {
			return err
		}
	}
	return nil
}

func derefUnits(units []*catalog.Unit) []catalog.Unit {
	out := make([]catalog.Unit, len(units))
	for i, u := range units {
		out[i] = *u
	}
	return out
}

// placeMarkets places z's resource exchange markets.
func (f *Filler) placeMarkets(z *Zone, descs []template.MarketDescription) error {
	for _, mk := range descs {
		id, accessible, err := f.placeSite(z, objects.SiteMarket)
		if err != nil {
			return err
		}
		obj, _ := f.Store.Get(id)
		rates := make(map[string]float64, len(mk.ResourceTypes))
		for _, res := range mk.ResourceTypes {
			rates[res] = 1.0 + f.RNG.Float64Range(0, 0.5)
		}
		obj.Site.ExchangeRates = rates
		z.Markets = append(z.Markets, id)

		if _, err := f.guardObject(z, id, accessible, "", "", 0); err != nil {
			return err
		}
	}
	return nil
}

// placeSite runs the 3x3, minDistance-6 site probe shared by every
// site sub-placer, retrying once on CannotFit/SealedOff before
// reporting LackOfSpace.
func (f *Filler) placeSite(z *Zone, kind objects.SiteType) (grid.ObjectID, grid.Position, error) {
	elem := &objects.MapElement{Width: 3, Height: 3}
	for attempt := 0; attempt < 2; attempt++ {
		pos, ok := FindPlaceForObject(f.TM, z, z.SortedPossibleTiles(), elem, siteMinDistance, true)
		if !ok {
			return 0, grid.Position{}, lackOfSpace(f.diag(z, grid.Position{}), "no room for %s site", kind)
		}
		outcome, accessible := TryToPlaceObjectAndConnectToPath(f.TM, z, elem, pos)
		if outcome == Success {
			id := f.Store.MintID()
			obj := &objects.Object{
				ID: id, Kind: objects.KindSite, Elem: *elem, ZoneID: z.ID,
				Site: &objects.Site{Type: kind},
			}
			if err := f.Store.Insert(obj); err != nil {
				return 0, grid.Position{}, internalError(f.diag(z, pos), "%v", err)
			}
			z.addRoadNode(elem.Entrance())
			return id, accessible, nil
		}
	}
	return 0, grid.Position{}, lackOfSpace(f.diag(z, grid.Position{}), "no room for %s site after retry", kind)
}

func (f *Filler) applySiteText(site *objects.Site, texts *catalog.SiteTextPool, images *catalog.SiteImageSet) {
	if texts != nil && len(texts.Titles) > 0 {
		site.Title = texts.Titles[f.RNG.PickIndex(len(texts.Titles))]
	}
	if texts != nil && len(texts.Descriptions) > 0 {
		site.Description = texts.Descriptions[f.RNG.PickIndex(len(texts.Descriptions))]
	}
	if images != nil && len(images.Images) > 0 {
		site.Image = images.Images[f.RNG.PickIndex(len(images.Images))]
	}
}

// placeRuins places z's ruins, each holding gold and at most one item,
// and guarded when its GuardValue is positive.
func (f *Filler) placeRuins(z *Zone, descs []template.RuinDescription) error {
	elem := &objects.MapElement{Width: 3, Height: 3}
	for _, rd := range descs {
		pos, ok := FindPlaceForObject(f.TM, z, z.SortedPossibleTiles(), elem, siteMinDistance, true)
		if !ok {
			return lackOfSpace(f.diag(z, grid.Position{}), "no room for ruin")
		}
		outcome, accessible := TryToPlaceObjectAndConnectToPath(f.TM, z, elem, pos)
		if outcome != Success {
			return lackOfSpace(f.diag(z, pos), "ruin placement failed: %v", outcome)
		}

		ruin := &objects.Ruin{Gold: f.RNG.IntRange(rd.ValueMin, rd.ValueMax)}
		loot, err := composer.ComposeLoot(f.RNG, f.Catalog, composer.LootSpec{Value: rng.RandomValue{Min: rd.ValueMin, Max: rd.ValueMax}})
		if err != nil {
			return catalogMissing(f.diag(z, pos), err)
		}
		if len(loot) > 0 {
			ruin.ItemID = loot[0]
		}

		id := f.Store.MintID()
		obj := &objects.Object{ID: id, Kind: objects.KindRuin, Elem: *elem, ZoneID: z.ID, Ruin: ruin}
		if err := f.Store.Insert(obj); err != nil {
			return internalError(f.diag(z, pos), "%v", err)
		}
		z.Ruins = append(z.Ruins, id)
		z.addRoadNode(elem.Entrance())

		if rd.GuardValue > 0 {
			if _, err := f.guardObject(z, id, accessible, "", "", rd.GuardValue); err != nil {
				return err
			}
		}
	}
	return nil
}

// placeMines places resource crystals for each declared mine kind. The
// first crystal of a given resource is a close object, placed near the
// zone's pos with retry-on-SealedOff. A second crystal of the same
// resource is a required object instead: FindPlaceForObject with
// minDistance = 2*elem.Width, and SealedOff is fatal rather than
// retried.
func (f *Filler) placeMines(z *Zone, mines []template.MineKind) error {
	seen := make(map[template.MineKind]int, len(mines))
	for _, mk := range mines {
		z.Mines[mk]++
		elem := &objects.MapElement{Width: 1, Height: 1}
		index := seen[mk]
		seen[mk]++

		var pos grid.Position
		if index == 0 {
			outcome, err := f.placeCloseObject(z, elem, z.Pos)
			if err != nil {
				return err
			}
			if outcome != Success {
				continue
			}
			pos = elem.Pos
		} else {
			candidate, ok := FindPlaceForObject(f.TM, z, z.SortedPossibleTiles(), elem, 2*float32(elem.Width), true)
			if !ok {
				return lackOfSpace(f.diag(z, z.Pos), "no room for second %s crystal", mk)
			}
			outcome, _ := TryToPlaceObjectAndConnectToPath(f.TM, z, elem, candidate)
			if outcome != Success {
				return lackOfSpace(f.diag(z, candidate), "second %s crystal placement failed: %v", mk, outcome)
			}
			pos = elem.Pos
		}

		id := f.Store.MintID()
		obj := &objects.Object{
			ID: id, Kind: objects.KindCrystal, Elem: *elem, ZoneID: z.ID,
			Crystal: &objects.Crystal{Resource: string(mk)},
		}
		if err := f.Store.Insert(obj); err != nil {
			return internalError(f.diag(z, pos), "%v", err)
		}
		if index > 0 {
			z.RequiredObjects = append(z.RequiredObjects, id)
		}
	}
	return nil
}

// placeCloseObject runs the close-object placement algorithm: sort
// candidate tiles by (ascending distance to target, descending nearest
// object distance), penalizing candidates beyond closeObjectRadius,
// and attempt placement in that order, restarting the sort after a
// SealedOff.
func (f *Filler) placeCloseObject(z *Zone, elem *objects.MapElement, target grid.Position) (PlaceOutcome, error) {
	for {
		candidates := z.SortedPossibleTiles()
		scored := make([]closeCandidate, 0, len(candidates))
		for _, t := range candidates {
			d := t.SquaredDistance(target)
			score := d
			if d > closeObjectRadius*closeObjectRadius {
				score *= closeObjectPenalty
			}
			scored = append(scored, closeCandidate{pos: t, distScore: score, nearestObj: f.TM.GetNearestObjectDistance(t)})
		}
		sortCloseCandidates(scored)

		placed := false
		for _, c := range scored {
			probe := *elem
			probe.Pos = c.pos
			if probe.TouchesBorder(f.TM, c.pos) || !f.TM.IsPossible(c.pos) {
				continue
			}
			outcome, _ := TryToPlaceObjectAndConnectToPath(f.TM, z, elem, c.pos)
			switch outcome {
			case Success:
				return Success, nil
			case SealedOff:
				placed = true // retry with a fresh sort; possibleTiles changed
			case CannotFit:
				continue
			}
			if placed {
				break
			}
		}
		if placed {
			continue
		}
		return CannotFit, lackOfSpace(f.diag(z, target), "no room for close object")
	}
}

type closeCandidate struct {
	pos        grid.Position
	distScore  float32
	nearestObj float32
}

func sortCloseCandidates(cs []closeCandidate) {
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0; j-- {
			a, b := cs[j-1], cs[j]
			less := a.distScore < b.distScore || (a.distScore == b.distScore && a.nearestObj > b.nearestObj)
			if less {
				break
			}
			cs[j-1], cs[j] = cs[j], cs[j-1]
		}
	}
}

// placeStacks places z's declared combat stacks, composing each via
// the stack composer and, when required, failing the zone on a lack
// of space.
func (f *Filler) placeStacks(z *Zone, descs []template.StackDescription) error {
	for _, sd := range descs {
		elem := &objects.MapElement{Width: 1, Height: 1}
		area := z.SortedPossibleTiles()
		pos, ok := FindPlaceForObject(f.TM, z, area, elem, 1, true)
		if !ok {
			if sd.Required {
				return lackOfSpace(f.diag(z, grid.Position{}), "no room for required stack")
			}
			continue
		}
		outcome, _ := TryToPlaceObjectAndConnectToPath(f.TM, z, elem, pos)
		if outcome != Success {
			if sd.Required {
				return lackOfSpace(f.diag(z, pos), "stack placement failed: %v", outcome)
			}
			continue
		}

		composed, err := composer.ComposeStack(f.RNG, f.Catalog, composer.StackSpec{
			Value:   rng.RandomValue{Min: sd.ValueMin, Max: sd.ValueMax},
			Owner:   sd.Owner,
			Subrace: sd.Subrace,
		})
		if err != nil {
			return catalogMissing(f.diag(z, pos), err)
		}

		id := f.Store.MintID()
		obj := &objects.Object{
			ID: id, Kind: objects.KindStack, Elem: *elem, ZoneID: z.ID,
			Stack: &objects.Stack{Group: composed.Group, Owner: sd.Owner, Subrace: sd.Subrace},
		}
		if err := f.Store.Insert(obj); err != nil {
			return internalError(f.diag(z, pos), "%v", err)
		}
		z.Stacks = append(z.Stacks, id)
		if sd.Required {
			z.RequiredObjects = append(z.RequiredObjects, id)
		}
	}
	return nil
}

// placeBags places z's loose item piles.
func (f *Filler) placeBags(z *Zone, descs []template.BagDescription) error {
	for _, bd := range descs {
		elem := &objects.MapElement{Width: 1, Height: 1}
		pos, ok := FindPlaceForObject(f.TM, z, z.SortedPossibleTiles(), elem, 1, true)
		if !ok {
			continue
		}
		outcome, _ := TryToPlaceObjectAndConnectToPath(f.TM, z, elem, pos)
		if outcome != Success {
			continue
		}

		loot, err := composer.ComposeLoot(f.RNG, f.Catalog, composer.LootSpec{
			Value:         rng.RandomValue{Min: bd.ValueMin, Max: bd.ValueMax},
			RequiredItems: bd.RequiredItems,
		})
		if err != nil {
			return catalogMissing(f.diag(z, pos), err)
		}

		id := f.Store.MintID()
		image := ""
		if len(f.Catalog.BagImages.Land) > 0 {
			image = f.Catalog.BagImages.Land[f.RNG.PickIndex(len(f.Catalog.BagImages.Land))]
		}
		obj := &objects.Object{
			ID: id, Kind: objects.KindBag, Elem: *elem, ZoneID: z.ID,
			Bag: &objects.Bag{Image: image, ItemIDs: loot},
		}
		if err := f.Store.Insert(obj); err != nil {
			return internalError(f.diag(z, pos), "%v", err)
		}
		z.Bags = append(z.Bags, id)
	}
	return nil
}

// guardObject places a combat stack at guardPos to protect the
// already-placed object inside, owned by owner (falling back to
// "neutral") and sized to guardValue.
func (f *Filler) guardObject(z *Zone, inside grid.ObjectID, guardPos grid.Position, owner, subrace string, guardValue int) (grid.ObjectID, error) {
	if guardValue <= 0 {
		guardValue = 10
	}
	if owner == "" {
		owner = "neutral"
	}
	composed, err := composer.ComposeStack(f.RNG, f.Catalog, composer.StackSpec{
		Value:   rng.RandomValue{Min: guardValue, Max: guardValue + guardValue/2},
		Owner:   owner,
		Subrace: subrace,
	})
	if err != nil {
		return 0, catalogMissing(f.diag(z, guardPos), err)
	}

	id := f.Store.MintID()
	elem := objects.MapElement{Width: 1, Height: 1, Pos: guardPos}
	obj := &objects.Object{
		ID: id, Kind: objects.KindStack, Elem: elem, ZoneID: z.ID,
		Stack: &objects.Stack{Group: composed.Group, Owner: owner, Subrace: subrace, Inside: inside},
	}
	if err := f.Store.Insert(obj); err != nil {
		return 0, internalError(f.diag(z, guardPos), "%v", err)
	}
	f.TM.SetOccupied(guardPos, grid.Used)
	z.dropPossible(guardPos)
	z.Stacks = append(z.Stacks, id)
	return id, nil
}
