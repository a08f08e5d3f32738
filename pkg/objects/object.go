package objects

import (
	"fmt"

	"github.com/bartonsun/D2RSG/pkg/grid"
)

// Kind discriminates the scenario object variants.
type Kind int

const (
	KindFortification Kind = iota
	KindStack
	KindSite
	KindRuin
	KindCrystal
	KindBag
	KindLandmark
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindFortification:
		return "Fortification"
	case KindStack:
		return "Stack"
	case KindSite:
		return "Site"
	case KindRuin:
		return "Ruin"
	case KindCrystal:
		return "Crystal"
	case KindBag:
		return "Bag"
	case KindLandmark:
		return "Landmark"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FortificationType distinguishes a Village from the player's Capital.
type FortificationType int

const (
	Village FortificationType = iota
	Capital
)

// Fortification is a garrisoned settlement: the zone owner's Capital or
// a neutral/enemy Village.
type Fortification struct {
	Type           FortificationType
	Garrison       Group
	VisitorStackID grid.ObjectID // 0 if no visiting stack is parked outside
	Owner          string        // player/race id
	Subrace        string
	Name           string
	Tier           int
	Gap            GapMask
	Inventory      []string
}

// Stack is a free-standing or guarding combat group.
type Stack struct {
	Group    Group
	Owner    string
	Subrace  string
	Inside   grid.ObjectID // the object this stack guards; 0 if free-standing
	Facing   int
	Order    int
	Priority int
	Loot     []string
}

// SiteType distinguishes the five neutral site variants.
type SiteType int

const (
	SiteMerchant SiteType = iota
	SiteMage
	SiteMercenary
	SiteTrainer
	SiteMarket
)

// String returns the human-readable site type name.
func (s SiteType) String() string {
	switch s {
	case SiteMerchant:
		return "Merchant"
	case SiteMage:
		return "Mage"
	case SiteMercenary:
		return "Mercenary"
	case SiteTrainer:
		return "Trainer"
	case SiteMarket:
		return "ResourceMarket"
	default:
		return fmt.Sprintf("SiteType(%d)", int(s))
	}
}

// Site is a neutral service location: merchant, mage guild, mercenary
// camp, trainer, or resource market.
type Site struct {
	Type        SiteType
	Title       string
	Description string
	Image       string
	Priority    int

	Items         []string           // SiteMerchant
	Spells        []string           // SiteMage
	Units         []string           // SiteMercenary
	ExchangeRates map[string]float64 // SiteMarket: resource -> rate
	Stock         int                // SiteTrainer/SiteMarket
}

// Ruin is an optional treasure location guarded by a single combat
// group, yielding gold and one item on being looted.
type Ruin struct {
	Title  string
	Image  string
	Guard  Group
	Gold   int
	ItemID string
}

// Crystal is a harvestable resource node.
type Crystal struct {
	Resource string
}

// Bag is a loose pile of items with no guard.
type Bag struct {
	Image   string
	ItemIDs []string
}

// Landmark is a purely decorative or obstacle-substituting feature.
type Landmark struct {
	TypeID        string
	Width, Height int
	IsMountain    bool
}

// Object is the tagged-variant record every scenario object is stored
// as. Exactly one of the per-kind pointer fields matching Kind is
// non-nil.
type Object struct {
	ID     grid.ObjectID
	Kind   Kind
	Elem   MapElement
	ZoneID grid.ZoneID

	Fortification *Fortification
	Stack         *Stack
	Site          *Site
	Ruin          *Ruin
	Crystal       *Crystal
	Bag           *Bag
	Landmark      *Landmark
}

// IsRoadNode reports whether this object variant registers as a road
// network endpoint (fortifications and sites/ruins do; stacks, bags,
// crystals, and landmarks do not).
func (o *Object) IsRoadNode() bool {
	switch o.Kind {
	case KindFortification, KindSite, KindRuin:
		return true
	default:
		return false
	}
}

// TerrainPaint returns the terrain this object's footprint should be
// painted with on placement, and whether any painting should happen at
// all. Capitals and villages paint their owning race's terrain;
// everything else leaves terrain Neutral (the filler never paints
// terrain for stacks, sites, ruins, crystals, bags, or landmarks).
func (o *Object) TerrainPaint() (grid.Terrain, bool) {
	if o.Kind != KindFortification {
		return grid.TerrainNeutral, false
	}
	return terrainForRace(o.Fortification.Owner), true
}

// terrainForRace maps a race/owner id onto a grid.Terrain. Unknown or
// neutral owners paint Neutral.
func terrainForRace(owner string) grid.Terrain {
	switch owner {
	case "human":
		return grid.TerrainHuman
	case "undead":
		return grid.TerrainUndead
	case "heretic":
		return grid.TerrainHeretic
	case "dwarf":
		return grid.TerrainDwarf
	case "elf":
		return grid.TerrainElf
	default:
		return grid.TerrainNeutral
	}
}

// Validate performs the per-kind structural checks required before an
// Object may be inserted into a Store: exactly one variant pointer is
// set, it matches Kind, and the element has a positive footprint.
func (o *Object) Validate() error {
	if o.Elem.Width <= 0 || o.Elem.Height <= 0 {
		return fmt.Errorf("objects: %s has non-positive footprint %dx%d", o.Kind, o.Elem.Width, o.Elem.Height)
	}

	present := 0
	check := func(ok bool) {
		if ok {
			present++
		}
	}
	check(o.Fortification != nil)
	check(o.Stack != nil)
	check(o.Site != nil)
	check(o.Ruin != nil)
	check(o.Crystal != nil)
	check(o.Bag != nil)
	check(o.Landmark != nil)

	if present != 1 {
		return fmt.Errorf("objects: object must set exactly one variant, found %d", present)
	}

	switch o.Kind {
	case KindFortification:
		if o.Fortification == nil {
			return fmt.Errorf("objects: Kind=Fortification but Fortification is nil")
		}
	case KindStack:
		if o.Stack == nil {
			return fmt.Errorf("objects: Kind=Stack but Stack is nil")
		}
	case KindSite:
		if o.Site == nil {
			return fmt.Errorf("objects: Kind=Site but Site is nil")
		}
	case KindRuin:
		if o.Ruin == nil {
			return fmt.Errorf("objects: Kind=Ruin but Ruin is nil")
		}
	case KindCrystal:
		if o.Crystal == nil {
			return fmt.Errorf("objects: Kind=Crystal but Crystal is nil")
		}
	case KindBag:
		if o.Bag == nil {
			return fmt.Errorf("objects: Kind=Bag but Bag is nil")
		}
	case KindLandmark:
		if o.Landmark == nil {
			return fmt.Errorf("objects: Kind=Landmark but Landmark is nil")
		}
	default:
		return fmt.Errorf("objects: unknown kind %v", o.Kind)
	}

	return nil
}
