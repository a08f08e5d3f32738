package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrCatalogMissing indicates a lookup for a unit/item/spell/leader/
// landmark id that the catalog does not contain.
var ErrCatalogMissing = errors.New("catalog: entry not found")

// Catalog is the full immutable set of external game data tables a
// scenario is generated against (spec.md's "Input 2").
type Catalog struct {
	Units    []Unit   `yaml:"units"`
	Items    []Item   `yaml:"items"`
	Spells   []Spell  `yaml:"spells"`
	Leaders  []Leader `yaml:"leaders"`
	Landmark []Landmark `yaml:"landmarks"`

	CityNames   CityNameTable          `yaml:"cityNames"`
	SiteTexts   []SiteTextPool         `yaml:"siteTexts"`
	SiteImages  []SiteImageSet         `yaml:"siteImages"`
	Mountains   MountainSizeTable      `yaml:"mountainSizes"`
	BagImages   BagImageSet            `yaml:"bagImages"`
	MinValues   MinLeaderSoldierValues `yaml:"minValues"`

	unitByID     map[string]*Unit
	itemByID     map[string]*Item
	spellByID    map[string]*Spell
	leaderByID   map[string]*Leader
	landmarkByID map[string]*Landmark
}

// LoadCatalog reads and validates a catalog from a YAML file at path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	return LoadCatalogFromBytes(data)
}

// LoadCatalogFromBytes parses and validates a catalog from YAML bytes.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: parsing YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.buildIndex()
	return &c, nil
}

// Validate checks structural requirements: every entry has a
// non-empty id, and the minimum-value thresholds are non-negative.
func (c *Catalog) Validate() error {
	for _, u := range c.Units {
		if u.ID == "" {
			return fmt.Errorf("catalog: unit entry with empty id")
		}
		if u.Value < 0 {
			return fmt.Errorf("catalog: unit %q has negative value %d", u.ID, u.Value)
		}
	}
	for _, i := range c.Items {
		if i.ID == "" {
			return fmt.Errorf("catalog: item entry with empty id")
		}
	}
	for _, s := range c.Spells {
		if s.ID == "" {
			return fmt.Errorf("catalog: spell entry with empty id")
		}
	}
	for _, l := range c.Leaders {
		if l.ID == "" {
			return fmt.Errorf("catalog: leader entry with empty id")
		}
	}
	for _, lm := range c.Landmark {
		if lm.ID == "" {
			return fmt.Errorf("catalog: landmark entry with empty id")
		}
		if lm.Width <= 0 || lm.Height <= 0 {
			return fmt.Errorf("catalog: landmark %q has non-positive size %dx%d", lm.ID, lm.Width, lm.Height)
		}
	}
	if c.MinValues.MinLeaderValue < 0 || c.MinValues.MinSoldierValue < 0 {
		return fmt.Errorf("catalog: minValues must be non-negative")
	}
	return nil
}

func (c *Catalog) buildIndex() {
	c.unitByID = make(map[string]*Unit, len(c.Units))
	for i := range c.Units {
		c.unitByID[c.Units[i].ID] = &c.Units[i]
	}
	c.itemByID = make(map[string]*Item, len(c.Items))
	for i := range c.Items {
		c.itemByID[c.Items[i].ID] = &c.Items[i]
	}
	c.spellByID = make(map[string]*Spell, len(c.Spells))
	for i := range c.Spells {
		c.spellByID[c.Spells[i].ID] = &c.Spells[i]
	}
	c.leaderByID = make(map[string]*Leader, len(c.Leaders))
	for i := range c.Leaders {
		c.leaderByID[c.Leaders[i].ID] = &c.Leaders[i]
	}
	c.landmarkByID = make(map[string]*Landmark, len(c.Landmark))
	for i := range c.Landmark {
		c.landmarkByID[c.Landmark[i].ID] = &c.Landmark[i]
	}
}

// Unit looks up a unit by id.
func (c *Catalog) Unit(id string) (*Unit, error) {
	if u, ok := c.unitByID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("catalog: unit %q: %w", id, ErrCatalogMissing)
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (*Item, error) {
	if it, ok := c.itemByID[id]; ok {
		return it, nil
	}
	return nil, fmt.Errorf("catalog: item %q: %w", id, ErrCatalogMissing)
}

// Spell looks up a spell by id.
func (c *Catalog) Spell(id string) (*Spell, error) {
	if s, ok := c.spellByID[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("catalog: spell %q: %w", id, ErrCatalogMissing)
}

// Leader looks up a leader by id.
func (c *Catalog) Leader(id string) (*Leader, error) {
	if l, ok := c.leaderByID[id]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("catalog: leader %q: %w", id, ErrCatalogMissing)
}

// LandmarkByID looks up a landmark by id.
func (c *Catalog) LandmarkByID(id string) (*Landmark, error) {
	if lm, ok := c.landmarkByID[id]; ok {
		return lm, nil
	}
	return nil, fmt.Errorf("catalog: landmark %q: %w", id, ErrCatalogMissing)
}

// UnitsBySubrace returns every unit whose Subrace matches, in catalog
// order, for callers filtering the recruitable pool for a zone owner.
func (c *Catalog) UnitsBySubrace(subrace string) []*Unit {
	var out []*Unit
	for i := range c.Units {
		if c.Units[i].Subrace == subrace {
			out = append(out, &c.Units[i])
		}
	}
	return out
}

// LeadersBySubrace returns every leader whose Subrace matches, in
// catalog order.
func (c *Catalog) LeadersBySubrace(subrace string) []*Leader {
	var out []*Leader
	for i := range c.Leaders {
		if c.Leaders[i].Subrace == subrace {
			out = append(out, &c.Leaders[i])
		}
	}
	return out
}

// SiteTextsFor returns the text pool registered for siteType, or nil
// if none is registered.
func (c *Catalog) SiteTextsFor(siteType string) *SiteTextPool {
	for i := range c.SiteTexts {
		if c.SiteTexts[i].SiteType == siteType {
			return &c.SiteTexts[i]
		}
	}
	return nil
}

// SiteImagesFor returns the image set registered for siteType, or nil
// if none is registered.
func (c *Catalog) SiteImagesFor(siteType string) *SiteImageSet {
	for i := range c.SiteImages {
		if c.SiteImages[i].SiteType == siteType {
			return &c.SiteImages[i]
		}
	}
	return nil
}

// LandmarksForSize returns the landmark ids eligible for a mountain of
// the given size class.
func (c *Catalog) LandmarksForSize(size string) []string {
	for _, e := range c.Mountains.Entries {
		if e.Size == size {
			return e.LandmarkID
		}
	}
	return nil
}
