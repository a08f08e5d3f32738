package catalog

// Unit is a single recruitable creature entry.
type Unit struct {
	ID         string `yaml:"id"`
	Value      int    `yaml:"value"`
	EnrollCost int    `yaml:"enrollCost"`
	Level      int    `yaml:"level"`
	HP         int    `yaml:"hp"`
	Move       int    `yaml:"move"`
	Reach      string `yaml:"reach"`
	IsBig      bool   `yaml:"isBig"`
	Subrace    string `yaml:"subrace"`
	Leadership int    `yaml:"leadership"` // leadership points this unit consumes in a leader's group
}

// Item is a single inventory item entry.
type Item struct {
	ID    string `yaml:"id"`
	Type  string `yaml:"type"`
	Value int    `yaml:"value"`
}

// Spell is a single learnable spell entry.
type Spell struct {
	ID    string `yaml:"id"`
	Type  string `yaml:"type"`
	Level int    `yaml:"level"`
	Value int    `yaml:"value"`
}

// Leader is a hero unit eligible for the leader slot.
type Leader struct {
	ID             string `yaml:"id"`
	Value          int    `yaml:"value"`
	Subrace        string `yaml:"subrace"`
	BaseLeadership int    `yaml:"baseLeadership"`
}

// Landmark is a decorative or obstacle-substituting terrain feature.
type Landmark struct {
	ID         string `yaml:"id"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	IsMountain bool   `yaml:"isMountain"`
	Type       string `yaml:"type"`
}

// CityNameTable is a flat pool of unused-until-drawn city names.
type CityNameTable struct {
	Names []string `yaml:"names"`
}

// SiteTextPool holds the title/description strings a site of a given
// type may be drawn from.
type SiteTextPool struct {
	SiteType     string   `yaml:"siteType"`
	Titles       []string `yaml:"titles"`
	Descriptions []string `yaml:"descriptions"`
}

// SiteImageSet holds the image ids a site of a given type may draw
// from.
type SiteImageSet struct {
	SiteType string   `yaml:"siteType"`
	Images   []string `yaml:"images"`
}

// MountainSizeEntry is one row of the mountain size table: a size
// class and the landmark ids eligible for it.
type MountainSizeEntry struct {
	Size       string   `yaml:"size"`
	LandmarkID []string `yaml:"landmarkIds"`
}

// MountainSizeTable is the full ordered set of mountain size entries.
type MountainSizeTable struct {
	Entries []MountainSizeEntry `yaml:"entries"`
}

// BagImageSet holds the image ids usable for bags on land and on
// water.
type BagImageSet struct {
	Land  []string `yaml:"land"`
	Water []string `yaml:"water"`
}

// MinLeaderSoldierValues is the global floor below which a stack
// spec's value is too small to field a leader.
type MinLeaderSoldierValues struct {
	MinLeaderValue  int `yaml:"minLeaderValue"`
	MinSoldierValue int `yaml:"minSoldierValue"`
}
