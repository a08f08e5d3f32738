package objects

import (
	"fmt"
	"sort"

	"github.com/bartonsun/D2RSG/pkg/grid"
)

// Store owns every scenario object by id. Objects are immutable once
// inserted: callers that need to change a placed object's state build a
// new Object and re-insert under the same id is rejected, so in
// practice the whole object tree is built bottom-up before the zone
// filler ever touches the Store.
type Store struct {
	objects map[grid.ObjectID]*Object
	nextID  grid.ObjectID
}

// NewStore returns an empty object store.
func NewStore() *Store {
	return &Store{objects: make(map[grid.ObjectID]*Object)}
}

// MintID returns a fresh, never-before-issued object id.
func (s *Store) MintID() grid.ObjectID {
	s.nextID++
	return s.nextID
}

// Insert validates and adds o to the store. It is an error to insert
// under an id that was never minted by this store, or to insert twice
// under the same id.
func (s *Store) Insert(o *Object) error {
	if o.ID == 0 {
		return fmt.Errorf("objects: cannot insert object with zero id")
	}
	if o.ID > s.nextID {
		return fmt.Errorf("objects: id %d was never minted by this store", o.ID)
	}
	if _, exists := s.objects[o.ID]; exists {
		return fmt.Errorf("objects: id %d already inserted", o.ID)
	}
	if err := o.Validate(); err != nil {
		return err
	}
	s.objects[o.ID] = o
	return nil
}

// Get returns the object with the given id, or (nil, false) if absent.
func (s *Store) Get(id grid.ObjectID) (*Object, bool) {
	o, ok := s.objects[id]
	return o, ok
}

// All returns every stored object, ordered by id for deterministic
// iteration.
func (s *Store) All() []*Object {
	out := make([]*Object, 0, len(s.objects))
	for _, o := range s.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InZone returns every stored object whose ZoneID matches zone, ordered
// by id.
func (s *Store) InZone(zone grid.ZoneID) []*Object {
	var out []*Object
	for _, o := range s.All() {
		if o.ZoneID == zone {
			out = append(out, o)
		}
	}
	return out
}

// Count returns the number of stored objects.
func (s *Store) Count() int {
	return len(s.objects)
}
