package timezones

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
	_ "time/tzdata"
)

// ErrUnknownZone is returned when a name is not part of the recognized set.
var ErrUnknownZone = errors.New("timezones: unknown zone")

// Set is an immutable collection of recognized zone names. Locations are
// loaded lazily and cached, so a Set may be shared across goroutines.
type Set struct {
	names []string
	index map[string]struct{}

	mu        sync.RWMutex
	locations map[string]*time.Location
}

// NewSet builds a set from the supplied names. Empty names are skipped.
func NewSet(names []string) *Set {
	set := &Set{
		index:     make(map[string]struct{}, len(names)),
		locations: make(map[string]*time.Location),
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := set.index[name]; ok {
			continue
		}
		set.index[name] = struct{}{}
		set.names = append(set.names, name)
	}
	sort.Strings(set.names)
	return set
}

// Names returns a sorted copy of the zone names.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s.names...)
}

// Len reports the number of names in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Contains reports whether name is a recognized zone. Matching is exact and
// case-sensitive.
func (s *Set) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Location resolves a recognized zone name to its location.
func (s *Set) Location(name string) (*time.Location, error) {
	if !s.Contains(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}

	s.mu.RLock()
	loc, ok := s.locations[name]
	s.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezones: load %q: %w", name, err)
	}

	s.mu.Lock()
	s.locations[name] = loc
	s.mu.Unlock()
	return loc, nil
}

// Localize attaches the named zone to the wall clock of t. The clock reading
// is kept as-is, so the instant changes unless the zone matches t's offset.
func (s *Set) Localize(t time.Time, name string) (time.Time, error) {
	loc, err := s.Location(name)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
}

// ToUTC converts t to the canonical UTC representation used for storage.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}
