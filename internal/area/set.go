package area

import "strings"

// MapSet implements Set using a map for O(1) lookups.
type MapSet struct {
	codes map[string]struct{}
}

// NewMapSet creates a new map-based area set.
func NewMapSet(capacity int) *MapSet {
	return &MapSet{
		codes: make(map[string]struct{}, capacity),
	}
}

// Normalize trims and upper-cases an area code so "560001 " and "560001" match.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Contains checks if an area code exists in the set.
func (s *MapSet) Contains(code string) bool {
	_, exists := s.codes[Normalize(code)]
	return exists
}

// Size returns the number of area codes in the set.
func (s *MapSet) Size() int {
	return len(s.codes)
}

// Add adds an area code to the set. Blank codes are ignored.
func (s *MapSet) Add(code string) {
	if code = Normalize(code); code != "" {
		s.codes[code] = struct{}{}
	}
}
