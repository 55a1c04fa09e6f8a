package nuclide

// Set is an insertion-ordered set of IDs.
type Set struct {
	order []ID
	seen  map[ID]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[ID]struct{})}
}

// Add appends id unless it is already present. It reports whether id was added.
func (s *Set) Add(id ID) bool {
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id ID) bool {
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// IDs returns the IDs in insertion order. The slice is a copy.
func (s *Set) IDs() []ID {
	out := make([]ID, len(s.order))
	copy(out, s.order)
	return out
}
