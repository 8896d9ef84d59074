// Package sparse provides the activation sets used by the NFA engine.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of its members. The membership side acts as the
// boolean activation vector of an automaton run; the dense side lets a step
// visit only the nodes that are actually active.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
// It maintains a sparse array (value -> index in dense) and a dense array of
// members in insertion order. Neither array is ever reallocated after
// construction, so Insert and Clear never touch the heap.
type SparseSet struct {
	sparse []uint32 // Maps value -> index in dense
	dense  []uint32 // Members, insertion ordered
	size   uint32
}

// NewSparseSet creates a new sparse set able to hold values below capacity.
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, capacity),
	}
}

// Insert adds a value to the set.
// Returns false if the value was already present.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.dense[s.size] = value
	s.sparse[value] = s.size
	s.size++
	return true
}

// Contains returns true if the value is in the set.
// Values outside the capacity are never members.
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	// sparse may hold stale indices from before the last Clear; the dense
	// cross-check rejects them.
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Clear removes all elements from the set in O(1) time.
func (s *SparseSet) Clear() {
	s.size = 0
}

// Len returns the number of elements in the set.
func (s *SparseSet) Len() int {
	return int(s.size)
}

// IsEmpty returns true if the set contains no elements.
func (s *SparseSet) IsEmpty() bool {
	return s.size == 0
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Values returns the members in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense[:s.size]
}

// SparseSets is a double buffer of two equally sized sets.
// One set holds the current generation, the other receives the next one;
// Swap exchanges their roles without copying.
type SparseSets struct {
	Set1    *SparseSet
	Set2    *SparseSet
	swapped bool
}

// NewSparseSets creates a double buffer whose sets hold values below capacity.
func NewSparseSets(capacity uint32) *SparseSets {
	return &SparseSets{
		Set1: NewSparseSet(capacity),
		Set2: NewSparseSet(capacity),
	}
}

// Current returns the set holding the current generation.
func (ss *SparseSets) Current() *SparseSet {
	if ss.swapped {
		return ss.Set2
	}
	return ss.Set1
}

// Next returns the set that will hold the next generation.
func (ss *SparseSets) Next() *SparseSet {
	if ss.swapped {
		return ss.Set1
	}
	return ss.Set2
}

// Swap exchanges the current and next roles and returns the new current set.
func (ss *SparseSets) Swap() *SparseSet {
	ss.swapped = !ss.swapped
	return ss.Current()
}

// Clear empties both sets.
func (ss *SparseSets) Clear() {
	ss.Set1.Clear()
	ss.Set2.Clear()
}
