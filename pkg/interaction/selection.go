package interaction

// Selection holds the active index of one chart instance. The zero value
// has no selection.
type Selection struct {
	index int
	set   bool
}

// Apply updates the selection from a resolved position: valid positions
// select their index, NoPosition clears it.
func (s *Selection) Apply(p Position) {
	if !p.Valid {
		s.Clear()
		return
	}
	s.index, s.set = p.ActiveIndex, true
}

// Set selects index i clamped to [0, length-1]. With no data the
// selection is cleared.
func (s *Selection) Set(i, length int) {
	if length <= 0 {
		s.Clear()
		return
	}
	s.index, s.set = Clamp(i, length), true
}

// Clear removes the selection.
func (s *Selection) Clear() { s.index, s.set = 0, false }

// Get returns the active index and whether one is set.
func (s *Selection) Get() (int, bool) { return s.index, s.set }

// Reclamp keeps the selection within a new length after data changes.
func (s *Selection) Reclamp(length int) {
	if s.set {
		s.Set(s.index, length)
	}
}
