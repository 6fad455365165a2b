package conversation

// Set holds one ordered turn sequence per mode.
// Not safe for concurrent use; the owning session serializes access.
type Set struct {
	turns map[Mode][]Turn
}

// NewSet creates an empty set with a slot for every mode.
func NewSet() *Set {
	s := &Set{turns: make(map[Mode][]Turn, len(Modes))}
	for _, m := range Modes {
		s.turns[m] = nil
	}
	return s
}

// Append adds turns to the end of a mode's sequence.
func (s *Set) Append(m Mode, turns ...Turn) {
	s.turns[m] = append(s.turns[m], turns...)
}

// Replace discards a mode's sequence and starts it over with turns.
func (s *Set) Replace(m Mode, turns ...Turn) {
	s.turns[m] = append([]Turn(nil), turns...)
}

// Reset clears a single mode, leaving the others untouched.
func (s *Set) Reset(m Mode) {
	s.turns[m] = nil
}

// Turns returns a copy of a mode's sequence.
func (s *Set) Turns(m Mode) []Turn {
	return append([]Turn(nil), s.turns[m]...)
}

// Len returns the number of turns in a mode.
func (s *Set) Len(m Mode) int { return len(s.turns[m]) }

