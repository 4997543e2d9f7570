package hotkey

// Matcher tracks which keys of one chord are held. It is not safe for
// concurrent use; the Listener guards its Matchers with a mutex.
type Matcher struct {
	chord Chord
	held  map[Key]map[uint16]bool
}

func NewMatcher(c Chord) *Matcher {
	return &Matcher{chord: c, held: make(map[Key]map[uint16]bool, c.Len())}
}

func (m *Matcher) Chord() Chord { return m.chord }

// Press records k as held and reports whether this press completed the
// chord. A press of a key already held, such as auto-repeat, never
// completes it.
func (m *Matcher) Press(k Key) bool { return m.PressCode(k, 0) }

// Release records k as no longer held, re-arming the chord.
func (m *Matcher) Release(k Key) { m.ReleaseCode(k, 0) }

// PressCode is Press for the physical key code. k stays held until every
// code that pressed it is released, so letting go of one of two held Ctrl
// keys keeps Ctrl down.
func (m *Matcher) PressCode(k Key, code uint16) bool {
	if !m.chord.Contains(k) {
		return false
	}
	codes := m.held[k]
	if codes[code] {
		return false
	}
	if codes == nil {
		codes = make(map[uint16]bool, 1)
		m.held[k] = codes
	}
	codes[code] = true
	return len(codes) == 1 && len(m.held) == m.chord.Len()
}

func (m *Matcher) ReleaseCode(k Key, code uint16) {
	codes := m.held[k]
	delete(codes, code)
	if len(codes) == 0 {
		delete(m.held, k)
	}
}
