package hotkey

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// names maps every accepted <name> token to its key. Side-specific names
// collapse onto the shared identity.
var names = map[string]Key{
	"ctrl": KeyCtrl, "control": KeyCtrl, "ctrl_l": KeyCtrl, "ctrl_r": KeyCtrl,
	"shift": KeyShift, "shift_l": KeyShift, "shift_r": KeyShift,
	"alt": KeyAlt, "option": KeyAlt, "alt_l": KeyAlt, "alt_r": KeyAlt, "alt_gr": KeyAlt,
	"cmd": KeyCmd, "cmd_l": KeyCmd, "cmd_r": KeyCmd, "super": KeyCmd, "win": KeyCmd, "meta": KeyCmd,

	"esc":       KeyEsc,
	"escape":    KeyEsc,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"space":     KeySpace,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"insert":    KeyInsert,
	"home":      KeyHome,
	"end":       KeyEnd,
	"page_up":   KeyPageUp,
	"page_down": KeyPageDown,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"caps_lock": KeyCapsLock,

	"f1": "f1", "f2": "f2", "f3": "f3", "f4": "f4", "f5": "f5", "f6": "f6",
	"f7": "f7", "f8": "f8", "f9": "f9", "f10": "f10", "f11": "f11", "f12": "f12",
}

// Chord is a set of keys that must be held together.
type Chord struct {
	keys []Key
}

// Keys returns the chord's keys in the order they were written.
func (c Chord) Keys() []Key {
	return slices.Clone(c.keys)
}

func (c Chord) Contains(k Key) bool {
	return slices.Contains(c.keys, k)
}

func (c Chord) Len() int { return len(c.keys) }

// String returns the chord in canonical syntax.
func (c Chord) String() string {
	parts := make([]string, len(c.keys))
	for i, k := range c.keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, "+")
}

// ParseChord parses tokens joined by '+'. It returns a *FormatError for an
// empty chord, an empty token, an unknown name, a literal longer than one
// character or without a physical key, and a key listed twice.
func ParseChord(s string) (Chord, error) {
	if strings.TrimSpace(s) == "" {
		return Chord{}, &FormatError{Chord: s, Reason: "empty chord"}
	}
	var c Chord
	for _, tok := range strings.Split(s, "+") {
		k, reason := parseToken(tok)
		if reason != "" {
			return Chord{}, &FormatError{Chord: s, Token: tok, Reason: reason}
		}
		if c.Contains(k) {
			return Chord{}, &FormatError{Chord: s, Token: tok, Reason: "duplicate key"}
		}
		c.keys = append(c.keys, k)
	}
	return c, nil
}

// MustParseChord is ParseChord for chords known to be valid.
func MustParseChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseKey parses a single chord token.
func ParseKey(tok string) (Key, error) {
	k, reason := parseToken(tok)
	if reason != "" {
		return "", &FormatError{Chord: tok, Token: tok, Reason: reason}
	}
	return k, nil
}

func parseToken(tok string) (Key, string) {
	switch {
	case tok == "":
		return "", "empty key"
	case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">") && len(tok) > 2:
		k, ok := names[strings.ToLower(tok[1:len(tok)-1])]
		if !ok {
			return "", "unknown key name"
		}
		return k, ""
	case utf8.RuneCountInString(tok) != 1:
		return "", "expected one character, got"
	}
	k := Key(strings.ToLower(tok))
	if !literalKeys[k] {
		return "", "no physical key for"
	}
	return k, ""
}
