package hotkey

// setOne maps PC set-1 scancodes to keys. Linux evdev KEY_* codes and
// libuiohook VC_* codes both use set-1 values for the main block, so the
// table is shared; each source adds its own codes for the extended keys.
var setOne = map[uint16]Key{
	0x01: KeyEsc,
	0x02: "1", 0x03: "2", 0x04: "3", 0x05: "4", 0x06: "5",
	0x07: "6", 0x08: "7", 0x09: "8", 0x0A: "9", 0x0B: "0",
	0x0C: "-", 0x0D: "=",
	0x0E: KeyBackspace,
	0x0F: KeyTab,
	0x10: "q", 0x11: "w", 0x12: "e", 0x13: "r", 0x14: "t",
	0x15: "y", 0x16: "u", 0x17: "i", 0x18: "o", 0x19: "p",
	0x1A: "[", 0x1B: "]",
	0x1C: KeyEnter,
	0x1D: KeyCtrl,
	0x1E: "a", 0x1F: "s", 0x20: "d", 0x21: "f", 0x22: "g",
	0x23: "h", 0x24: "j", 0x25: "k", 0x26: "l",
	0x27: ";", 0x28: "'", 0x29: "`",
	0x2A: KeyShift,
	0x2B: "\\",
	0x2C: "z", 0x2D: "x", 0x2E: "c", 0x2F: "v", 0x30: "b",
	0x31: "n", 0x32: "m",
	0x33: ",", 0x34: ".", 0x35: "/",
	0x36: KeyShift,
	0x38: KeyAlt,
	0x39: KeySpace,
	0x3A: KeyCapsLock,
	0x3B: "f1", 0x3C: "f2", 0x3D: "f3", 0x3E: "f4", 0x3F: "f5",
	0x40: "f6", 0x41: "f7", 0x42: "f8", 0x43: "f9", 0x44: "f10",
	0x57: "f11", 0x58: "f12",
}

// literalKeys holds every single-character key a chord may name.
var literalKeys = func() map[Key]bool {
	m := make(map[Key]bool)
	for _, k := range setOne {
		if len(k) == 1 {
			m[k] = true
		}
	}
	return m
}()

// canonical resolves a platform scancode, consulting the platform's
// extended table before the shared one.
func canonical(extended map[uint16]Key, code uint16) (Key, bool) {
	if k, ok := extended[code]; ok {
		return k, true
	}
	k, ok := setOne[code]
	return k, ok
}
