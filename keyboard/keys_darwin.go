package keyboard

import "github.com/micmonay/keybd_event"

// kVK_Delete (0x33) is the key labelled Delete on a Mac, which erases
// backwards.
const (
	enterCode     = keybd_event.VK_ENTER
	tabCode       = keybd_event.VK_TAB
	backspaceCode = keybd_event.VK_DELETE
)
