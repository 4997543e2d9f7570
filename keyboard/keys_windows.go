package keyboard

import "github.com/micmonay/keybd_event"

const (
	enterCode     = keybd_event.VK_ENTER
	tabCode       = keybd_event.VK_TAB
	backspaceCode = keybd_event.VK_BACKSPACE
)
