package hotkey

import "sync"

// FakeSource is a Source driven by the Sim methods.
type FakeSource struct {
	events chan KeyEvent

	mu           sync.Mutex
	registerErr  error
	registered   int
	unregistered int
}

func NewFake() *FakeSource {
	return &FakeSource{events: make(chan KeyEvent, 64)}
}

// FailRegister makes the next Register calls return err.
func (f *FakeSource) FailRegister(err error) {
	f.mu.Lock()
	f.registerErr = err
	f.mu.Unlock()
}

func (f *FakeSource) Register() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered++
	return nil
}

func (f *FakeSource) Unregister() {
	f.mu.Lock()
	f.unregistered++
	f.mu.Unlock()
}

func (f *FakeSource) Events() <-chan KeyEvent { return f.events }

// Registrations returns how many times Register succeeded.
func (f *FakeSource) Registrations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered
}

func (f *FakeSource) Unregistrations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unregistered
}

func (f *FakeSource) SimPress(k Key)   { f.events <- KeyEvent{Key: k, Down: true} }
func (f *FakeSource) SimRelease(k Key) { f.events <- KeyEvent{Key: k, Down: false} }

// Sim delivers ev as is, for events that need a scancode.
func (f *FakeSource) Sim(ev KeyEvent) { f.events <- ev }

// SimChord presses every key of c in order and releases them in reverse.
func (f *FakeSource) SimChord(c Chord) {
	keys := c.Keys()
	for _, k := range keys {
		f.SimPress(k)
	}
	for i := len(keys) - 1; i >= 0; i-- {
		f.SimRelease(keys[i])
	}
}
