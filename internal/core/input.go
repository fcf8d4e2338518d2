package core

import (
	"sync"
	"time"
)

// KeyReader is the read side of held-key state, consumed once per frame.
type KeyReader interface {
	// Held reports whether the named key is currently down.
	// Unknown keys are never held.
	Held(key string) bool
}

// KeyState is a snapshot of which keys are held down, keyed by key name.
// A host's input listener writes it and the frame loop reads it.
//
// Writes are ignored while the state is detached, which mirrors removing
// the listener from the event source.
type KeyState struct {
	mu       sync.RWMutex
	held     map[string]press
	attached bool
}

// press spans a hold: the first event and the latest repeat.
type press struct {
	first, last time.Time
}

// NewKeyState creates a detached key state with no keys held.
func NewKeyState() *KeyState {
	return &KeyState{held: make(map[string]press)}
}

// Attach starts accepting key events. All keys start released.
func (k *KeyState) Attach() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.attached = true
	clear(k.held)
}

// Detach stops accepting key events and releases every key.
func (k *KeyState) Detach() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.attached = false
	clear(k.held)
}

// Attached reports whether the state is accepting key events.
func (k *KeyState) Attached() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.attached
}

// Press marks a key as held.
func (k *KeyState) Press(key string) {
	k.PressAt(key, time.Time{})
}

// PressAt marks a key as held and records when the press arrived. A press
// of a key that is already held counts as an auto-repeat. Hosts without
// key-up events use the timestamps to expire stale presses.
func (k *KeyState) PressAt(key string, at time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.attached {
		return
	}
	p, ok := k.held[key]
	if !ok {
		p.first = at
	}
	p.last = at
	k.held[key] = p
}

// Release marks a key as no longer held.
func (k *KeyState) Release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.held, key)
}

// ReleaseStale releases keys that stopped repeating. A key that has not
// repeated yet gets the initial window, which must cover the terminal's
// auto-repeat delay. Once it repeats, the shorter repeat window applies.
// Keys pressed without a timestamp are left alone.
func (k *KeyState) ReleaseStale(now time.Time, initial, repeat time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key, p := range k.held {
		if p.last.IsZero() {
			continue
		}
		window := repeat
		if p.last.Equal(p.first) {
			window = initial
		}
		if now.Sub(p.last) > window {
			delete(k.held, key)
		}
	}
}

// Held reports whether the named key is currently down.
func (k *KeyState) Held(key string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.held[key]
	return ok
}
