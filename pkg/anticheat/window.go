package anticheat

import "sync"

// window is a fixed-capacity ring buffer of interactions with
// its own lock, independent of the solved flag: appends on one
// scenario never contend with solves or appends on another.
type window struct {
	mu     sync.Mutex
	buf    []Interaction
	next   int
	filled bool
}

func newWindow(capacity int) *window {
	return &window{buf: make([]Interaction, capacity)}
}

// append stores an interaction, evicting the oldest once the
// buffer is full.
func (w *window) append(in Interaction) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf[w.next] = in
	w.next++
	if w.next == len(w.buf) {
		w.next = 0
		w.filled = true
	}
}

// snapshot returns the retained interactions oldest first.
func (w *window) snapshot() []Interaction {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.filled {
		out := make([]Interaction, w.next)
		copy(out, w.buf[:w.next])
		return out
	}

	out := make([]Interaction, 0, len(w.buf))
	out = append(out, w.buf[w.next:]...)
	out = append(out, w.buf[:w.next]...)
	return out
}

// len reports how many interactions are retained.
func (w *window) len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.filled {
		return len(w.buf)
	}
	return w.next
}
