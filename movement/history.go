package movement

// History is a fixed size ring of the most recent signed vertical deltas of an actor.
type History struct {
	values []float64
	next   int
	n      int
}

// NewHistory returns a History holding at most size values.
func NewHistory(size int) *History {
	return &History{values: make([]float64, max(size, 1))}
}

// Push appends v, overwriting the oldest value if the History is full.
func (h *History) Push(v float64) {
	h.values[h.next] = v
	h.next = (h.next + 1) % len(h.values)
	if h.n < len(h.values) {
		h.n++
	}
}

// Len returns the amount of values held.
func (h *History) Len() int {
	return h.n
}

// Values returns a copy of the values held, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.n)
	start := (h.next - h.n + len(h.values)) % len(h.values)
	for i := range h.n {
		out[i] = h.values[(start+i)%len(h.values)]
	}
	return out
}

// Latest returns the most recently pushed value.
func (h *History) Latest() (float64, bool) {
	if h.n == 0 {
		return 0, false
	}
	return h.values[(h.next-1+len(h.values))%len(h.values)], true
}
