package buffer

import (
	"fmt"

	pmath "github.com/drakos74/perceptron/internal/math"
)

// DefaultTrendWindow is the number of recent epochs the cost trend is computed over.
const DefaultTrendWindow = 20

// History is the ordered, append-only record of the per-epoch cost.
type History struct {
	costs  []float64
	stats  *Stats
	recent *Buffer
}

// NewHistory creates an empty history,
// with a trend computed over the last window epochs.
func NewHistory(window int) *History {
	if window < 2 {
		window = 2
	}
	return &History{
		costs:  make([]float64, 0),
		stats:  NewStats(),
		recent: NewBuffer(window),
	}
}

// Push appends the cost of the next epoch.
func (h *History) Push(cost float64) {
	h.costs = append(h.costs, cost)
	h.stats.Push(cost)
	h.recent.Push(cost)
}

// Get returns a copy of all recorded costs in epoch order.
func (h *History) Get() []float64 {
	cc := make([]float64, len(h.costs))
	copy(cc, h.costs)
	return cc
}

// Len returns the number of recorded epochs.
func (h *History) Len() int {
	return len(h.costs)
}

// Last returns the most recent cost.
func (h *History) Last() (float64, bool) {
	if len(h.costs) == 0 {
		return 0, false
	}
	return h.costs[len(h.costs)-1], true
}

// First returns the cost of the first epoch.
func (h *History) First() (float64, bool) {
	if len(h.costs) == 0 {
		return 0, false
	}
	return h.costs[0], true
}

// Stats returns the running statistics of the recorded costs.
func (h *History) Stats() Stats {
	return *h.stats
}

// Trend returns the slope of a linear fit over the recent costs.
// A negative trend means the cost is going down.
func (h *History) Trend() (float64, error) {
	if h.recent.Len() < 2 {
		return 0, fmt.Errorf("trend needs at least 2 epochs, got %d", h.recent.Len())
	}
	return pmath.Slope(h.recent.Get())
}

// Reset clears the history.
func (h *History) Reset() {
	h.costs = make([]float64, 0)
	h.stats = NewStats()
	h.recent.Reset()
}
