package reactive

import "math"

// Counter is a non-negative integer signal that only moves up by one.
// It saturates at math.MaxInt instead of wrapping.
type Counter struct {
	*Signal[int]
}

// NewCounter creates a counter starting at initial. Negative values are
// clamped to zero.
func NewCounter(initial int) *Counter {
	if initial < 0 {
		initial = 0
	}
	return &Counter{NewSignal(initial)}
}

// Inc increments the value by 1.
func (c *Counter) Inc() {
	c.Update(func(n int) int {
		if n == math.MaxInt {
			return n
		}
		return n + 1
	})
}
