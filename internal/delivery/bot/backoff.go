package bot

import "time"

// reconnectBackoff tracks the linear reconnect delay. The first attempt is
// immediate; each subsequent attempt waits a fixed increment longer, up to
// a cap. A successful connection resets the state.
type reconnectBackoff struct {
	current   time.Duration
	increment time.Duration
	max       time.Duration
}

func newReconnectBackoff(increment, max time.Duration) *reconnectBackoff {
	return &reconnectBackoff{
		increment: increment,
		max:       max,
	}
}

// Next returns the wait before the upcoming attempt and advances the state.
func (b *reconnectBackoff) Next() time.Duration {
	wait := b.current

	b.current += b.increment
	if b.current > b.max {
		b.current = b.max
	}

	return wait
}

// Reset returns the backoff to its initial immediate-attempt state.
func (b *reconnectBackoff) Reset() {
	b.current = 0
}
