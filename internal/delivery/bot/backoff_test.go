package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReconnectBackoff_GrowsLinearlyToCap(t *testing.T) {
	t.Parallel()

	backoff := newReconnectBackoff(5*time.Second, 12*time.Second)

	assert.Equal(t, time.Duration(0), backoff.Next())
	assert.Equal(t, 5*time.Second, backoff.Next())
	assert.Equal(t, 10*time.Second, backoff.Next())

	// Capped from here on.
	assert.Equal(t, 12*time.Second, backoff.Next())
	assert.Equal(t, 12*time.Second, backoff.Next())
}

func TestReconnectBackoff_ResetRestartsImmediate(t *testing.T) {
	t.Parallel()

	backoff := newReconnectBackoff(5*time.Second, time.Minute)

	backoff.Next()
	backoff.Next()
	backoff.Reset()

	assert.Equal(t, time.Duration(0), backoff.Next())
	assert.Equal(t, 5*time.Second, backoff.Next())
}
