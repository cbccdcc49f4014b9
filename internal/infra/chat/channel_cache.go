// Package chat contains the Discord-facing infrastructure: the gateway
// session adapter, the DM channel cache and the channel resolver.
package chat

import (
	"context"
	"sync"

	"github.com/norrisng/FcomServer/internal/domain/service"

	"github.com/pkg/errors"
)

// channelCache is an in-process map of external identity to DM channel
// handle, guarded by a read-write mutex.
type channelCache struct {
	mu       sync.RWMutex
	channels map[int64]string
}

// NewChannelCache creates an empty channel cache.
func NewChannelCache() service.ChannelCache {
	return &channelCache{
		channels: make(map[int64]string),
	}
}

func (c *channelCache) Get(externalID int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	channelID, ok := c.channels[externalID]

	return channelID, ok
}

func (c *channelCache) Put(externalID int64, channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.channels[externalID] = channelID
}

func (c *channelCache) Evict(externalID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.channels, externalID)
}

// channelResolver resolves delivery channels through the cache, falling
// back to the chat session to materialize a DM channel on a miss.
type channelResolver struct {
	cache   service.ChannelCache
	session service.ChatSession
}

// NewChannelResolver creates a resolver over the given cache and session.
func NewChannelResolver(cache service.ChannelCache, session service.ChatSession) service.ChannelResolver {
	return &channelResolver{
		cache:   cache,
		session: session,
	}
}

func (r *channelResolver) Resolve(ctx context.Context, externalID int64) (string, error) {
	if channelID, ok := r.cache.Get(externalID); ok {
		return channelID, nil
	}

	channelID, err := r.session.CreateDirectChannel(ctx, externalID)
	if err != nil {
		return "", errors.Wrap(err, "failed to create direct channel")
	}

	r.cache.Put(externalID, channelID)

	return channelID, nil
}
