package service

import "context"

// ChannelCache caches chat channel handles per external identity so
// delivery does not hit the platform API on every message.
//
// It is shared mutable state between the registration flow (population and
// eviction) and the delivery loop (lookup). Eviction runs before the row
// delete, so a concurrent lookup either sees the handle and uses a stale
// channel harmlessly, or misses and re-resolves.
type ChannelCache interface {
	// Get returns the cached channel handle for the identity, if any.
	Get(externalID int64) (string, bool)

	// Put stores the channel handle for the identity.
	Put(externalID int64, channelID string)

	// Evict removes the identity's cached handle.
	Evict(externalID int64)
}

// ChannelResolver produces a delivery channel handle for an external
// identity, consulting the cache first and materializing the channel
// lazily through the chat session on a miss.
type ChannelResolver interface {
	Resolve(ctx context.Context, externalID int64) (string, error)
}
