// Package service defines interfaces for external collaborators consumed by
// the use case layer.
package service

import (
	"context"
	"errors"
)

// ErrAuthFailed indicates the chat platform rejected our credentials at
// connection time. It is fatal: the reconnect supervisor must not retry.
var ErrAuthFailed = errors.New("chat platform rejected credentials")

// ErrPermissionDenied indicates the destination refuses delivery (e.g. the
// user blocks DMs). The unit is dropped; the session stays up.
var ErrPermissionDenied = errors.New("destination refused delivery")

// DirectMessage is an inbound direct message from a chat-platform user,
// carrying the identity needed to act on bot commands.
type DirectMessage struct {
	ExternalID  int64  // Snowflake ID of the author.
	DisplayName string // Author's display name at the time of the message.
	ChannelID   string // DM channel the message arrived on (reply destination).
	Content     string // Raw message text.
}

// DirectMessageHandler receives inbound direct messages once the session is open.
type DirectMessageHandler func(ctx context.Context, msg DirectMessage)

// ChatSession is a live connection to the chat platform.
//
// Open establishes the gateway connection and returns ErrAuthFailed when the
// credentials are rejected; any other error is treated as transient by the
// reconnect supervisor. Implementations deliver inbound DMs to the handler
// registered before Open.
type ChatSession interface {
	// Open establishes the connection.
	Open(ctx context.Context) error

	// Close tears the connection down.
	Close() error

	// CreateDirectChannel materializes a DM channel handle for the given identity.
	CreateDirectChannel(ctx context.Context, externalID int64) (string, error)

	// SendMessage delivers text to a channel handle. Returns
	// ErrPermissionDenied when the destination refuses DMs.
	SendMessage(ctx context.Context, channelID, content string) error

	// OnDirectMessage registers the inbound DM handler. Must be called
	// before Open.
	OnDirectMessage(handler DirectMessageHandler)

	// Disconnected returns a channel that receives an error when the
	// underlying connection drops after a successful Open. The supervisor
	// uses it to trigger a reconnect.
	Disconnected() <-chan error
}
