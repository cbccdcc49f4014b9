package entity

import (
	"strings"
	"time"
)

// FrequencyPrefix marks a receiver that encodes a radio frequency
// ("@12450" means 124.50 MHz) rather than a callsign. Receivers are stored
// verbatim and only rendered at delivery time.
const FrequencyPrefix = "@"

// QueuedMessage is one inbound private message awaiting delivery.
type QueuedMessage struct {
	ID         int64     `json:"id"`          // Insertion order, assigned by the store; fixes delivery order.
	InsertTime time.Time `json:"insert_time"` // When the message was admitted.
	Token      string    `json:"token"`       // Token of the binding that admitted the message.
	Timestamp  int64     `json:"timestamp"`   // Sender-supplied receipt time, epoch seconds.
	Sender     string    `json:"sender"`      // Callsign of the sending party.
	Receiver   string    `json:"receiver"`    // Callsign or "@xxyyy" frequency address, stored raw.
	Message    string    `json:"message"`     // Free-text contents.
}

// AggregatedMessage is one delivery unit: all queued messages sharing a
// (token, sender) pair within a single drain, newline-joined in insertion
// order. It is derived during the drain and never persisted.
type AggregatedMessage struct {
	Token    string `json:"token"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"` // Taken from the group's first member.
	Message  string `json:"message"`  // Member contents joined with "\n", ascending by insertion ID.
	FirstID  int64  `json:"first_id"` // Insertion ID of the group's first member; orders groups.
}

// IsFrequency reports whether the receiver encodes a radio frequency.
func (m *AggregatedMessage) IsFrequency() bool {
	return strings.HasPrefix(m.Receiver, FrequencyPrefix)
}
