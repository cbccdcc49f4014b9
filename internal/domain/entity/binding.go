// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// Binding links a Discord identity to a flight-sim callsign through a
// single-use registration token.
//
// A binding is created unverified when a user requests registration over
// Discord, and becomes verified when the client confirms the token over the
// API. Unverified bindings expire after a few minutes; verified ones after a
// day. Expiry is driven by LastUpdated, which is refreshed on confirmation.
type Binding struct {
	Token       string    `json:"token"`        // Single-use registration token presented back by the client.
	ExternalID  int64     `json:"external_id"`  // Discord snowflake ID; one binding per identity.
	DisplayName string    `json:"display_name"` // Display name of the Discord user, captured at creation.
	IsVerified  bool      `json:"is_verified"`  // Whether the client has confirmed the token.
	Callsign    string    `json:"callsign"`     // Uppercased callsign; empty until confirmation.
	LastUpdated time.Time `json:"last_updated"` // Set at creation and refreshed on confirmation.
}
