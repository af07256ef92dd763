// Package notify delivers controller notifications to users: MQTT
// topics for dashboards and wall messages for logged-in terminals.
// All delivery is best-effort; a failed send is logged by the caller
// and never blocks the state machine that asked for it.
package notify

import (
	"encoding/json"
	"time"
)

// TopicWarnings is the MQTT topic for user-facing warning messages.
const TopicWarnings = "zero2/controller/warnings"

// TopicSystem is the MQTT topic for controller lifecycle events.
const TopicSystem = "zero2/controller/system"

// Broadcaster sends a message to all users, best-effort.
type Broadcaster interface {
	SendAllUsers(text string) error
}

// SystemEvent represents a controller lifecycle event
// (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "LOW_BATTERY"
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the broker should retain the message
}

// WarningPayload is the MQTT message payload for warning broadcasts.
type WarningPayload struct {
	Warning WarningInner `json:"warning"`
}

// WarningInner contains the warning details.
type WarningInner struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// FormatWarningPayload creates the JSON payload for a warning.
func FormatWarningPayload(ts time.Time, message string) ([]byte, error) {
	payload := WarningPayload{
		Warning: WarningInner{
			Timestamp: ts.UTC().Format(time.RFC3339),
			Message:   message,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for system events without
// a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
