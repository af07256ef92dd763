package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/zero2-controller/internal/input"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string         `json:"event,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	Screen        string         `json:"screen"`
	SelectedIndex int            `json:"selected_index"`
	PowerState    string         `json:"power_state"`
	OverlayActive bool           `json:"overlay_active"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	StartTime     string         `json:"start_time"`
	Timestamp     string         `json:"timestamp"`
	Subsystems    SubsystemsJSON `json:"subsystems"`
	MQTT          MQTTStatus     `json:"mqtt"`
	Presses       map[string]int `json:"press_counts"`
	Network       *NetworkJSON   `json:"network,omitempty"`
	Config        ConfigJSON     `json:"config"`
}

// SubsystemsJSON reports which subsystems came up at startup.
type SubsystemsJSON struct {
	Buttons bool `json:"buttons"`
	Display bool `json:"display"`
	Monitor bool `json:"monitor"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Hostname  string `json:"hostname"`
	IP        string `json:"ip"`
	Wifi      string `json:"wifi"`
	Bluetooth string `json:"bluetooth"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs           int64  `json:"poll_ms"`
	DebounceMs       int64  `json:"debounce_ms"`
	ThresholdS       int64  `json:"power_threshold_s"`
	WarningS         int64  `json:"power_warning_s"`
	DisplayIntervalS int64  `json:"display_interval_s"`
	Broker           string `json:"broker"`
	HTTPAddr         string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	presses := make(map[string]int, len(snap.Presses))
	for _, ch := range input.Channels {
		presses[string(ch)] = snap.Presses[ch]
	}

	return StatusInner{
		Screen:        string(snap.Screen),
		SelectedIndex: snap.SelectedIndex,
		PowerState:    string(snap.PowerState),
		OverlayActive: snap.OverlayActive,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Subsystems: SubsystemsJSON{
			Buttons: snap.ButtonsEnabled,
			Display: snap.DisplayEnabled,
			Monitor: snap.MonitorEnabled,
		},
		MQTT:    MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Presses: presses,
		Config: ConfigJSON{
			PollMs:           snap.Config.PollMs,
			DebounceMs:       snap.Config.DebounceMs,
			ThresholdS:       snap.Config.ThresholdS,
			WarningS:         snap.Config.WarningS,
			DisplayIntervalS: snap.Config.DisplayIntervalS,
			Broker:           snap.Config.Broker,
			HTTPAddr:         snap.Config.HTTPAddr,
		},
	}
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Hostname:  snap.Network.Hostname,
			IP:        snap.Network.IP,
			Wifi:      snap.Network.Wifi,
			Bluetooth: snap.Network.Bluetooth,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no
// event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
