package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/zero2-controller/internal/input"
	"github.com/sweeney/zero2-controller/internal/menu"
	"github.com/sweeney/zero2-controller/internal/power"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{PollMs: 25, DebounceMs: 50, ThresholdS: 30, Broker: "tcp://localhost:1883", HTTPAddr: ":8080"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Screen != menu.ScreenMain {
		t.Errorf("Screen: got %q, want MAIN", snap.Screen)
	}
	if snap.PowerState != power.StateIdle {
		t.Errorf("PowerState: got %q, want IDLE", snap.PowerState)
	}
	if snap.Config.PollMs != 25 {
		t.Errorf("Config.PollMs: got %d, want 25", snap.Config.PollMs)
	}
	if snap.Config.HTTPAddr != ":8080" {
		t.Errorf("Config.HTTPAddr: got %q, want %q", snap.Config.HTTPAddr, ":8080")
	}
	if snap.OverlayActive {
		t.Error("expected OverlayActive=false initially")
	}
	if snap.MQTTConnected {
		t.Error("expected MQTTConnected=false initially")
	}
}

func TestSetNavigation(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetNavigation(menu.Snapshot{Current: menu.ScreenNetwork, SelectedIndex: 1, Depth: 2})

	snap := tr.Snapshot()
	if snap.Screen != menu.ScreenNetwork {
		t.Errorf("Screen: got %q, want NETWORK", snap.Screen)
	}
	if snap.SelectedIndex != 1 {
		t.Errorf("SelectedIndex: got %d, want 1", snap.SelectedIndex)
	}
}

func TestSetPowerStateAndOverlay(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetPowerState(power.StateWarning)
	tr.SetOverlayActive(true)

	snap := tr.Snapshot()
	if snap.PowerState != power.StateWarning {
		t.Errorf("PowerState: got %q, want WARNING", snap.PowerState)
	}
	if !snap.OverlayActive {
		t.Error("expected OverlayActive=true")
	}
}

func TestCountPress(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.CountPress(input.ChannelA)
	tr.CountPress(input.ChannelA)
	tr.CountPress(input.ChannelUp)

	snap := tr.Snapshot()
	if snap.Presses[input.ChannelA] != 2 {
		t.Errorf("Presses[A]: got %d, want 2", snap.Presses[input.ChannelA])
	}
	if snap.Presses[input.ChannelUp] != 1 {
		t.Errorf("Presses[UP]: got %d, want 1", snap.Presses[input.ChannelUp])
	}
	if snap.Presses[input.ChannelB] != 0 {
		t.Errorf("Presses[B]: got %d, want 0", snap.Presses[input.ChannelB])
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=true")
	}

	tr.SetMQTTConnected(false)
	if tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=false")
	}
}

func TestSetNetwork(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	if tr.Snapshot().Network != nil {
		t.Error("expected nil Network initially")
	}

	net := &NetworkInfo{Hostname: "zero2", IP: "192.168.1.42", Wifi: "homenet"}
	tr.SetNetwork(net)

	snap := tr.Snapshot()
	if snap.Network == nil {
		t.Fatal("expected non-nil Network")
	}
	if snap.Network.IP != "192.168.1.42" {
		t.Errorf("Network.IP: got %q, want %q", snap.Network.IP, "192.168.1.42")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}

	if snap.Uptime() != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", snap.Uptime())
	}
}

func TestSnapshotNowIsSet(t *testing.T) {
	tr := NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Config{})

	before := time.Now()
	snap := tr.Snapshot()
	after := time.Now()

	if snap.Now.Before(before) || snap.Now.After(after) {
		t.Errorf("Now (%v) not between %v and %v", snap.Now, before, after)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.CountPress(input.ChannelSelect)

	snap1 := tr.Snapshot()

	tr.CountPress(input.ChannelSelect)
	tr.SetNavigation(menu.Snapshot{Current: menu.ScreenSystem})

	// snap1 should still reflect old state
	if snap1.Presses[input.ChannelSelect] != 1 {
		t.Error("snapshot should be a copy; Presses was modified")
	}
	if snap1.Screen != menu.ScreenMain {
		t.Error("snapshot should be a copy; Screen was modified")
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Screen:        menu.ScreenPower,
		SelectedIndex: 3,
		PowerState:    power.StateWarning,
		OverlayActive: true,
		Presses:       PressCounts{input.ChannelA: 5, input.ChannelDown: 2},
		StartTime:     start,
		Now:           start.Add(15 * time.Minute),
		MQTTConnected: true,
		Config:        Config{PollMs: 25, DebounceMs: 50, ThresholdS: 30, WarningS: 10, Broker: "tcp://localhost:1883", HTTPAddr: ":8080"},

		ButtonsEnabled: true,
		DisplayEnabled: true,
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Screen != "POWER" {
		t.Errorf("Screen: got %q, want POWER", parsed.Status.Screen)
	}
	if parsed.Status.SelectedIndex != 3 {
		t.Errorf("SelectedIndex: got %d, want 3", parsed.Status.SelectedIndex)
	}
	if parsed.Status.PowerState != "WARNING" {
		t.Errorf("PowerState: got %q, want WARNING", parsed.Status.PowerState)
	}
	if !parsed.Status.OverlayActive {
		t.Error("expected overlay_active=true")
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
	if !parsed.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if parsed.Status.Presses["A"] != 5 {
		t.Errorf("Presses[A]: got %d, want 5", parsed.Status.Presses["A"])
	}
	if parsed.Status.Presses["LEFT"] != 0 {
		t.Errorf("Presses[LEFT]: got %d, want 0", parsed.Status.Presses["LEFT"])
	}
	if !parsed.Status.Subsystems.Buttons {
		t.Error("expected subsystems.buttons=true")
	}
	if parsed.Status.Subsystems.Monitor {
		t.Error("expected subsystems.monitor=false")
	}
	// Event and Reason should be omitted
	if parsed.Status.Event != "" {
		t.Errorf("expected empty Event for web format, got %q", parsed.Status.Event)
	}
	if parsed.Status.Reason != "" {
		t.Errorf("expected empty Reason for web format, got %q", parsed.Status.Reason)
	}
}

func TestFormatJSONNetworkOmitted(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{StartTime: start, Now: start.Add(time.Second)}

	data := FormatJSON(snap)

	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := raw["status"]["network"]; ok {
		t.Error("expected network to be omitted when unset")
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Screen:        menu.ScreenMain,
		PowerState:    power.StateIdle,
		StartTime:     start,
		Now:           start.Add(15 * time.Minute),
		MQTTConnected: true,
		Network:       &NetworkInfo{Hostname: "zero2", IP: "10.0.0.9"},
		Config:        Config{PollMs: 25, DebounceMs: 50, Broker: "tcp://localhost:1883"},
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "STARTUP" {
		t.Errorf("Event: got %q, want STARTUP", parsed.Status.Event)
	}
	if parsed.Status.Network == nil || parsed.Status.Network.Hostname != "zero2" {
		t.Errorf("Network: got %+v, want hostname zero2", parsed.Status.Network)
	}

	data = FormatStatusEvent(snap, "SHUTDOWN", "signal")
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Reason != "signal" {
		t.Errorf("Reason: got %q, want signal", parsed.Status.Reason)
	}
}
