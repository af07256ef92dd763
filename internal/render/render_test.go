package render

import (
	"reflect"
	"testing"
	"time"

	"github.com/sweeney/zero2-controller/internal/display"
	"github.com/sweeney/zero2-controller/internal/menu"
	"github.com/sweeney/zero2-controller/internal/stats"
)

func newTestCoordinator() (*Coordinator, *menu.Navigator, *display.Overlay, *stats.Fake, *display.Fake) {
	nav := menu.NewNavigator()
	overlay := display.NewOverlay()
	provider := stats.NewFake()
	sink := display.NewFake()

	c := New(nav, overlay, provider, sink)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.Now = func() time.Time { return now }
	overlay.Now = c.Now
	return c, nav, overlay, provider, sink
}

func TestDashboardFrame(t *testing.T) {
	c, _, _, provider, sink := newTestCoordinator()
	provider.Set(stats.Snapshot{
		IP:      "192.168.1.50",
		CPULoad: "0.42",
		CPUTemp: "48C",
		Memory:  "210/423MB",
	})

	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	want := []string{
		"IP 192.168.1.50",
		"CPU 0.42 48C",
		"Mem 210/423MB",
		">Dashboard",
	}
	if got := sink.LastFrame(); !reflect.DeepEqual(got, want) {
		t.Errorf("dashboard frame:\ngot  %q\nwant %q", got, want)
	}
}

func TestDashboardCursorFollowsSelection(t *testing.T) {
	c, nav, _, _, sink := newTestCoordinator()
	nav.Down() // Network Info

	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	frame := sink.LastFrame()
	if frame[3] != ">Network Info" {
		t.Errorf("expected cursor on Network Info, got %q", frame[3])
	}
}

func TestInfoScreens(t *testing.T) {
	c, nav, _, provider, sink := newTestCoordinator()
	provider.Set(stats.Snapshot{
		IP:        "10.10.10.1",
		Wifi:      "homenet",
		Bluetooth: "active",
		CPULoad:   "1.02",
		CPUTemp:   "51C",
		Memory:    "300/423MB",
		Disk:      "3.1G/15G",
		Battery:   "62%",
	})
	c.PowerState = func() string { return "IDLE" }

	nav.Enter(menu.ScreenNetwork)
	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	want := []string{"Network Info", "IP 10.10.10.1", "WiFi homenet", "BT active"}
	if got := sink.LastFrame(); !reflect.DeepEqual(got, want) {
		t.Errorf("network frame:\ngot  %q\nwant %q", got, want)
	}

	nav.Back()
	nav.Enter(menu.ScreenSystem)
	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	want = []string{"System Info", "CPU 1.02 51C", "Mem 300/423MB", "Disk 3.1G/15G"}
	if got := sink.LastFrame(); !reflect.DeepEqual(got, want) {
		t.Errorf("system frame:\ngot  %q\nwant %q", got, want)
	}

	nav.Back()
	nav.Enter(menu.ScreenPower)
	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	want = []string{"Power Info", "Bat 62%", "State IDLE", ""}
	if got := sink.LastFrame(); !reflect.DeepEqual(got, want) {
		t.Errorf("power frame:\ngot  %q\nwant %q", got, want)
	}
}

func TestPowerScreenWithoutMonitor(t *testing.T) {
	c, nav, _, _, sink := newTestCoordinator()
	nav.Enter(menu.ScreenPower)

	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got := sink.LastFrame()[2]; got != "State N/A" {
		t.Errorf("expected degraded state row, got %q", got)
	}
}

func TestOverlayPreemptsContent(t *testing.T) {
	c, _, overlay, _, sink := newTestCoordinator()

	overlay.ShowOverlay("LOW BATTERY\nShutdown in 20s", 0)
	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	want := []string{"LOW BATTERY", "Shutdown in 20s"}
	if got := sink.LastFrame(); !reflect.DeepEqual(got, want) {
		t.Errorf("overlay frame:\ngot  %q\nwant %q", got, want)
	}
}

func TestOverlayExpiryRestoresContent(t *testing.T) {
	c, _, overlay, _, sink := newTestCoordinator()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.Now = func() time.Time { return now }
	overlay.Now = c.Now

	overlay.ShowOverlay("Button A", 2*time.Second)
	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got := sink.LastFrame(); !reflect.DeepEqual(got, []string{"Button A"}) {
		t.Fatalf("expected overlay frame, got %q", got)
	}

	// Past the ttl, the dashboard is back.
	now = base.Add(3 * time.Second)
	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got := sink.LastFrame(); len(got) != 4 || got[3] != ">Dashboard" {
		t.Errorf("expected dashboard after expiry, got %q", got)
	}
}

func TestOverlayTruncatedToMaxLines(t *testing.T) {
	c, _, overlay, _, sink := newTestCoordinator()

	overlay.ShowOverlay("1\n2\n3\n4\n5\n6", 0)
	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got := sink.LastFrame(); len(got) != display.MaxLines {
		t.Errorf("expected %d lines, got %d", display.MaxLines, len(got))
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	c, nav, _, _, sink := newTestCoordinator()
	nav.Down()

	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if err := c.Render(); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	frames := sink.Frames()
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if !reflect.DeepEqual(frames[0], frames[1]) {
		t.Errorf("renders without state change differ:\n%q\n%q", frames[0], frames[1])
	}
}
