// Command zero2-controller drives the button panel, OLED display and
// battery-low monitor on a Zero 2 based handheld.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sweeney/zero2-controller/internal/config"
	"github.com/sweeney/zero2-controller/internal/display"
	"github.com/sweeney/zero2-controller/internal/gpio"
	"github.com/sweeney/zero2-controller/internal/input"
	"github.com/sweeney/zero2-controller/internal/menu"
	"github.com/sweeney/zero2-controller/internal/notify"
	"github.com/sweeney/zero2-controller/internal/power"
	"github.com/sweeney/zero2-controller/internal/render"
	"github.com/sweeney/zero2-controller/internal/stats"
	"github.com/sweeney/zero2-controller/internal/status"
	"github.com/sweeney/zero2-controller/internal/web"
)

func main() {
	cfg, cfgPath, err := config.Load()
	if err != nil {
		log.Printf("config: %v, continuing with defaults", err)
	}

	// Flags default to the loaded config so they override file and env.
	poll := flag.Duration("poll", cfg.PollInterval(), "Button polling interval")
	debounce := flag.Duration("debounce", cfg.DebounceWindow(), "Debounce window per button")
	threshold := flag.Duration("threshold", cfg.Threshold(), "How long the battery line must stay low before shutdown")
	warning := flag.Duration("warning", cfg.WarningTime(), "Countdown window before shutdown")
	displayInterval := flag.Duration("display-interval", cfg.DisplayInterval(), "Periodic display refresh interval")
	batteryPin := flag.Int("battery-pin", cfg.PowerGPIOPin, "BCM pin number for the battery-low line")
	buttons := flag.Bool("buttons", cfg.EnableButtons, "Enable the button panel")
	oled := flag.Bool("display", cfg.EnableDisplay, "Enable the OLED display")
	lowBat := flag.Bool("low-bat", cfg.EnableLowBat, "Enable the battery-low monitor")
	i2cMode := flag.String("i2c", cfg.I2CMode, "I2C bus name for the display (empty tries known buses in order)")
	broker := flag.String("broker", cfg.Broker, "MQTT broker address (empty to disable)")
	httpAddr := flag.String("http", cfg.HTTPAddr, "HTTP status address (empty to disable)")
	logFile := flag.String("log-file", cfg.LogFile, "Append logs to this file instead of stderr")
	printStats := flag.Bool("print-stats", false, "Print one system stats snapshot and exit")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("fatal: open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if *printStats {
		printStatsSnapshot(stats.NewShell().Snapshot())
		return
	}

	if cfgPath != "" {
		log.Printf("config loaded from %s", cfgPath)
	} else {
		log.Printf("no config file found, using defaults")
	}

	opts := options{
		Poll:            *poll,
		Debounce:        *debounce,
		Threshold:       *threshold,
		Warning:         *warning,
		DisplayInterval: *displayInterval,
		BatteryPin:      *batteryPin,
		ButtonPins:      cfg.ButtonPins(),
		EnableButtons:   *buttons,
		EnableDisplay:   *oled,
		EnableLowBat:    *lowBat,
		NotifyTerminals: cfg.PowerNotifyTerminals,
		I2CMode:         *i2cMode,
		Broker:          *broker,
		HTTPAddr:        *httpAddr,
	}
	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

type options struct {
	Poll            time.Duration
	Debounce        time.Duration
	Threshold       time.Duration
	Warning         time.Duration
	DisplayInterval time.Duration
	BatteryPin      int
	ButtonPins      map[input.Channel]int
	EnableButtons   bool
	EnableDisplay   bool
	EnableLowBat    bool
	NotifyTerminals bool
	I2CMode         string
	Broker          string
	HTTPAddr        string
}

func run(opts options) error {
	nav := menu.NewNavigator()
	overlay := display.NewOverlay()
	provider := stats.NewShell()

	// Each hardware subsystem that fails to come up is disabled; the
	// rest of the daemon runs degraded.
	var deb *input.Debouncer
	if opts.EnableButtons {
		btns, err := gpio.NewRealButtons(opts.ButtonPins)
		if err != nil {
			log.Printf("buttons disabled: %v", err)
		} else {
			defer btns.Close()
			deb = input.NewDebouncer(btns, opts.Debounce)
		}
	}

	var sink display.Sink
	if opts.EnableDisplay {
		dev, err := display.OpenSSD1306(opts.I2CMode)
		if err != nil {
			log.Printf("display disabled: %v", err)
		} else {
			defer dev.Close()
			sink = dev
		}
	}

	var battery gpio.BatterySignal
	if opts.EnableLowBat {
		bat, err := gpio.NewRealBattery(opts.BatteryPin)
		if err != nil {
			log.Printf("battery monitor disabled: %v", err)
		} else {
			defer bat.Close()
			battery = bat
		}
	}

	var publisher *notify.MQTT
	if opts.Broker != "" {
		publisher = notify.NewMQTT(opts.Broker)
		defer publisher.Close()
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:           opts.Poll.Milliseconds(),
		DebounceMs:       opts.Debounce.Milliseconds(),
		ThresholdS:       int64(opts.Threshold.Seconds()),
		WarningS:         int64(opts.Warning.Seconds()),
		DisplayIntervalS: int64(opts.DisplayInterval.Seconds()),
		Broker:           opts.Broker,
		HTTPAddr:         opts.HTTPAddr,
	})
	tracker.SetSubsystems(deb != nil, sink != nil, battery != nil)
	tracker.SetNetwork(networkInfo(provider.Snapshot()))

	var monitor *power.Monitor
	if battery != nil {
		machine := power.NewMachine(opts.Threshold, opts.Warning)
		var targets notify.Multi
		if publisher != nil {
			targets = append(targets, publisher)
		}
		if opts.NotifyTerminals {
			targets = append(targets, notify.NewWall())
		}
		monitor = power.NewMonitor(machine, battery, overlay, targets, systemShutdown)
	}

	var renderer *render.Coordinator
	if sink != nil {
		renderer = render.New(nav, overlay, provider, sink)
		if monitor != nil {
			renderer.PowerState = func() string { return string(monitor.State()) }
		}
	}

	if publisher != nil {
		snap := tracker.Snapshot()
		event := notify.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(event); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	if opts.HTTPAddr != "" {
		srv := web.New(opts.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", opts.HTTPAddr)
	}

	log.Printf("started: poll=%v debounce=%v threshold=%v warning=%v broker=%s",
		opts.Poll, opts.Debounce, opts.Threshold, opts.Warning, opts.Broker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	reason := make(chan string, 1)
	go func() {
		s := <-sigCh
		log.Printf("received %v, shutting down", s)
		reason <- signalName(s)
		cancel()
	}()

	g, ctx := errgroup.WithContext(ctx)

	if deb != nil {
		g.Go(func() error {
			return buttonLoop(ctx, deb, nav, renderer, tracker, opts.Poll)
		})
	}
	if monitor != nil {
		g.Go(func() error {
			return monitor.Run(ctx)
		})
	}
	var connected func() bool
	if publisher != nil {
		connected = publisher.IsConnected
	}
	if renderer != nil {
		g.Go(func() error {
			return renderLoop(ctx, renderer, overlay, monitor, tracker, connected, opts.DisplayInterval)
		})
	} else if monitor != nil || connected != nil {
		// No display: still mirror power/MQTT state for HTTP and MQTT
		// consumers.
		g.Go(func() error {
			return statusLoop(ctx, monitor, tracker, connected, opts.DisplayInterval)
		})
	}

	err := g.Wait()
	if err != nil && err != context.Canceled {
		log.Printf("stopping: %v", err)
	}

	if publisher != nil {
		why := ""
		select {
		case why = <-reason:
		default:
		}
		tracker.SetMQTTConnected(publisher.IsConnected())
		snap := tracker.Snapshot()
		event := notify.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "SHUTDOWN",
			Reason:     why,
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", why),
		}
		if err := publisher.PublishSystem(event); err != nil {
			log.Printf("failed to publish shutdown event: %v", err)
		} else {
			log.Printf("published shutdown event")
		}
	}
	return nil
}

// buttonLoop samples the panel, debounces, and drives navigation. An
// accepted press redraws immediately rather than waiting for the
// periodic refresh.
func buttonLoop(ctx context.Context, deb *input.Debouncer, nav *menu.Navigator, renderer *render.Coordinator, tracker *status.Tracker, poll time.Duration) error {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			accepted := deb.Check(now)
			if len(accepted) == 0 {
				continue
			}
			for _, ch := range accepted {
				log.Printf("button: %s", ch)
				tracker.CountPress(ch)
				dispatch(nav, ch)
			}
			tracker.SetNavigation(nav.Snapshot())
			if renderer != nil {
				if err := renderer.Render(); err != nil {
					log.Printf("render error: %v", err)
				}
			}
		}
	}
}

// dispatch maps an accepted press to a navigation action. A doubles as
// select, B as back, matching the bonnet's two thumb buttons.
func dispatch(nav *menu.Navigator, ch input.Channel) {
	switch ch {
	case input.ChannelUp:
		nav.Up()
	case input.ChannelDown:
		nav.Down()
	case input.ChannelLeft:
		nav.Left()
	case input.ChannelRight:
		nav.Right()
	case input.ChannelA, input.ChannelSelect:
		nav.Select()
	case input.ChannelB:
		nav.Back()
	}
}

// renderLoop refreshes the display periodically so stats stay current
// and expired overlays get replaced. It also mirrors display-adjacent
// state into the tracker for HTTP/MQTT consumers.
func renderLoop(ctx context.Context, renderer *render.Coordinator, overlay *display.Overlay, monitor *power.Monitor, tracker *status.Tracker, connected func() bool, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := renderer.Render(); err != nil {
				log.Printf("render error: %v", err)
			}
			_, active := overlay.Active(now)
			tracker.SetOverlayActive(active)
			if monitor != nil {
				tracker.SetPowerState(monitor.State())
			}
			if connected != nil {
				tracker.SetMQTTConnected(connected())
			}
		}
	}
}

// statusLoop is the render lane's tracker mirroring without a display.
func statusLoop(ctx context.Context, monitor *power.Monitor, tracker *status.Tracker, connected func() bool, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if monitor != nil {
				tracker.SetPowerState(monitor.State())
			}
			if connected != nil {
				tracker.SetMQTTConnected(connected())
			}
		}
	}
}

func systemShutdown() error {
	if err := exec.Command("shutdown", "-h", "now").Run(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

// networkInfo extracts the network fields from a stats snapshot for
// the status tracker.
func networkInfo(st stats.Snapshot) *status.NetworkInfo {
	return &status.NetworkInfo{
		Hostname:  st.Hostname,
		IP:        st.IP,
		Wifi:      st.Wifi,
		Bluetooth: st.Bluetooth,
	}
}

func printStatsSnapshot(st stats.Snapshot) {
	fmt.Printf("Hostname:  %s\n", st.Hostname)
	fmt.Printf("IP:        %s\n", st.IP)
	fmt.Printf("CPU load:  %s\n", st.CPULoad)
	fmt.Printf("CPU temp:  %s\n", st.CPUTemp)
	fmt.Printf("Memory:    %s\n", st.Memory)
	fmt.Printf("Disk:      %s\n", st.Disk)
	fmt.Printf("Battery:   %s\n", st.Battery)
	fmt.Printf("WiFi:      %s\n", st.Wifi)
	fmt.Printf("Bluetooth: %s\n", st.Bluetooth)
}
