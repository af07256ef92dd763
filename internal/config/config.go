// Package config loads the controller configuration. Values resolve
// in layers: built-in defaults, then a YAML config file, then
// environment variables keyed by the exact config name. Flags in cmd
// override all three. A Config is immutable after load.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/zero2-controller/internal/gpio"
	"github.com/sweeney/zero2-controller/internal/input"
)

// Config file search order: the dev-local path wins when it exists,
// unless ZERO2_USE_SYSTEM_CONFIG=1 forces the system path.
const (
	DevPath    = "config/zero2.yaml"
	SystemPath = "/opt/zero2-controller/config/zero2.yaml"
)

// Config holds every tunable the daemon reads at startup.
type Config struct {
	EnableButtons bool `yaml:"ENABLE_BUTTONS"`
	EnableDisplay bool `yaml:"ENABLE_DISPLAY"`
	EnableLowBat  bool `yaml:"ENABLE_LOW_BAT"`

	PowerGPIOPin         int  `yaml:"POWER_GPIO_PIN"`
	PowerThreshold       int  `yaml:"POWER_THRESHOLD"`    // seconds
	PowerWarningTime     int  `yaml:"POWER_WARNING_TIME"` // seconds
	PowerNotifyTerminals bool `yaml:"POWER_NOTIFY_TERMINALS"`

	DisplayUpdateInterval int    `yaml:"DISPLAY_UPDATE_INTERVAL"` // seconds
	I2CMode               string `yaml:"I2C_MODE"`

	ButtonPollMs int `yaml:"BUTTON_POLL_MS"`
	DebounceMs   int `yaml:"DEBOUNCE_MS"`

	PinA      int `yaml:"BUTTON_PIN_A"`
	PinB      int `yaml:"BUTTON_PIN_B"`
	PinUp     int `yaml:"BUTTON_PIN_UP"`
	PinDown   int `yaml:"BUTTON_PIN_DOWN"`
	PinLeft   int `yaml:"BUTTON_PIN_LEFT"`
	PinRight  int `yaml:"BUTTON_PIN_RIGHT"`
	PinSelect int `yaml:"BUTTON_PIN_SELECT"`

	Broker   string `yaml:"BROKER"`
	HTTPAddr string `yaml:"HTTP_ADDR"`
	LogFile  string `yaml:"LOG_FILE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		EnableButtons:         true,
		EnableDisplay:         true,
		EnableLowBat:          true,
		PowerGPIOPin:          gpio.DefaultBatteryPin,
		PowerThreshold:        30,
		PowerWarningTime:      30,
		PowerNotifyTerminals:  true,
		DisplayUpdateInterval: 2,
		ButtonPollMs:          25,
		DebounceMs:            50,
		PinA:                  gpio.DefaultButtonPins[input.ChannelA],
		PinB:                  gpio.DefaultButtonPins[input.ChannelB],
		PinUp:                 gpio.DefaultButtonPins[input.ChannelUp],
		PinDown:               gpio.DefaultButtonPins[input.ChannelDown],
		PinLeft:               gpio.DefaultButtonPins[input.ChannelLeft],
		PinRight:              gpio.DefaultButtonPins[input.ChannelRight],
		PinSelect:             gpio.DefaultButtonPins[input.ChannelSelect],
		HTTPAddr:              ":8080",
	}
}

// Load resolves the config path, merges the file over the defaults and
// applies environment overrides. A missing or unreadable file is not
// an error: the daemon runs on defaults. The returned path is the file
// that was read, or "" when none was.
func Load() (Config, string, error) {
	cfg := Default()

	path := resolvePath()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Default(), "", fmt.Errorf("config file %s: %w", path, err)
		}
	}

	ApplyEnv(&cfg, os.LookupEnv)
	return cfg, path, nil
}

func resolvePath() string {
	if os.Getenv("ZERO2_USE_SYSTEM_CONFIG") != "1" {
		if _, err := os.Stat(DevPath); err == nil {
			return DevPath
		}
	}
	if _, err := os.Stat(SystemPath); err == nil {
		return SystemPath
	}
	return ""
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Strict decoding surfaces typos in key names.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg fields from the environment, keyed by the
// exact config name. The lookup func is injectable for tests.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	envBool(lookup, "ENABLE_BUTTONS", &cfg.EnableButtons)
	envBool(lookup, "ENABLE_DISPLAY", &cfg.EnableDisplay)
	envBool(lookup, "ENABLE_LOW_BAT", &cfg.EnableLowBat)
	envBool(lookup, "POWER_NOTIFY_TERMINALS", &cfg.PowerNotifyTerminals)

	envInt(lookup, "POWER_GPIO_PIN", &cfg.PowerGPIOPin)
	envInt(lookup, "POWER_THRESHOLD", &cfg.PowerThreshold)
	envInt(lookup, "POWER_WARNING_TIME", &cfg.PowerWarningTime)
	envInt(lookup, "DISPLAY_UPDATE_INTERVAL", &cfg.DisplayUpdateInterval)
	envInt(lookup, "BUTTON_POLL_MS", &cfg.ButtonPollMs)
	envInt(lookup, "DEBOUNCE_MS", &cfg.DebounceMs)
	envInt(lookup, "BUTTON_PIN_A", &cfg.PinA)
	envInt(lookup, "BUTTON_PIN_B", &cfg.PinB)
	envInt(lookup, "BUTTON_PIN_UP", &cfg.PinUp)
	envInt(lookup, "BUTTON_PIN_DOWN", &cfg.PinDown)
	envInt(lookup, "BUTTON_PIN_LEFT", &cfg.PinLeft)
	envInt(lookup, "BUTTON_PIN_RIGHT", &cfg.PinRight)
	envInt(lookup, "BUTTON_PIN_SELECT", &cfg.PinSelect)

	envString(lookup, "I2C_MODE", &cfg.I2CMode)
	envString(lookup, "BROKER", &cfg.Broker)
	envString(lookup, "HTTP_ADDR", &cfg.HTTPAddr)
	envString(lookup, "LOG_FILE", &cfg.LogFile)
}

func envBool(lookup func(string) (string, bool), key string, dst *bool) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		*dst = true
	case "false", "0", "no", "off":
		*dst = false
	}
}

func envInt(lookup func(string) (string, bool), key string, dst *int) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return
	}
	*dst = n
}

func envString(lookup func(string) (string, bool), key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

// ButtonPins maps each input channel to its configured BCM pin.
func (c Config) ButtonPins() map[input.Channel]int {
	return map[input.Channel]int{
		input.ChannelA:      c.PinA,
		input.ChannelB:      c.PinB,
		input.ChannelUp:     c.PinUp,
		input.ChannelDown:   c.PinDown,
		input.ChannelLeft:   c.PinLeft,
		input.ChannelRight:  c.PinRight,
		input.ChannelSelect: c.PinSelect,
	}
}

// PollInterval is the button sampling period.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.ButtonPollMs) * time.Millisecond
}

// DebounceWindow is the per-channel press suppression window.
func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Threshold is how long the battery line must stay low before shutdown.
func (c Config) Threshold() time.Duration {
	return time.Duration(c.PowerThreshold) * time.Second
}

// WarningTime is the countdown window before shutdown.
func (c Config) WarningTime() time.Duration {
	return time.Duration(c.PowerWarningTime) * time.Second
}

// DisplayInterval is the periodic screen refresh period.
func (c Config) DisplayInterval() time.Duration {
	return time.Duration(c.DisplayUpdateInterval) * time.Second
}
