package stats

import (
	"log"
	"os/exec"
	"strings"
)

// Shell one-liners for system monitoring, after the classic
// unix.stackexchange recipe the original bonnet scripts used.
var commands = map[string]string{
	"hostname": `hostname`,
	"ip":       `hostname -I | cut -d' ' -f1`,
	"cpu":      `top -bn1 | grep load | awk '{printf "%.2f", $(NF-2)}'`,
	"mem":      `free -m | awk 'NR==2{printf "%s/%sMB", $3,$2}'`,
	"disk":     `df -h / | awk 'NR==2{printf "%s/%s", $3,$2}'`,
	"temp":     `awk '{printf "%.0fC", $1/1000}' /sys/class/thermal/thermal_zone0/temp`,
	"battery":  `cat /sys/class/power_supply/battery/capacity 2>/dev/null`,
	"wifi":     `iwgetid -r`,
	"bt":       `systemctl is-active bluetooth`,
}

// Shell collects metrics by running shell one-liners on the host.
type Shell struct {
	// run executes one command and returns its trimmed stdout.
	// Injectable for tests.
	run func(cmd string) (string, error)
}

// NewShell creates a Shell provider using /bin/sh.
func NewShell() *Shell {
	return &Shell{run: runSh}
}

func runSh(cmd string) (string, error) {
	out, err := exec.Command("sh", "-c", cmd).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Snapshot runs every collector. A failing or empty collector yields
// NA for its field only.
func (s *Shell) Snapshot() Snapshot {
	return Snapshot{
		Hostname:  s.collect("hostname"),
		IP:        s.collect("ip"),
		CPULoad:   s.collect("cpu"),
		Memory:    s.collect("mem"),
		Disk:      s.collect("disk"),
		CPUTemp:   s.collect("temp"),
		Battery:   s.battery(),
		Wifi:      s.collect("wifi"),
		Bluetooth: s.collect("bt"),
	}
}

func (s *Shell) collect(name string) string {
	out, err := s.run(commands[name])
	if err != nil {
		log.Printf("stats: %s collector failed: %v", name, err)
		return NA
	}
	if out == "" {
		return NA
	}
	return out
}

func (s *Shell) battery() string {
	out := s.collect("battery")
	if out == NA {
		return NA
	}
	return out + "%"
}
