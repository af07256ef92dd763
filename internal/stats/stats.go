// Package stats supplies live system metrics for the info screens.
// Collection is outsourced to shell one-liners on the host; every
// field degrades independently to "N/A" so a broken collector never
// takes down the display loop.
package stats

// NA is the degraded value rendered when a metric is unavailable.
const NA = "N/A"

// Snapshot is one reading of the system metrics. All fields are
// pre-formatted display strings.
type Snapshot struct {
	Hostname  string
	IP        string
	CPULoad   string
	Memory    string
	Disk      string
	CPUTemp   string
	Battery   string
	Wifi      string
	Bluetooth string
}

// Provider supplies metric snapshots.
type Provider interface {
	Snapshot() Snapshot
}
