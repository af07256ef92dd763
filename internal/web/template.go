package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/zero2-controller/internal/input"
	"github.com/sweeney/zero2-controller/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"enabled": func(b bool) string {
		if b {
			return "enabled"
		}
		return "disabled"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Zero2 Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.idle { color: green; font-weight: bold; }
.warning { color: orange; font-weight: bold; }
.critical { color: red; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
.enabled { color: green; }
.disabled { color: #888; }
</style>
</head>
<body>
<h1>Zero2 Controller</h1>

<h2>State</h2>
<table>
<tr><th>Screen</th><td>{{.Screen}}</td></tr>
<tr><th>Selection</th><td>{{.SelectedIndex}}</td></tr>
<tr><th>Power</th><td class="{{if eq (printf "%s" .PowerState) "IDLE"}}idle{{else if eq (printf "%s" .PowerState) "SHUTTING_DOWN"}}critical{{else}}warning{{end}}">{{.PowerState}}</td></tr>
<tr><th>Overlay</th><td>{{if .OverlayActive}}showing{{else}}none{{end}}</td></tr>
</table>

<h2>Subsystems</h2>
<table>
<tr><th>Buttons</th><td class="{{enabled .ButtonsEnabled}}">{{enabled .ButtonsEnabled}}</td></tr>
<tr><th>Display</th><td class="{{enabled .DisplayEnabled}}">{{enabled .DisplayEnabled}}</td></tr>
<tr><th>Power monitor</th><td class="{{enabled .MonitorEnabled}}">{{enabled .MonitorEnabled}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Hostname</th><td>{{.Network.Hostname}}</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>
<tr><th>WiFi</th><td>{{.Network.Wifi}}</td></tr>
<tr><th>Bluetooth</th><td>{{.Network.Bluetooth}}</td></tr>{{end}}
</table>

<h2>Button Presses</h2>
<table>
{{range .PressRows}}<tr><th>{{.Channel}}</th><td>{{.Count}}</td></tr>
{{end}}</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Battery threshold</th><td>{{.Config.ThresholdS}}s</td></tr>
<tr><th>Warning window</th><td>{{.Config.WarningS}}s</td></tr>
<tr><th>Display refresh</th><td>{{.Config.DisplayIntervalS}}s</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

type pressRow struct {
	Channel string
	Count   int
}

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Press counts render in fixed channel order, zeroes included.
	rows := make([]pressRow, 0, len(input.Channels))
	for _, ch := range input.Channels {
		rows = append(rows, pressRow{Channel: string(ch), Count: snap.Presses[ch]})
	}
	data := struct {
		status.Snapshot
		Uptime    time.Duration
		PressRows []pressRow
	}{
		Snapshot:  snap,
		Uptime:    snap.Uptime(),
		PressRows: rows,
	}
	indexTmpl.Execute(w, data)
}
