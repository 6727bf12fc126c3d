package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Dayananthan2021/MediBox/internal/status"
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
	"alarmTime": func(a status.AlarmInfo) string {
		if !a.Active {
			return "not set"
		}
		return fmt.Sprintf("%02d:%02d", a.Hour, a.Minute)
	},
	"alarmState": func(a status.AlarmInfo) string {
		switch {
		case a.Ringing:
			return "RINGING"
		case a.Snoozed:
			return "snoozed"
		case a.Active:
			return "armed"
		default:
			return "—"
		}
	},
	"inc": func(i int) int { return i + 1 },
	"tzOffset": func(seconds int) string {
		sign := "+"
		if seconds < 0 {
			sign = "-"
			seconds = -seconds
		}
		return fmt.Sprintf("UTC%s%d:%02d", sign, seconds/3600, (seconds%3600)/60)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>MediBox</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.ok { color: green; font-weight: bold; }
.warn { color: red; font-weight: bold; }
.muted { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>MediBox</h1>

<h2>Environment</h2>
<table>
<tr><th>Temperature</th><td>{{printf "%.1f" .Environment.Temperature}} &deg;C</td></tr>
<tr><th>Humidity</th><td>{{printf "%.0f" .Environment.Humidity}} %</td></tr>
<tr><th>Status</th><td class="{{if .Environment.Warning}}warn{{else}}ok{{end}}">{{if .Environment.Warning}}WARNING{{else}}healthy{{end}}</td></tr>
<tr><th>Shade angle</th><td>{{printf "%.1f" .ServoAngle}}&deg;</td></tr>
</table>

<h2>Medicine Times</h2>
<table>
{{range $i, $a := .Alarms}}<tr><th>Alarm {{inc $i}}</th><td class="{{if $a.Ringing}}warn{{else if $a.Active}}ok{{else}}muted{{end}}">{{alarmTime $a}} ({{alarmState $a}})</td></tr>
{{end}}</table>

<h2>Tunables</h2>
<table>
<tr><th>Minimum angle</th><td>{{printf "%.1f" .Tunables.MinimumAngle}}&deg;</td></tr>
<tr><th>Control factor</th><td>{{printf "%.2f" .Tunables.ControlFactor}}</td></tr>
<tr><th>Ideal temperature</th><td>{{printf "%.1f" .Tunables.IdealTemperature}} &deg;C</td></tr>
<tr><th>Sampling</th><td>{{.Tunables.SamplingMs}}ms</td></tr>
<tr><th>Sending</th><td>{{.Tunables.SendingMs}}ms</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Topic prefix</th><td>{{.Config.TopicPrefix}}</td></tr>
<tr><th>NTP</th><td>{{.Config.NTPServer}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Page</th><td>{{.Page}}</td></tr>
<tr><th>Timezone</th><td>{{tzOffset .TimezoneOffset}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Env check</th><td>{{.Config.EnvCheckMs}}ms</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
