// Command medibox runs the medicine-storage device daemon: debounced
// button input, the menu and alarm state machine, the environment
// monitor, the light-servo controller, and MQTT telemetry plus remote
// configuration.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Dayananthan2021/MediBox/internal/alarm"
	"github.com/Dayananthan2021/MediBox/internal/button"
	"github.com/Dayananthan2021/MediBox/internal/clock"
	"github.com/Dayananthan2021/MediBox/internal/config"
	"github.com/Dayananthan2021/MediBox/internal/display"
	"github.com/Dayananthan2021/MediBox/internal/env"
	"github.com/Dayananthan2021/MediBox/internal/hw"
	"github.com/Dayananthan2021/MediBox/internal/lightservo"
	"github.com/Dayananthan2021/MediBox/internal/log"
	"github.com/Dayananthan2021/MediBox/internal/mqtt"
	"github.com/Dayananthan2021/MediBox/internal/remote"
	"github.com/Dayananthan2021/MediBox/internal/status"
	"github.com/Dayananthan2021/MediBox/internal/ui"
	"github.com/Dayananthan2021/MediBox/internal/web"
)

func main() {
	configFile := flag.String("config", "config.yml", "Path to config file")
	console := flag.Bool("console", false, "Run with simulated hardware and keyboard input")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}

	logger := log.NewLogger(cfg.Log)
	if err != nil {
		logger.Warn("Config file %s not found, using defaults", *configFile)
	}

	if err := run(cfg, *console, logger); err != nil {
		logger.Fatal("%v", err)
	}
}

func run(cfg *config.Config, console bool, logger *log.Logger) error {
	clk := clock.NewNTPClock(cfg.NTP.Server, cfg.Timezone, logger)
	clk.SyncUntilReady(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go clk.Run(ctx, time.Duration(cfg.NTP.SyncIntervalSec)*time.Second)

	params := lightservo.NewParams()
	ingestor := remote.NewIngestor(cfg.MQTT.Prefix, params, logger)
	deb := button.NewDebouncer(button.DebounceWindow)
	sched := alarm.NewScheduler()
	machine := ui.NewMachine(sched, clk)

	var (
		buzzer hw.Buzzer
		led    hw.LED
		servo  hw.Servo
		light  hw.LightSensor
		envSen hw.EnvSensor
		disp   display.Display
	)
	edge := func(b button.Button, t time.Time) { deb.Edge(b, t) }
	if console {
		buzzer = &hw.FakeBuzzer{}
		led = &hw.FakeLED{}
		servo = &hw.FakeServo{}
		light = hw.NewFakeLightSensor(2048)
		envSen = &hw.FakeEnvSensor{Temperature: 28, Humidity: 70}
		disp = display.NewConsole(os.Stdout)
		go readKeys(os.Stdin, edge, clk)
		logger.Info("Console mode: u/d/l/r + enter to press buttons")
	} else {
		real, err := hw.OpenReal(hw.RealConfig{
			Chip: cfg.Pins.Chip,
			Buttons: hw.ButtonPins{
				Up:    cfg.Pins.Up,
				Left:  cfg.Pins.Left,
				Down:  cfg.Pins.Down,
				Right: cfg.Pins.Right,
			},
			BuzzerPin:       cfg.Pins.Buzzer,
			LEDPin:          cfg.Pins.LED,
			LightRawPath:    cfg.Sensors.LightRawPath,
			TemperaturePath: cfg.Sensors.TemperaturePath,
			HumidityPath:    cfg.Sensors.HumidityPath,
			ServoPWMDir:     cfg.Sensors.ServoPWMDir,
		}, edge)
		if err != nil {
			return fmt.Errorf("open hardware: %w", err)
		}
		defer real.Close()
		buzzer = real.Buzzer
		led = real.LED
		servo = real.Servo
		light = real.Light
		envSen = real.Env
		disp = display.NewConsole(os.Stdout)
	}

	client, err := mqtt.NewRealClient(mqtt.Options{
		Broker:        cfg.MQTT.BrokerURL(),
		ClientID:      cfg.MQTT.ClientID,
		Username:      cfg.MQTT.Username,
		Password:      cfg.MQTT.Password,
		Keepalive:     cfg.MQTT.Keepalive,
		TopicPrefix:   cfg.MQTT.Prefix,
		Subscriptions: ingestor.Topics(),
		Handler:       ingestor.Apply,
	}, logger)
	if err != nil {
		return fmt.Errorf("connect mqtt: %w", err)
	}
	defer client.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      int64(cfg.PollMs),
		EnvCheckMs:  env.CheckInterval.Milliseconds(),
		Broker:      cfg.MQTT.BrokerURL(),
		TopicPrefix: cfg.MQTT.Prefix,
		NTPServer:   cfg.NTP.Server,
		HTTPAddr:    cfg.HTTP,
	})
	tracker.SetMQTTConnected(client.IsConnected())

	snap := tracker.Snapshot()
	startup := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := client.PublishSystem(startup); err != nil {
		logger.Warn("Failed to publish startup event: %v", err)
	} else {
		logger.Info("Published startup event")
	}

	if cfg.HTTP != "" {
		srv := web.New(cfg.HTTP, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info("HTTP status server listening on %s", cfg.HTTP)
	}

	logger.Info("Started: poll=%dms broker=%s prefix=%s",
		cfg.PollMs, cfg.MQTT.BrokerURL(), cfg.MQTT.Prefix)

	ticker := time.NewTicker(time.Duration(cfg.PollMs) * time.Millisecond)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	l := &loop{
		deb:     deb,
		machine: machine,
		sched:   sched,
		beeper:  &alarm.Beeper{},
		mon:     env.NewMonitor(envSen, buzzer, led),
		ctl:     lightservo.NewController(params, light, servo, client, logger),
		params:  params,
		clk:     clk,
		buzzer:  buzzer,
		disp:    disp,
		client:  client,
		connSt:  client,
		tracker: tracker,
		log:     logger,
	}
	return l.run(clk.Now, ticker.C, sigCh)
}

// loop bundles everything the poll cycle touches.
type loop struct {
	deb     *button.Debouncer
	machine *ui.Machine
	sched   *alarm.Scheduler
	beeper  *alarm.Beeper
	mon     *env.Monitor
	ctl     *lightservo.Controller
	params  *lightservo.Params
	clk     clock.Clock
	buzzer  hw.Buzzer
	disp    display.Display
	client  mqtt.Client
	connSt  mqtt.ConnectionStatus
	tracker *status.Tracker
	log     *log.Logger
}

// run is the poll cycle. It only ever observes time through the injected
// now func and tick channel, so tests can drive it deterministically.
func (l *loop) run(now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			l.log.Info("Received %v, shutting down", s)
			name := "UNKNOWN"
			if s == syscall.SIGINT {
				name = "SIGINT"
			} else if s == syscall.SIGTERM {
				name = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    name,
				Retained:  true,
			}
			if l.tracker != nil {
				if l.connSt != nil {
					l.tracker.SetMQTTConnected(l.connSt.IsConnected())
				}
				snap := l.tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", name)
			}
			if err := l.client.PublishSystem(event); err != nil {
				l.log.Warn("Failed to publish shutdown event: %v", err)
			} else {
				l.log.Info("Published shutdown event")
			}
			return nil

		case <-tick:
			t := now()

			// Dismissals first. The edge that latched one also set the
			// ordinary pressed flag, so that button is skipped in the
			// dispatch below: one physical press, one action.
			stopped := l.deb.ConsumeStop()
			snoozed := l.deb.ConsumeSnooze()
			if stopped {
				l.machine.Stop()
				l.log.Info("Alarm stopped")
			} else if snoozed {
				l.machine.Snooze(t)
				l.log.Info("Alarm snoozed for %v", alarm.SnoozeWindow)
			}
			for _, b := range l.deb.Consume() {
				if (stopped && b == button.Right) || (snoozed && b == button.Down) {
					continue
				}
				l.machine.HandleInput(b, t)
			}

			l.mon.Check(t, l.sched.Triggered())

			h, m := l.clk.HourMinute()
			if idx := l.sched.Check(h, m, t); idx >= 0 {
				l.machine.TriggerAlarm(idx)
				l.log.Info("Medicine time: alarm %d", idx+1)
			}

			if l.sched.Triggered() {
				l.buzzer.Set(l.beeper.Tick(t))
			} else if l.beeper.Reset() {
				l.buzzer.Set(false)
			}

			l.mon.HandleLED(t)

			reading := l.mon.Reading()
			l.ctl.Tick(t, reading.Temperature)

			l.deb.SetAlarmPage(l.machine.Page() == ui.PageAlarmTriggered)
			l.machine.Render(l.disp, reading)
			l.updateTracker(reading)
		}
	}
}

func (l *loop) updateTracker(reading env.Reading) {
	if l.tracker == nil {
		return
	}
	var alarms [2]status.AlarmInfo
	for i, s := range l.sched.Slots {
		alarms[i] = status.AlarmInfo{
			Hour:    s.Hour,
			Minute:  s.Minute,
			Active:  s.Active,
			Ringing: s.Ringing,
			Snoozed: s.Snoozed,
		}
	}
	l.tracker.Update(
		status.Environment{
			Temperature: reading.Temperature,
			Humidity:    reading.Humidity,
			Warning:     reading.Warning,
		},
		alarms,
		l.machine.Page().String(),
		l.ctl.LastAngle(),
		l.clk.Offset(),
		status.Tunables{
			MinimumAngle:     l.params.AngleOffset(),
			ControlFactor:    l.params.ControlFactor(),
			IdealTemperature: l.params.IdealTemperature(),
			SamplingMs:       l.params.SamplingMs(),
			SendingMs:        l.params.SendingMs(),
		},
	)
	if l.connSt != nil {
		l.tracker.SetMQTTConnected(l.connSt.IsConnected())
	}
}

// readKeys maps console lines onto button edges for -console mode.
func readKeys(r *os.File, edge hw.EdgeFunc, clk clock.Clock) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "u", "up":
			edge(button.Up, clk.Now())
		case "d", "down":
			edge(button.Down, clk.Now())
		case "l", "left":
			edge(button.Left, clk.Now())
		case "r", "right":
			edge(button.Right, clk.Now())
		}
	}
}
