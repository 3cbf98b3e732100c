package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/houselights/api"
	"github.com/matt-g-everett/houselights/stream"
)

type app struct {
	Config   stream.Config
	Sender   stream.Sender
	Streamer *stream.Streamer
	Api      *api.Api

	close func() error
}

func newApp(config stream.Config) *app {
	a := new(app)
	a.Config = config
	return a
}

func (a *app) openSender() error {
	switch a.Config.Transport {
	case stream.TransportMqtt:
		s, err := stream.DialMqtt(a.Config.Mqtt)
		if err != nil {
			return err
		}
		a.Sender, a.close = s, s.Close
	default:
		s := &stream.LogSender{Source: a.Config.Mqtt.ClientID}
		a.Sender, a.close = s, s.Close
	}
	return nil
}

func (a *app) run(ctx context.Context) error {
	if err := a.openSender(); err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			log.Warn().Err(err).Msg("closing sender")
		}
	}()

	streamer, err := stream.NewStreamer(a.Config, a.Sender)
	if err != nil {
		return err
	}
	a.Streamer = streamer

	if a.Config.Api.Addr != "" {
		a.Api = api.NewApi(a.Config.Api.Addr)
		a.Streamer.Observe(a.Api)
		go func() {
			if err := a.Api.Serve(ctx); err != nil {
				log.Error().Err(err).Msg("api stopped")
			}
		}()
	}

	return a.Streamer.Run(ctx)
}

// applyFlags lets explicitly set command line flags win over the config file.
func applyFlags(fs *flag.FlagSet, config *stream.Config, sleepSecs float64, runForMins int) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sleep":
			config.Animation.Sleep = time.Duration(sleepSecs * float64(time.Second))
		case "runfor":
			config.Animation.RunFor = time.Duration(runForMins) * time.Minute
		}
	})
}

func main() {
	// Parse command line parameters
	configPath := flag.String("config", "", "YAML config file, built-in installation defaults when empty.")
	sleepSecs := flag.Float64("sleep", 0.2, "Interval between frames in seconds.")
	runForMins := flag.Int("runfor", 0, "Minutes to run for, 0 runs until interrupted.")
	verbose := flag.Bool("v", false, "Log every universe sent.")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	mqtt.ERROR = stdlog.New(log.With().Str("component", "mqtt").Logger(), "", 0)

	// Read the config
	config, err := stream.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
	}
	applyFlags(flag.CommandLine, &config, *sleepSecs, *runForMins)
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config rejected")
	}
	log.Info().
		Str("transport", config.Transport).
		Dur("sleep", config.Animation.Sleep).
		Dur("run_for", config.Animation.RunFor).
		Uint8("max_brightness", config.Animation.MaxBrightness).
		Msg("config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(config).run(ctx); err != nil {
		log.Error().Err(err).Msg("houselights stopped")
		stop()
		os.Exit(1)
	}
}
