package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/logging"
	"github.com/gaidesk/gaidesk-backend/pkg/client"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

const serviceName string = "gaidesk-feeder"

var serviceVersion string = "develop"

type options struct {
	url     string
	token   string
	show    int
	reading types.Reading
}

func main() {
	_ = godotenv.Load()

	ctx, logger := logging.NewLogger(context.Background(), serviceName, serviceVersion, os.Getenv("LOG_LEVEL"))

	opts, err := parseFlags(os.Args[1:], os.Getenv)
	exitIf(err, logger, "invalid arguments")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	c := client.New(opts.url, opts.token)

	receipt, err := c.PostReading(ctx, opts.reading)
	exitIf(err, logger, "failed to post reading")

	logger.Info().Str("device", receipt.Device).Str("key", receipt.Key).Msg("reading stored")

	if opts.show > 0 {
		readings, err := c.Readings(ctx, receipt.Device, opts.show)
		exitIf(err, logger, "failed to fetch readings")

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(readings)
	}
}

func parseFlags(args []string, getenv func(string) string) (options, error) {
	opts := options{}
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)

	defaultURL := getenv("GAIDESK_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:5000"
	}

	fs.StringVar(&opts.url, "url", defaultURL, "base url of the gaidesk service")
	fs.StringVar(&opts.token, "token", getenv("API_TOKEN"), "bearer token, defaults to API_TOKEN")
	fs.StringVar(&opts.reading.Device, "device", "", "device id")
	fs.StringVar(&opts.reading.SessionKey, "session", "", "session key")
	fs.IntVar(&opts.show, "show", 0, "print this many of the latest readings afterwards")

	floatVar(fs, &opts.reading.Temperature, "t", "temperature")
	floatVar(fs, &opts.reading.CO2, "co2", "co2 concentration in ppm")
	floatVar(fs, &opts.reading.Stress, "F", "stress metric")
	floatVar(fs, &opts.reading.HeartRate, "bpm", "heart rate metric")
	floatVar(fs, &opts.reading.Distance, "dist", "distance in cm")

	fs.Func("presence", "presence flag, 0 or 1", func(s string) error {
		p, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		opts.reading.Presence = &p
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.token == "" {
		return options{}, fmt.Errorf("a token is required")
	}

	return opts, nil
}

func floatVar(fs *flag.FlagSet, target **float64, name, usage string) {
	fs.Func(name, usage, func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*target = &f
		return nil
	})
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Fatal().Err(err).Msg(msg)
	}
}
