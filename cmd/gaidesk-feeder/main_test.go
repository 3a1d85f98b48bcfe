package main

import (
	"testing"

	"github.com/matryer/is"
)

func TestThatFlagsBuildReading(t *testing.T) {
	is := is.New(t)

	env := map[string]string{"API_TOKEN": "from-env"}

	opts, err := parseFlags([]string{"-device", "D", "-session", "K", "-t", "24.5", "-co2", "800", "-presence", "1"}, func(k string) string { return env[k] })
	is.NoErr(err)

	is.Equal(opts.url, "http://localhost:5000")
	is.Equal(opts.token, "from-env")
	is.Equal(opts.reading.Device, "D")
	is.Equal(opts.reading.SessionKey, "K")
	is.Equal(*opts.reading.Temperature, 24.5)
	is.Equal(*opts.reading.CO2, 800.0)
	is.Equal(*opts.reading.Presence, 1)
	is.Equal(opts.reading.HeartRate, nil)
}

func TestThatTokenIsRequired(t *testing.T) {
	is := is.New(t)

	_, err := parseFlags([]string{"-t", "20"}, func(string) string { return "" })
	is.True(err != nil)
}

func TestThatBadNumberIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := parseFlags([]string{"-token", "x", "-co2", "lots"}, func(string) string { return "" })
	is.True(err != nil)
}
