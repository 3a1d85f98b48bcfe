package events

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestConfig(t *testing.T) {
	is := setupTest(t)
	config := strings.NewReader(`
notifications:
  - id: readings
    name: Ingested desk readings
    type: gaidesk.reading.ingested
    subscribers:
    - endpoint: http://alerts:8990
      information:
      - entities:
        - idPattern: ^GAIDESK-.+
`)
	cfg, err := LoadConfiguration(config)

	is.NoErr(err)
	is.Equal(len(cfg.Notifications), 1)
	is.Equal(cfg.Notifications[0].ID, "readings")
	is.Equal(cfg.Notifications[0].Subscribers[0].Information[0].Entities[0].IDPattern, "^GAIDESK-.+")
}

func TestThatEventIsDeliveredToMatchingSubscriber(t *testing.T) {
	is := setupTest(t)

	var ceType, ceSubject string
	var body map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ceType = r.Header.Get("Ce-Type")
		ceSubject = r.Header.Get("Ce-Subject")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender, err := New(configFor(srv.URL, "^GAIDESK-.+"))
	is.NoErr(err)

	err = sender.Send(context.Background(), ReadingIngested{
		Device:    "GAIDESK-01",
		Key:       "1761395651000",
		Timestamp: time.UnixMilli(1761395651000),
		Reading:   map[string]any{"co2": 800},
	})
	is.NoErr(err)

	is.Equal(ceType, ReadingIngestedType)
	is.Equal(ceSubject, "GAIDESK-01")
	is.Equal(body["key"], "1761395651000")
}

func TestThatNonMatchingDeviceIsNotSent(t *testing.T) {
	is := setupTest(t)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender, err := New(configFor(srv.URL, "^GAIDESK-.+"))
	is.NoErr(err)

	err = sender.Send(context.Background(), ReadingIngested{Device: "OTHER", Key: "1", Timestamp: time.Now()})
	is.NoErr(err)
	is.Equal(calls, 0)
}

func TestThatNoSubscribersIsANoop(t *testing.T) {
	is := setupTest(t)

	sender, err := New(nil)
	is.NoErr(err)
	is.NoErr(sender.Send(context.Background(), ReadingIngested{Device: "D"}))
}

func TestThatBadPatternIsRejected(t *testing.T) {
	is := setupTest(t)

	_, err := New(configFor("http://localhost", "(["))
	is.True(err != nil)
}

func configFor(endpoint, pattern string) *Config {
	return &Config{
		Notifications: []Notification{{
			ID:   "readings",
			Type: ReadingIngestedType,
			Subscribers: []SubscriberConfig{{
				Endpoint: endpoint,
				Information: []RegistrationInfo{{
					Entities: []EntityInfo{{IDPattern: pattern}},
				}},
			}},
		}},
	}
}

func setupTest(t *testing.T) *is.I {
	is := is.New(t)

	return is
}
