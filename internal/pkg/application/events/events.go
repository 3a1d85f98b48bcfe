package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"
	yaml "gopkg.in/yaml.v2"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/logging"
)

const (
	ReadingIngestedType string = "gaidesk.reading.ingested"
	Source              string = "github.com/gaidesk/gaidesk-backend"
)

//go:generate moq -rm -out events_mock.go . EventSender

type EventSender interface {
	Send(ctx context.Context, evt ReadingIngested) error
}

type ReadingIngested struct {
	Device     string         `json:"device"`
	SessionKey string         `json:"session_key,omitempty"`
	Key        string         `json:"key"`
	Timestamp  time.Time      `json:"timestamp"`
	Reading    map[string]any `json:"reading"`
}

type subscriber struct {
	endpoint string
	patterns []*regexp.Regexp
}

func (s subscriber) wants(device string) bool {
	if len(s.patterns) == 0 {
		return true
	}
	for _, p := range s.patterns {
		if p.MatchString(device) {
			return true
		}
	}
	return false
}

type eventSender struct {
	subscribers map[string][]subscriber
	newClient   func() (cloudevents.Client, error)
}

func New(cfg *Config) (EventSender, error) {
	e := &eventSender{
		subscribers: make(map[string][]subscriber),
		newClient: func() (cloudevents.Client, error) {
			return cloudevents.NewClientHTTP()
		},
	}

	if cfg == nil {
		return e, nil
	}

	for _, n := range cfg.Notifications {
		for _, s := range n.Subscribers {
			sub := subscriber{endpoint: s.Endpoint}

			for _, info := range s.Information {
				for _, entity := range info.Entities {
					p, err := regexp.Compile(entity.IDPattern)
					if err != nil {
						return nil, fmt.Errorf("bad idPattern in notification %s: %w", n.ID, err)
					}
					sub.patterns = append(sub.patterns, p)
				}
			}

			e.subscribers[n.Type] = append(e.subscribers[n.Type], sub)
		}
	}

	return e, nil
}

func (e *eventSender) Send(ctx context.Context, evt ReadingIngested) error {
	targets := []string{}
	for _, s := range e.subscribers[ReadingIngestedType] {
		if s.wants(evt.Device) {
			targets = append(targets, s.endpoint)
		}
	}

	if len(targets) == 0 {
		return nil
	}

	c, err := e.newClient()
	if err != nil {
		return err
	}

	event := cloudevents.NewEvent()
	event.SetID(uuid.NewString())
	event.SetTime(evt.Timestamp)
	event.SetSource(Source)
	event.SetType(ReadingIngestedType)
	event.SetSubject(evt.Device)

	err = event.SetData(cloudevents.ApplicationJSON, evt)
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	for _, endpoint := range targets {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, endpoint)

		result := c.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error().Err(result).Msgf("failed to send event to %s", endpoint)
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}

type EntityInfo struct {
	IDPattern string `yaml:"idPattern"`
}

type RegistrationInfo struct {
	Entities []EntityInfo `yaml:"entities"`
}

type SubscriberConfig struct {
	Endpoint    string             `yaml:"endpoint"`
	Information []RegistrationInfo `yaml:"information"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
