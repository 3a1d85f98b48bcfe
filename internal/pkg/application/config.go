package application

const DefaultDeviceID string = "GAIDESK-01"

// Config is built once at startup and never modified afterwards.
type Config struct {
	DefaultDevice string
	APIToken      string
}

func (c Config) device(id string) string {
	if id != "" {
		return id
	}
	if c.DefaultDevice != "" {
		return c.DefaultDevice
	}
	return DefaultDeviceID
}
