package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

type Config struct {
	Stream     Stream
	Source     Source
	Monitoring Monitoring
	Debug      bool
}

// Stream describes the virtual capture device side of the bridge.
type Stream struct {
	// Name is a human-readable stream identifier used in logs and metrics.
	Name string `fig:"name" default:"zed"`
	// Device is the v4l2loopback device index N of /dev/videoN.
	// The kernel module accepts indices up to 99.
	Device int `fig:"device" default:"2"`
	// Frequency is the target output frame rate in Hz; 0 disables
	// rate limiting and every delivered frame is written.
	Frequency float64 `fig:"frequency" default:"0"`
	// Width and Height of the negotiated device format. Incoming
	// frames must match this geometry.
	Width  int `fig:"width" default:"1280"`
	Height int `fig:"height" default:"720"`
}

// Source describes the frame publisher subscription.
type Source struct {
	// Address of the frame publisher, e.g. ws://localhost:9090.
	Address string `fig:"address" default:"ws://localhost:9090"`
	// Topic is the published image stream to subscribe to.
	Topic string `fig:"topic" default:"/camera/image_raw"`
}

type Monitoring struct {
	Port             int    `fig:"port" default:"6601"`
	URLPrefix        string `fig:"url_prefix"`
	MetricEnabled    bool   `fig:"metric_enabled"`
	ProfilingEnabled bool   `fig:"profiling_enabled"`
}

func (m *Monitoring) IsEnabled() bool { return m.MetricEnabled || m.ProfilingEnabled }

// NewConfig loads the configuration from an optional file with
// environment variable overrides.
func NewConfig(path string) (c Config, err error) {
	err = load(&c, path)
	return
}

func (c *Config) WithFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Stream.Name, "name", c.Stream.Name, "stream identifier")
	fs.IntVar(&c.Stream.Device, "device", c.Stream.Device, "v4l2loopback device index (/dev/videoN)")
	fs.Float64Var(&c.Stream.Frequency, "frequency", c.Stream.Frequency, "target output frequency in Hz (0 = unlimited)")
	fs.IntVar(&c.Stream.Width, "width", c.Stream.Width, "output frame width")
	fs.IntVar(&c.Stream.Height, "height", c.Stream.Height, "output frame height")
	fs.StringVar(&c.Source.Address, "source", c.Source.Address, "frame publisher address")
	fs.StringVar(&c.Source.Topic, "topic", c.Source.Topic, "image topic to subscribe to")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
}

func (c *Config) Validate() error {
	if c.Stream.Device < 0 || c.Stream.Device > 99 {
		return fmt.Errorf("device index %v is out of range [0, 99]", c.Stream.Device)
	}
	if c.Stream.Frequency < 0 {
		return fmt.Errorf("frequency %v is negative", c.Stream.Frequency)
	}
	if c.Stream.Width < 2 || c.Stream.Width%2 != 0 {
		return fmt.Errorf("width %v is not a positive even number", c.Stream.Width)
	}
	if c.Stream.Height < 1 {
		return fmt.Errorf("height %v is not positive", c.Stream.Height)
	}
	if c.Source.Address == "" {
		return fmt.Errorf("source address is empty")
	}
	return nil
}
