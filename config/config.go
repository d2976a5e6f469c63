// Package config loads the viewer configuration from TOML
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Duration decodes TOML strings such as "2m" or "90s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Source selects where datasets come from, URL and File are exclusive
type Source struct {
	URL        string   `toml:"url"`
	File       string   `toml:"file"`
	PointsPath string   `toml:"points_path"`
	ZonesPath  string   `toml:"zones_path"`
	Refresh    Duration `toml:"refresh"`
	Timeout    Duration `toml:"timeout"`
}

// View holds the initial presentation state
type View struct {
	Initial string `toml:"initial"`
	Labels  bool   `toml:"labels"`
	Sound   bool   `toml:"sound"`
	FPS     int    `toml:"fps"`
}

// Log controls the debug log file
type Log struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

// Config is the full file layout
type Config struct {
	Source Source            `toml:"source"`
	View   View              `toml:"view"`
	Log    Log               `toml:"log"`
	Keys   map[string]string `toml:"keys"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Source: Source{
			PointsPath: "/api/spectrum/dreamers",
			ZonesPath:  "/api/spectrum/zones",
			Refresh:    Duration{parameter.RefreshInterval},
			Timeout:    Duration{parameter.FetchTimeout},
		},
		View: View{
			Initial: spectrum.ViewDefault.String(),
			Labels:  true,
			FPS:     int(time.Second / parameter.FrameInterval),
		},
		Log: Log{Dir: "logs"},
	}
}

// Load reads path over the defaults, an empty path returns the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("%w: line %d column %d: %v", ErrInvalid, row, col, derr)
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return c.Validate()
}

// Validate checks cross-field constraints
func (c Config) Validate() error {
	if c.Source.URL != "" && c.Source.File != "" {
		return fmt.Errorf("%w: source.url and source.file are exclusive", ErrInvalid)
	}
	if c.Source.Refresh.Duration < time.Second {
		return fmt.Errorf("%w: source.refresh %s is below 1s", ErrInvalid, c.Source.Refresh)
	}
	if c.Source.Timeout.Duration <= 0 {
		return fmt.Errorf("%w: source.timeout must be positive", ErrInvalid)
	}
	if c.View.FPS < 1 || c.View.FPS > 120 {
		return fmt.Errorf("%w: view.fps %d outside 1..120", ErrInvalid, c.View.FPS)
	}
	if _, err := spectrum.ParseView(c.View.Initial); err != nil {
		return fmt.Errorf("%w: view.initial: %v", ErrInvalid, err)
	}
	return nil
}

// FrameInterval converts the configured frame rate
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.View.FPS)
}

// InitialView returns the parsed initial view
func (c Config) InitialView() spectrum.View {
	v, err := spectrum.ParseView(c.View.Initial)
	if err != nil {
		return spectrum.ViewDefault
	}
	return v
}
