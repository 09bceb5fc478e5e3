// Package config holds the application configuration of the reliaroute CLI.
//
// The file is YAML; absent keys keep their Default values. Validate applies the
// struct tags below.
//
//	search:
//	  threshold: 0.9        # minimum transfer success probability, [0, 1]
//	  transfer_time: 120    # seconds added at every station transfer
//	  solutions: 3          # itineraries to return
//	  max_rounds: 0         # 0 derives the cap from the network size
//	walking:
//	  max_meters: 400       # 0 disables coordinate-derived walks
//	  speed_mps: 1.2
//	feed:
//	  static: gtfs.zip
//	  realtime: [https://example.org/tripupdates.pb]
//	  min_samples: 20
//	logging:
//	  level: info           # debug | info | warn | error
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Search tunes the itinerary search.
type Search struct {
	Threshold    float64 `yaml:"threshold" validate:"gte=0,lte=1"`
	TransferTime int64   `yaml:"transfer_time" validate:"gte=0"`
	Solutions    int     `yaml:"solutions" validate:"gte=1"`
	MaxRounds    int     `yaml:"max_rounds" validate:"gte=0"`
}

// Walking tunes coordinate-derived walking transfers.
type Walking struct {
	MaxMeters float64 `yaml:"max_meters" validate:"gte=0"`
	SpeedMPS  float64 `yaml:"speed_mps" validate:"gt=0"`
}

// Feed locates the GTFS inputs. Realtime entries are URLs or file paths.
type Feed struct {
	Static     string   `yaml:"static"`
	Realtime   []string `yaml:"realtime" validate:"dive,required"`
	MinSamples int      `yaml:"min_samples" validate:"gte=1"`
}

// Logging selects the slog level.
type Logging struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Config is the root configuration.
type Config struct {
	Search  Search  `yaml:"search"`
	Walking Walking `yaml:"walking"`
	Feed    Feed    `yaml:"feed"`
	Logging Logging `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Search:  Search{Threshold: 0.9, TransferTime: 120, Solutions: 3},
		Walking: Walking{MaxMeters: 400, SpeedMPS: 1.2},
		Feed:    Feed{MinSamples: 20},
		Logging: Logging{Level: "info"},
	}
}

// Parse decodes YAML over Default and validates the result. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses a YAML file. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: %s %s", fe.Namespace(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SlogLevel maps Logging.Level onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
