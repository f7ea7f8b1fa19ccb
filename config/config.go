package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/regionview/parameter"
)

var (
	// ErrInvalid is returned when a config fails schema or semantic validation
	ErrInvalid = errors.New("invalid config")

	// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

//go:embed schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("schema.json", schemaSource)

// Config is the client configuration
type Config struct {
	Color         string   `toml:"color" yaml:"color" json:"color"`
	FrameInterval Duration `toml:"frame_interval" yaml:"frame_interval" json:"frame_interval"`
	TickInterval  Duration `toml:"tick_interval" yaml:"tick_interval" json:"tick_interval"`
	Camera        Camera   `toml:"camera" yaml:"camera" json:"camera"`
	World         World    `toml:"world" yaml:"world" json:"world"`
	Audio         Audio    `toml:"audio" yaml:"audio" json:"audio"`
	Log           Log      `toml:"log" yaml:"log" json:"log"`
	Modifiers     []string `toml:"modifiers" yaml:"modifiers" json:"modifiers"`
}

// Camera sets the initial tile window before the terminal reports its size
type Camera struct {
	TilesWidth  int `toml:"tiles_width" yaml:"tiles_width" json:"tiles_width"`
	TilesHeight int `toml:"tiles_height" yaml:"tiles_height" json:"tiles_height"`
}

// World controls generation and persistence
type World struct {
	Seed     int64  `toml:"seed" yaml:"seed" json:"seed"`
	Width    int    `toml:"width" yaml:"width" json:"width"`
	Height   int    `toml:"height" yaml:"height" json:"height"`
	Rooms    int    `toml:"rooms" yaml:"rooms" json:"rooms"`
	Tries    int    `toml:"tries" yaml:"tries" json:"tries"`
	Snapshot string `toml:"snapshot" yaml:"snapshot" json:"snapshot"`
}

type Audio struct {
	Enabled bool    `toml:"enabled" yaml:"enabled" json:"enabled"`
	Volume  float64 `toml:"volume" yaml:"volume" json:"volume"`
}

type Log struct {
	Debug  bool   `toml:"debug" yaml:"debug" json:"debug"`
	Level  string `toml:"level" yaml:"level" json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
	Dir    string `toml:"dir" yaml:"dir" json:"dir"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Color:         "auto",
		FrameInterval: Duration(parameter.FrameUpdateInterval),
		TickInterval:  Duration(parameter.TickUpdateInterval),
		Camera: Camera{
			TilesWidth:  parameter.DefaultTilesWidth,
			TilesHeight: parameter.DefaultTilesHeight,
		},
		World: World{
			Width:  parameter.DefaultTilesWidth,
			Height: parameter.DefaultTilesHeight,
			Rooms:  parameter.WorldGenRooms,
			Tries:  parameter.WorldGenTries,
		},
		Audio: Audio{Enabled: true, Volume: 1.0},
		Log: Log{
			Level:  "info",
			Format: "text",
			Dir:    parameter.LogDir,
		},
	}
}

// Load reads a TOML or YAML file over the defaults and validates the result
// Unknown keys are rejected
func Load(path string) (Config, error) {
	cfg := Default()

	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand %q: %w", path, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := decode(path, raw, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(path string, raw []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("%s: %w: %v", filepath.Base(path), ErrInvalid, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		// an empty document leaves the defaults untouched
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: %w: %v", filepath.Base(path), ErrInvalid, err)
		}
	default:
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
	return nil
}

// Validate checks the config against the embedded schema and value constraints
func (c Config) Validate() error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame_interval must be positive", ErrInvalid)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("%w: tick_interval must not be negative", ErrInvalid)
	}
	return nil
}

// SnapshotPath returns the expanded snapshot path, empty when persistence is disabled
func (c Config) SnapshotPath() (string, error) {
	if c.World.Snapshot == "" {
		return "", nil
	}
	return homedir.Expand(c.World.Snapshot)
}

// LogDir returns the expanded log directory
func (c Config) LogDir() (string, error) {
	return homedir.Expand(c.Log.Dir)
}

// Duration is a time.Duration written as a Go duration string in config files
type Duration time.Duration

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}
