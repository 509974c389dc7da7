// Package config loads the oarc CLI settings from defaults, an optional YAML
// file, OARC_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"oarc-decorators/pkg/console"
	"oarc-decorators/pkg/errx"
	"oarc-decorators/pkg/singleton"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "OARC"

// Keys understood by Load.
const (
	KeyVerbose           = "verbose"
	KeyDebug             = "debug"
	KeyColor             = "color"
	KeyOutput            = "output"
	KeyMetricsFile       = "metrics_file"
	KeyTransportExitCode = "transport_exit_code"
	KeyProbeTimeout      = "probe_timeout"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Settings are the effective CLI settings.
type Settings struct {
	// Path is the config file that was read, empty when none was found.
	Path string `mapstructure:"-" json:"config_file,omitempty" yaml:"config_file,omitempty"`

	Verbose           bool          `mapstructure:"verbose" json:"verbose" yaml:"verbose"`
	Debug             bool          `mapstructure:"debug" json:"debug" yaml:"debug"`
	Color             string        `mapstructure:"color" json:"color" yaml:"color"`
	Output            string        `mapstructure:"output" json:"output" yaml:"output"`
	MetricsFile       string        `mapstructure:"metrics_file" json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
	TransportExitCode int           `mapstructure:"transport_exit_code" json:"transport_exit_code" yaml:"transport_exit_code"`
	ProbeTimeout      time.Duration `mapstructure:"probe_timeout" json:"probe_timeout" yaml:"probe_timeout"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Settings {
	return Settings{
		Color:        string(console.ColorAuto),
		Output:       OutputText,
		ProbeTimeout: 10 * time.Second,
	}
}

// DefaultPath returns $HOME/.oarc/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".oarc", "config.yaml"), nil
}

// Load reads the settings. An explicit path must exist; without one the
// default path is used when present. Flags in fs named after a key (with
// dashes for underscores) override the other sources when set.
func Load(path string, fs *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyVerbose, d.Verbose)
	v.SetDefault(KeyDebug, d.Debug)
	v.SetDefault(KeyColor, d.Color)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyMetricsFile, d.MetricsFile)
	v.SetDefault(KeyTransportExitCode, d.TransportExitCode)
	v.SetDefault(KeyProbeTimeout, d.ProbeTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for _, key := range keys() {
			if f := fs.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errx.WrapConfiguration("failed to bind flag", err).WithContext("flag", f.Name)
				}
			}
		}
	}

	read := ""
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errx.WrapConfiguration("failed to read config file", err).WithContext("path", path)
		}
		read = path
	} else if def, err := DefaultPath(); err == nil {
		v.SetConfigFile(def)
		if err := v.ReadInConfig(); err == nil {
			read = def
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, errx.WrapConfiguration("failed to read config file", err).WithContext("path", def)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errx.WrapConfiguration("invalid configuration", err)
	}
	s.Path = read
	s.Output = strings.ToLower(s.Output)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks value ranges and enumerations.
func (s *Settings) Validate() error {
	if _, err := console.ParseColorMode(s.Color); err != nil {
		return errx.WrapConfiguration(fmt.Sprintf("invalid color mode %q", s.Color), err).WithContext("key", KeyColor)
	}
	switch strings.ToLower(s.Output) {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return errx.Configuration(fmt.Sprintf("invalid output format %q", s.Output)).WithContext("key", KeyOutput)
	}
	if s.TransportExitCode < 0 || s.TransportExitCode > 255 {
		return errx.Configuration(fmt.Sprintf("transport exit code %d out of range", s.TransportExitCode)).
			WithContext("key", KeyTransportExitCode)
	}
	if s.ProbeTimeout <= 0 {
		return errx.Configuration("probe timeout must be positive").WithContext("key", KeyProbeTimeout)
	}
	return nil
}

// ColorMode returns the validated color mode.
func (s *Settings) ColorMode() console.ColorMode {
	mode, err := console.ParseColorMode(s.Color)
	if err != nil {
		return console.ColorAuto
	}
	return mode
}

// YAML renders the settings as YAML.
func (s *Settings) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// NewShared returns a Singleton that loads the settings once. Its only
// parameter is the config path, so asking again for a different path returns
// the settings already loaded and emits a drift warning.
func NewShared(fs *pflag.FlagSet, opts ...singleton.Option) *singleton.Singleton[*Settings] {
	return singleton.New("Settings", func(a singleton.Args) (*Settings, error) {
		return Load(a.String("path"), fs)
	}, opts...)
}

// Open returns the shared settings for path.
func Open(shared *singleton.Singleton[*Settings], path string) (*Settings, error) {
	return shared.Construct(singleton.Named(map[string]any{"path": path}))
}

func keys() []string {
	return []string{
		KeyVerbose, KeyDebug, KeyColor, KeyOutput,
		KeyMetricsFile, KeyTransportExitCode, KeyProbeTimeout,
	}
}
