// Package config merges the optional YAML defaults file with command-line
// flags into the settings of one invocation.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"md5sum/internal/metrics"
	"md5sum/internal/verify"
)

// EnvFile names the defaults file when --config is not given.
const EnvFile = "MD5SUM_CONFIG"

// File is the YAML defaults file. Every key is optional.
type File struct {
	Algorithm     *string `yaml:"algorithm"`
	IgnoreMissing *bool   `yaml:"ignore_missing"`
	Quiet         *bool   `yaml:"quiet"`
	Status        *bool   `yaml:"status"`
	Strict        *bool   `yaml:"strict"`
	Warn          *bool   `yaml:"warn"`
	Progress      *bool   `yaml:"progress"`
	Stats         *string `yaml:"stats"`
	LogLevel      *string `yaml:"log_level"`
	LogFormat     *string `yaml:"log_format"`
}

// Load reads and strictly decodes a defaults file; unknown keys are errors.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return File{}, errors.Wrap(err, "read config")
	}

	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
		return File{}, errors.Wrapf(err, "decode config %s", path)
	}
	return f, nil
}

// Settings is everything one invocation needs.
type Settings struct {
	Check     bool
	Algorithm string
	Run       verify.Config
	Progress  bool
	Stats     string
	LogLevel  string
	LogFormat string
}

// Defaults are the settings with no flags and no file.
func Defaults() Settings {
	return Settings{
		Algorithm: "md5",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Apply copies the values set in f into s, except those for which
// explicit(flagName) is true.
func (f File) Apply(s *Settings, explicit func(flagName string) bool) {
	setString := func(flag string, dst *string, v *string) {
		if v != nil && !explicit(flag) {
			*dst = *v
		}
	}
	setBool := func(flag string, dst *bool, v *bool) {
		if v != nil && !explicit(flag) {
			*dst = *v
		}
	}

	setString("algorithm", &s.Algorithm, f.Algorithm)
	setBool("ignore-missing", &s.Run.IgnoreMissing, f.IgnoreMissing)
	setBool("quiet", &s.Run.Quiet, f.Quiet)
	setBool("status", &s.Run.Status, f.Status)
	setBool("strict", &s.Run.Strict, f.Strict)
	setBool("warn", &s.Run.Warn, f.Warn)
	setBool("progress", &s.Progress, f.Progress)
	setString("stats", &s.Stats, f.Stats)
	setString("log-level", &s.LogLevel, f.LogLevel)
	setString("log-format", &s.LogFormat, f.LogFormat)
}

func (s Settings) Validate() error {
	if s.Stats != "" && !metrics.ValidFormat(s.Stats) {
		return errors.Errorf("invalid stats format %q (want text or json)", s.Stats)
	}
	if _, err := s.level(); err != nil {
		return err
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return errors.Errorf("invalid log format %q (want text or json)", s.LogFormat)
	}
	return nil
}

func (s Settings) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, errors.Wrapf(err, "invalid log level %q", s.LogLevel)
	}
	return lvl, nil
}

// NewLogger builds the logger described by s, writing to w.
func (s Settings) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := s.level()
	if err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(s.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
