package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so values round-trip through TOML as strings
// like "1s" or "1500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is read once at startup and handed to the rest of the application as
// plain values. The connection core never touches the file itself.
type Config struct {
	Server string `toml:"server"`
	Token  string `toml:"token"`

	// Timestamp is the time layout chat entries are rendered with.
	Timestamp string `toml:"timestamp"`

	ReconnectDelay Duration `toml:"reconnect_delay"`
	OutboundBuffer int      `toml:"outbound_buffer"`

	// LogFile receives the rotating structured log; empty logs to stderr.
	LogFile string `toml:"log_file"`
}

func Default() Config {
	return Config{
		Server:         "server.mattkc.com",
		Token:          "Your token here",
		Timestamp:      "15:04:05",
		ReconnectDelay: Duration{time.Second},
		OutboundBuffer: 100,
		LogFile:        "gokc.log",
	}
}

// Load reads the configuration at path. A missing file is not an error: the
// defaults are written there so the user has something to edit, matching how
// the client has always behaved on first run.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.Save(path); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
		}
		return cfg, nil
	}

	// Decoding over the defaults keeps omitted keys at their default values.
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.OutboundBuffer <= 0 {
		cfg.OutboundBuffer = Default().OutboundBuffer
	}
	if cfg.ReconnectDelay.Duration <= 0 {
		cfg.ReconnectDelay = Default().ReconnectDelay
	}
	return cfg, nil
}

func (c Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
