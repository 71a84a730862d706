package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Neumenon/nbt/nbt"
	"github.com/Neumenon/nbt/nbtio"
)

// configEnv names the environment variable consulted when --config is not
// given.
const configEnv = "NBT_CONFIG"

// Config is the optional TOML configuration:
//
//	max_depth = 512
//	max_array_len = 16777216
//	compression = "gzip"
//	max_frame_payload = 67108864
//	max_tag_size = 134217728
//
// Zero values keep the library defaults.
type Config struct {
	MaxDepth        int    `toml:"max_depth"`
	MaxArrayLen     int    `toml:"max_array_len"`
	Compression     string `toml:"compression"`
	MaxFramePayload int    `toml:"max_frame_payload"`
	MaxTagSize      int    `toml:"max_tag_size"`
}

// loadConfig reads the file at path, or at $NBT_CONFIG when path is empty.
// With neither set it returns the zero Config.
func loadConfig(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.MaxDepth < 0:
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	case c.MaxArrayLen < 0:
		return fmt.Errorf("max_array_len must not be negative, got %d", c.MaxArrayLen)
	case c.MaxFramePayload < 0:
		return fmt.Errorf("max_frame_payload must not be negative, got %d", c.MaxFramePayload)
	case c.MaxTagSize < 0:
		return fmt.Errorf("max_tag_size must not be negative, got %d", c.MaxTagSize)
	}
	_, err := nbtio.ParseCompression(c.Compression)
	return err
}

// tagOptions converts the limits to codec options.
func (c Config) tagOptions() []nbt.Option {
	var opts []nbt.Option
	if c.MaxDepth > 0 {
		opts = append(opts, nbt.WithMaxDepth(c.MaxDepth))
	}
	if c.MaxArrayLen > 0 {
		opts = append(opts, nbt.WithMaxArrayLen(c.MaxArrayLen))
	}
	if c.MaxTagSize > 0 {
		opts = append(opts, nbt.WithMaxSize(c.MaxTagSize))
	}
	return opts
}

// compression returns the configured output compression; validate has
// already checked the name.
func (c Config) compression() nbtio.Compression {
	comp, _ := nbtio.ParseCompression(c.Compression)
	return comp
}
