package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/xhd2015/gemini/generate"
	"github.com/xhd2015/gemini/support/fileutil"
	"github.com/xhd2015/gemini/transform"
)

// DefaultFile is looked up in the working directory when no
// config file is given explicitly.
const DefaultFile = "gemini.toml"

// DefaultTag selects the blocking variant: go build -tags gemini_sync
const DefaultTag = generate.DefaultTag

type Config struct {
	Tag         string    `toml:"tag"`
	AsyncPkg    string    `toml:"async-pkg"`
	Concurrency int       `toml:"concurrency"`
	NoPrune     bool      `toml:"no-prune"`
	Log         LogConfig `toml:"log"`
}

type LogConfig struct {
	Level zapcore.Level `toml:"level"`
	// Debug is the debug log target: stderr, stdout, a file path or disable.
	Debug string `toml:"debug"`
}

// New returns a Config with defaults.
func New() Config {
	return Config{
		Tag:      DefaultTag,
		AsyncPkg: transform.DefaultAsyncPkg,
		Log: LogConfig{
			Level: zapcore.InfoLevel,
		},
	}
}

// Load reads file on top of the defaults. An empty file means
// DefaultFile, which may be absent.
func Load(file string) (Config, error) {
	c := New()
	explicit := file != ""
	if !explicit {
		file = DefaultFile
	}
	ok, err := fileutil.FileExists(file)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if !ok {
		if !explicit {
			return c, nil
		}
		return c, fmt.Errorf("config: %s: %w", file, os.ErrNotExist)
	}
	md, err := toml.DecodeFile(file, &c)
	if err != nil {
		return c, fmt.Errorf("config: decode %s: %w", file, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return c, fmt.Errorf("config: %s: unknown keys: %s", file, strings.Join(keys, ", "))
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Tag == "" {
		return errors.New("config: tag must not be empty")
	}
	if strings.ContainsAny(c.Tag, " \t!&|()") {
		return fmt.Errorf("config: invalid build tag %q", c.Tag)
	}
	if c.AsyncPkg == "" {
		return errors.New("config: async-pkg must not be empty")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config: concurrency must not be negative: %d", c.Concurrency)
	}
	return nil
}

// GenerateOptions maps c onto generate.Options.
func (c Config) GenerateOptions() generate.Options {
	return generate.Options{
		Tag:         c.Tag,
		AsyncPkg:    c.AsyncPkg,
		Concurrency: c.Concurrency,
		NoPrune:     c.NoPrune,
	}
}
