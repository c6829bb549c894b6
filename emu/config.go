package emu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"zeusemu/emu/log"
	"zeusemu/hw/zeus2"
)

type Config struct {
	Video     VideoConfig     `toml:"video"`
	Zeus      ZeusConfig      `toml:"zeus"`
	Emulation EmulationConfig `toml:"emulation"`
}

type VideoConfig struct {
	Clock         uint32 `toml:"clock"` // Hz
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	VisibleWidth  int    `toml:"visible_width"`
	VisibleHeight int    `toml:"visible_height"`

	// Frame output.
	Scale  int    `toml:"scale"`
	Format string `toml:"format"`
}

var FrameFormats = []string{"png", "bmp"}

// Check fixes invalid values, falling back to defaults.
func (vcfg *VideoConfig) Check() {
	def := DefaultConfig().Video
	if vcfg.Clock == 0 {
		vcfg.Clock = def.Clock
	}
	if vcfg.Width <= 0 || vcfg.Height <= 0 {
		vcfg.Width, vcfg.Height = def.Width, def.Height
	}
	if vcfg.VisibleWidth <= 0 || vcfg.VisibleWidth > vcfg.Width {
		vcfg.VisibleWidth = min(def.VisibleWidth, vcfg.Width)
	}
	if vcfg.VisibleHeight <= 0 || vcfg.VisibleHeight >= vcfg.Height {
		vcfg.VisibleHeight = min(def.VisibleHeight, vcfg.Height-1)
	}
	if vcfg.Scale < 1 {
		vcfg.Scale = 1
	}
	if !slices.Contains(FrameFormats, vcfg.Format) {
		if vcfg.Format != "" {
			log.ModEmu.Warnf("Invalid frame format %q, fallback to %q", vcfg.Format, def.Format)
		}
		vcfg.Format = def.Format
	}
}

type ZeusConfig struct {
	ZBase    float32 `toml:"zbase"`
	LogFifo  bool    `toml:"log_fifo"`
	RegUsage bool    `toml:"reg_usage"`
}

type EmulationConfig struct {
	// Emulated time to run after the end of a trace.
	RunAhead Duration `toml:"run_ahead"`
}

// Duration is a time.Duration written as a string ("16ms") in toml.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func DefaultConfig() Config {
	zcfg := zeus2.DefaultConfig()
	return Config{
		Video: VideoConfig{
			Clock:         zcfg.VideoClock,
			Width:         666,
			Height:        438,
			VisibleWidth:  512,
			VisibleHeight: 400,
			Scale:         1,
			Format:        "png",
		},
		Zeus: ZeusConfig{
			ZBase:   zcfg.ZBase,
			LogFifo: zcfg.LogFifo,
		},
	}
}

// Check fixes invalid values, falling back to defaults.
func (cfg *Config) Check() {
	cfg.Video.Check()
	if cfg.Emulation.RunAhead.Duration < 0 {
		cfg.Emulation.RunAhead.Duration = 0
	}
}

// ConfigDir returns the zeusemu config directory, creating it if needed.
var ConfigDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Warnf("no user config directory, using current directory: %v", err)
		return "."
	}
	dir = filepath.Join(dir, "zeusemu")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// LoadConfig loads the configuration at path. Missing values keep their
// default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.WarnZ("unknown config key").
			String("file", path).
			String("key", key.String()).
			End()
	}
	cfg.Check()
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the zeusemu config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	cfg, err := LoadConfig(filepath.Join(ConfigDir(), cfgFilename))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModEmu.Warnf("%v, using default configuration", err)
		}
		return DefaultConfig()
	}
	return cfg
}

// SaveConfigFile writes cfg at path.
func SaveConfigFile(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// SaveConfig into zeusemu config directory.
func SaveConfig(cfg Config) error {
	return SaveConfigFile(filepath.Join(ConfigDir(), cfgFilename), cfg)
}
