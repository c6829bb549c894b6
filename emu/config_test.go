package emu

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[video]
scale = 3
format = "bmp"

[zeus]
zbase = 4.5
reg_usage = true

[emulation]
run_ahead = "20ms"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Video.Scale = 3
	want.Video.Format = "bmp"
	want.Zeus.ZBase = 4.5
	want.Zeus.RegUsage = true
	want.Emulation.RunAhead = Duration{20 * time.Millisecond}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadConfig(missing) = %v, want ErrNotExist", err)
	}

	for _, content := range []string{
		"[video\n",
		"[emulation]\nrun_ahead = \"soon\"\n",
		"[video]\nscale = \"big\"\n",
	} {
		if _, err := LoadConfig(writeConfig(t, content)); err == nil {
			t.Errorf("LoadConfig(%q) succeeded", content)
		}
	}
}

func TestConfigCheck(t *testing.T) {
	var cfg Config
	cfg.Video.Format = "gif"
	cfg.Emulation.RunAhead.Duration = -time.Second
	cfg.Check()

	want := DefaultConfig()
	want.Zeus = ZeusConfig{}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("checked config mismatch (-want +got):\n%s", diff)
	}

	// A visible area must leave room for vblank.
	cfg = DefaultConfig()
	cfg.Video.Width, cfg.Video.Height = 300, 200
	cfg.Check()
	if cfg.Video.VisibleWidth != 300 || cfg.Video.VisibleHeight != 199 {
		t.Errorf("visible area = %dx%d, want 300x199", cfg.Video.VisibleWidth, cfg.Video.VisibleHeight)
	}
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Video.Scale = 2
	cfg.Zeus.LogFifo = true
	cfg.Emulation.RunAhead = Duration{time.Second}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveConfigFile(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("reloaded config mismatch (-want +got):\n%s", diff)
	}
}
