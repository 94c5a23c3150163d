package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_Defaults(t *testing.T) {
	var c Config
	c.Resolve()

	if c.Text == "" || c.Out == "" {
		t.Fatal("text/out defaults not filled")
	}
	if c.Frames != 32 || c.Cols != 8 || c.Rows != 4 {
		t.Errorf("grid defaults wrong: frames=%d cols=%d rows=%d", c.Frames, c.Cols, c.Rows)
	}
	if c.Focal != 320 || c.AlphaThreshold != 32 {
		t.Errorf("render defaults wrong: focal=%v thresh=%d", c.Focal, c.AlphaThreshold)
	}
	if c.AvoidTransparent == nil || !*c.AvoidTransparent {
		t.Error("avoid-transparent should default to true")
	}
	if c.Workers < 1 {
		t.Error("workers not resolved")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad size", func(c *Config) { c.Size = "potato" }},
		{"zero size", func(c *Config) { c.Size = "0x100" }},
		{"frames exceed grid", func(c *Config) { c.Frames = 33 }},
		{"zero frames", func(c *Config) { c.Frames = -1 }},
		{"negative focal", func(c *Config) { c.Focal = -5 }},
		{"threshold out of range", func(c *Config) { c.AlphaThreshold = 300 }},
		{"bad bpp", func(c *Config) { c.BPP = 16 }},
		{"bad format", func(c *Config) { c.Format = "gif" }},
		{"paletted non-bmp", func(c *Config) { c.BPP = 8; c.Format = "png" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Config
			c.Resolve()
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_ThresholdMax(t *testing.T) {
	// 256 is legal: it means "no pixel is foreground".
	var c Config
	c.Resolve()
	c.AlphaThreshold = 256
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize("160x90")
	if err != nil || w != 160 || h != 90 {
		t.Fatalf("got %dx%d, %v", w, h, err)
	}
	if _, _, err := ParseSize("160"); err == nil {
		t.Error("missing separator accepted")
	}
	if _, _, err := ParseSize("ax90"); err == nil {
		t.Error("non-numeric width accepted")
	}
	// Upper-case separator is tolerated.
	if _, _, err := ParseSize("64X64"); err != nil {
		t.Errorf("64X64 rejected: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"text":"hi","frames":16,"cols":4,"rows":4,"scroll_cycles":1.5}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Text != "hi" || cfg.Frames != 16 || cfg.ScrollCycles != 1.5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
}
