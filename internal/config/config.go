// Package config holds the generator's configuration surface: a JSON
// file overlaid by CLI flags, with defaults filled in by Resolve and
// sanity checks in Validate. Validation runs before any synthesis so a
// bad invocation never writes partial output.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Config holds all settings for one sheet generation run.
type Config struct {
	Text string `json:"text"`
	Font string `json:"font"` // TTF path; empty = embedded Go Bold
	Out  string `json:"out"`

	Format string `json:"format"` // bmp, webp, tga, png
	BPP    int    `json:"bpp"`    // 24 true color or 8 paletted

	Cols   int    `json:"cols"`
	Rows   int    `json:"rows"`
	Frames int    `json:"frames"`
	Size   string `json:"size"` // "WxH"

	AxDeg          float64 `json:"ax"`
	AyDeg          float64 `json:"ay"`
	Focal          float64 `json:"focal"`
	AlphaThreshold int     `json:"alpha_thresh"`
	ScrollCycles   float64 `json:"scroll_cycles"`

	AvoidTransparent *bool `json:"avoid_transparent,omitempty"`

	Workers int `json:"workers"`
}

// Load reads a JSON config file. Fields not set in the file keep their
// zero values until Resolve fills defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve fills empty fields with defaults.
func (c *Config) Resolve() {
	if c.Text == "" {
		c.Text = "@cmprmsd"
	}
	if c.Out == "" {
		c.Out = "sheet.bmp"
	}
	if c.Format == "" {
		c.Format = "bmp"
	}
	if c.BPP == 0 {
		c.BPP = 24
	}
	if c.Cols == 0 {
		c.Cols = 8
	}
	if c.Rows == 0 {
		c.Rows = 4
	}
	if c.Frames == 0 {
		c.Frames = 32
	}
	if c.Size == "" {
		c.Size = "160x160"
	}
	if c.AxDeg == 0 {
		c.AxDeg = 15
	}
	if c.AyDeg == 0 {
		c.AyDeg = 40
	}
	if c.Focal == 0 {
		c.Focal = 320
	}
	if c.AlphaThreshold == 0 {
		c.AlphaThreshold = 32
	}
	if c.AvoidTransparent == nil {
		v := true
		c.AvoidTransparent = &v
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate rejects nonsensical settings. It runs after Resolve and
// before any rendering.
func (c *Config) Validate() error {
	if _, _, err := ParseSize(c.Size); err != nil {
		return err
	}
	if c.Frames < 1 {
		return fmt.Errorf("config: frames must be >= 1, got %d", c.Frames)
	}
	if c.Cols < 1 || c.Rows < 1 {
		return fmt.Errorf("config: grid must be at least 1x1, got %dx%d", c.Cols, c.Rows)
	}
	if c.Frames > c.Cols*c.Rows {
		return fmt.Errorf("config: %d frames exceed %dx%d grid capacity", c.Frames, c.Cols, c.Rows)
	}
	if c.Focal <= 0 {
		return fmt.Errorf("config: focal length must be positive, got %v", c.Focal)
	}
	if c.AlphaThreshold < 0 || c.AlphaThreshold > 256 {
		return fmt.Errorf("config: alpha threshold must be in 0..256, got %d", c.AlphaThreshold)
	}
	if c.BPP != 8 && c.BPP != 24 {
		return fmt.Errorf("config: bpp must be 8 or 24, got %d", c.BPP)
	}
	switch strings.ToLower(c.Format) {
	case "bmp", "webp", "tga", "png":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Format)
	}
	if c.BPP == 8 && strings.ToLower(c.Format) != "bmp" {
		return fmt.Errorf("config: 8-bit paletted output requires the bmp format")
	}
	return nil
}

// ParseSize parses a "WxH" dimension string.
func ParseSize(s string) (w, h int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("config: invalid size %q, want WxH", s)
	}
	w, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("config: invalid width in %q", s)
	}
	h, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("config: invalid height in %q", s)
	}
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("config: size %q must be positive", s)
	}
	return w, h, nil
}
