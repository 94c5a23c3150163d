// Command rainbowsheet renders an animated sprite sheet: a text glyph
// filled with a scrolling diagonal rainbow, warped on a tumbling 3D
// plate, packed into a grid and written as BMP/WebP/TGA/PNG.
package main

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rainbow-sheet/internal/config"
	"rainbow-sheet/internal/encode"
	"rainbow-sheet/internal/glyph"
	"rainbow-sheet/internal/quant"
	"rainbow-sheet/internal/rainbow"
	"rainbow-sheet/internal/synth"
)

var (
	version = "0.1.0"
	verbose bool

	configFile string
	flagCfg    config.Config
	avoidKey   bool
)

var rootCmd = &cobra.Command{
	Use:   "rainbowsheet",
	Short: "Render a rainbow-text sprite sheet",
	Long: `rainbowsheet rasterizes text, fills it with a diagonal rainbow
gradient, warps it on a rotating plate in 3D perspective and packs the
frames into a sprite-sheet grid.

With --bpp 8 the sheet is written paletted, and palette index 0 is
guaranteed to mean background and nothing else.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&configFile, "config", "", "JSON config file; flags override it")
	f.StringVar(&flagCfg.Text, "text", "", `text to render (default "@cmprmsd")`)
	f.StringVar(&flagCfg.Font, "font", "", "TTF font file (default: embedded Go Bold)")
	f.StringVar(&flagCfg.Out, "out", "", `output file (default "sheet.bmp")`)
	f.StringVar(&flagCfg.Format, "format", "", "output format: bmp, webp, tga, png (default bmp)")
	f.IntVar(&flagCfg.BPP, "bpp", 0, "bit depth for bmp: 24 true color or 8 paletted (default 24)")
	f.IntVar(&flagCfg.Cols, "cols", 0, "grid columns (default 8)")
	f.IntVar(&flagCfg.Rows, "rows", 0, "grid rows (default 4)")
	f.IntVar(&flagCfg.Frames, "frames", 0, "frame count, at most cols*rows (default 32)")
	f.StringVar(&flagCfg.Size, "size", "", `frame size as WxH (default "160x160")`)
	f.Float64Var(&flagCfg.AxDeg, "ax", 0, "pitch amplitude in degrees (default 15)")
	f.Float64Var(&flagCfg.AyDeg, "ay", 0, "yaw amplitude in degrees (default 40)")
	f.Float64Var(&flagCfg.Focal, "focal", 0, "perspective focal length (default 320)")
	f.IntVar(&flagCfg.AlphaThreshold, "alpha-thresh", 0, "foreground alpha cutoff 0-256 (default 32)")
	f.Float64Var(&flagCfg.ScrollCycles, "scroll-cycles", 0, "rainbow scroll cycles per loop (default 0 = static)")
	f.BoolVar(&avoidKey, "avoid-transparent", true, "never emit exact magenta inside glyphs")
	f.IntVar(&flagCfg.Workers, "workers", 0, "frame render workers (default: NumCPU)")
	f.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	w, h, _ := config.ParseSize(cfg.Size)
	bg := rainbow.KeyBackground

	ttf := glyph.DefaultFont()
	if cfg.Font != "" {
		if ttf, err = glyph.LoadFont(cfg.Font); err != nil {
			return err
		}
	}

	// The glyph gets most of the frame width but only the upper half of
	// its height budget, leaving room for the plate to swing.
	mask, err := glyph.Render(cfg.Text, ttf, w*9/10, h*55/100, 4)
	if err != nil {
		return err
	}
	logVerbose("glyph mask: %dx%d", mask.Bounds().Dx(), mask.Bounds().Dy())

	params := synth.Params{
		Width:            w,
		Height:           h,
		Frames:           cfg.Frames,
		AxDeg:            cfg.AxDeg,
		AyDeg:            cfg.AyDeg,
		Focal:            cfg.Focal,
		AlphaThreshold:   cfg.AlphaThreshold,
		ScrollCycles:     cfg.ScrollCycles,
		Background:       bg,
		AvoidTransparent: *cfg.AvoidTransparent,
	}

	start := time.Now()
	frames := synth.RenderFrames(mask, params, cfg.Workers)

	sheet, err := synth.PackSheet(frames, cfg.Cols, cfg.Rows, bg)
	if err != nil {
		return err
	}

	var out image.Image = sheet
	if cfg.BPP == 8 {
		pal := rainbow.Palette(bg)
		out = quant.ToIndexed(sheet, pal, bg)
		logVerbose("quantized to 8-bit, palette index 0 reserved for background")
	}

	enc := encode.NewRegistry().Get(cfg.Format)
	data, err := enc.Encode(out)
	if err != nil {
		return fmt.Errorf("encode %s: %w", cfg.Format, err)
	}
	if err := os.WriteFile(cfg.Out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Out, err)
	}

	fmt.Printf("Wrote %s  size=%dx%d  frames=%d (%dx%d)  bpp=%d  scroll_cycles=%v\n",
		cfg.Out, sheet.Bounds().Dx(), sheet.Bounds().Dy(),
		cfg.Frames, cfg.Cols, cfg.Rows, cfg.BPP, cfg.ScrollCycles)
	fmt.Printf("Done in %.1fs  hash=%s\n", time.Since(start).Seconds(), encode.SheetHash(data))
	return nil
}

// buildConfig layers the JSON file under explicitly-set flags, then
// applies defaults and validates before any rendering starts.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return cfg, err
		}
	}
	// Defaults first, then explicit flags on top. A flag set to zero
	// (e.g. --ax 0) is an explicit value, not a request for the default.
	cfg.Resolve()

	fl := cmd.Flags()
	if fl.Changed("text") {
		cfg.Text = flagCfg.Text
	}
	if fl.Changed("font") {
		cfg.Font = flagCfg.Font
	}
	if fl.Changed("out") {
		cfg.Out = flagCfg.Out
	}
	if fl.Changed("format") {
		cfg.Format = flagCfg.Format
	}
	if fl.Changed("bpp") {
		cfg.BPP = flagCfg.BPP
	}
	if fl.Changed("cols") {
		cfg.Cols = flagCfg.Cols
	}
	if fl.Changed("rows") {
		cfg.Rows = flagCfg.Rows
	}
	if fl.Changed("frames") {
		cfg.Frames = flagCfg.Frames
	}
	if fl.Changed("size") {
		cfg.Size = flagCfg.Size
	}
	if fl.Changed("ax") {
		cfg.AxDeg = flagCfg.AxDeg
	}
	if fl.Changed("ay") {
		cfg.AyDeg = flagCfg.AyDeg
	}
	if fl.Changed("focal") {
		cfg.Focal = flagCfg.Focal
	}
	if fl.Changed("alpha-thresh") {
		cfg.AlphaThreshold = flagCfg.AlphaThreshold
	}
	if fl.Changed("scroll-cycles") {
		cfg.ScrollCycles = flagCfg.ScrollCycles
	}
	if fl.Changed("avoid-transparent") {
		v := avoidKey
		cfg.AvoidTransparent = &v
	}
	if fl.Changed("workers") {
		cfg.Workers = flagCfg.Workers
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[rainbowsheet] "+format+"\n", args...)
	}
}
