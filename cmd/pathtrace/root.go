package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathtrace/gridpath"
	"github.com/katalvlaran/pathtrace/internal/config"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "pathtrace",
		Short: "Trace least-cost routes across intensity images",
		Long: "pathtrace finds the cheapest 8-connected route between pixels of an image,\n" +
			"treating bright (or, with --invert, dark) pixels as costly obstacles.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
	}
	cmd.PersistentFlags().StringVar(&rf.configPath, "config", "", "config file (YAML or JSON)")
	cmd.PersistentFlags().BoolVarP(&rf.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(newTraceCmd(rf))
	cmd.AddCommand(newBatchCmd(rf))
	cmd.AddCommand(newServeCmd(rf))

	return cmd
}

// load reads the config file (if any) and builds the logger on stderr.
func (rf *rootFlags) load(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if rf.configPath != "" {
		var err error
		if cfg, err = config.LoadFromPath(rf.configPath); err != nil {
			return config.Config{}, nil, err
		}
	}
	if rf.verbose {
		cfg.Log.Level = "debug"
	}

	return cfg, cfg.NewLogger(cmd.ErrOrStderr()), nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (gridpath.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return gridpath.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return gridpath.Point{}, fmt.Errorf("point %q: x: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return gridpath.Point{}, fmt.Errorf("point %q: y: %w", s, err)
	}

	return gridpath.Point{X: x, Y: y}, nil
}

// imageFlags are shared by trace and batch; set flags override the config.
type imageFlags struct {
	path      string
	invert    bool
	threshold float64
	overlay   string
	scale     int
}

func (f *imageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "image", "", "input image (PNG, JPEG or GIF)")
	cmd.Flags().BoolVar(&f.invert, "invert", false, "treat dark pixels as obstacles")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "binarize luminance at this level (0 keeps raw values)")
	cmd.Flags().StringVar(&f.overlay, "overlay", "", "write a PNG with the routes drawn over the field")
	cmd.Flags().IntVar(&f.scale, "scale", 4, "overlay pixels per field cell")
	_ = cmd.MarkFlagRequired("image")
}

func (f *imageFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("invert") {
		cfg.Image.Invert = f.invert
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Image.Threshold = f.threshold
	}
}
