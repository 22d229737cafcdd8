package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathtrace/astar"
	"github.com/katalvlaran/pathtrace/field"
	"github.com/katalvlaran/pathtrace/gridpath"
	"github.com/katalvlaran/pathtrace/internal/render"
)

func newTraceCmd(rf *rootFlags) *cobra.Command {
	var (
		img      imageFlags
		from, to string
		via      []string
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Trace one route and print it as JSON",
		Example: "  pathtrace trace --image vessel.png --from 3,40 --to 120,8\n" +
			"  pathtrace trace --image vessel.png --from 3,40 --via 60,20 --to 120,8 --overlay out.png",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := rf.load(cmd)
			if err != nil {
				return err
			}
			img.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			waypoints := make([]gridpath.Point, 0, len(via)+2)
			for _, s := range append(append([]string{from}, via...), to) {
				p, err := parsePoint(s)
				if err != nil {
					return err
				}
				waypoints = append(waypoints, p)
			}

			f, err := field.Load(img.path, cfg.ImageOptions())
			if err != nil {
				return err
			}
			logger.Debug("field loaded",
				slog.String("image", img.path),
				slog.Int("width", f.Width()),
				slog.Int("height", f.Height()))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if d, _ := cfg.Timeout(); d > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}
			opts := append(cfg.GridOptions(logger), gridpath.WithSearchOptions(astar.WithContext(ctx)))

			start := time.Now()
			var route gridpath.Route
			if len(waypoints) == 2 {
				route, err = gridpath.FindPath(f, waypoints[0], waypoints[1], opts...)
			} else {
				route, err = gridpath.TraceWaypoints(f, waypoints, opts...)
			}
			if err != nil {
				return fmt.Errorf("trace: %w", err)
			}
			logger.Info("route traced",
				slog.Float64("cost", route.Cost),
				slog.Int("points", len(route.Points)),
				slog.Int("expanded", route.Expanded),
				slog.Duration("elapsed", time.Since(start)))

			if img.overlay != "" {
				ro := render.DefaultOptions()
				ro.Scale = img.scale
				if err := render.SavePNG(img.overlay, f, []gridpath.Route{route}, ro); err != nil {
					return err
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(route)
		},
	}
	img.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "start pixel x,y")
	cmd.Flags().StringVar(&to, "to", "", "goal pixel x,y")
	cmd.Flags().StringArrayVar(&via, "via", nil, "intermediate waypoint x,y (repeatable, in order)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
