package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pathtrace/field"
	"github.com/katalvlaran/pathtrace/gridpath"
	"github.com/katalvlaran/pathtrace/internal/metrics"
	"github.com/katalvlaran/pathtrace/internal/render"
	"github.com/katalvlaran/pathtrace/internal/server"
)

func newBatchCmd(rf *rootFlags) *cobra.Command {
	var (
		img   imageFlags
		pairs string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Trace many independent routes over one image in parallel",
		Long: "batch reads a YAML (or JSON) list of {from: {x, y}, to: {x, y}} pairs and\n" +
			"prints one JSON result per pair, in order. A failed pair does not stop the batch.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := rf.load(cmd)
			if err != nil {
				return err
			}
			img.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			reqs, err := loadPairs(pairs)
			if err != nil {
				return err
			}
			f, err := field.Load(img.path, cfg.ImageOptions())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if d, _ := cfg.Timeout(); d > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}

			start := time.Now()
			outs, err := gridpath.FindPaths(ctx, f, reqs, cfg.GridOptions(logger)...)
			if err != nil {
				return fmt.Errorf("batch: %w", err)
			}

			results := make([]server.BatchResult, len(outs))
			var found []gridpath.Route
			for i, o := range outs {
				results[i] = server.BatchResult{From: o.Request.From, To: o.Request.To, Result: metrics.Classify(o.Err)}
				if o.Err != nil {
					results[i].Error = o.Err.Error()
					continue
				}
				route := o.Route
				results[i].Route = &route
				found = append(found, route)
			}
			logger.Info("batch traced",
				slog.Int("pairs", len(reqs)),
				slog.Int("found", len(found)),
				slog.Duration("elapsed", time.Since(start)))

			if img.overlay != "" {
				ro := render.DefaultOptions()
				ro.Scale = img.scale
				if err := render.SavePNG(img.overlay, f, found, ro); err != nil {
					return err
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
	img.register(cmd)
	cmd.Flags().StringVar(&pairs, "pairs", "", "YAML or JSON file listing from/to pairs")
	_ = cmd.MarkFlagRequired("pairs")

	return cmd
}

// loadPairs reads a list of requests. JSON parses as YAML.
func loadPairs(path string) ([]gridpath.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pairs: %w", err)
	}
	var reqs []gridpath.Request
	if err := yaml.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("parse pairs %s: %w", path, err)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("parse pairs %s: no pairs", path)
	}

	return reqs, nil
}
