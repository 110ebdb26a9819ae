package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/findline/pkg/errors"
	"github.com/matzehuels/findline/pkg/raster"
	"github.com/matzehuels/findline/pkg/region"
	"github.com/matzehuels/findline/pkg/trace"
)

// traceOpts holds the command-line flags for the trace command.
type traceOpts struct {
	points       []string // point tokens ("x,y", or the "x1,y1,x2,y2" shorthand)
	output       string   // annotated image path (default <stem>_traced_points<ext>)
	regions      string   // optional region JSON export path
	configPath   string   // optional findline.toml
	showSkeleton bool     // compose the skeleton next to the overlay
	noCache      bool     // disable the skeleton cache
}

// traceCommand creates the trace command.
func (c *CLI) traceCommand() *cobra.Command {
	var opts traceOpts

	cmd := &cobra.Command{
		Use:   "trace <image>",
		Short: "Trace a line through the given points",
		Long: `Trace a line through the given points.

The trace command snaps each point to the nearest line in the drawing,
follows the ink between consecutive points, and writes an annotated copy
of the image plus a black-and-white selection mask.

Points are given as "x,y" pixel coordinates. A single "x1,y1,x2,y2" token
is accepted and treated as two points.

Examples:
  findline trace drawing.png -p 120,340 -p 560,410
  findline trace drawing.png -p 120,340,560,410 --show-skeleton
  findline trace drawing.png -p 120,340 -p 560,410 --regions regions.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.points, "points", "p", nil, "points along the line as \"x,y\" tokens (repeatable or space-separated, at least 2)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "annotated image path (default <stem>_traced_points<ext>)")
	cmd.Flags().StringVar(&opts.regions, "regions", "", "write the selection as region JSON to this path")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a findline.toml config file")
	cmd.Flags().BoolVar(&opts.showSkeleton, "show-skeleton", false, "show the skeleton next to the annotated image")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the skeleton cache")
	_ = cmd.MarkFlagRequired("points")

	return cmd
}

// runTrace executes the full trace: parse points, load the image, run the
// pipeline, and write the annotated image and mask.
func (c *CLI) runTrace(ctx context.Context, input string, opts traceOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	var tokens []string
	for _, v := range opts.points {
		tokens = append(tokens, strings.Fields(v)...)
	}
	points, notices, err := parsePoints(tokens)
	if err != nil {
		return err
	}
	for _, n := range notices {
		logger.Warnf("%s", n)
	}
	if len(points) < 2 {
		return errors.New(errors.ErrCodeInvalidPoint, "need at least 2 points, got %d", len(points))
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidImage, err, "could not read image: %s", input)
	}
	img, err := raster.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	logger.Infof("Loaded %s (%dx%d)", input, img.Bounds().Dx(), img.Bounds().Dy())

	store := newCache(opts.noCache)
	defer store.Close()

	tropts := cfg.options()
	cachedSkel := loadSkeleton(ctx, store, data, logger)
	if cachedSkel != nil {
		logger.Debug("Using cached skeleton")
		tropts.Skeleton = cachedSkel
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Tracing line...")
	spinner.Start()
	res := trace.New(tropts).Trace(img, points)
	spinner.Stop()
	prog.done(fmt.Sprintf("Traced %d path points", len(res.Path)))

	if cachedSkel == nil && res.Skeleton != nil {
		storeSkeleton(ctx, store, data, res.Skeleton, logger)
	}
	if res.Fallback {
		printWarning("Trace degraded to a straight-line selection")
	}

	output := opts.output
	if output == "" {
		output = defaultOutputPath(input)
	}
	maskPath := maskOutputPath(output)

	overlay := renderOverlay(img, res, points, opts.showSkeleton)
	if err := raster.Save(overlay, output); err != nil {
		return err
	}
	if err := raster.Save(res.Mask.Image(), maskPath); err != nil {
		return err
	}

	printSuccess("Traced line (thickness %dpx)", res.Thickness)
	printStats(len(res.Path), res.Mask.Count(255), cachedSkel != nil)
	printFile(output)
	printFile(maskPath)

	if opts.regions != "" {
		reg, err := region.FromTrace(res)
		if err != nil {
			printWarning("No regions exported: %s", errors.UserMessage(err))
			return nil
		}
		if err := region.ExportJSON([]region.Region{reg}, opts.regions); err != nil {
			return err
		}
		printFile(opts.regions)
	}
	if res.Fallback {
		printNextStep("Inspect the centerline", "findline skeleton "+input)
	}
	return nil
}

// defaultOutputPath derives the annotated image path from the input:
// "drawing.png" becomes "drawing_traced_points.png".
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_traced_points" + ext
}

// maskOutputPath derives the mask path next to the output:
// "drawing_traced_points.png" becomes "drawing_traced_points_mask.png".
func maskOutputPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + "_mask.png"
}

// stageLogger forwards pipeline stage events to the CLI logger.
type stageLogger struct {
	logger *log.Logger
}

func (s stageLogger) OnStageStart(stage string) {
	s.logger.Debugf("Stage %s started", stage)
}

func (s stageLogger) OnStageComplete(stage string, d time.Duration) {
	s.logger.Debugf("Stage %s done (%s)", stage, d.Round(time.Millisecond))
}

func (s stageLogger) OnFallback(reason string) {
	s.logger.Warnf("Pipeline fallback: %s", reason)
}

// cacheLogger forwards skeleton cache events to the CLI logger.
type cacheLogger struct {
	logger *log.Logger
}

func (c cacheLogger) OnCacheHit(keyType string) {
	c.logger.Debugf("Cache hit (%s)", keyType)
}

func (c cacheLogger) OnCacheMiss(keyType string) {
	c.logger.Debugf("Cache miss (%s)", keyType)
}

func (c cacheLogger) OnCacheSet(keyType string, size int) {
	c.logger.Debugf("Cached %s (%d bytes)", keyType, size)
}
