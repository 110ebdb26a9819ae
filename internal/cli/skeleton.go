package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/findline/pkg/errors"
	"github.com/matzehuels/findline/pkg/raster"
	"github.com/matzehuels/findline/pkg/trace"
)

// skeletonOpts holds the command-line flags for the skeleton command.
type skeletonOpts struct {
	output  string // output PNG path (default <stem>_skeleton.png)
	mono    bool   // dump the monochrome bitmap instead of the skeleton
	noCache bool   // disable the skeleton cache
}

// skeletonCommand creates the skeleton debug command. It exposes the
// intermediate bitmaps of the pipeline for offline inspection.
func (c *CLI) skeletonCommand() *cobra.Command {
	var opts skeletonOpts

	cmd := &cobra.Command{
		Use:   "skeleton <image>",
		Short: "Dump the thinned skeleton of a drawing",
		Long: `Dump the thinned skeleton of a drawing as a PNG.

The skeleton is the one-pixel-wide centerline the trace command follows.
With --mono the binarized image is written instead, showing what the
thinning operates on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSkeleton(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default <stem>_skeleton.png)")
	cmd.Flags().BoolVar(&opts.mono, "mono", false, "write the binarized image instead of the skeleton")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the skeleton cache")

	return cmd
}

// runSkeleton binarizes and thins the image, writing the requested bitmap.
func (c *CLI) runSkeleton(ctx context.Context, input string, opts skeletonOpts) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidImage, err, "could not read image: %s", input)
	}
	img, err := raster.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	gray := raster.GrayFromImage(img)
	prog := newProgress(logger)

	var out *raster.Bitmap
	suffix := "_skeleton"
	if opts.mono {
		out = trace.Monochrome(gray)
		suffix = "_mono"
		prog.done("Binarized image")
	} else {
		store := newCache(opts.noCache)
		defer store.Close()

		if out = loadSkeleton(ctx, store, data, logger); out == nil {
			out = trace.Skeletonize(trace.Monochrome(gray))
			storeSkeleton(ctx, store, data, out, logger)
		}
		prog.done(fmt.Sprintf("Skeletonized %d pixels", out.Count(0)))
	}

	output := opts.output
	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + suffix + ".png"
	}
	if err := raster.Save(out.Image(), output); err != nil {
		return err
	}

	printSuccess("Wrote %s bitmap", strings.TrimPrefix(suffix, "_"))
	printKeyValue("Size", fmt.Sprintf("%dx%d", out.W, out.H))
	printKeyValue("Ink", fmt.Sprintf("%d px", out.Count(0)))
	printFile(output)
	return nil
}
