package trace

import (
	"fmt"
	"image"
	"time"

	"github.com/matzehuels/findline/pkg/observability"
	"github.com/matzehuels/findline/pkg/raster"
)

// Options tunes the tracing pipeline. The zero value selects the defaults;
// New clamps out-of-range values instead of failing.
type Options struct {
	// SearchRadius bounds the ring search when anchoring waypoints to the
	// skeleton. Clamped to [1, 50]. Default 50.
	SearchRadius int

	// SampleLength is the number of leading path points used for thickness
	// measurement. Default 20.
	SampleLength int

	// CollisionThreshold separates ink from paper when building the mask.
	// Default 200.
	CollisionThreshold uint8

	// DefaultThickness is the stroke width used when measurement fails and
	// for the polyline fallback. Default 3.
	DefaultThickness int

	// Collision selects the collision detection strategy.
	// Default JunctionStrategy.
	Collision CollisionStrategy

	// Skeleton optionally supplies a precomputed skeleton of the input
	// image (e.g. from a cache), skipping binarization and thinning. It is
	// ignored when its dimensions do not match the image.
	Skeleton *raster.Bitmap
}

// Result is the outcome of one trace. Mask and Thickness are always set;
// the remaining fields expose intermediate artifacts for visualization and
// caching.
type Result struct {
	Mask       *raster.Bitmap // selected line pixels, 255 = selected
	Thickness  int            // estimated stroke width, >= 1
	Path       []image.Point  // traced skeleton path (all segments concatenated)
	Anchors    []image.Point  // waypoints snapped to the skeleton
	Collisions []image.Point  // detected crossing points
	Skeleton   *raster.Bitmap // skeleton used for tracing
	Fallback   bool           // true when the polyline fallback was applied
}

// Tracer runs the leader-line tracing pipeline. A Tracer is stateless and
// safe for concurrent use; every Trace call is a pure function over its
// inputs.
type Tracer struct {
	opts Options
}

// New creates a Tracer, applying defaults and clamping Options.
func New(opts Options) *Tracer {
	if opts.SearchRadius <= 0 {
		opts.SearchRadius = DefaultSearchRadius
	}
	if opts.SearchRadius > DefaultSearchRadius {
		opts.SearchRadius = DefaultSearchRadius
	}
	if opts.SampleLength <= 0 {
		opts.SampleLength = DefaultSampleLength
	}
	if opts.CollisionThreshold == 0 {
		opts.CollisionThreshold = DefaultCollisionThreshold
	}
	if opts.DefaultThickness < 1 {
		opts.DefaultThickness = DefaultThickness
	}
	if opts.Collision == nil {
		opts.Collision = JunctionStrategy{}
	}
	return &Tracer{opts: opts}
}

// Trace runs the full pipeline on img with the given waypoints and returns
// the selection mask and thickness estimate.
//
// Trace never fails. When the skeleton walk cannot produce a usable path
// (fewer than 5 points), or any stage panics, the result degrades to a
// straight polyline mask of default thickness connecting the raw
// waypoints, restricted to ink pixels. A crude mask always comes back.
func (t *Tracer) Trace(img image.Image, waypoints []image.Point) (res Result) {
	var gray *raster.Gray

	defer func() {
		if r := recover(); r != nil {
			observability.Pipeline().OnFallback(fmt.Sprintf("panic: %v", r))
			if gray == nil {
				// The image itself was unreadable; degrade to an
				// empty frame so the fallback still returns a mask.
				gray = raster.NewGray(0, 0)
			}
			res = t.fallback(gray, waypoints)
		}
	}()

	gray = raster.GrayFromImage(img)

	if len(waypoints) < 2 {
		observability.Pipeline().OnFallback("fewer than 2 waypoints")
		return t.fallback(gray, waypoints)
	}

	skel := t.opts.Skeleton
	if skel == nil || skel.W != gray.W || skel.H != gray.H {
		mono := stage(observability.StageMonochrome, func() *raster.Bitmap {
			return Monochrome(gray)
		})
		skel = stage(observability.StageSkeleton, func() *raster.Bitmap {
			return Skeletonize(mono)
		})
	}

	anchors := stage(observability.StageLocate, func() []image.Point {
		out := make([]image.Point, len(waypoints))
		for i, wp := range waypoints {
			if a, ok := NearestSkeletonPoint(skel, wp.X, wp.Y, t.opts.SearchRadius); ok {
				out[i] = a
			} else {
				out[i] = wp // no skeleton nearby: keep the raw waypoint
			}
		}
		return out
	})

	path := stage(observability.StageWalk, func() []image.Point {
		var all []image.Point
		for i := 0; i < len(anchors)-1; i++ {
			all = append(all, TraceBetween(skel, anchors[i], anchors[i+1])...)
		}
		return all
	})

	if len(path) < 5 {
		observability.Pipeline().OnFallback("short path")
		res = t.fallback(gray, waypoints)
		res.Skeleton = skel
		res.Anchors = anchors
		res.Path = path
		return res
	}

	thickness := stage(observability.StageThickness, func() int {
		return MeasureThickness(gray, path, t.opts.SampleLength)
	})

	collisions := stage(observability.StageCollisions, func() []image.Point {
		return t.opts.Collision.Detect(CollisionInput{
			Skeleton:  skel,
			Path:      path,
			Waypoints: waypoints,
			Thickness: thickness,
		})
	})

	mask := stage(observability.StageMask, func() *raster.Bitmap {
		return BuildMask(gray, path, thickness, collisions, t.opts.CollisionThreshold)
	})

	return Result{
		Mask:       mask,
		Thickness:  thickness,
		Path:       path,
		Anchors:    anchors,
		Collisions: collisions,
		Skeleton:   skel,
	}
}

// fallback builds a straight polyline mask of default thickness along the
// raw waypoints. Selection is still restricted to ink pixels, so a blank
// image yields an empty mask rather than a painted band.
func (t *Tracer) fallback(gray *raster.Gray, waypoints []image.Point) Result {
	mask := BuildMask(gray, waypoints, t.opts.DefaultThickness, nil, t.opts.CollisionThreshold)
	return Result{
		Mask:      mask,
		Thickness: t.opts.DefaultThickness,
		Fallback:  true,
	}
}

// stage runs fn and reports its duration to the pipeline hooks.
func stage[T any](name string, fn func() T) T {
	observability.Pipeline().OnStageStart(name)
	start := time.Now()
	out := fn()
	observability.Pipeline().OnStageComplete(name, time.Since(start))
	return out
}
