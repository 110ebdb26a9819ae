package trace

import (
	"image"
	"math"

	"github.com/matzehuels/findline/pkg/raster"
)

// CollisionInput bundles everything a collision strategy may consult.
type CollisionInput struct {
	Skeleton  *raster.Bitmap // 0 = line, 255 = background
	Path      []image.Point  // traced skeleton path
	Waypoints []image.Point  // raw user points
	Thickness int            // measured stroke width
}

// A CollisionStrategy locates points where the traced line likely crosses
// unrelated ink. The mask builder carves circular exclusions around each
// reported point.
type CollisionStrategy interface {
	// Name identifies the strategy in logs and diagnostics.
	Name() string
	// Detect returns collision points in a deterministic order.
	Detect(in CollisionInput) []image.Point
}

// JunctionStrategy flags skeleton junctions close to the traced path. This
// is the default strategy: wherever another line crosses the traced one,
// thinning produces a junction pixel, so junction proximity is a cheap and
// reliable crossing signal.
type JunctionStrategy struct{}

// Name implements CollisionStrategy.
func (JunctionStrategy) Name() string { return "junction" }

// Detect reports every junction within max(thickness, 5) pixels of the
// traced path, deduplicating junctions that land within thickness pixels
// of an already-recorded collision.
func (JunctionStrategy) Detect(in CollisionInput) []image.Point {
	if in.Skeleton == nil {
		return nil
	}
	threshold := float64(max(in.Thickness, 5))

	var out []image.Point
	for _, j := range Junctions(in.Skeleton) {
		for _, p := range in.Path {
			if dist(p, j) > threshold {
				continue
			}
			if !nearAny(out, j, float64(in.Thickness)) {
				out = append(out, j)
			}
			break
		}
	}
	return out
}

// DeviationStrategy flags clusters of path points that deviate sharply from
// the ideal straight segments between consecutive waypoints.
//
// It is implemented but intentionally not part of the default pipeline: in
// practice it also fires on legitimate curved leaders, and how its output
// should combine with junction detection is unresolved. Select it
// explicitly via Options.Collision only for experiments.
type DeviationStrategy struct{}

// Name implements CollisionStrategy.
func (DeviationStrategy) Name() string { return "deviation" }

// Detect projects each path point onto its waypoint segment and collects
// clusters of at least three points whose deviation exceeds
// max(3*thickness, 10); each cluster contributes its centroid, deduplicated
// within 2*thickness pixels.
func (DeviationStrategy) Detect(in CollisionInput) []image.Point {
	if len(in.Waypoints) < 2 {
		return nil
	}
	threshold := float64(max(in.Thickness*3, 10))

	var out []image.Point
	for s := 0; s < len(in.Waypoints)-1; s++ {
		a, b := in.Waypoints[s], in.Waypoints[s+1]
		dx := float64(b.X - a.X)
		dy := float64(b.Y - a.Y)
		lenSq := dx*dx + dy*dy
		if lenSq == 0 {
			continue
		}

		var cluster []image.Point
		for _, p := range in.Path {
			t := (float64(p.X-a.X)*dx + float64(p.Y-a.Y)*dy) / lenSq
			t = math.Min(1, math.Max(0, t))
			ix := float64(a.X) + t*dx
			iy := float64(a.Y) + t*dy
			dev := math.Hypot(float64(p.X)-ix, float64(p.Y)-iy)
			if dev > threshold {
				cluster = append(cluster, p)
			}
		}
		// A lone outlier is path noise; only a cluster marks a crossing.
		if len(cluster) < 3 {
			continue
		}

		var sx, sy int
		for _, p := range cluster {
			sx += p.X
			sy += p.Y
		}
		c := image.Pt(sx/len(cluster), sy/len(cluster))
		if !nearAny(out, c, float64(in.Thickness*2)) {
			out = append(out, c)
		}
	}
	return out
}

// nearAny reports whether p lies within radius of any point in pts.
func nearAny(pts []image.Point, p image.Point, radius float64) bool {
	for _, q := range pts {
		if dist(p, q) < radius {
			return true
		}
	}
	return false
}
