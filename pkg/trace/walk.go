package trace

import (
	"image"
	"math"

	"github.com/matzehuels/findline/pkg/raster"
)

const (
	// MaxSteps caps the skeleton walk so the tracer terminates even on
	// cyclic or degenerate skeleton neighborhoods. A path therefore never
	// exceeds MaxSteps+1 points.
	MaxSteps = 2000

	// goalRadius is the distance at which the walk snaps to the goal.
	goalRadius = 3
)

// TraceBetween walks the skeleton from start towards goal and returns the
// visited pixels in order.
//
// The walker is purely greedy: at each step it moves to the unvisited
// skeleton 8-neighbor that minimizes Euclidean distance to the goal, with
// no backtracking or global planning. When no neighbor qualifies, the
// search widens to squares of radius 2..4 around the current pixel and
// takes the first unvisited skeleton pixel (in scan order, not best-of)
// that is strictly closer to the goal than the current pixel. If the
// widened search also fails, the walk ends and the partial path is
// returned; an incomplete path is a degradation, not an error.
//
// Once within 3px of the goal the goal itself is appended and the walk
// stops. The visited set prevents revisits, which can dead-end the walk
// prematurely even when an unvisited alternate route exists; callers rely
// on this exact behavior (the fallback policy and the mask oversampling
// density both assume it), so it must not be "improved" to a shortest-path
// search.
func TraceBetween(skel *raster.Bitmap, start, goal image.Point) []image.Point {
	cur := start
	path := []image.Point{cur}
	visited := map[image.Point]bool{cur: true}

	for step := 0; step < MaxSteps; step++ {
		distToGoal := dist(cur, goal)
		if distToGoal < goalRadius {
			path = append(path, goal)
			break
		}

		next, ok := bestNeighbor(skel, visited, cur, goal)
		if !ok {
			next, ok = widenedNeighbor(skel, visited, cur, goal, distToGoal)
		}
		if !ok {
			break
		}

		cur = next
		path = append(path, cur)
		visited[cur] = true
	}

	return path
}

// bestNeighbor picks the unvisited skeleton 8-neighbor of cur closest to
// goal. Ties resolve to the first candidate in scan order (dx outer, dy
// inner, both ascending).
func bestNeighbor(skel *raster.Bitmap, visited map[image.Point]bool, cur, goal image.Point) (image.Point, bool) {
	best := image.Point{}
	bestScore := math.Inf(1)
	found := false

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := image.Pt(cur.X+dx, cur.Y+dy)
			if !skel.In(p.X, p.Y) || visited[p] || skel.At(p.X, p.Y) >= 127 {
				continue
			}
			if score := dist(p, goal); score < bestScore {
				bestScore = score
				best = p
				found = true
			}
		}
	}
	return best, found
}

// widenedNeighbor scans squares of radius 2..4 around cur and returns the
// first unvisited skeleton pixel strictly closer to goal than cur.
func widenedNeighbor(skel *raster.Bitmap, visited map[image.Point]bool, cur, goal image.Point, distToGoal float64) (image.Point, bool) {
	for r := 2; r <= 4; r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				p := image.Pt(cur.X+dx, cur.Y+dy)
				if !skel.In(p.X, p.Y) || visited[p] || skel.At(p.X, p.Y) >= 127 {
					continue
				}
				if dist(p, goal) < distToGoal {
					return p, true
				}
			}
		}
	}
	return image.Point{}, false
}

// dist returns the Euclidean distance between two pixel coordinates.
func dist(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
