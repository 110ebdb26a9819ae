// Package trace implements pixel-accurate tracing of hand-indicated leader
// lines on scanned technical drawings.
//
// Given a handful of approximate user-clicked waypoints lying near a thin
// ink line, the pipeline produces a binary mask of exactly that line, even
// where it is interrupted by crossing ink (text, hatching, other parts).
//
// # Pipeline
//
// The stages run in dependency order:
//
//  1. Monochrome: Otsu binarization of the source raster
//  2. Skeletonize: topology-preserving thinning to 1px-wide curves
//  3. NearestSkeletonPoint: anchor each waypoint to the skeleton
//  4. TraceBetween: greedy walk along the skeleton between anchors
//  5. MeasureThickness: stroke width from the original raster
//  6. Junctions: skeleton branch/crossing points
//  7. CollisionStrategy: junction-proximity collision detection
//  8. BuildMask: thickness-band mask over real ink, with circular
//     exclusion carves at collision points
//
// [Tracer.Trace] wires the stages together and applies a whole-pipeline
// fallback: it never fails, degrading to a straight polyline mask of
// default thickness when the skeleton walk cannot produce a usable path.
//
// Every call is a pure function over (image, waypoints): single-threaded,
// deterministic, with no shared state between calls.
package trace
