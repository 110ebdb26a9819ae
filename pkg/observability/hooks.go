// Package observability provides hooks for instrumenting the tracing
// pipeline and the skeleton cache.
//
// The core library stays free of logging and metrics dependencies; instead
// consumers register hooks at startup to receive events about pipeline
// stage timings, fallbacks, and cache operations.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// The tracer calls hooks as stages complete:
//
//	observability.Pipeline().OnStageStart("skeletonize")
//	// ... thin the bitmap ...
//	observability.Pipeline().OnStageComplete("skeletonize", elapsed)
package observability

import (
	"sync"
	"time"
)

// Stage names reported by the tracing pipeline.
const (
	StageMonochrome = "monochrome"
	StageSkeleton   = "skeletonize"
	StageLocate     = "locate"
	StageWalk       = "walk"
	StageThickness  = "thickness"
	StageCollisions = "collisions"
	StageMask       = "mask"
)

// PipelineHooks receives events from the tracing pipeline.
//
// Implementations must be safe for concurrent use: independent traces may
// run on separate goroutines.
type PipelineHooks interface {
	// OnStageStart records the beginning of a pipeline stage.
	OnStageStart(stage string)

	// OnStageComplete records a finished stage and its duration.
	OnStageComplete(stage string, duration time.Duration)

	// OnFallback records that the pipeline degraded to the polyline
	// fallback, with a short reason ("short path", "panic", ...).
	OnFallback(reason string)
}

// CacheHooks receives events from skeleton cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(keyType string, size int)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(string)                   {}
func (NoopPipelineHooks) OnStageComplete(string, time.Duration) {}
func (NoopPipelineHooks) OnFallback(string)                     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any traces run.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}
