package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/findline/pkg/cache"
	"github.com/matzehuels/findline/pkg/observability"
	"github.com/matzehuels/findline/pkg/raster"
	"github.com/matzehuels/findline/pkg/region"
)

// cacheKeyType tags skeleton entries in cache hook events.
const cacheKeyType = "skeleton"

// skeletonTTL bounds how long cached skeletons are kept. The entry is a
// pure function of the image bytes, so the TTL only limits disk growth.
const skeletonTTL = 30 * 24 * time.Hour

// skeletonEntry is the cached wire form of a skeleton bitmap.
type skeletonEntry struct {
	W    int          `json:"w"`
	H    int          `json:"h"`
	Runs []region.Run `json:"runs"`
}

// loadSkeleton returns the cached skeleton for the image bytes, or nil on
// miss. Decode failures are treated as misses.
func loadSkeleton(ctx context.Context, c cache.Cache, imageData []byte, logger *log.Logger) *raster.Bitmap {
	data, ok, err := c.Get(ctx, cache.SkeletonKey(imageData))
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(cacheKeyType)
		return nil
	}
	var entry skeletonEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Debugf("discarding unreadable skeleton cache entry: %v", err)
		observability.Cache().OnCacheMiss(cacheKeyType)
		return nil
	}
	skel, err := region.DecodeRLE(entry.Runs, entry.W, entry.H)
	if err != nil {
		logger.Debugf("discarding unreadable skeleton cache entry: %v", err)
		observability.Cache().OnCacheMiss(cacheKeyType)
		return nil
	}
	observability.Cache().OnCacheHit(cacheKeyType)
	return skel
}

// storeSkeleton caches the skeleton for the image bytes. Failures are
// logged at debug level and otherwise ignored.
func storeSkeleton(ctx context.Context, c cache.Cache, imageData []byte, skel *raster.Bitmap, logger *log.Logger) {
	data, err := json.Marshal(skeletonEntry{W: skel.W, H: skel.H, Runs: region.EncodeRLE(skel)})
	if err != nil {
		logger.Debugf("could not encode skeleton for cache: %v", err)
		return
	}
	if err := c.Set(ctx, cache.SkeletonKey(imageData), data, skeletonTTL); err != nil {
		logger.Debugf("could not cache skeleton: %v", err)
		return
	}
	observability.Cache().OnCacheSet(cacheKeyType, len(data))
}
