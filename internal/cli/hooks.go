package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logSolverHooks forwards solver events to the CLI logger at debug
// level. Registered only under --verbose.
type logSolverHooks struct {
	logger *log.Logger
}

func (h *logSolverHooks) OnMetadataLoadStart(_ context.Context, repoCount int) {
	h.logger.Debugf("loading metadata for %d repositories", repoCount)
}

func (h *logSolverHooks) OnMetadataLoadComplete(_ context.Context, repoCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("metadata load failed after %s: %v", d.Round(time.Millisecond), err)
		return
	}
	h.logger.Debugf("metadata loaded for %d repositories (%s)", repoCount, d.Round(time.Millisecond))
}

func (h *logSolverHooks) OnResolveStart(_ context.Context, requested int) {
	h.logger.Debugf("resolving %d requested packages", requested)
}

func (h *logSolverHooks) OnResolveComplete(_ context.Context, installed int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("resolve failed after %s: %v", d.Round(time.Millisecond), err)
		return
	}
	h.logger.Debugf("resolve selected %d packages (%s)", installed, d.Round(time.Millisecond))
}

// logCacheHooks forwards index-cache events to the CLI logger.
type logCacheHooks struct {
	logger *log.Logger
}

func (h *logCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debugf("cache hit (%s)", keyType)
}

func (h *logCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debugf("cache miss (%s)", keyType)
}

func (h *logCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debugf("cache store (%s, %d bytes)", keyType, size)
}
