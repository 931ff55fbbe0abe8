package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline, cache and fetch events to the CLI logger.
// Failures log at warn level; everything else is debug, visible with -v.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(logger *log.Logger) *logHooks {
	return &logHooks{logger: logger}
}

func (h *logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("loading tree", "source", source)
}

func (h *logHooks) OnLoadComplete(_ context.Context, source string, topics int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("tree load failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("tree loaded", "source", source, "topics", topics, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnRenderStart(_ context.Context, kind, id string) {
	h.logger.Debug("render", "kind", kind, "id", id)
}

func (h *logHooks) OnRenderComplete(_ context.Context, kind, id string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "kind", kind, "id", id, "err", err)
		return
	}
	h.logger.Debug("rendered", "kind", kind, "id", id, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("fetch", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("fetched", "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("fetch failed", "method", method, "host", host, "path", path, "err", err)
}
