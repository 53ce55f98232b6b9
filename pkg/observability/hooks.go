// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about grid composition, palette storage, previews and
// cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The HTTP server registers a Prometheus-backed implementation; the CLI keeps
// the no-op defaults.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetComposeHooks(&myComposeHooks{})
//	    observability.SetPaletteHooks(&myPaletteHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Compose().OnComposeComplete(ctx, diagrams, colors, dropped, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Compose Hooks
// =============================================================================

// ComposeHooks receives events from grid composition.
type ComposeHooks interface {
	// OnComposeComplete records one composed grid.
	OnComposeComplete(ctx context.Context, diagrams, colors, droppedEdges int, duration time.Duration)
}

// =============================================================================
// Palette Hooks
// =============================================================================

// PaletteHooks receives events from palette stores.
type PaletteHooks interface {
	// OnPaletteLoad records a palette load. fallback is true when the
	// default palette was returned instead of stored data.
	OnPaletteLoad(ctx context.Context, backend string, entries int, fallback bool)

	// OnPaletteSave records a palette write.
	OnPaletteSave(ctx context.Context, backend string, entries int, err error)
}

// =============================================================================
// Preview Hooks
// =============================================================================

// PreviewHooks receives events from the SVG preview renderer.
type PreviewHooks interface {
	// OnRenderComplete records a Graphviz render.
	OnRenderComplete(ctx context.Context, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopComposeHooks is a no-op implementation of ComposeHooks.
type NoopComposeHooks struct{}

func (NoopComposeHooks) OnComposeComplete(context.Context, int, int, int, time.Duration) {}

// NoopPaletteHooks is a no-op implementation of PaletteHooks.
type NoopPaletteHooks struct{}

func (NoopPaletteHooks) OnPaletteLoad(context.Context, string, int, bool)  {}
func (NoopPaletteHooks) OnPaletteSave(context.Context, string, int, error) {}

// NoopPreviewHooks is a no-op implementation of PreviewHooks.
type NoopPreviewHooks struct{}

func (NoopPreviewHooks) OnRenderComplete(context.Context, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	composeHooks ComposeHooks = NoopComposeHooks{}
	paletteHooks PaletteHooks = NoopPaletteHooks{}
	previewHooks PreviewHooks = NoopPreviewHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetComposeHooks registers custom compose hooks.
// This should be called once at application startup.
func SetComposeHooks(h ComposeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		composeHooks = h
	}
}

// SetPaletteHooks registers custom palette hooks.
func SetPaletteHooks(h PaletteHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		paletteHooks = h
	}
}

// SetPreviewHooks registers custom preview hooks.
func SetPreviewHooks(h PreviewHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		previewHooks = h
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

// Compose returns the registered compose hooks.
func Compose() ComposeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return composeHooks
}

// Palette returns the registered palette hooks.
func Palette() PaletteHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return paletteHooks
}

// Preview returns the registered preview hooks.
func Preview() PreviewHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return previewHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	composeHooks = NoopComposeHooks{}
	paletteHooks = NoopPaletteHooks{}
	previewHooks = NoopPreviewHooks{}
	cacheHooks = NoopCacheHooks{}
}
