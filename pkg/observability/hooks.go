// Package observability provides hooks for metrics and logging.
//
// Library packages emit events through the registered hooks; main decides
// which backend receives them. The default hooks do nothing, so the
// converter carries no hard dependency on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := observability.NewMetrics()
//	    observability.SetConvertHooks(m)
//	    observability.SetHTTPHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Convert().OnConvertStart(ctx, source)
//	// ... convert ...
//	observability.Convert().OnConvertComplete(ctx, source, stats, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Convert Hooks
// =============================================================================

// ConvertStats summarizes a finished conversion. Zero on failure.
type ConvertStats struct {
	Nodes int
	Links int
}

// ConvertHooks receives events from the conversion pipeline.
type ConvertHooks interface {
	// OnDecode records the text encoding that produced valid JSON.
	OnDecode(ctx context.Context, source, encoding string)

	// Conversion events
	OnConvertStart(ctx context.Context, source string)
	OnConvertComplete(ctx context.Context, source string, stats ConvertStats, duration time.Duration, err error)

	// OnIntegrityFailure records a failed link check and the number of
	// distinct missing node ids.
	OnIntegrityFailure(ctx context.Context, source string, missing int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP service.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a written response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConvertHooks is a no-op implementation of ConvertHooks.
type NoopConvertHooks struct{}

func (NoopConvertHooks) OnDecode(context.Context, string, string) {}
func (NoopConvertHooks) OnConvertStart(context.Context, string)   {}
func (NoopConvertHooks) OnConvertComplete(context.Context, string, ConvertStats, time.Duration, error) {
}
func (NoopConvertHooks) OnIntegrityFailure(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	convertHooks ConvertHooks = NoopConvertHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetConvertHooks registers custom conversion hooks.
// This should be called once at application startup before any conversion.
func SetConvertHooks(h ConvertHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		convertHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Convert returns the registered conversion hooks.
func Convert() ConvertHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return convertHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	convertHooks = NoopConvertHooks{}
	httpHooks = NoopHTTPHooks{}
}
