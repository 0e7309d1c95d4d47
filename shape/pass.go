package shape

import (
	"path/filepath"

	"github.com/wudi/layoutkit/observability"
	"github.com/wudi/layoutkit/recovery"
)

// Pass is the context of one rendering pass: a full traversal that lays out
// and draws an entire output document. It owns the document cache shared by
// all shapes of the pass and carries the logging and failure-policy hooks.
//
// A Pass is single-threaded state. The pagination driver calls Format and
// Render sequentially per shape and must not share a Pass between
// goroutines. Close must be called when the pass ends; it releases every
// cached fixed-page handle.
type Pass struct {
	Cache    *DocumentCache
	BaseDir  string // working directory for relative references
	Log      observability.Logger
	Tracer   observability.Tracer
	Strategy recovery.Strategy
}

// PassOption configures a Pass.
type PassOption func(*Pass)

// WithBaseDir sets the working directory used to resolve relative paths.
func WithBaseDir(dir string) PassOption {
	return func(p *Pass) { p.BaseDir = dir }
}

// WithLogger sets the pass logger.
func WithLogger(log observability.Logger) PassOption {
	return func(p *Pass) { p.Log = log }
}

// WithTracer sets the pass tracer.
func WithTracer(t observability.Tracer) PassOption {
	return func(p *Pass) { p.Tracer = t }
}

// WithStrategy sets the failure-recovery strategy.
func WithStrategy(s recovery.Strategy) PassOption {
	return func(p *Pass) { p.Strategy = s }
}

// WithOpener substitutes the fixed-page package opener. Used by tests.
func WithOpener(open Opener) PassOption {
	return func(p *Pass) { p.Cache = NewDocumentCache(open) }
}

// NewPass creates a rendering-pass context. The default configuration uses
// the real fixed-page decoder, no-op logging and the lenient recovery
// strategy (failures become placeholders, never errors).
func NewPass(opts ...PassOption) *Pass {
	p := &Pass{
		Cache:    NewDocumentCache(nil),
		Log:      observability.NopLogger{},
		Tracer:   observability.NopTracer(),
		Strategy: recovery.NewLenientStrategy(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close tears the pass down, closing all cached fixed-page handles.
func (p *Pass) Close() error {
	opens, hits := p.Cache.Stats()
	p.Log.Debug("pass closed",
		observability.Int(observability.MetricFixedPageOpens, opens),
		observability.Int(observability.MetricCacheHits, hits))
	return p.Cache.Close()
}

// ResolvePath resolves a reference path against the pass working directory.
func (p *Pass) ResolvePath(path string) string {
	if p.BaseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}
