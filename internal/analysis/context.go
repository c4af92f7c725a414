// Package analysis runs the full engine over one diagram.
//
// Run is the single entry point. Everything it needs arrives in an
// immutable Context value, so concurrent calls share nothing mutable
// except the Context's IDGenerator (the default generator is stateless).
//
// Pipeline:
//
//	Discover flows → select explicit requests → model performance
//	→ summarize → analyze contention → summarize
package analysis

import (
	"github.com/roach88/socperf/internal/contention"
	"github.com/roach88/socperf/internal/flow"
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/perf"
)

// Context is the caller-supplied configuration for one analysis.
// Build it with NewContext; the zero value is not valid.
type Context struct {
	catalog      model.Catalog
	clockMHz     float64
	maxDepth     int
	distribution contention.Mode
	ids          flow.IDGenerator
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithCatalog sets the component-metadata table.
func WithCatalog(c model.Catalog) ContextOption {
	return func(ctx *Context) {
		ctx.catalog = c
	}
}

// WithClockMHz sets the global default clock. Non-positive values are
// ignored.
func WithClockMHz(mhz float64) ContextOption {
	return func(ctx *Context) {
		if mhz > 0 {
			ctx.clockMHz = mhz
		}
	}
}

// WithMaxDepth sets the discovery hop limit. Values below 1 are ignored.
func WithMaxDepth(n int) ContextOption {
	return func(ctx *Context) {
		if n > 0 {
			ctx.maxDepth = n
		}
	}
}

// WithDistribution sets the contention allocation mode.
func WithDistribution(m contention.Mode) ContextOption {
	return func(ctx *Context) {
		if m != "" {
			ctx.distribution = m
		}
	}
}

// WithIDGenerator sets the flow id generator.
func WithIDGenerator(g flow.IDGenerator) ContextOption {
	return func(ctx *Context) {
		if g != nil {
			ctx.ids = g
		}
	}
}

// NewContext returns a Context with defaults: empty catalog, 1000 MHz
// clock, depth 10, fair distribution, path-hash flow ids.
func NewContext(opts ...ContextOption) Context {
	ctx := Context{
		clockMHz:     perf.DefaultClockMHz,
		maxDepth:     flow.DefaultMaxDepth,
		distribution: contention.ModeFair,
		ids:          flow.PathHashGenerator{},
	}
	for _, opt := range opts {
		opt(&ctx)
	}
	return ctx
}

// With returns a copy of ctx with further options applied.
func (ctx Context) With(opts ...ContextOption) Context {
	for _, opt := range opts {
		opt(&ctx)
	}
	return ctx
}

// Catalog returns the component-metadata table.
func (ctx Context) Catalog() model.Catalog { return ctx.catalog }

// ClockMHz returns the global default clock.
func (ctx Context) ClockMHz() float64 { return ctx.clockMHz }

// MaxDepth returns the discovery hop limit.
func (ctx Context) MaxDepth() int { return ctx.maxDepth }

// Distribution returns the contention allocation mode.
func (ctx Context) Distribution() contention.Mode { return ctx.distribution }
