// Package pipeline provides the core compilation pipeline for ruleflow.
//
// This package implements the complete factor → parse → normalize → DNF →
// graph → render pipeline used by both the CLI and the HTTP API. Keeping the
// orchestration in one place ensures both entry points behave identically.
//
// # Architecture
//
// A compilation request is one decision deck (logic + question map) plus
// options. The stages are:
//
//  1. Factor: optional best-effort OR-group factoring of the logic text
//  2. Compile: parse, negation-normalize and convert to DNF
//  3. Build: synthesize the decision graph
//  4. Render: emit Mermaid text, DAG JSON, DOT, or Graphviz SVG/PNG
//
// Stages 1–3 are pure and cheap; only Graphviz rendering goes through the
// artifact cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, deck, pipeline.Options{Format: pipeline.FormatMermaid})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	rferrors "github.com/ruleflow/ruleflow/pkg/errors"
	"github.com/ruleflow/ruleflow/pkg/logic"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Output formats.
const (
	FormatMermaid = "mermaid"
	FormatDAG     = "dag"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPNG     = "png"
)

// DefaultFormat is the diagram rendering; the DAG document is opt-in.
const DefaultFormat = FormatMermaid

// DefaultCacheTTL is how long rendered artifacts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatMermaid: true,
	FormatDAG:     true,
	FormatDOT:     true,
	FormatSVG:     true,
	FormatPNG:     true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return rferrors.New(rferrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: mermaid, dag, dot, svg, png)", format)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one compilation request.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Format selects the rendering: mermaid (default), dag, dot, svg, png.
	Format string `json:"format,omitempty"`

	// NoFactor disables the OR-group factoring pre-pass.
	NoFactor bool `json:"no_factor,omitempty"`

	// Refresh bypasses the artifact cache read (results are still stored).
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL overrides the artifact cache lifetime.
	CacheTTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this request.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of one pipeline run.
type Result struct {
	// Artifact is the rendered output in the requested format.
	Artifact []byte

	// DNF is the compiled disjunctive normal form.
	DNF logic.DNF

	// Groups are the OR-factoring groups applied to the logic text.
	Groups []logic.FactorGroup

	// Negated lists identifiers whose negation was normalized away.
	Negated logic.NegatedSet

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TermCount   int
	NodeCount   int
	EdgeCount   int
	CompileTime time.Duration
	RenderTime  time.Duration
}
