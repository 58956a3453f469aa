package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ruleflow/ruleflow/pkg/cache"
	"github.com/ruleflow/ruleflow/pkg/deck"
	"github.com/ruleflow/ruleflow/pkg/decision"
	rferrors "github.com/ruleflow/ruleflow/pkg/errors"
	"github.com/ruleflow/ruleflow/pkg/logic"
	"github.com/ruleflow/ruleflow/pkg/observability"
)

// Runner executes compilation requests with artifact caching.
//
// The Runner itself is stateless apart from the cache and logger; all
// per-request state (disambiguation counters, node/edge sets) lives inside
// the stages, so one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// falls back to the default charm logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the runner's cache.
func (r *Runner) Close() error { return r.Cache.Close() }

// Execute runs the complete factor → compile → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, d deck.Deck, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	result := &Result{}

	observability.Pipeline().OnCompileStart(ctx)
	compileStart := time.Now()
	graph, err := r.compile(d, opts, result, logger)
	if err != nil {
		observability.Pipeline().OnCompileComplete(ctx, 0, 0, 0, time.Since(compileStart), err)
		return nil, err
	}
	result.Stats.CompileTime = time.Since(compileStart)
	result.Stats.TermCount = len(result.DNF)
	result.Stats.NodeCount = len(graph.Nodes())
	result.Stats.EdgeCount = len(graph.Edges())
	observability.Pipeline().OnCompileComplete(ctx,
		result.Stats.TermCount, result.Stats.NodeCount, result.Stats.EdgeCount,
		result.Stats.CompileTime, nil)

	logger.Info("compiled logic",
		"terms", result.Stats.TermCount,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.CompileTime)

	observability.Pipeline().OnRenderStart(ctx, opts.Format)
	renderStart := time.Now()
	artifact, cacheHit, err := r.render(ctx, graph, d, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Format, len(artifact), time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.CacheHit = cacheHit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"cached", cacheHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// compile runs the logic stages and builds the decision graph.
func (r *Runner) compile(d deck.Deck, opts Options, result *Result, logger *log.Logger) (*decision.Graph, error) {
	logicText := d.Logic
	questions := d.Questions

	if !opts.NoFactor {
		factored, factoredQuestions, groups := logic.Factor(logicText, questions)
		if len(groups) > 0 {
			logger.Debug("factored OR-groups", "groups", len(groups), "logic", factored)
		}
		logicText, questions, result.Groups = factored, factoredQuestions, groups
	}

	expr, err := logic.Parse(logicText)
	if err != nil {
		return nil, rferrors.Wrap(rferrors.ErrCodeInvalidLogic, err, "parse logic %q", logicText)
	}

	normalized, negated := logic.Normalize(expr)
	result.Negated = negated

	result.DNF = logic.ToDNF(normalized)
	if len(result.DNF) == 0 {
		logger.Warn("logic compiled to an empty DNF; every path will deny")
	}

	builder := decision.NewBuilder(questions, result.Groups, negated)
	return builder.Build(result.DNF), nil
}

// render produces the requested artifact. Only Graphviz formats consult the
// cache; the textual renderings are cheaper than a cache round-trip.
func (r *Runner) render(ctx context.Context, g *decision.Graph, d deck.Deck, opts Options) ([]byte, bool, error) {
	switch opts.Format {
	case FormatMermaid:
		return []byte(decision.Mermaid(g)), false, nil
	case FormatDAG:
		data, err := decision.MarshalDAG(g)
		return data, false, err
	case FormatDOT:
		return []byte(decision.ToDOT(g)), false, nil
	}

	deckBytes, err := d.Marshal()
	if err != nil {
		return nil, false, err
	}
	key := cache.Key("render", deckBytes, opts.Format, opts.NoFactor)

	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "render")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	dot := decision.ToDOT(g)
	var data []byte
	switch opts.Format {
	case FormatSVG:
		data, err = decision.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = decision.RenderPNG(ctx, dot)
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
		r.Logger.Debug("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, false, nil
}
