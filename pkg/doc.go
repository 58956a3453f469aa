// Package pkg provides the core libraries for ruleflow decision-logic compilation.
//
// # Overview
//
// Ruleflow turns boolean decision logic over named yes/no questions into
// navigable flowcharts and machine-readable decision DAGs. The pkg directory
// is organized into six main areas:
//
//  1. [logic] - Expression parsing, negation normalization, OR-group
//     factoring, and DNF conversion
//  2. [decision] - Decision-graph synthesis plus the Mermaid, DAG-JSON and
//     Graphviz renderers
//  3. [deck] - The input document: question map plus the reserved logic entry
//  4. [pipeline] - Orchestration (factor → parse → normalize → DNF → graph →
//     render) shared by the CLI and the HTTP API
//  5. [cache] - Artifact caching for the expensive Graphviz renderings
//  6. [errors] - Structured error codes shared by the CLI and the API
//
// # Architecture
//
// The typical data flow through ruleflow:
//
//	Decision deck (JSON/TOML)
//	         ↓
//	    [logic] package (factor, parse, normalize, DNF)
//	         ↓
//	    [decision] package (graph synthesis)
//	         ↓
//	    [decision] renderers
//	         ↓
//	    Mermaid/DAG-JSON/DOT/SVG/PNG output
//
// # Quick Start
//
// Compile a deck and render a flowchart:
//
//	import (
//	    "context"
//	    "github.com/ruleflow/ruleflow/pkg/deck"
//	    "github.com/ruleflow/ruleflow/pkg/pipeline"
//	)
//
//	d, _ := deck.ReadFile("deck.json")
//	runner := pipeline.NewRunner(nil, nil)
//	result, _ := runner.Execute(context.Background(), d, pipeline.Options{
//	    Format: pipeline.FormatMermaid,
//	})
//	os.Stdout.Write(result.Artifact)
//
// The lower-level packages remain usable on their own: [logic.Parse],
// [logic.ToDNF] and [decision.NewBuilder] compose without the pipeline when
// an embedding application wants direct control over the stages.
package pkg
