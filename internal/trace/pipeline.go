package trace

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dissectlabs/dissect/internal/graph"
)

// Result is the outcome of one pipeline run over a single trace file.
type Result struct {
	Format       Format
	Graph        *graph.Graph
	CriticalPath graph.CriticalPath
	Export       graph.Export
	Warnings     []string
}

// Option customizes an Analyze run.
type Option func(*analyzeConfig)

type analyzeConfig struct {
	classifier *Classifier
}

// WithClassifier substitutes the kind classifier, e.g. one extended with
// user rules.
func WithClassifier(c *Classifier) Option {
	return func(cfg *analyzeConfig) {
		cfg.classifier = c
	}
}

// Analyze runs the full pipeline on raw trace bytes: decode, detect,
// extract, build, critical path, export. It is a pure function of its
// input; calling it twice on the same bytes yields identical results,
// and independent calls are safe to run concurrently.
func Analyze(ctx context.Context, data []byte, opts ...Option) (*Result, error) {
	cfg := analyzeConfig{classifier: NewClassifier()}
	for _, opt := range opts {
		opt(&cfg)
	}

	tracer := otel.Tracer("dissect/pipeline")
	ctx, span := tracer.Start(ctx, "trace.analyze")
	defer span.End()

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("trace file is not valid JSON: %w", err)
	}

	_, detectSpan := tracer.Start(ctx, "trace.detect")
	format := Detect(raw)
	detectSpan.SetAttributes(attribute.String("trace.format", string(format)))
	detectSpan.End()

	extractor, ok := ExtractorFor(format, cfg.classifier)
	if !ok {
		return nil, &UnsupportedFormatError{Keys: TopLevelKeys(raw)}
	}

	_, extractSpan := tracer.Start(ctx, "trace.extract")
	spans, extractWarnings, err := extractor.Extract(raw)
	extractSpan.SetAttributes(attribute.Int("trace.span_count", len(spans)))
	extractSpan.End()
	if err != nil {
		return nil, err
	}

	_, buildSpan := tracer.Start(ctx, "graph.build")
	g, buildWarnings, err := graph.Build(spans)
	buildSpan.End()
	if err != nil {
		return nil, err
	}

	_, pathSpan := tracer.Start(ctx, "graph.critical_path")
	path := graph.ComputeCriticalPath(g)
	pathSpan.SetAttributes(attribute.Float64("graph.critical_path_ms", path.TotalDuration))
	pathSpan.End()

	warnings := append(append([]string(nil), extractWarnings...), buildWarnings...)
	span.SetAttributes(
		attribute.String("trace.format", string(format)),
		attribute.Int("graph.nodes", g.NodeCount()),
		attribute.Int("graph.edges", g.EdgeCount()),
		attribute.Int("trace.warnings", len(warnings)),
	)

	return &Result{
		Format:       format,
		Graph:        g,
		CriticalPath: path,
		Export:       graph.NewExport(g, path, warnings),
		Warnings:     warnings,
	}, nil
}
