package choropleth

import (
	"fmt"
	"io"
)

// PipelineOptions configures a full catalog-to-encoding run.
type PipelineOptions struct {
	// Dataset is the catalog name of the boundary dataset.
	Dataset string

	// Regions optionally restricts assembly output to these regions
	// before joining. Empty means all regions.
	Regions []string

	// Subregions optionally restricts to these subregions. Applied after
	// Regions when both are set.
	Subregions []string

	// Schema declares the attribute table's record shape.
	Schema Schema

	// Join configures key granularity and duplicate handling.
	Join JoinOptions

	// Metric names the derived field, e.g. "density". Required.
	Metric string

	// MetricFunc computes the derived field. Required.
	MetricFunc MetricFunc

	// MetricPolicy decides whether rings with an undefined metric are
	// retained or dropped.
	MetricPolicy MetricPolicy

	// Transform is applied to metric values before encoding.
	Transform Transform

	// EncodingMin and EncodingMax bound the output encoding range.
	EncodingMin float64
	EncodingMax float64

	// Viewport optionally bounds the display extent of the result. It
	// never modifies stored geometry.
	Viewport *Bounds

	// Assemble configures assembly of the boundary dataset.
	Assemble AssembleOptions
}

// DefaultPipelineOptions returns pipeline options with a density metric
// over "population" and "area" fields, identity transform, and a [0, 1]
// encoding range.
func DefaultPipelineOptions(dataset string) PipelineOptions {
	return PipelineOptions{
		Dataset:      dataset,
		Join:         DefaultJoinOptions(),
		Metric:       "density",
		MetricFunc:   Density("population", "area"),
		MetricPolicy: MetricDrop,
		Transform:    TransformIdentity,
		EncodingMin:  0,
		EncodingMax:  1,
		Assemble:     DefaultAssembleOptions(),
	}
}

// Result is the output of a pipeline run: the produced rings and encodings
// together with every non-fatal issue encountered along the way, so the
// caller can decide whether partial output is acceptable.
type Result struct {
	// Set is the assembled (and possibly filtered/clipped) polygon set.
	Set *PolygonSet

	// Rings are the joined rings with the derived metric, in draw order.
	Rings []JoinedRing

	// Scale is the fitted scale over the metric values.
	Scale *Scale

	// Encodings maps each joined ring's key to its encoding. Rings whose
	// metric is absent or unmappable are recorded in Issues and have no
	// entry here.
	Encodings map[string]float64

	// Issues aggregates non-fatal problems from parsing, metric
	// derivation, and scaling.
	Issues []Issue
}

// EncodingFor returns the encoding for a joined ring's key.
func (r *Result) EncodingFor(key string) (float64, bool) {
	v, ok := r.Encodings[NormalizeKey(key)]
	return v, ok
}

// Run executes the full pipeline: lookup, assembly, subsetting, attribute
// parsing, join, metric derivation, scale fitting, and encoding.
//
// Structural failures (unknown dataset, corrupt geometry, duplicate join
// keys, no valid scale domain) abort the run, since the output would be
// geometrically or statistically wrong. Per-line, per-ring, and per-value
// failures are collected in Result.Issues next to the partial output.
func Run(catalog *Catalog, asm Assembler, attributes io.Reader, opts PipelineOptions) (*Result, error) {
	if opts.Metric == "" || opts.MetricFunc == nil {
		return nil, fmt.Errorf("pipeline needs a metric name and a metric function")
	}

	points, err := catalog.Lookup(opts.Dataset)
	if err != nil {
		return nil, err
	}

	set, err := asm.AssembleWithOptions(points, opts.Assemble)
	if err != nil {
		return nil, fmt.Errorf("assemble %s: %w", opts.Dataset, err)
	}

	if len(opts.Regions) > 0 {
		set = set.FilterRegions(opts.Regions...)
	}
	if len(opts.Subregions) > 0 {
		set = set.FilterSubregions(opts.Subregions...)
	}
	if opts.Viewport != nil {
		set = set.Clip(*opts.Viewport)
	}

	records, issues, err := ParseAttributeTable(attributes, opts.Schema)
	if err != nil {
		return nil, fmt.Errorf("parse attribute table: %w", err)
	}

	joined, err := Join(set, records, opts.Join)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", opts.Dataset, err)
	}

	derived, metricIssues := DeriveMetric(joined, opts.Metric, opts.MetricFunc, opts.MetricPolicy)
	issues = append(issues, metricIssues...)

	values := make([]float64, 0, len(derived))
	for i := range derived {
		if v, ok := derived[i].Metric(opts.Metric); ok {
			values = append(values, v)
		}
	}

	scale, scaleIssues, err := FitScale(values, opts.Transform, opts.EncodingMin, opts.EncodingMax)
	issues = append(issues, scaleIssues...)
	if err != nil {
		return nil, fmt.Errorf("fit scale: %w", err)
	}

	encodings := make(map[string]float64, len(derived))
	for i := range derived {
		r := &derived[i]
		value, ok := r.Metric(opts.Metric)
		if !ok {
			continue
		}
		encoding, err := scale.Map(value)
		if err != nil {
			issues = append(issues, Issue{Stage: "scale", Key: r.Key(), Err: err})
			continue
		}
		encodings[r.Key()] = encoding
	}

	return &Result{
		Set:       set,
		Rings:     derived,
		Scale:     scale,
		Encodings: encodings,
		Issues:    issues,
	}, nil
}
