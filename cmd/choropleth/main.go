// Command choropleth assembles a boundary dataset, joins a line-oriented
// attribute table onto it, and writes the encoded result as GeoJSON for an
// external renderer.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/cartoform/choropleth/config"
	"github.com/cartoform/choropleth/pkg/choropleth"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.BoundaryPath == "" || cfg.AttributePath == "" {
		log.Fatal("BOUNDARY_PATH and ATTRIBUTE_PATH must be set")
	}

	boundary, err := os.ReadFile(cfg.BoundaryPath)
	if err != nil {
		log.Fatal(err)
	}

	catalog := choropleth.NewCatalog()
	err = catalog.RegisterGeoJSON(cfg.DatasetName, boundary, choropleth.GeoJSONKeys{
		RegionProperty:    cfg.RegionProperty,
		SubregionProperty: cfg.SubregionProperty,
	})
	if err != nil {
		log.Fatal(err)
	}

	attributes, err := os.Open(cfg.AttributePath)
	if err != nil {
		log.Fatal(err)
	}
	defer attributes.Close()

	linePattern, err := regexp.Compile(cfg.AttributePattern)
	if err != nil {
		log.Fatalf("invalid attribute pattern: %v", err)
	}

	opts := choropleth.DefaultPipelineOptions(cfg.DatasetName)
	opts.Regions = cfg.Regions
	opts.Transform = parseTransform(cfg.Transform)
	opts.EncodingMin = cfg.EncodingMin
	opts.EncodingMax = cfg.EncodingMax
	opts.Schema = choropleth.Schema{
		Line: linePattern,
		Fields: []choropleth.Field{
			{Name: "name", Kind: choropleth.FieldKey, Group: 1},
			{Name: "population", Kind: choropleth.FieldNumber, Group: 2},
			{Name: "area", Kind: choropleth.FieldNumber, Group: 3},
		},
	}

	result, err := choropleth.Run(catalog, choropleth.NewAssembler(), attributes, opts)
	if err != nil {
		log.Fatal(err)
	}

	for _, issue := range result.Issues {
		log.Printf("warning (%s): %v", issue.Stage, issue.Err)
	}

	fc, exportIssues := choropleth.ToGeoJSON(result.Rings, opts.Metric, result.Scale, choropleth.DefaultRenderConfig())
	for _, issue := range exportIssues {
		log.Printf("warning (%s): %v", issue.Stage, issue.Err)
	}

	encoded, err := json.Marshal(fc)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(cfg.OutputPath, encoded, 0o644); err != nil {
		log.Fatal(err)
	}

	min, max := result.Scale.Domain()
	fmt.Printf("Wrote %d rings to %s (domain %g..%g, %d warnings)\n",
		len(result.Rings), cfg.OutputPath, min, max, len(result.Issues)+len(exportIssues))
}

// parseTransform maps the configured transform name onto a Transform.
func parseTransform(name string) choropleth.Transform {
	switch name {
	case "log10":
		return choropleth.TransformLog10
	case "sqrt":
		return choropleth.TransformSqrt
	default:
		return choropleth.TransformIdentity
	}
}
