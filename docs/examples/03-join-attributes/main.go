package main

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/cartoform/choropleth/pkg/choropleth"
)

const table = `
washington    7,705,281    66,456
oregon    4,237,256    95,988
idaho    1,839,106    82,643
`

func square(group int, region string, west float64) []choropleth.BoundaryPoint {
	return []choropleth.BoundaryPoint{
		{Lon: west, Lat: 0, Seq: 1, Group: group, Region: region},
		{Lon: west + 1, Lat: 0, Seq: 2, Group: group, Region: region},
		{Lon: west + 1, Lat: 1, Seq: 3, Group: group, Region: region},
		{Lon: west, Lat: 1, Seq: 4, Group: group, Region: region},
	}
}

func main() {
	catalog := choropleth.NewCatalog()

	var points []choropleth.BoundaryPoint
	points = append(points, square(0, "washington", 0)...)
	points = append(points, square(1, "oregon", 5)...)
	points = append(points, square(2, "idaho", 10)...)
	catalog.Register("demo_states", points)

	// Declare the attribute table shape: name, population, land area
	opts := choropleth.DefaultPipelineOptions("demo_states")
	opts.Schema = choropleth.Schema{
		Line: regexp.MustCompile(`^\s*(.+?)\s{2,}([\d,]+)\s{2,}([\d,]+)\s*$`),
		Fields: []choropleth.Field{
			{Name: "name", Kind: choropleth.FieldKey, Group: 1},
			{Name: "population", Kind: choropleth.FieldNumber, Group: 2},
			{Name: "area", Kind: choropleth.FieldNumber, Group: 3},
		},
	}
	opts.Transform = choropleth.TransformLog10

	// Run the full pipeline: assemble, join, derive density, encode
	result, err := choropleth.Run(catalog, choropleth.NewAssembler(),
		strings.NewReader(table), opts)
	if err != nil {
		log.Fatal(err)
	}

	for i := range result.Rings {
		ring := &result.Rings[i]
		density, _ := ring.Metric("density")
		encoding, _ := result.EncodingFor(ring.Key())
		fmt.Printf("%-12s density %8.1f -> encoding %.3f\n",
			ring.Key(), density, encoding)
	}

	// Export for a renderer
	fc, _ := choropleth.ToGeoJSON(result.Rings, "density", result.Scale,
		choropleth.DefaultRenderConfig())
	fmt.Printf("Exported %d features\n", len(fc.Features))
}
