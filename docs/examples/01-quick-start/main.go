package main

import (
	"fmt"
	"log"

	"github.com/cartoform/choropleth/pkg/choropleth"
)

func main() {
	// Register a boundary dataset
	catalog := choropleth.NewCatalog()
	catalog.Register("demo_states", []choropleth.BoundaryPoint{
		{Lon: 0, Lat: 0, Seq: 1, Group: 0, Region: "washington"},
		{Lon: 1, Lat: 0, Seq: 2, Group: 0, Region: "washington"},
		{Lon: 1, Lat: 1, Seq: 3, Group: 0, Region: "washington"},
		{Lon: 0, Lat: 1, Seq: 4, Group: 0, Region: "washington"},
		{Lon: 2, Lat: 0, Seq: 1, Group: 1, Region: "oregon"},
		{Lon: 3, Lat: 0, Seq: 2, Group: 1, Region: "oregon"},
		{Lon: 3, Lat: 1, Seq: 3, Group: 1, Region: "oregon"},
		{Lon: 2, Lat: 1, Seq: 4, Group: 1, Region: "oregon"},
	})

	// Look up and assemble
	points, err := catalog.Lookup("demo_states")
	if err != nil {
		log.Fatal(err)
	}

	set, err := choropleth.NewAssembler().Assemble(points)
	if err != nil {
		log.Fatal(err)
	}

	// Print polygon set info
	fmt.Printf("Rings: %d\n", set.RingCount())
	for _, ring := range set.Rings() {
		fmt.Printf("  %s: %d points\n", ring.Region(), len(ring.Points()))
	}

	// Get overall bounds
	bounds := set.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinLon, bounds.MinLat,
		bounds.MaxLon, bounds.MaxLat)
}
