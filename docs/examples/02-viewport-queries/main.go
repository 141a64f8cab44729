package main

import (
	"fmt"
	"log"

	"github.com/cartoform/choropleth/pkg/choropleth"
)

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

	source, err := catalog.Lookup("demo_states")
	if err != nil {
		log.Fatal(err)
	}
	set, err := choropleth.NewAssembler().Assemble(source)
	if err != nil {
		log.Fatal(err)
	}

	// Query rings intersecting a bounding box
	viewport := choropleth.Bounds{MinLon: -1, MaxLon: 2, MinLat: -1, MaxLat: 2}
	visible := set.RingsInBounds(viewport)
	fmt.Printf("Rings in viewport: %d\n", len(visible))
	for _, ring := range visible {
		// Returned rings are always whole, never truncated to the box
		fmt.Printf("  %s: %d points\n", ring.Region(), len(ring.Points()))
	}

	// Clip restricts the display extent without touching geometry
	clipped := set.Clip(viewport)
	if vp, ok := clipped.Viewport(); ok {
		fmt.Printf("Display extent: [%.1f,%.1f] to [%.1f,%.1f]\n",
			vp.MinLon, vp.MinLat, vp.MaxLon, vp.MaxLat)
	}
	fmt.Printf("Rings after clip: %d (all points retained)\n", clipped.RingCount())
}
