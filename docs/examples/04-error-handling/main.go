package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/cartoform/choropleth/pkg/choropleth"
)

func main() {
	catalog := choropleth.NewCatalog()
	catalog.Register("demo_states", []choropleth.BoundaryPoint{
		{Lon: 0, Lat: 0, Seq: 1, Group: 0, Region: "washington"},
		{Lon: 1, Lat: 0, Seq: 2, Group: 0, Region: "washington"},
		{Lon: 1, Lat: 1, Seq: 3, Group: 0, Region: "washington"},
	})

	// Unknown dataset names fail with a typed error
	_, err := catalog.Lookup("no_such_dataset")
	var unknown *choropleth.UnknownDatasetError
	if errors.As(err, &unknown) {
		log.Printf("Expected error: %v", unknown)
	}

	// Structural geometry errors abort assembly
	asm := choropleth.NewAssembler()
	_, err = asm.Assemble([]choropleth.BoundaryPoint{
		{Lon: 0, Lat: 0, Seq: 2, Group: 0, Region: "x"},
		{Lon: 1, Lat: 0, Seq: 1, Group: 0, Region: "x"},
		{Lon: 1, Lat: 1, Seq: 3, Group: 0, Region: "x"},
	})
	var order *choropleth.MalformedOrderError
	if errors.As(err, &order) {
		log.Printf("Expected error: %v", order)
	}

	// Duplicate join keys are fatal under the default options
	points, _ := catalog.Lookup("demo_states")
	set, err := asm.Assemble(points)
	if err != nil {
		log.Fatal(err)
	}

	records := []choropleth.AttributeRecord{
		{Key: "washington", Numbers: map[string]float64{"population": 7705281}, Line: 1},
		{Key: "washington", Numbers: map[string]float64{"population": 1}, Line: 2},
	}
	_, err = choropleth.Join(set, records, choropleth.DefaultJoinOptions())
	var dup *choropleth.DuplicateKeyError
	if errors.As(err, &dup) {
		log.Printf("Expected error: %v", dup)
	}

	// Keep-first tolerates the duplicate instead
	opts := choropleth.DefaultJoinOptions()
	opts.Duplicates = choropleth.DuplicateKeepFirst
	joined, err := choropleth.Join(set, records, opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Joined %d ring(s) with keep-first duplicates\n", len(joined))
}
