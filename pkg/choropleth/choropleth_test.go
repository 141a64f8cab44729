package choropleth

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// demoStatesCatalog builds the three-region demo dataset: each region is a
// single ring of 4 points.
func demoStatesCatalog() *Catalog {
	catalog := NewCatalog()
	var points []BoundaryPoint
	points = append(points, demoPoints(0, "washington", "", 0)...)
	points = append(points, demoPoints(1, "oregon", "", 5)...)
	points = append(points, demoPoints(2, "idaho", "", 10)...)
	catalog.Register("demo_states", points)
	return catalog
}

func TestAssembleLookupIdempotent(t *testing.T) {
	catalog := demoStatesCatalog()
	asm := NewAssembler()

	points, err := catalog.Lookup("demo_states")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := asm.Assemble(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	points2, _ := catalog.Lookup("demo_states")
	second, err := asm.Assemble(points2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Rings(), second.Rings()) {
		t.Error("re-running assemble(lookup(name)) produced a different polygon set")
	}
}

func TestAssembleConvertsErrors(t *testing.T) {
	asm := NewAssembler()

	_, err := asm.Assemble([]BoundaryPoint{
		{Lon: 0, Lat: 0, Seq: 2, Group: 1, Region: "a"},
		{Lon: 1, Lat: 0, Seq: 1, Group: 1, Region: "a"},
		{Lon: 1, Lat: 1, Seq: 3, Group: 1, Region: "a"},
	})

	var order *MalformedOrderError
	if !errors.As(err, &order) {
		t.Fatalf("expected MalformedOrderError, got %T: %v", err, err)
	}
}

func TestPolygonSetRingsInBounds(t *testing.T) {
	catalog := demoStatesCatalog()
	points, _ := catalog.Lookup("demo_states")
	set, err := NewAssembler().Assemble(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the washington square [0,1]x[0,1] intersects this box.
	got := set.RingsInBounds(Bounds{MinLon: -0.5, MaxLon: 0.5, MinLat: -0.5, MaxLat: 0.5})
	if len(got) != 1 {
		t.Fatalf("expected 1 ring in bounds, got %d", len(got))
	}
	if got[0].Region() != "washington" {
		t.Errorf("ring region = %q, want washington", got[0].Region())
	}

	// Returned rings are whole, never truncated.
	if len(got[0].Points()) != 4 {
		t.Errorf("ring has %d points, want 4", len(got[0].Points()))
	}

	// A box covering everything returns all rings in draw order.
	all := set.RingsInBounds(Bounds{MinLon: -1, MaxLon: 20, MinLat: -1, MaxLat: 2})
	if len(all) != 3 {
		t.Fatalf("expected 3 rings, got %d", len(all))
	}
	regions := []string{all[0].Region(), all[1].Region(), all[2].Region()}
	if !reflect.DeepEqual(regions, []string{"washington", "oregon", "idaho"}) {
		t.Errorf("draw order not preserved: %v", regions)
	}
}

func TestRingContains(t *testing.T) {
	points, _ := demoStatesCatalog().Lookup("demo_states")
	set, _ := NewAssembler().Assemble(points)
	ring := set.Rings()[0] // unit square at origin

	if !ring.Contains(0.5, 0.5) {
		t.Error("center of the square reported outside")
	}
	if ring.Contains(2, 0.5) {
		t.Error("point east of the square reported inside")
	}
	if ring.Contains(0.5, -1) {
		t.Error("point south of the square reported inside")
	}
}

// TestDemoStatesEndToEnd walks the full pipeline by hand: filter to one
// region, join a table that includes that region and omits another, and
// verify exactly one joined ring survives.
func TestDemoStatesEndToEnd(t *testing.T) {
	catalog := demoStatesCatalog()
	points, err := catalog.Lookup("demo_states")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set, err := NewAssembler().Assemble(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.RingCount() != 3 {
		t.Fatalf("expected 3 rings, got %d", set.RingCount())
	}

	filtered := set.FilterRegions("Washington")
	if filtered.RingCount() != 1 {
		t.Fatalf("expected 1 ring after filter, got %d", filtered.RingCount())
	}
	if !reflect.DeepEqual(filtered.Rings()[0], set.Rings()[0]) {
		t.Error("filtered ring differs from the source ring")
	}

	table := strings.Join([]string{
		"washington    7,705,281    66,456 sq mi",
		"oregon    4,237,256    95,988 sq mi",
		// idaho deliberately omitted
	}, "\n")

	schema := Schema{
		Line: regexp.MustCompile(`^\s*(.+?)\s{2,}([\d,]+)\s{2,}([\d,]+)\s+sq mi\s*$`),
		Fields: []Field{
			{Name: "name", Kind: FieldKey, Group: 1},
			{Name: "population", Kind: FieldNumber, Group: 2},
			{Name: "area", Kind: FieldNumber, Group: 3},
		},
	}

	records, issues, err := ParseAttributeTable(strings.NewReader(table), schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}

	joined, err := Join(filtered, records, DefaultJoinOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(joined) != 1 {
		t.Fatalf("expected exactly 1 joined ring, got %d", len(joined))
	}
	if joined[0].Key() != "washington" {
		t.Errorf("joined key = %q, want washington", joined[0].Key())
	}
	if pop, _ := joined[0].Attribute("population"); pop != 7705281 {
		t.Errorf("population = %v, want 7705281", pop)
	}
}
