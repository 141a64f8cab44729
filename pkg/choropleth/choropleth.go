// Package choropleth assembles named boundary point streams into renderable
// polygon rings, joins tabular attributes onto them by region key, derives
// per-entity metrics, and maps those metrics to a bounded visual encoding.
//
// The pipeline is a chain of pure batch transforms over immutable values:
//
//	Catalog → Assembler → Filter* → Join ← attribute table
//	       → DeriveMetric → FitScale/Map → renderer
//
// Rendering itself is a consumer: ToGeoJSON exposes the assembled rings with
// their joined fields and encoding values, and the drawing, legend, and
// palette choices belong to the caller.
package choropleth

import (
	"github.com/cartoform/choropleth/internal/assembler"
	"github.com/dhconnelly/rtreego"
)

// BoundaryPoint is one raw boundary point from a catalog stream.
//
// Seq orders points within a group; Group partitions the stream into rings.
// Points from different groups are never connected, even when geographically
// adjacent: group boundaries are hard topological breaks (disjoint islands,
// holes, exclaves), never inferred from spatial proximity.
type BoundaryPoint struct {
	Lon       float64 // Longitude in decimal degrees
	Lat       float64 // Latitude in decimal degrees
	Seq       int     // Draw order within the group
	Group     int     // Ring partition key
	Region    string  // Styling/grouping key
	Subregion string  // Join key granularity, may be empty
}

// Issue describes a non-fatal problem encountered while producing output.
//
// Per-line parse failures, per-ring metric failures, and per-value scale
// domain failures are collected as issues next to the successfully produced
// output, so a caller can decide whether partial output is acceptable.
type Issue struct {
	Stage string // "parse", "join", "metric", "scale", "export"
	Key   string // join key of the affected entity, when known
	Line  int    // source line number, when the issue is line-scoped
	Err   error
}

func (i Issue) Error() string {
	return i.Err.Error()
}

// Assembler turns ordered boundary point streams into polygon sets.
//
// Create one with NewAssembler. Assembly is deterministic and side-effect
// free; re-assembling the same stream produces an equal PolygonSet.
type Assembler interface {
	// Assemble groups an ordered point stream into closed rings using
	// default options.
	Assemble(points []BoundaryPoint) (*PolygonSet, error)

	// AssembleWithOptions assembles with custom options.
	AssembleWithOptions(points []BoundaryPoint, opts AssembleOptions) (*PolygonSet, error)
}

// NewAssembler creates a new assembler with default settings.
//
// Example:
//
//	asm := choropleth.NewAssembler()
//	points, _ := catalog.Lookup("us_counties")
//	set, err := asm.Assemble(points)
func NewAssembler() Assembler {
	return &assemblerWrapper{}
}

// assemblerWrapper wraps the internal assembler and converts types
type assemblerWrapper struct{}

func (a *assemblerWrapper) Assemble(points []BoundaryPoint) (*PolygonSet, error) {
	return a.AssembleWithOptions(points, DefaultAssembleOptions())
}

func (a *assemblerWrapper) AssembleWithOptions(points []BoundaryPoint, opts AssembleOptions) (*PolygonSet, error) {
	internalPoints := make([]assembler.Point, len(points))
	for i, pt := range points {
		internalPoints[i] = assembler.Point{
			Lon:       pt.Lon,
			Lat:       pt.Lat,
			Seq:       pt.Seq,
			Group:     pt.Group,
			Region:    pt.Region,
			Subregion: pt.Subregion,
		}
	}

	internalOpts := assembler.Options{
		ValidateCoordinates: opts.ValidateCoordinates,
	}

	internalSet, err := assembler.Assemble(internalPoints, internalOpts)
	if err != nil {
		return nil, convertAssembleError(err)
	}

	return convertPolygonSet(internalSet), nil
}

// Ring is a closed, ordered loop of boundary points forming one simple
// polygon.
//
// The loop is implicit: the renderer draws an edge from the last point back
// to the first. Point order within a ring is preserved exactly from the
// catalog stream.
type Ring struct {
	group     int
	region    string
	subregion string
	points    []BoundaryPoint
}

// Group returns the ring's partition key from the source stream.
func (r *Ring) Group() int { return r.group }

// Region returns the region the ring belongs to.
func (r *Ring) Region() string { return r.region }

// Subregion returns the ring's subregion, or "" when the dataset has no
// subregion granularity.
func (r *Ring) Subregion() string { return r.subregion }

// Points returns the ring's points in draw order.
func (r *Ring) Points() []BoundaryPoint { return r.points }

// Key returns the ring's normalized join key: the subregion when present,
// otherwise the region. Attribute records pass through the same
// normalization, so equal entities always match.
func (r *Ring) Key() string {
	if r.subregion != "" {
		return NormalizeKey(r.subregion)
	}
	return NormalizeKey(r.region)
}

// Bounds returns the ring's bounding box.
func (r *Ring) Bounds() Bounds {
	return ringBounds(*r)
}

// Contains reports whether the point (lon, lat) lies inside the ring, using
// ray casting against the closed loop.
func (r *Ring) Contains(lon, lat float64) bool {
	if len(r.points) < 3 {
		return false
	}

	inside := false
	j := len(r.points) - 1

	for i := 0; i < len(r.points); i++ {
		pi, pj := r.points[i], r.points[j]
		if ((pi.Lat > lat) != (pj.Lat > lat)) &&
			(lon < (pj.Lon-pi.Lon)*(lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lon) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// PolygonSet is a collection of rings in draw order.
//
// Later rings sit atop earlier ones when fills overlap, so iteration order
// is part of the contract. A PolygonSet is immutable once built; filtering
// and clipping produce new sets.
type PolygonSet struct {
	rings        []Ring
	spatialIndex *spatialIndex
	bounds       Bounds
	viewport     *Bounds // display extent, nil = full extent
}

// Rings returns all rings in draw order.
func (ps *PolygonSet) Rings() []Ring {
	return ps.rings
}

// RingCount returns the number of rings in the set.
func (ps *PolygonSet) RingCount() int {
	return len(ps.rings)
}

// Bounds returns the bounding box containing all rings.
func (ps *PolygonSet) Bounds() Bounds {
	return ps.bounds
}

// Viewport returns the display extent set by Clip, and whether one is set.
func (ps *PolygonSet) Viewport() (Bounds, bool) {
	if ps.viewport == nil {
		return Bounds{}, false
	}
	return *ps.viewport, true
}

// RingsInBounds returns the rings whose bounding boxes intersect the given
// bounds, in draw order. Rings are always returned whole; a ring is never
// truncated to the query box.
func (ps *PolygonSet) RingsInBounds(bounds Bounds) []Ring {
	if ps.spatialIndex == nil || ps.spatialIndex.rtree == nil {
		return ps.ringsInBoundsLinear(bounds)
	}

	point := rtreego.Point{bounds.MinLon, bounds.MinLat}
	lengths := []float64{
		bounds.MaxLon - bounds.MinLon,
		bounds.MaxLat - bounds.MinLat,
	}
	queryRect, _ := rtreego.NewRect(point, lengths)

	spatials := ps.spatialIndex.rtree.SearchIntersect(queryRect)

	// Collect matched positions so draw order survives the index query.
	matched := make(map[int]bool, len(spatials))
	for _, spatial := range spatials {
		indexed := spatial.(*indexedRing)
		matched[indexed.position] = true
	}

	result := make([]Ring, 0, len(matched))
	for i, ring := range ps.rings {
		if matched[i] {
			result = append(result, ring)
		}
	}

	return result
}

// ringsInBoundsLinear performs linear search when no spatial index exists.
func (ps *PolygonSet) ringsInBoundsLinear(bounds Bounds) []Ring {
	result := make([]Ring, 0)
	for _, ring := range ps.rings {
		if bounds.Intersects(ringBounds(ring)) {
			result = append(result, ring)
		}
	}
	return result
}

// spatialIndex provides O(log n) bounding box queries using an R-tree.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedRing wraps a ring for R-tree storage.
type indexedRing struct {
	position int // index into PolygonSet.rings, preserves draw order
	bounds   Bounds
}

// Bounds implements rtreego.Spatial.
func (r *indexedRing) Bounds() rtreego.Rect {
	point := rtreego.Point{r.bounds.MinLon, r.bounds.MinLat}

	lonLength := r.bounds.MaxLon - r.bounds.MinLon
	latLength := r.bounds.MaxLat - r.bounds.MinLat

	// R-tree requires non-zero dimensions; degenerate rings get a small
	// epsilon (~11 meters at the equator).
	const epsilon = 0.0001
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{lonLength, latLength})
	return rect
}

// convertPolygonSet converts an internal polygon set to the public API type.
func convertPolygonSet(internal *assembler.PolygonSet) *PolygonSet {
	rings := make([]Ring, len(internal.Rings))
	for i, r := range internal.Rings {
		points := make([]BoundaryPoint, len(r.Points))
		for j, pt := range r.Points {
			points[j] = BoundaryPoint{
				Lon:       pt.Lon,
				Lat:       pt.Lat,
				Seq:       pt.Seq,
				Group:     pt.Group,
				Region:    pt.Region,
				Subregion: pt.Subregion,
			}
		}
		rings[i] = Ring{
			group:     r.Group,
			region:    r.Region,
			subregion: r.Subregion,
			points:    points,
		}
	}

	return newPolygonSet(rings)
}

// newPolygonSet builds a PolygonSet with its spatial index and bounds.
func newPolygonSet(rings []Ring) *PolygonSet {
	ps := &PolygonSet{rings: rings}

	if len(rings) == 0 {
		return ps
	}

	rtree := rtreego.NewTree(2, 25, 50)

	bounds := ringBounds(rings[0])
	for i, ring := range rings {
		rb := ringBounds(ring)
		bounds = bounds.Union(rb)
		rtree.Insert(&indexedRing{position: i, bounds: rb})
	}

	ps.bounds = bounds
	ps.spatialIndex = &spatialIndex{rtree: rtree}

	return ps
}
