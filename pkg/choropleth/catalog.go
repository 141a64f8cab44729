package choropleth

import (
	"fmt"
	"sort"
	"sync"

	geojson "github.com/paulmach/go.geojson"
)

// PointSource produces an ordered boundary point stream on demand.
//
// The source calls yield once per point in storage order and stops early
// when yield returns false, so large datasets need not be materialized when
// the consumer short-circuits.
type PointSource func(yield func(BoundaryPoint) bool)

// Catalog is a registry mapping dataset names to ordered boundary point
// streams.
//
// Lookups are side-effect free: repeated calls with the same name return
// equal data, and returned slices are fresh copies the caller may keep.
// A Catalog is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	sources map[string]PointSource
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		sources: make(map[string]PointSource),
	}
}

// Register registers a fully materialized dataset under the given name.
//
// The points are copied; later mutation of the argument does not affect the
// catalog. Registering an existing name replaces the dataset.
func (c *Catalog) Register(name string, points []BoundaryPoint) {
	copied := make([]BoundaryPoint, len(points))
	copy(copied, points)

	c.RegisterSource(name, func(yield func(BoundaryPoint) bool) {
		for _, pt := range copied {
			if !yield(pt) {
				return
			}
		}
	})
}

// RegisterSource registers a lazily produced dataset under the given name.
//
// The source must be deterministic: every invocation must produce the same
// points in the same order.
func (c *Catalog) RegisterSource(name string, src PointSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = src
}

// GeoJSONKeys names the feature properties carrying region and subregion
// identity during GeoJSON ingestion.
type GeoJSONKeys struct {
	// RegionProperty is the feature property holding the region name.
	RegionProperty string

	// SubregionProperty is the feature property holding the subregion
	// name. Optional; when empty or absent on a feature, rings carry no
	// subregion and join at region granularity.
	SubregionProperty string
}

// RegisterGeoJSON parses a GeoJSON FeatureCollection and registers its
// polygon features as a dataset.
//
// Each polygon ring becomes one point group; MultiPolygon parts and interior
// rings get their own groups, so disjoint landmasses and holes are never
// connected. GeoJSON's explicit closing point (first == last) is dropped
// because ring closure is implicit in this model. Non-polygon features are
// skipped.
func (c *Catalog) RegisterGeoJSON(name string, data []byte, keys GeoJSONKeys) error {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("parse GeoJSON for dataset %q: %w", name, err)
	}

	var points []BoundaryPoint
	group := 0

	for _, feature := range fc.Features {
		region, _ := feature.PropertyString(keys.RegionProperty)
		subregion := ""
		if keys.SubregionProperty != "" {
			subregion, _ = feature.PropertyString(keys.SubregionProperty)
		}

		var polygons [][][][]float64
		switch {
		case feature.Geometry == nil:
			continue
		case feature.Geometry.IsPolygon():
			polygons = [][][][]float64{feature.Geometry.Polygon}
		case feature.Geometry.IsMultiPolygon():
			polygons = feature.Geometry.MultiPolygon
		default:
			continue
		}

		for _, polygon := range polygons {
			for _, ring := range polygon {
				ring = dropClosingPoint(ring)
				for seq, coord := range ring {
					if len(coord) < 2 {
						continue
					}
					points = append(points, BoundaryPoint{
						Lon:       coord[0],
						Lat:       coord[1],
						Seq:       seq,
						Group:     group,
						Region:    region,
						Subregion: subregion,
					})
				}
				group++
			}
		}
	}

	c.Register(name, points)
	return nil
}

// Lookup returns the full point stream of a named dataset.
//
// The returned slice is a fresh copy in storage order. Fails with
// *UnknownDatasetError if the name is not registered.
func (c *Catalog) Lookup(name string) ([]BoundaryPoint, error) {
	var points []BoundaryPoint
	err := c.Stream(name, func(pt BoundaryPoint) bool {
		points = append(points, pt)
		return true
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// Stream produces a named dataset's points lazily, in storage order.
//
// yield is called once per point; returning false stops production early.
// Fails with *UnknownDatasetError if the name is not registered.
func (c *Catalog) Stream(name string, yield func(BoundaryPoint) bool) error {
	c.mu.RLock()
	src, ok := c.sources[name]
	c.mu.RUnlock()

	if !ok {
		return &UnknownDatasetError{Name: name}
	}

	src(yield)
	return nil
}

// Names returns the registered dataset names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dropClosingPoint removes GeoJSON's explicit closing point when present.
func dropClosingPoint(ring [][]float64) [][]float64 {
	if len(ring) < 2 {
		return ring
	}
	first, last := ring[0], ring[len(ring)-1]
	if len(first) >= 2 && len(last) >= 2 && first[0] == last[0] && first[1] == last[1] {
		return ring[:len(ring)-1]
	}
	return ring
}
