package choropleth

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// RenderConfig is the explicit configuration value handed to the renderer
// boundary. There is no process-wide render state; callers pass a config
// into each export.
type RenderConfig struct {
	// EncodingProperty is the feature property carrying the encoding
	// value. Defaults to "encoding".
	EncodingProperty string

	// Viewport bounds the display extent of the exported collection. It
	// is consumed only here, at display time: ring coordinates are
	// exported unmodified and only the collection's bounding box is
	// restricted.
	Viewport *Bounds
}

// DefaultRenderConfig returns the default renderer configuration.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		EncodingProperty: "encoding",
	}
}

// ToGeoJSON exports joined rings as a GeoJSON FeatureCollection for an
// external renderer.
//
// Each ring becomes a Polygon feature carrying region, subregion, group, the
// joined numeric fields, any derived metrics, and — when the named metric is
// present and mappable through the scale — the encoding value under
// cfg.EncodingProperty. Rings whose metric is absent or outside the scale's
// domain are exported without an encoding and recorded as issues; the
// renderer decides how to show missing data.
//
// GeoJSON requires explicit ring closure, so the implicit closing edge is
// materialized as a repeated first coordinate.
func ToGeoJSON(rings []JoinedRing, metric string, scale *Scale, cfg RenderConfig) (*geojson.FeatureCollection, []Issue) {
	if cfg.EncodingProperty == "" {
		cfg.EncodingProperty = "encoding"
	}

	fc := geojson.NewFeatureCollection()
	var issues []Issue

	for i := range rings {
		r := &rings[i]
		feature := geojson.NewPolygonFeature(closedCoordinates(r.Ring()))

		ring := r.Ring()
		feature.SetProperty("region", ring.Region())
		if ring.Subregion() != "" {
			feature.SetProperty("subregion", ring.Subregion())
		}
		feature.SetProperty("group", ring.Group())

		for name, value := range r.record.Numbers {
			feature.SetProperty(name, value)
		}
		for name, value := range r.metrics {
			feature.SetProperty(name, value)
		}

		if value, ok := r.Metric(metric); ok && scale != nil {
			encoding, err := scale.Map(value)
			if err != nil {
				issues = append(issues, Issue{Stage: "export", Key: r.Key(), Err: err})
			} else {
				feature.SetProperty(cfg.EncodingProperty, encoding)
			}
		} else if scale != nil {
			issues = append(issues, Issue{
				Stage: "export",
				Key:   r.Key(),
				Err:   fmt.Errorf("ring %q has no %q metric to encode", r.Key(), metric),
			})
		}

		fc.AddFeature(feature)
	}

	if cfg.Viewport != nil {
		fc.BoundingBox = boundingBox(*cfg.Viewport)
	}

	return fc, issues
}

// PolygonSetToGeoJSON exports an assembled PolygonSet without attributes.
//
// The collection's bounding box is the set's viewport when one was clipped,
// otherwise the full extent of the rings.
func PolygonSetToGeoJSON(ps *PolygonSet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i := range ps.rings {
		ring := &ps.rings[i]
		feature := geojson.NewPolygonFeature(closedCoordinates(*ring))
		feature.SetProperty("region", ring.Region())
		if ring.Subregion() != "" {
			feature.SetProperty("subregion", ring.Subregion())
		}
		feature.SetProperty("group", ring.Group())
		fc.AddFeature(feature)
	}

	if viewport, ok := ps.Viewport(); ok {
		fc.BoundingBox = boundingBox(viewport)
	} else if len(ps.rings) > 0 {
		fc.BoundingBox = boundingBox(ps.bounds)
	}

	return fc
}

// closedCoordinates returns the ring's points as a GeoJSON polygon with the
// closing point made explicit.
func closedCoordinates(r Ring) [][][]float64 {
	points := r.Points()
	coords := make([][]float64, 0, len(points)+1)
	for _, pt := range points {
		coords = append(coords, []float64{pt.Lon, pt.Lat})
	}
	if len(coords) > 0 {
		coords = append(coords, []float64{coords[0][0], coords[0][1]})
	}
	return [][][]float64{coords}
}

// boundingBox converts Bounds to GeoJSON bbox order [west, south, east, north].
func boundingBox(b Bounds) []float64 {
	return []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
}
