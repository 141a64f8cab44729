package choropleth

// Bounds represents a geographic bounding box in decimal degrees.
type Bounds struct {
	MinLon float64 // Western edge
	MaxLon float64 // Eastern edge
	MinLat float64 // Southern edge
	MaxLat float64 // Northern edge
}

// Contains returns true if the point (lon, lat) is within the bounds.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxLon < b.MinLon ||
		other.MinLon > b.MaxLon ||
		other.MaxLat < b.MinLat ||
		other.MinLat > b.MaxLat)
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// Margin is in decimal degrees.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
	}
}

// Union returns the smallest bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	u := b
	if other.MinLon < u.MinLon {
		u.MinLon = other.MinLon
	}
	if other.MaxLon > u.MaxLon {
		u.MaxLon = other.MaxLon
	}
	if other.MinLat < u.MinLat {
		u.MinLat = other.MinLat
	}
	if other.MaxLat > u.MaxLat {
		u.MaxLat = other.MaxLat
	}
	return u
}

// ringBounds calculates the bounding box for a ring's points.
func ringBounds(r Ring) Bounds {
	if len(r.points) == 0 {
		return Bounds{}
	}

	first := r.points[0]
	bounds := Bounds{
		MinLon: first.Lon,
		MaxLon: first.Lon,
		MinLat: first.Lat,
		MaxLat: first.Lat,
	}

	for _, pt := range r.points {
		if pt.Lon < bounds.MinLon {
			bounds.MinLon = pt.Lon
		}
		if pt.Lon > bounds.MaxLon {
			bounds.MaxLon = pt.Lon
		}
		if pt.Lat < bounds.MinLat {
			bounds.MinLat = pt.Lat
		}
		if pt.Lat > bounds.MaxLat {
			bounds.MaxLat = pt.Lat
		}
	}

	return bounds
}
