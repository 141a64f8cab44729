package choropleth

// Clip returns a new PolygonSet restricted to the given display extent.
//
// Clipping never touches ring point lists. Truncating a ring's points and
// handing the remainder to a renderer expecting closure would reconnect the
// last retained point on one side of the viewport to the first retained
// point on the other side, drawing a straight edge across the excluded
// region. Instead the viewport only bounds the visible extent: rings pass
// through assembly and joining unmodified, and the renderer restricts its
// coordinate axes to the clipped bounds.
//
// Use RingsInBounds to additionally skip rings entirely outside the
// viewport; rings it returns are still whole.
func (ps *PolygonSet) Clip(bounds Bounds) *PolygonSet {
	clipped := &PolygonSet{
		rings:        ps.rings,
		spatialIndex: ps.spatialIndex,
		bounds:       ps.bounds,
		viewport:     &bounds,
	}
	return clipped
}
