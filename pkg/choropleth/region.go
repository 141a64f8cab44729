package choropleth

// Filter returns a new PolygonSet containing the rings whose region and
// subregion satisfy the predicate.
//
// Filtering operates at ring granularity: a ring is kept or dropped whole
// and its point list is never truncated. Draw order among kept rings is
// preserved. An empty result is a valid PolygonSet, not an error.
func (ps *PolygonSet) Filter(pred func(region, subregion string) bool) *PolygonSet {
	kept := make([]Ring, 0, len(ps.rings))
	for _, ring := range ps.rings {
		if pred(ring.region, ring.subregion) {
			kept = append(kept, ring)
		}
	}

	filtered := newPolygonSet(kept)
	filtered.viewport = ps.viewport
	return filtered
}

// FilterRegions returns a new PolygonSet containing only rings whose region
// matches one of the given names. Matching uses normalized keys, so case,
// whitespace, and punctuation differences do not drop rings.
func (ps *PolygonSet) FilterRegions(names ...string) *PolygonSet {
	accepted := normalizeNameSet(names)
	return ps.Filter(func(region, subregion string) bool {
		return accepted[NormalizeKey(region)]
	})
}

// FilterSubregions returns a new PolygonSet containing only rings whose
// subregion matches one of the given names, with normalized matching.
func (ps *PolygonSet) FilterSubregions(names ...string) *PolygonSet {
	accepted := normalizeNameSet(names)
	return ps.Filter(func(region, subregion string) bool {
		return accepted[NormalizeKey(subregion)]
	})
}

func normalizeNameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[NormalizeKey(name)] = true
	}
	return set
}
