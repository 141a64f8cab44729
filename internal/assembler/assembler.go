package assembler

// Options controls assembly behavior.
type Options struct {
	// ValidateCoordinates checks every point against geographic bounds
	// (lat ±90, lon ±180) during the scan.
	ValidateCoordinates bool
}

// DefaultOptions returns default assembly options.
func DefaultOptions() Options {
	return Options{
		ValidateCoordinates: true,
	}
}

// Assemble groups an ordered point stream into closed rings.
//
// The stream is scanned once. A change in Group closes the current ring and
// begins a new one; a Group value that reappears after an intervening group
// starts a fresh ring rather than merging with the earlier run. Within a
// group, Seq must be strictly increasing and Region/Subregion must be
// uniform. Ring order in the result is encounter order.
//
// The input slice is never retained or mutated; ring point slices are copies.
func Assemble(points []Point, opts Options) (*PolygonSet, error) {
	ps := &PolygonSet{Rings: make([]Ring, 0)}
	if len(points) == 0 {
		return ps, nil
	}

	var current []Point
	for i, pt := range points {
		if opts.ValidateCoordinates {
			if err := ValidateCoordinate(pt.Lat, pt.Lon); err != nil {
				return nil, err
			}
		}

		if len(current) > 0 {
			prev := current[len(current)-1]
			if pt.Group != prev.Group {
				ring, err := closeRing(current)
				if err != nil {
					return nil, err
				}
				ps.Rings = append(ps.Rings, ring)
				current = current[:0:0]
			} else {
				if pt.Seq <= prev.Seq {
					return nil, &ErrMalformedOrder{
						Group:    pt.Group,
						PrevSeq:  prev.Seq,
						Seq:      pt.Seq,
						Position: i,
					}
				}
				if pt.Region != prev.Region || pt.Subregion != prev.Subregion {
					return nil, &ErrInconsistentGroup{
						Group:          pt.Group,
						Region:         prev.Region,
						OtherRegion:    pt.Region,
						Subregion:      prev.Subregion,
						OtherSubregion: pt.Subregion,
					}
				}
			}
		}

		current = append(current, pt)
	}

	ring, err := closeRing(current)
	if err != nil {
		return nil, err
	}
	ps.Rings = append(ps.Rings, ring)

	return ps, nil
}

// closeRing finishes the current group run as a ring.
//
// The ring inherits region and subregion from its points, which the scan has
// already verified to be uniform. Point order is preserved exactly; closure
// back to the first point is implicit and no closing point is appended.
func closeRing(points []Point) (Ring, error) {
	if len(points) < 3 {
		group := 0
		if len(points) > 0 {
			group = points[0].Group
		}
		return Ring{}, &ErrEmptyRing{Group: group, Count: len(points)}
	}

	copied := make([]Point, len(points))
	copy(copied, points)

	return Ring{
		Group:     copied[0].Group,
		Region:    copied[0].Region,
		Subregion: copied[0].Subregion,
		Points:    copied,
	}, nil
}
