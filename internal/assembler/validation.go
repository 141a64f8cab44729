package assembler

import (
	"fmt"
)

// ValidateCoordinate validates a single coordinate pair against geographic
// bounds.
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90.0 || lat > 90.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lon < -180.0 || lon > 180.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	return nil
}

// ValidateRing validates a finished ring.
//
// Checks point count, uniform group/region/subregion membership, and strict
// sequence ordering. Assemble enforces all of this during the scan; this is
// for callers that construct rings directly.
func ValidateRing(ring *Ring) error {
	if ring == nil {
		return fmt.Errorf("ring is nil")
	}
	if len(ring.Points) < 3 {
		return &ErrEmptyRing{Group: ring.Group, Count: len(ring.Points)}
	}

	for i, pt := range ring.Points {
		if pt.Group != ring.Group {
			return fmt.Errorf("ring group %d: point %d belongs to group %d", ring.Group, i, pt.Group)
		}
		if pt.Region != ring.Region || pt.Subregion != ring.Subregion {
			return &ErrInconsistentGroup{
				Group:          ring.Group,
				Region:         ring.Region,
				OtherRegion:    pt.Region,
				Subregion:      ring.Subregion,
				OtherSubregion: pt.Subregion,
			}
		}
		if i > 0 && pt.Seq <= ring.Points[i-1].Seq {
			return &ErrMalformedOrder{
				Group:    ring.Group,
				PrevSeq:  ring.Points[i-1].Seq,
				Seq:      pt.Seq,
				Position: i,
			}
		}
		if err := ValidateCoordinate(pt.Lat, pt.Lon); err != nil {
			return fmt.Errorf("ring group %d: point %d: %w", ring.Group, i, err)
		}
	}

	return nil
}
