package assembler

import (
	"fmt"
)

// ErrInvalidCoordinate indicates a coordinate out of valid geographic bounds
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// ErrMalformedOrder indicates points within a group are not in strictly
// increasing sequence order
type ErrMalformedOrder struct {
	Group    int
	PrevSeq  int
	Seq      int
	Position int
}

func (e *ErrMalformedOrder) Error() string {
	return fmt.Sprintf("group %d: point %d has sequence %d after %d (sequence must be strictly increasing)",
		e.Group, e.Position, e.Seq, e.PrevSeq)
}

// ErrInconsistentGroup indicates a group spans more than one region or
// subregion
type ErrInconsistentGroup struct {
	Group          int
	Region         string
	OtherRegion    string
	Subregion      string
	OtherSubregion string
}

func (e *ErrInconsistentGroup) Error() string {
	if e.Region != e.OtherRegion {
		return fmt.Sprintf("group %d spans regions %q and %q", e.Group, e.Region, e.OtherRegion)
	}
	return fmt.Sprintf("group %d (region %q) spans subregions %q and %q",
		e.Group, e.Region, e.Subregion, e.OtherSubregion)
}

// ErrEmptyRing indicates a group produced a ring with too few points to close
type ErrEmptyRing struct {
	Group int
	Count int
}

func (e *ErrEmptyRing) Error() string {
	return fmt.Sprintf("group %d has %d points (a ring needs at least 3)", e.Group, e.Count)
}
