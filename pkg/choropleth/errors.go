package choropleth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cartoform/choropleth/internal/assembler"
	"github.com/cartoform/choropleth/internal/tabular"
)

// UnknownDatasetError indicates a catalog lookup for an unregistered name.
type UnknownDatasetError struct {
	Name string
}

func (e *UnknownDatasetError) Error() string {
	return fmt.Sprintf("unknown dataset %q", e.Name)
}

// MalformedOrderError indicates points within a group were not in strictly
// increasing sequence order. Assembling such a stream would silently draw a
// scrambled polygon, so assembly of the dataset fails instead.
type MalformedOrderError struct {
	Group    int
	PrevSeq  int
	Seq      int
	Position int
}

func (e *MalformedOrderError) Error() string {
	return fmt.Sprintf("group %d: point %d has sequence %d after %d (sequence must be strictly increasing)",
		e.Group, e.Position, e.Seq, e.PrevSeq)
}

// InconsistentGroupError indicates a group spans more than one region or
// subregion, so the finished ring would have no single identity to join on.
type InconsistentGroupError struct {
	Group          int
	Region         string
	OtherRegion    string
	Subregion      string
	OtherSubregion string
}

func (e *InconsistentGroupError) Error() string {
	if e.Region != e.OtherRegion {
		return fmt.Sprintf("group %d spans regions %q and %q", e.Group, e.Region, e.OtherRegion)
	}
	return fmt.Sprintf("group %d (region %q) spans subregions %q and %q",
		e.Group, e.Region, e.Subregion, e.OtherSubregion)
}

// InvalidCoordinateError indicates a point outside valid geographic bounds.
type InvalidCoordinateError struct {
	Lat, Lon float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// EmptyRingError indicates a group with too few points to form a ring.
type EmptyRingError struct {
	Group int
	Count int
}

func (e *EmptyRingError) Error() string {
	return fmt.Sprintf("group %d has %d points (a ring needs at least 3)", e.Group, e.Count)
}

// RecordParseError indicates an attribute table line that matched the record
// shape but carried a value that failed numeric coercion. It applies to that
// line only; the batch continues.
type RecordParseError struct {
	Line  int
	Field string
	Value string
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf("line %d: field %q: cannot parse %q as a number", e.Line, e.Field, e.Value)
}

// DuplicateKeyError indicates multiple attribute records sharing a join key.
// Joining through a duplicated key would cross-multiply rows and corrupt
// downstream metrics, so the join fails unless configured otherwise.
type DuplicateKeyError struct {
	Key   string
	Lines []int
}

func (e *DuplicateKeyError) Error() string {
	if len(e.Lines) > 0 {
		parts := make([]string, len(e.Lines))
		for i, l := range e.Lines {
			parts[i] = fmt.Sprint(l)
		}
		return fmt.Sprintf("duplicate attribute key %q (lines %s)", e.Key, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("duplicate attribute key %q", e.Key)
}

// MetricUndefinedError indicates a derived metric could not be computed for
// one ring (missing input or division by zero).
type MetricUndefinedError struct {
	Key    string
	Metric string
	Reason string
}

func (e *MetricUndefinedError) Error() string {
	return fmt.Sprintf("metric %q undefined for %q: %s", e.Metric, e.Key, e.Reason)
}

// DomainError indicates a value outside the mathematical domain of a scale
// transform (for example a non-positive value under log10). Such values are
// surfaced, never silently clamped; they usually point at bad source data.
type DomainError struct {
	Value     float64
	Transform Transform
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("value %g is outside the domain of the %s transform", e.Value, e.Transform)
}

// convertAssembleError maps internal assembly errors onto the public error
// types so callers can use errors.As without reaching into internal packages.
func convertAssembleError(err error) error {
	if err == nil {
		return nil
	}

	var order *assembler.ErrMalformedOrder
	if errors.As(err, &order) {
		return &MalformedOrderError{
			Group:    order.Group,
			PrevSeq:  order.PrevSeq,
			Seq:      order.Seq,
			Position: order.Position,
		}
	}

	var group *assembler.ErrInconsistentGroup
	if errors.As(err, &group) {
		return &InconsistentGroupError{
			Group:          group.Group,
			Region:         group.Region,
			OtherRegion:    group.OtherRegion,
			Subregion:      group.Subregion,
			OtherSubregion: group.OtherSubregion,
		}
	}

	var coord *assembler.ErrInvalidCoordinate
	if errors.As(err, &coord) {
		return &InvalidCoordinateError{Lat: coord.Lat, Lon: coord.Lon}
	}

	var empty *assembler.ErrEmptyRing
	if errors.As(err, &empty) {
		return &EmptyRingError{Group: empty.Group, Count: empty.Count}
	}

	return err
}

// convertParseError maps internal table parse errors onto public types.
func convertParseError(err error) error {
	if err == nil {
		return nil
	}

	var parse *tabular.ErrRecordParse
	if errors.As(err, &parse) {
		return &RecordParseError{Line: parse.Line, Field: parse.Field, Value: parse.Value}
	}

	return err
}
