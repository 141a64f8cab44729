package choropleth

import (
	"fmt"
	"math"
)

// Transform is a domain transform applied before linear mapping to the
// output range.
type Transform int

const (
	// TransformIdentity maps values linearly.
	TransformIdentity Transform = iota

	// TransformLog10 maps log10(value) linearly. Values ≤ 0 are outside
	// the domain.
	TransformLog10

	// TransformSqrt maps sqrt(value) linearly. Values < 0 are outside
	// the domain.
	TransformSqrt
)

// String returns the transform's name.
func (t Transform) String() string {
	switch t {
	case TransformIdentity:
		return "identity"
	case TransformLog10:
		return "log10"
	case TransformSqrt:
		return "sqrt"
	default:
		return "unknown"
	}
}

// apply transforms a value, failing with *DomainError when the value is
// outside the transform's mathematical domain.
func (t Transform) apply(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &DomainError{Value: v, Transform: t}
	}

	switch t {
	case TransformLog10:
		if v <= 0 {
			return 0, &DomainError{Value: v, Transform: t}
		}
		return math.Log10(v), nil
	case TransformSqrt:
		if v < 0 {
			return 0, &DomainError{Value: v, Transform: t}
		}
		return math.Sqrt(v), nil
	default:
		return v, nil
	}
}

// Scale maps a numeric domain through a transform onto a bounded output
// range.
//
// A Scale is fitted once by FitScale and immutable afterwards: mapping the
// same value always yields the same encoding, and the mapping is monotonic
// over the transform's domain.
type Scale struct {
	transform Transform
	rawMin    float64 // fitted domain, untransformed
	rawMax    float64
	tMin      float64 // fitted domain, transformed
	tMax      float64
	outMin    float64
	outMax    float64
}

// FitScale fits a scale over the given values.
//
// Values outside the transform's domain are reported as issues carrying
// *DomainError and excluded from the fit; they must be resolved upstream,
// not silently mapped to a default. Fails outright when the output range is
// inverted or no value is inside the domain.
func FitScale(values []float64, transform Transform, outMin, outMax float64) (*Scale, []Issue, error) {
	if outMin >= outMax {
		return nil, nil, fmt.Errorf("invalid output range [%g, %g]", outMin, outMax)
	}

	var issues []Issue
	fitted := false
	var rawMin, rawMax, tMin, tMax float64

	for _, v := range values {
		tv, err := transform.apply(v)
		if err != nil {
			issues = append(issues, Issue{Stage: "scale", Err: err})
			continue
		}
		if !fitted {
			rawMin, rawMax = v, v
			tMin, tMax = tv, tv
			fitted = true
			continue
		}
		if v < rawMin {
			rawMin = v
		}
		if v > rawMax {
			rawMax = v
		}
		if tv < tMin {
			tMin = tv
		}
		if tv > tMax {
			tMax = tv
		}
	}

	if !fitted {
		return nil, issues, fmt.Errorf("no values inside the domain of the %s transform", transform)
	}

	return &Scale{
		transform: transform,
		rawMin:    rawMin,
		rawMax:    rawMax,
		tMin:      tMin,
		tMax:      tMax,
		outMin:    outMin,
		outMax:    outMax,
	}, issues, nil
}

// Map returns the encoding for a value.
//
// Values inside the fitted domain map linearly (in transformed space) onto
// the output range. Values outside the fitted domain but inside the
// transform's domain extrapolate along the same line; clamping them would
// break monotonicity and hide outliers. Values outside the transform's
// domain fail with *DomainError.
func (s *Scale) Map(v float64) (float64, error) {
	tv, err := s.transform.apply(v)
	if err != nil {
		return 0, err
	}

	if s.tMax == s.tMin {
		// Degenerate domain: every valid value maps to the midpoint.
		return (s.outMin + s.outMax) / 2, nil
	}

	fraction := (tv - s.tMin) / (s.tMax - s.tMin)
	return s.outMin + fraction*(s.outMax-s.outMin), nil
}

// MapAll maps a batch of values, collecting per-value domain failures as
// issues instead of aborting. Encodings are returned for the values that
// mapped, aligned by appearance order.
func (s *Scale) MapAll(values []float64) ([]float64, []Issue) {
	encodings := make([]float64, 0, len(values))
	var issues []Issue

	for _, v := range values {
		enc, err := s.Map(v)
		if err != nil {
			issues = append(issues, Issue{Stage: "scale", Err: err})
			continue
		}
		encodings = append(encodings, enc)
	}

	return encodings, issues
}

// Transform returns the scale's transform.
func (s *Scale) Transform() Transform {
	return s.transform
}

// Domain returns the fitted domain in untransformed units.
func (s *Scale) Domain() (min, max float64) {
	return s.rawMin, s.rawMax
}

// Range returns the bounded output range.
func (s *Scale) Range() (min, max float64) {
	return s.outMin, s.outMax
}
