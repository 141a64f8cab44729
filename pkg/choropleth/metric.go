package choropleth

import (
	"fmt"
)

// MetricPolicy decides what happens to a ring whose metric is undefined.
type MetricPolicy int

const (
	// MetricDrop removes the ring from the output. The undefined metric
	// is still reported as an issue.
	MetricDrop MetricPolicy = iota

	// MetricRetain keeps the ring with the metric field absent. The
	// encoding stage later skips rings without the metric; nothing
	// propagates a silent NaN to the visual encoding.
	MetricRetain
)

// MetricFunc computes one derived value for a joined ring.
//
// Return *MetricUndefinedError (or any error) when the value cannot be
// computed for this ring; the deriver records it and applies the policy.
type MetricFunc func(r *JoinedRing) (float64, error)

// DeriveMetric computes a named derived field for every joined ring.
//
// Inputs are not mutated: the result is a new slice with new metric maps.
// Rings whose metric is undefined are dropped or retained per the policy,
// and each failure is recorded as an issue either way.
func DeriveMetric(rings []JoinedRing, name string, fn MetricFunc, policy MetricPolicy) ([]JoinedRing, []Issue) {
	out := make([]JoinedRing, 0, len(rings))
	var issues []Issue

	for _, r := range rings {
		value, err := fn(&r)
		if err != nil {
			issues = append(issues, Issue{
				Stage: "metric",
				Key:   r.Key(),
				Err:   err,
			})
			if policy == MetricRetain {
				out = append(out, withMetrics(r, nil))
			}
			continue
		}

		out = append(out, withMetrics(r, map[string]float64{name: value}))
	}

	return out, issues
}

// withMetrics returns a copy of r with the extra metrics merged in.
func withMetrics(r JoinedRing, extra map[string]float64) JoinedRing {
	metrics := make(map[string]float64, len(r.metrics)+len(extra))
	for k, v := range r.metrics {
		metrics[k] = v
	}
	for k, v := range extra {
		metrics[k] = v
	}
	return JoinedRing{
		ring:    r.ring,
		record:  r.record,
		metrics: metrics,
	}
}

// Density returns a MetricFunc computing populationField / areaField.
//
// A missing input or a zero area yields *MetricUndefinedError for that ring;
// a silently divided zero would reach the visual encoding as ±Inf.
func Density(populationField, areaField string) MetricFunc {
	return func(r *JoinedRing) (float64, error) {
		pop, ok := r.Attribute(populationField)
		if !ok {
			return 0, &MetricUndefinedError{
				Key:    r.Key(),
				Metric: "density",
				Reason: fmt.Sprintf("missing field %q", populationField),
			}
		}
		area, ok := r.Attribute(areaField)
		if !ok {
			return 0, &MetricUndefinedError{
				Key:    r.Key(),
				Metric: "density",
				Reason: fmt.Sprintf("missing field %q", areaField),
			}
		}
		if area == 0 {
			return 0, &MetricUndefinedError{
				Key:    r.Key(),
				Metric: "density",
				Reason: "area is zero",
			}
		}
		return pop / area, nil
	}
}
