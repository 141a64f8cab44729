package choropleth

import (
	"errors"
	"math"
	"testing"
)

func joinedFixture(t *testing.T, records ...AttributeRecord) []JoinedRing {
	t.Helper()
	set := countySet(t)
	joined, err := Join(set, records, DefaultJoinOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return joined
}

func TestDensity(t *testing.T) {
	joined := joinedFixture(t, record("King County", 1523139, 48.87, 1))

	derived, issues := DeriveMetric(joined, "density", Density("population", "area"), MetricDrop)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if len(derived) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(derived))
	}

	density, ok := derived[0].Metric("density")
	if !ok {
		t.Fatal("density metric missing")
	}
	want := 1523139.0 / 48.87
	if math.Abs(density-want) > 0.1 {
		t.Errorf("density = %v, want ≈ %v", density, want)
	}
}

func TestDensityUndefined(t *testing.T) {
	tests := []struct {
		name   string
		record AttributeRecord
	}{
		{
			"zero area",
			record("King County", 1523139, 0, 1),
		},
		{
			"missing population",
			AttributeRecord{
				Key:     "king county",
				Numbers: map[string]float64{"area": 48.87},
			},
		},
		{
			"missing area",
			AttributeRecord{
				Key:     "king county",
				Numbers: map[string]float64{"population": 1523139},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joined := joinedFixture(t, tt.record)

			derived, issues := DeriveMetric(joined, "density", Density("population", "area"), MetricDrop)
			if len(derived) != 0 {
				t.Errorf("MetricDrop retained %d rings", len(derived))
			}
			if len(issues) != 1 {
				t.Fatalf("expected 1 issue, got %d", len(issues))
			}

			var undefined *MetricUndefinedError
			if !errors.As(issues[0].Err, &undefined) {
				t.Fatalf("expected MetricUndefinedError, got %T", issues[0].Err)
			}
		})
	}
}

func TestDeriveMetricRetainPolicy(t *testing.T) {
	joined := joinedFixture(t,
		record("King County", 1523139, 48.87, 1),
		record("Pierce County", 921130, 0, 2), // undefined density
	)

	derived, issues := DeriveMetric(joined, "density", Density("population", "area"), MetricRetain)
	if len(derived) != 2 {
		t.Fatalf("MetricRetain dropped rings: got %d", len(derived))
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}

	// The failed ring is kept with the metric field absent, never NaN.
	var retained *JoinedRing
	for i := range derived {
		if derived[i].Key() == "pierce county" {
			retained = &derived[i]
		}
	}
	if retained == nil {
		t.Fatal("undefined-metric ring not retained")
	}
	if _, ok := retained.Metric("density"); ok {
		t.Error("undefined metric present on retained ring")
	}
}

func TestDeriveMetricDoesNotMutateInput(t *testing.T) {
	joined := joinedFixture(t, record("King County", 1523139, 48.87, 1))

	_, _ = DeriveMetric(joined, "density", Density("population", "area"), MetricDrop)

	if _, ok := joined[0].Metric("density"); ok {
		t.Error("DeriveMetric mutated its input")
	}
}
