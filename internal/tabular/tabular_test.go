package tabular

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"testing"
)

// countySchema matches lines like:
//
//	King County    2,269,675    2,115.7 sq mi
var countySchema = Schema{
	Line:      regexp.MustCompile(`^\s*(.+?)\s{2,}([\d,]+)\s{2,}([\d,.]+)\s+sq mi\s*$`),
	Candidate: regexp.MustCompile(`sq mi\s*$`),
	Fields: []Field{
		{Name: "name", Kind: FieldKey, Group: 1},
		{Name: "population", Kind: FieldNumber, Group: 2},
		{Name: "area", Kind: FieldNumber, Group: 3},
	},
}

func TestParse(t *testing.T) {
	source := strings.Join([]string{
		"County population and land area, 2020 census.",
		"",
		"King County      2,269,675    2,115.7 sq mi",
		"Pierce County      921,130      1,669.5 sq mi",
		"San Juan County     17,788    173.9 sq mi",
		"",
		"Source: census bureau.",
	}, "\n")

	records, issues, err := Parse(strings.NewReader(source), countySchema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.Key != "king county" {
		t.Errorf("key not normalized: %q", first.Key)
	}
	if first.Numbers["population"] != 2269675 {
		t.Errorf("population = %v, want 2269675", first.Numbers["population"])
	}
	if math.Abs(first.Numbers["area"]-2115.7) > 1e-9 {
		t.Errorf("area = %v, want 2115.7", first.Numbers["area"])
	}
	if first.Line != 3 {
		t.Errorf("line = %d, want 3", first.Line)
	}
}

func TestParseRecordsBadLineAndContinues(t *testing.T) {
	source := strings.Join([]string{
		"King County      2,269,675    2,115.7 sq mi",
		"Pierce County    n/a    1,669.5 sq mi",
		"San Juan County     17,788    173.9 sq mi",
	}, "\n")

	records, issues, err := Parse(strings.NewReader(source), countySchema)
	if err != nil {
		t.Fatalf("one bad line must not abort the batch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Line != 2 {
		t.Errorf("issue line = %d, want 2", issues[0].Line)
	}
}

func TestParseCoercionFailureIsRecordParseError(t *testing.T) {
	// "12.34.56" matches the numeric capture shape but fails float coercion.
	source := "Pierce County    921,130    12.34.56 sq mi\n"

	records, issues, err := Parse(strings.NewReader(source), countySchema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}

	var parseErr *ErrRecordParse
	if !errors.As(issues[0].Err, &parseErr) {
		t.Fatalf("expected ErrRecordParse, got %T: %v", issues[0].Err, issues[0].Err)
	}
	if parseErr.Field != "area" {
		t.Errorf("field = %q, want area", parseErr.Field)
	}
}

func TestParseCandidateMismatchRecorded(t *testing.T) {
	// Ends in "sq mi" so it looks like a record, but the shape is broken.
	source := "Whatcom County 230000 sq mi\n"

	records, issues, err := Parse(strings.NewReader(source), countySchema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if len(issues) != 1 {
		t.Fatalf("broken record shape should be recorded, got %d issues", len(issues))
	}
}

func TestParseRejectsInvalidSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
	}{
		{"missing line pattern", Schema{}},
		{
			"no key field",
			Schema{
				Line:   regexp.MustCompile(`(\d+)`),
				Fields: []Field{{Name: "n", Kind: FieldNumber, Group: 1}},
			},
		},
		{
			"capture group out of range",
			Schema{
				Line:   regexp.MustCompile(`(\w+)`),
				Fields: []Field{{Name: "name", Kind: FieldKey, Group: 2}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Parse(strings.NewReader("x"), tt.schema); err == nil {
				t.Error("invalid schema accepted")
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"King County", "king county"},
		{"  King   County  ", "king county"},
		{"ST. LOUIS", "st louis"},
		{"O'Brien", "obrien"},
		{"DeKalb,", "dekalb"},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1,523,139", 1523139, false},
		{" 48.87 ", 48.87, false},
		{"1 669.5", 1669.5, false},
		{"", 0, true},
		{"n/a", 0, true},
	}

	for _, tt := range tests {
		got, err := NormalizeNumber(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeNumber(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeNumber(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
