package choropleth

import (
	"io"
	"regexp"

	"github.com/cartoform/choropleth/internal/tabular"
)

// FieldKind is the declared type of a schema field.
type FieldKind int

const (
	// FieldKey is the record's join key, normalized with NormalizeKey.
	FieldKey FieldKind = iota

	// FieldNumber is a numeric field; thousands separators are stripped
	// before coercion to float64.
	FieldNumber

	// FieldText is a free-text field stored trimmed.
	FieldText
)

// Field binds one capture group of a schema's line pattern to a named,
// typed value.
type Field struct {
	Name  string
	Kind  FieldKind
	Group int // capture group index in Schema.Line, 1-based
}

// Schema declares the shape of one attribute table record.
//
// Line must match an entire record line; its capture groups carry the field
// values. Candidate is optional: lines matching Candidate but not Line look
// like records with a broken shape and are recorded as issues rather than
// silently dropped.
type Schema struct {
	Line      *regexp.Regexp
	Candidate *regexp.Regexp
	Fields    []Field
}

// AttributeRecord is one parsed attribute record.
//
// Key is normalized and matches Ring.Key for the same entity. Numbers holds
// the coerced numeric fields (population, area, and the like); Text holds
// any free-text fields.
type AttributeRecord struct {
	Key     string
	Numbers map[string]float64
	Text    map[string]string
	Line    int // 1-based source line number
}

// ParseAttributeTable extracts attribute records from a loosely structured
// line-oriented source using an explicit schema.
//
// Lines failing to match the schema are skipped. A matching line with a
// value that fails numeric coercion is a per-line *RecordParseError,
// recorded as an issue; one bad line never aborts the batch. The records and
// the issues are both returned so the caller can judge partial output.
func ParseAttributeTable(r io.Reader, schema Schema) ([]AttributeRecord, []Issue, error) {
	internalFields := make([]tabular.Field, len(schema.Fields))
	for i, f := range schema.Fields {
		internalFields[i] = tabular.Field{
			Name:  f.Name,
			Kind:  tabular.FieldKind(f.Kind),
			Group: f.Group,
		}
	}

	internalSchema := tabular.Schema{
		Line:      schema.Line,
		Candidate: schema.Candidate,
		Fields:    internalFields,
	}

	internalRecords, internalIssues, err := tabular.Parse(r, internalSchema)
	if err != nil {
		return nil, nil, err
	}

	records := make([]AttributeRecord, len(internalRecords))
	for i, rec := range internalRecords {
		records[i] = AttributeRecord{
			Key:     rec.Key,
			Numbers: rec.Numbers,
			Text:    rec.Text,
			Line:    rec.Line,
		}
	}

	issues := make([]Issue, len(internalIssues))
	for i, issue := range internalIssues {
		issues[i] = Issue{
			Stage: "parse",
			Line:  issue.Line,
			Err:   convertParseError(issue.Err),
		}
	}

	return records, issues, nil
}

// NormalizeKey normalizes a join key: trimmed, lower-cased, punctuation
// stripped, internal whitespace collapsed.
//
// Ring keys and attribute record keys both pass through this function;
// anything joining by hand must do the same or equal entities silently fail
// to match.
func NormalizeKey(s string) string {
	return tabular.NormalizeKey(s)
}
