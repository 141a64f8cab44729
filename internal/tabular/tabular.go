// Package tabular extracts typed attribute records from loosely structured
// line-oriented text.
//
// Extraction is driven by an explicit Schema rather than ad hoc matching: the
// caller declares the line shape as a regular expression and binds capture
// groups to named, typed fields. Lines that do not match the record shape are
// skipped; a matching line with a field that fails numeric coercion is a
// per-line failure that is recorded and skipped without aborting the batch.
package tabular

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// FieldKind is the declared type of a schema field.
type FieldKind int

const (
	// FieldKey is the record's join key. Key values are normalized with
	// NormalizeKey before storage.
	FieldKey FieldKind = iota

	// FieldNumber is a numeric field. Values are normalized (thousands
	// separators and surrounding punctuation stripped) and coerced to
	// float64.
	FieldNumber

	// FieldText is a free-text field stored trimmed but otherwise as-is.
	FieldText
)

// Field binds one capture group of the line pattern to a named, typed value.
type Field struct {
	Name  string
	Kind  FieldKind
	Group int // capture group index in Schema.Line, 1-based
}

// Schema declares the shape of one logical record.
//
// Line must match an entire record line and carry the capture groups the
// Fields reference. Candidate is optional: lines that match Candidate but
// not Line look like records with a broken shape, and are recorded as issues
// instead of being silently dropped.
type Schema struct {
	Line      *regexp.Regexp
	Candidate *regexp.Regexp
	Fields    []Field
}

// Record is one parsed attribute record.
type Record struct {
	Key     string
	Numbers map[string]float64
	Text    map[string]string
	Line    int // 1-based source line number
}

// Issue describes a non-fatal per-line problem encountered during a parse.
type Issue struct {
	Line int
	Text string
	Err  error
}

// ErrRecordParse indicates a line matched the record shape but a field value
// failed normalization or numeric coercion
type ErrRecordParse struct {
	Line  int
	Field string
	Value string
}

func (e *ErrRecordParse) Error() string {
	return fmt.Sprintf("line %d: field %q: cannot parse %q as a number", e.Line, e.Field, e.Value)
}

// Parse reads line-oriented text and extracts one record per matching line.
//
// Lines that fail to match the schema are skipped; lines that match the
// Candidate pattern but not the full record shape, and lines with
// uncoercible field values, are skipped with a recorded issue. One bad line
// never aborts the batch. The only batch-level failures are an invalid
// schema and a read error.
func Parse(r io.Reader, schema Schema) ([]Record, []Issue, error) {
	if err := validateSchema(schema); err != nil {
		return nil, nil, err
	}

	var (
		records []Record
		issues  []Issue
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		match := schema.Line.FindStringSubmatch(line)
		if match == nil {
			if schema.Candidate != nil && schema.Candidate.MatchString(line) {
				issues = append(issues, Issue{
					Line: lineNo,
					Text: line,
					Err:  fmt.Errorf("line %d matches record shape only partially", lineNo),
				})
			}
			continue
		}

		record, err := extractRecord(match, schema.Fields, lineNo)
		if err != nil {
			issues = append(issues, Issue{Line: lineNo, Text: line, Err: err})
			continue
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read attribute source: %w", err)
	}

	return records, issues, nil
}

// extractRecord builds a Record from the capture groups of one matched line.
func extractRecord(match []string, fields []Field, lineNo int) (Record, error) {
	record := Record{
		Numbers: make(map[string]float64),
		Text:    make(map[string]string),
		Line:    lineNo,
	}

	for _, field := range fields {
		raw := match[field.Group]

		switch field.Kind {
		case FieldKey:
			record.Key = NormalizeKey(raw)

		case FieldNumber:
			value, err := NormalizeNumber(raw)
			if err != nil {
				return Record{}, &ErrRecordParse{Line: lineNo, Field: field.Name, Value: raw}
			}
			record.Numbers[field.Name] = value

		case FieldText:
			record.Text[field.Name] = strings.TrimSpace(raw)
		}
	}

	return record, nil
}

// validateSchema checks the schema before any line is read.
func validateSchema(schema Schema) error {
	if schema.Line == nil {
		return fmt.Errorf("schema has no line pattern")
	}

	groups := schema.Line.NumSubexp()
	hasKey := false
	for _, field := range schema.Fields {
		if field.Group < 1 || field.Group > groups {
			return fmt.Errorf("schema field %q references capture group %d (pattern has %d)",
				field.Name, field.Group, groups)
		}
		if field.Kind == FieldKey {
			hasKey = true
		}
	}
	if !hasKey {
		return fmt.Errorf("schema declares no key field")
	}

	return nil
}

// keyStrip removes punctuation that varies between attribute sources and
// boundary catalogs naming the same entity.
var keyStrip = strings.NewReplacer(".", "", "'", "", "’", "", ",", "")

// NormalizeKey normalizes a join key: trimmed, lower-cased, punctuation
// stripped, internal whitespace collapsed to single spaces.
//
// Both sides of a join must pass through this function, or equal entities
// silently fail to match.
func NormalizeKey(s string) string {
	s = keyStrip.Replace(strings.TrimSpace(s))
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeNumber coerces a formatted numeric string to a float64.
//
// Thousands separators, surrounding whitespace, and stray spaces are
// stripped before conversion.
func NormalizeNumber(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(cleaned, 64)
}
