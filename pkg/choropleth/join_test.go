package choropleth

import (
	"errors"
	"sort"
	"testing"
)

func record(key string, population, area float64, line int) AttributeRecord {
	return AttributeRecord{
		Key:     NormalizeKey(key),
		Numbers: map[string]float64{"population": population, "area": area},
		Line:    line,
	}
}

func TestJoinInnerLaw(t *testing.T) {
	set := countySet(t) // king, pierce (washington), multnomah (oregon)

	records := []AttributeRecord{
		record("King County", 2269675, 2115.7, 1),
		record("Multnomah County", 815428, 431.3, 2),
		record("Ada County", 494967, 1052.7, 3), // no matching ring
	}

	joined, err := Join(set, records, DefaultJoinOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The output key set is exactly the intersection of ring keys and
	// record keys.
	got := make([]string, len(joined))
	for i, j := range joined {
		got[i] = j.Key()
	}
	sort.Strings(got)

	want := []string{"king county", "multnomah county"}
	if len(got) != len(want) {
		t.Fatalf("joined keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("joined keys = %v, want %v", got, want)
		}
	}
}

func TestJoinDuplicateKeyFails(t *testing.T) {
	set := countySet(t)

	records := []AttributeRecord{
		record("King County", 2269675, 2115.7, 1),
		record("king  county", 1, 1, 5), // same key after normalization
	}

	_, err := Join(set, records, DefaultJoinOptions())
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %T: %v", err, err)
	}
	if dup.Key != "king county" {
		t.Errorf("duplicate key = %q, want king county", dup.Key)
	}
	if len(dup.Lines) != 2 {
		t.Errorf("duplicate lines = %v, want both source lines", dup.Lines)
	}
}

func TestJoinDuplicateKeepFirst(t *testing.T) {
	set := countySet(t)

	records := []AttributeRecord{
		record("King County", 2269675, 2115.7, 1),
		record("King County", 1, 1, 5),
	}

	opts := DefaultJoinOptions()
	opts.Duplicates = DuplicateKeepFirst

	joined, err := Join(set, records, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(joined) != 1 {
		t.Fatalf("expected 1 joined ring, got %d", len(joined))
	}
	if pop, _ := joined[0].Attribute("population"); pop != 2269675 {
		t.Errorf("keep-first kept the wrong record: population = %v", pop)
	}
}

func TestJoinRegionGranularity(t *testing.T) {
	set := countySet(t)

	records := []AttributeRecord{
		record("washington", 7705281, 66456, 1),
	}

	opts := DefaultJoinOptions()
	opts.Key = KeyRegion

	joined, err := Join(set, records, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both washington county rings join onto the state record.
	if len(joined) != 2 {
		t.Fatalf("expected 2 joined rings, got %d", len(joined))
	}
}

func TestJoinUnmatchedRingsDropped(t *testing.T) {
	set := countySet(t)

	joined, err := Join(set, nil, DefaultJoinOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(joined) != 0 {
		t.Errorf("join with no records produced %d rings", len(joined))
	}
}
