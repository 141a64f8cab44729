package choropleth

// KeyGranularity selects which ring identity the join matches on.
type KeyGranularity int

const (
	// KeyAuto joins on the subregion when the ring has one, otherwise on
	// the region. This is the common case for county-within-state data.
	KeyAuto KeyGranularity = iota

	// KeySubregion joins strictly on the subregion.
	KeySubregion

	// KeyRegion joins strictly on the region.
	KeyRegion
)

// DuplicatePolicy decides what happens when attribute records share a key.
type DuplicatePolicy int

const (
	// DuplicateFail aborts the join with *DuplicateKeyError. Unnoticed
	// duplication cross-multiplies rows and corrupts downstream metrics.
	DuplicateFail DuplicatePolicy = iota

	// DuplicateKeepFirst keeps the first record for a key and ignores the
	// rest.
	DuplicateKeepFirst
)

// JoinOptions configures join behavior.
type JoinOptions struct {
	Key        KeyGranularity
	Duplicates DuplicatePolicy
}

// DefaultJoinOptions returns default join options: automatic key
// granularity, duplicate keys fatal.
func DefaultJoinOptions() JoinOptions {
	return JoinOptions{
		Key:        KeyAuto,
		Duplicates: DuplicateFail,
	}
}

// JoinedRing is a ring combined with its matched attribute record and any
// derived metrics.
//
// JoinedRings only exist for rings that matched a record: the join is inner.
type JoinedRing struct {
	ring    Ring
	record  AttributeRecord
	metrics map[string]float64
}

// Ring returns the underlying ring.
func (j *JoinedRing) Ring() Ring { return j.ring }

// Key returns the join key both sides matched on.
func (j *JoinedRing) Key() string { return j.record.Key }

// Attribute returns a joined numeric field by name.
func (j *JoinedRing) Attribute(name string) (float64, bool) {
	v, ok := j.record.Numbers[name]
	return v, ok
}

// Text returns a joined free-text field by name.
func (j *JoinedRing) Text(name string) (string, bool) {
	v, ok := j.record.Text[name]
	return v, ok
}

// Metric returns a derived metric by name.
func (j *JoinedRing) Metric(name string) (float64, bool) {
	v, ok := j.metrics[name]
	return v, ok
}

// Metrics returns a copy of all derived metrics.
func (j *JoinedRing) Metrics() map[string]float64 {
	out := make(map[string]float64, len(j.metrics))
	for k, v := range j.metrics {
		out[k] = v
	}
	return out
}

// Join combines rings with attribute records by normalized key.
//
// The join is inner: a ring with no matching record is dropped from the
// output, and a record with no matching ring is simply unused. The output
// key set is exactly the intersection of ring keys and record keys. Ring
// draw order is preserved.
//
// Duplicate record keys fail with *DuplicateKeyError under the default
// options; see DuplicatePolicy.
func Join(ps *PolygonSet, records []AttributeRecord, opts JoinOptions) ([]JoinedRing, error) {
	byKey := make(map[string]AttributeRecord, len(records))
	lines := make(map[string][]int, len(records))

	for _, rec := range records {
		key := NormalizeKey(rec.Key)
		lines[key] = append(lines[key], rec.Line)
		if _, exists := byKey[key]; exists {
			if opts.Duplicates == DuplicateKeepFirst {
				continue
			}
			return nil, &DuplicateKeyError{Key: key, Lines: lines[key]}
		}
		byKey[key] = rec
	}

	joined := make([]JoinedRing, 0, len(ps.rings))
	for _, ring := range ps.rings {
		key := joinKey(&ring, opts.Key)
		rec, ok := byKey[key]
		if !ok {
			continue
		}
		joined = append(joined, JoinedRing{
			ring:   ring,
			record: rec,
		})
	}

	return joined, nil
}

// joinKey resolves a ring's join key for the requested granularity.
func joinKey(r *Ring, granularity KeyGranularity) string {
	switch granularity {
	case KeySubregion:
		return NormalizeKey(r.subregion)
	case KeyRegion:
		return NormalizeKey(r.region)
	default:
		return r.Key()
	}
}
