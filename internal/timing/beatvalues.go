package timing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// BeatValue is a single `beat=value` timing segment.
type BeatValue struct {
	Beat  Beat
	Value decimal.Decimal
}

// String renders the segment in simfile form, e.g. "2.000=0.021". The value
// keeps the decimal places it was parsed or quantized with, so a round trip
// never rewrites untouched segments.
func (bv BeatValue) String() string {
	return fmt.Sprintf("%s=%s", bv.Beat, formatDecimal(bv.Value))
}

// formatDecimal renders v without dropping trailing zeros. Decimal.String
// trims them, but simfile values like 150.000 must survive byte for byte.
func formatDecimal(v decimal.Decimal) string {
	if exp := v.Exponent(); exp < 0 {
		return v.StringFixed(-exp)
	}
	return v.String()
}

// BeatValues is an ordered list of timing segments as found in BPMS, STOPS,
// FAKES and similar fields.
type BeatValues []BeatValue

// ParseBeatValues parses a comma-separated `beat=value` list. The empty
// string parses to an empty list.
func ParseBeatValues(s string) (BeatValues, error) {
	var out BeatValues
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		beatStr, valueStr, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("invalid timing segment %q: missing '='", entry)
		}
		beat, err := ParseBeat(strings.TrimSpace(beatStr))
		if err != nil {
			return nil, err
		}
		value, err := decimal.NewFromString(strings.TrimSpace(valueStr))
		if err != nil {
			return nil, fmt.Errorf("invalid timing segment value %q: %w", valueStr, err)
		}
		out = append(out, BeatValue{Beat: beat, Value: value})
	}
	return out, nil
}

// String renders the list in StepMania's multi-line layout.
func (bvs BeatValues) String() string {
	parts := make([]string, len(bvs))
	for i, bv := range bvs {
		parts[i] = bv.String()
	}
	return strings.Join(parts, ",\n")
}

// Insert adds a segment, keeping the list ordered by beat. A segment on an
// already-present beat is inserted after the existing one.
func (bvs *BeatValues) Insert(bv BeatValue) {
	i := sort.Search(len(*bvs), func(i int) bool {
		return (*bvs)[i].Beat > bv.Beat
	})
	*bvs = append(*bvs, BeatValue{})
	copy((*bvs)[i+1:], (*bvs)[i:])
	(*bvs)[i] = bv
}

// MaxValue returns the largest segment value, or false for an empty list.
func (bvs BeatValues) MaxValue() (decimal.Decimal, bool) {
	if len(bvs) == 0 {
		return decimal.Decimal{}, false
	}
	max := bvs[0].Value
	for _, bv := range bvs[1:] {
		if bv.Value.GreaterThan(max) {
			max = bv.Value
		}
	}
	return max, true
}
