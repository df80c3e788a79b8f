package timing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FieldSource is anything with MSD-style timing fields: a simfile header or
// an SSC chart.
type FieldSource interface {
	Field(key string) (string, bool)
}

// Data is the resolved timing data of a simfile or chart.
type Data struct {
	Offset decimal.Decimal
	BPMs   BeatValues
	Stops  BeatValues
	Delays BeatValues
	Warps  BeatValues
	Fakes  BeatValues
}

// NewData parses the timing fields of a single source. Absent fields parse
// to empty segment lists and a zero offset.
func NewData(src FieldSource) (*Data, error) {
	d := &Data{}

	if raw, ok := src.Field("OFFSET"); ok && raw != "" {
		offset, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid OFFSET %q: %w", raw, err)
		}
		d.Offset = offset
	}

	for _, f := range []struct {
		key  string
		dest *BeatValues
	}{
		{"BPMS", &d.BPMs},
		{"STOPS", &d.Stops},
		{"DELAYS", &d.Delays},
		{"WARPS", &d.Warps},
		{"FAKES", &d.Fakes},
	} {
		raw, ok := src.Field(f.key)
		if !ok {
			continue
		}
		values, err := ParseBeatValues(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dest = values
	}

	return d, nil
}

// DataForChart resolves timing for a chart under SSC split-timing rules: a
// chart carrying its own BPMS supplies all timing fields, otherwise the
// simfile header does.
func DataForChart(sim, chart FieldSource) (*Data, error) {
	if HasOwnTiming(chart) {
		return NewData(chart)
	}
	return NewData(sim)
}

// HasOwnTiming reports whether a chart defines split timing.
func HasOwnTiming(chart FieldSource) bool {
	_, ok := chart.Field("BPMS")
	return ok
}
