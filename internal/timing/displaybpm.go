package timing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoBPMs is returned when a simfile defines no BPM segments at all.
var ErrNoBPMs = errors.New("simfile has no BPM segments")

// DisplayBPM is the parsed form of a #DISPLAYBPM field.
type DisplayBPM struct {
	// Random is true for the "*" marker, which tells StepMania to spin the
	// BPM meter. A random display carries no usable maximum.
	Random bool
	Min    decimal.Decimal
	Max    decimal.Decimal
}

// ParseDisplayBPM parses a DISPLAYBPM value: a single BPM, a "low:high"
// range, or "*".
func ParseDisplayBPM(s string) (DisplayBPM, error) {
	s = strings.TrimSpace(s)
	if s == "*" {
		return DisplayBPM{Random: true}, nil
	}
	low, high, isRange := strings.Cut(s, ":")
	min, err := decimal.NewFromString(strings.TrimSpace(low))
	if err != nil {
		return DisplayBPM{}, fmt.Errorf("invalid DISPLAYBPM %q: %w", s, err)
	}
	if !isRange {
		return DisplayBPM{Min: min, Max: min}, nil
	}
	max, err := decimal.NewFromString(strings.TrimSpace(high))
	if err != nil {
		return DisplayBPM{}, fmt.Errorf("invalid DISPLAYBPM %q: %w", s, err)
	}
	return DisplayBPM{Min: min, Max: max}, nil
}

// CanonicalBPM picks a representative BPM for a song: the DISPLAYBPM maximum
// when one is set and usable, otherwise the largest BPM segment value.
// displayBPM may be empty (field absent).
func CanonicalBPM(displayBPM string, bpms BeatValues) (decimal.Decimal, error) {
	if strings.TrimSpace(displayBPM) != "" {
		d, err := ParseDisplayBPM(displayBPM)
		if err == nil && !d.Random {
			return d.Max, nil
		}
		// A random or malformed display BPM falls through to the song max.
	}
	max, ok := bpms.MaxValue()
	if !ok {
		return decimal.Decimal{}, ErrNoBPMs
	}
	return max, nil
}
