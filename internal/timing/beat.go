// Package timing models beat positions and beat-indexed timing segments
// (BPMS, STOPS, FAKES, ...) the way StepMania stores them in simfiles.
package timing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TicksPerBeat is the finest subdivision StepMania supports: 48 ticks per
// beat, i.e. 192nd notes.
const TicksPerBeat = 48

// Beat is a position on a chart's beat axis, quantized to ticks. Arithmetic
// on Beats is exact; only formatting rounds.
type Beat int64

// BeatFromInt returns the Beat at a whole beat number.
func BeatFromInt(n int) Beat {
	return Beat(int64(n) * TicksPerBeat)
}

// BeatFromTicks returns the Beat at a raw tick count.
func BeatFromTicks(ticks int64) Beat {
	return Beat(ticks)
}

// Tick is the smallest nonzero Beat (one 192nd note).
func Tick() Beat {
	return Beat(1)
}

// ParseBeat parses a decimal beat string, quantizing to the nearest tick.
// This matches StepMania, which snaps all positions to 192nds.
func ParseBeat(s string) (Beat, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid beat %q: %w", s, err)
	}
	return BeatFromDecimal(d), nil
}

// BeatFromDecimal quantizes a decimal beat count to the nearest tick.
func BeatFromDecimal(d decimal.Decimal) Beat {
	ticks := d.Mul(decimal.NewFromInt(TicksPerBeat)).Round(0)
	return Beat(ticks.IntPart())
}

// Ticks returns the raw tick count.
func (b Beat) Ticks() int64 {
	return int64(b)
}

// Decimal returns the beat as an exact decimal fraction of TicksPerBeat,
// suitable for further arithmetic.
func (b Beat) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(b)).Div(decimal.NewFromInt(TicksPerBeat))
}

// String renders the beat with the three decimal places used throughout
// simfile timing fields. One tick renders as "0.021".
func (b Beat) String() string {
	return b.Decimal().StringFixed(3)
}
