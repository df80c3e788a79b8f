// Package scrollnorm implements the scroll-normalizer transform: SCROLLS
// segments that counteract BPM changes, so the chart scrolls at a constant
// rate no matter how the BPM moves.
package scrollnorm

import (
	"context"
	"fmt"

	"github.com/stepsmith/stepsmith/internal/ssc"
	"github.com/stepsmith/stepsmith/internal/timing"
	"github.com/stepsmith/stepsmith/internal/tool"
)

// Tool implements tool.Tool.
type Tool struct{}

// Register adds the scroll-normalizer tool to a registry.
func Register(r *tool.Registry) {
	r.Register(&Tool{})
}

func (t *Tool) Name() string { return "scroll-normalizer" }

func (t *Tool) Summary() string {
	return "Normalize the scroll rate across BPM changes so the chart always scrolls at the display BPM."
}

// Apply rewrites the simfile's SCROLLS so that every BPM segment scrolls at
// the song's canonical BPM: each segment's scroll factor is canonical BPM
// divided by segment BPM, quantized to three decimal places.
func (t *Tool) Apply(ctx context.Context, sim *ssc.Simfile, opts tool.Options) (*tool.Result, error) {
	bpms, err := timing.ParseBeatValues(sim.BPMs())
	if err != nil {
		return nil, fmt.Errorf("invalid BPMS: %w", err)
	}

	canonical, err := timing.CanonicalBPM(sim.DisplayBPM(), bpms)
	if err != nil {
		return nil, err
	}

	scrolls := make(timing.BeatValues, len(bpms))
	for i, bpm := range bpms {
		if bpm.Value.IsZero() {
			return nil, fmt.Errorf("cannot normalize scroll over a zero BPM segment at b%s", bpm.Beat)
		}
		// Ties round to the even digit.
		scrolls[i] = timing.BeatValue{
			Beat:  bpm.Beat,
			Value: canonical.Div(bpm.Value).RoundBank(3),
		}
	}
	sim.SetScrolls(scrolls.String())

	res := &tool.Result{}
	res.Record("set %d scroll segments normalized to %s BPM", len(scrolls), canonical)
	return res, nil
}
