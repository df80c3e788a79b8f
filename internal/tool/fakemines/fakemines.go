// Package fakemines implements the fake-mines transform: every isolated mine
// gets a one-tick FAKES region so it cannot be hit during gameplay.
package fakemines

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stepsmith/stepsmith/internal/notes"
	"github.com/stepsmith/stepsmith/internal/ssc"
	"github.com/stepsmith/stepsmith/internal/timing"
	"github.com/stepsmith/stepsmith/internal/tool"
)

// tickLength is the fake region length: one tick, the shortest region
// StepMania honors. Serialized through Beat so it reads back as one tick.
var tickLength = decimal.RequireFromString(timing.Tick().String())

// Tool implements tool.Tool.
type Tool struct{}

// Register adds the fake-mines tool to a registry.
func Register(r *tool.Registry) {
	r.Register(&Tool{})
}

func (t *Tool) Name() string { return "fake-mines" }

func (t *Tool) Summary() string {
	return "Add a short fake region on every isolated mine to prevent it from being hit during gameplay."
}

// fakesTarget is where a fake region lands: an SSC chart with split timing,
// or the simfile header. Both carry a FAKES field.
type fakesTarget interface {
	Fakes() string
	SetFakes(string)
}

// Apply adds a one-tick fake region on each all-mine beat of each chart.
//
// It returns a *ConflictError when a mine and a hittable note share a beat
// and the options don't allow it: same-chart pairs need AllowSimultaneous
// (those mines are then left alone), cross-chart pairs need AllowSplitTiming
// (the affected charts then get their own copy of the timing data so fakes
// in one chart can't eat notes in another).
func (t *Tool) Apply(ctx context.Context, sim *ssc.Simfile, opts tool.Options) (*tool.Result, error) {
	res := &tool.Result{}

	idx, err := buildIndex(sim)
	if err != nil {
		return nil, err
	}
	if err := checkConflicts(sim, idx, opts); err != nil {
		return nil, err
	}

	skippedMines := 0

	for _, c := range idx.chartsWithMines() {
		chart := sim.Charts[c]

		var target fakesTarget
		switch {
		case chart.HasTiming():
			target = chart
		case len(idx.crossChart) > 0:
			res.Record("copy timing data from the simfile to the %s chart", describeChart(sim, c))
			ssc.CopyTiming(sim, chart)
			target = chart
		default:
			target = sim
		}

		fakes, err := timing.ParseBeatValues(target.Fakes())
		if err != nil {
			return nil, err
		}

		for _, group := range notes.GroupByBeat(idx.chartNotes[c]) {
			if !group.AnyMine() {
				continue
			}
			if !group.AllMines() {
				// Only reachable under AllowSimultaneous; the mine stays
				// hittable.
				continue
			}
			if beatAlreadyFake(group.Beat, fakes) {
				skippedMines++
				continue
			}
			res.Record("add a short fake region on b%s to %s", group.Beat, describeTarget(sim, target))
			fakes.Insert(timing.BeatValue{Beat: group.Beat, Value: tickLength})
		}

		target.SetFakes(fakes.String())
	}

	if skippedMines > 0 {
		res.RecordNoop("skipped %d already-fake mines", skippedMines)
	}

	return res, nil
}

// checkConflicts returns a ConflictError listing every same-beat pair the
// options don't cover.
func checkConflicts(sim *ssc.Simfile, idx *index, opts tool.Options) error {
	var simultaneous, splitTiming []pair
	if !opts.AllowSimultaneous {
		simultaneous = idx.sameChart
	}
	if !opts.AllowSplitTiming {
		splitTiming = idx.crossChart
	}
	if len(simultaneous) > 0 || len(splitTiming) > 0 {
		return &ConflictError{sim: sim, Simultaneous: simultaneous, SplitTiming: splitTiming}
	}
	return nil
}

// beatAlreadyFake reports whether beat falls inside an existing fake region.
// Regions are assumed sorted with strictly increasing extents, so the scan
// stops once it passes the queried beat.
func beatAlreadyFake(beat timing.Beat, fakes timing.BeatValues) bool {
	for _, fake := range fakes {
		end := fake.Beat + timing.BeatFromDecimal(fake.Value)
		if fake.Beat <= beat && beat < end {
			return true
		}
		if fake.Beat > beat {
			return false
		}
	}
	return false
}

func describeTarget(sim *ssc.Simfile, target fakesTarget) string {
	if chart, ok := target.(*ssc.Chart); ok {
		for i := range sim.Charts {
			if sim.Charts[i] == chart {
				return "the " + describeChart(sim, i) + " chart"
			}
		}
	}
	return "the simfile"
}
