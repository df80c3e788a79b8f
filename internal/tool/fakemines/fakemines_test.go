package fakemines

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepsmith/stepsmith/internal/ssc"
	"github.com/stepsmith/stepsmith/internal/timing"
	"github.com/stepsmith/stepsmith/internal/tool"
)

// newSim builds a blank simfile with one blank chart per notes body.
func newSim(t *testing.T, noteBodies ...string) *ssc.Simfile {
	t.Helper()
	sim := ssc.Blank()
	for _, body := range noteBodies {
		chart := ssc.BlankChart()
		chart.SetNotes(body)
		sim.Charts = append(sim.Charts, chart)
	}
	return sim
}

func apply(t *testing.T, sim *ssc.Simfile, opts tool.Options) (*tool.Result, error) {
	t.Helper()
	return (&Tool{}).Apply(context.Background(), sim, opts)
}

// fakeBeats parses a FAKES field into its region start beats.
func fakeBeats(t *testing.T, fakes string) []timing.Beat {
	t.Helper()
	bvs, err := timing.ParseBeatValues(fakes)
	require.NoError(t, err)
	beats := make([]timing.Beat, len(bvs))
	for i, bv := range bvs {
		beats[i] = bv.Beat
	}
	return beats
}

func TestApply(t *testing.T) {
	t.Run("one isolated mine", func(t *testing.T) {
		sim := newSim(t, "M000")
		res, err := apply(t, sim, tool.Options{})
		require.NoError(t, err)

		assert.Equal(t, []timing.Beat{timing.BeatFromInt(0)}, fakeBeats(t, sim.Fakes()))
		assert.True(t, res.Effective())
		require.Len(t, res.Actions, 1)
		assert.Equal(t, "add a short fake region on b0.000 to the simfile", res.Actions[0].Text)
	})

	t.Run("mine aligned with a hold tail", func(t *testing.T) {
		sim := newSim(t, "2000\n0000\n300M\n0000")
		_, err := apply(t, sim, tool.Options{})
		require.NoError(t, err)

		assert.Equal(t, []timing.Beat{timing.BeatFromInt(2)}, fakeBeats(t, sim.Fakes()))
	})

	t.Run("fake regions stay sorted by beat", func(t *testing.T) {
		sim := newSim(t, "0M00\n0000\nM000\n0000\n,\nM000\n0000\n0000\n0000")
		_, err := apply(t, sim, tool.Options{})
		require.NoError(t, err)

		want := []timing.Beat{timing.BeatFromInt(0), timing.BeatFromInt(2), timing.BeatFromInt(4)}
		assert.Equal(t, want, fakeBeats(t, sim.Fakes()))
	})

	t.Run("fake value is one tick", func(t *testing.T) {
		sim := newSim(t, "M000")
		_, err := apply(t, sim, tool.Options{})
		require.NoError(t, err)
		assert.Equal(t, "0.000=0.021", sim.Fakes())
	})

	t.Run("no mines means no effective actions", func(t *testing.T) {
		sim := newSim(t, "1000\n0000\n0000\n0000")
		res, err := apply(t, sim, tool.Options{})
		require.NoError(t, err)
		assert.False(t, res.Effective())
		assert.Empty(t, res.Actions)
	})
}

func TestApplyConflicts(t *testing.T) {
	t.Run("same-chart conflict is an error by default", func(t *testing.T) {
		sim := newSim(t, "1M00\n0000\n0000\n0000")
		_, err := apply(t, sim, tool.Options{})

		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Len(t, conflict.Simultaneous, 1)
		assert.Empty(t, conflict.SplitTiming)
		assert.True(t, strings.HasPrefix(err.Error(), "ERROR: There are simultaneous mines and notes"))
		assert.Contains(t, err.Error(), "b0.000 in Beginner")
		assert.Contains(t, err.Error(), "Allow simultaneous note & mine")
	})

	t.Run("allow-simultaneous leaves the mine alone", func(t *testing.T) {
		sim := newSim(t, "1M00\n0000\n0000\n0000")
		res, err := apply(t, sim, tool.Options{AllowSimultaneous: true})
		require.NoError(t, err)
		assert.False(t, res.Effective())
		assert.Empty(t, fakeBeats(t, sim.Fakes()))
	})

	t.Run("cross-chart conflict is an error by default", func(t *testing.T) {
		sim := newSim(t,
			"M000\n0000\n0000\n0000",
			"1000\n0000\n0000\n0000")
		_, err := apply(t, sim, tool.Options{})

		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Empty(t, conflict.Simultaneous)
		require.Len(t, conflict.SplitTiming, 1)
		assert.Contains(t, err.Error(), "Allow split timing")
	})

	t.Run("allow-split-timing copies timing to the mined chart", func(t *testing.T) {
		sim := newSim(t,
			"M000\n0000\n0000\n0000",
			"1000\n0000\n0000\n0000")
		res, err := apply(t, sim, tool.Options{AllowSplitTiming: true})
		require.NoError(t, err)

		mined := sim.Charts[0]
		assert.True(t, mined.HasTiming(), "mined chart gained split timing")
		assert.Equal(t, []timing.Beat{timing.BeatFromInt(0)}, fakeBeats(t, mined.Fakes()))
		assert.Empty(t, sim.Fakes(), "simfile-level fakes stay empty")
		assert.False(t, sim.Charts[1].HasTiming())

		require.Len(t, res.Actions, 2)
		assert.Contains(t, res.Actions[0].Text, "copy timing data from the simfile")
	})

	t.Run("steps type shown when the simfile mixes them", func(t *testing.T) {
		sim := newSim(t,
			"M000\n0000\n0000\n0000",
			"10000000\n00000000\n00000000\n00000000")
		sim.Charts[1].SetField("STEPSTYPE", "dance-double")

		_, err := apply(t, sim, tool.Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dance-single Beginner")
		assert.Contains(t, err.Error(), "dance-double Beginner")
	})
}

func TestApplySkipsExistingFakes(t *testing.T) {
	t.Run("mine inside an existing region", func(t *testing.T) {
		sim := newSim(t, "0000\n0000\nM000\n0000")
		sim.SetFakes("0.000=4.000")

		res, err := apply(t, sim, tool.Options{})
		require.NoError(t, err)

		assert.False(t, res.Effective())
		require.Len(t, res.Actions, 1)
		assert.True(t, res.Actions[0].Noop)
		assert.Contains(t, res.Actions[0].Text, "skipped 1 already-fake mines")
		assert.Equal(t, "0.000=4.000", sim.Fakes(), "untouched region keeps its decimal places")
	})

	t.Run("mine exactly at a region end is not covered", func(t *testing.T) {
		sim := newSim(t, "0000\n0000\nM000\n0000")
		sim.SetFakes("0.000=2.000")

		_, err := apply(t, sim, tool.Options{})
		require.NoError(t, err)

		want := []timing.Beat{timing.BeatFromInt(0), timing.BeatFromInt(2)}
		assert.Equal(t, want, fakeBeats(t, sim.Fakes()))
	})
}

func TestApplyChartWithOwnTiming(t *testing.T) {
	sim := newSim(t, "M000")
	chart := sim.Charts[0]
	chart.SetField("BPMS", "0.000=120.000")

	_, err := apply(t, sim, tool.Options{})
	require.NoError(t, err)

	assert.Equal(t, []timing.Beat{timing.BeatFromInt(0)}, fakeBeats(t, chart.Fakes()))
	assert.Empty(t, sim.Fakes())
}

func TestBeatAlreadyFake(t *testing.T) {
	fakes, err := timing.ParseBeatValues("4.000=2.000,12.000=0.021")
	require.NoError(t, err)

	assert.False(t, beatAlreadyFake(timing.BeatFromInt(0), fakes))
	assert.True(t, beatAlreadyFake(timing.BeatFromInt(4), fakes))
	assert.True(t, beatAlreadyFake(timing.BeatFromInt(5), fakes))
	assert.False(t, beatAlreadyFake(timing.BeatFromInt(6), fakes), "region end is exclusive")
	assert.True(t, beatAlreadyFake(timing.BeatFromInt(12), fakes))
	assert.False(t, beatAlreadyFake(timing.BeatFromInt(12)+timing.Tick(), fakes))
}
