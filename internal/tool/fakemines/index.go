package fakemines

import (
	"fmt"
	"sort"

	"github.com/stepsmith/stepsmith/internal/notes"
	"github.com/stepsmith/stepsmith/internal/ssc"
	"github.com/stepsmith/stepsmith/internal/timing"
)

// beatChart is a note object position: its beat and the chart it lives in.
type beatChart struct {
	beat  timing.Beat
	chart int
}

// pair is a mine and a hittable note sharing one beat.
type pair struct {
	beat      timing.Beat
	mineChart int
	noteChart int
}

// index holds note & mine positions across all charts of a simfile.
type index struct {
	// notePositions and minePositions cover all charts, sorted by beat then
	// chart index.
	notePositions []beatChart
	minePositions []beatChart

	// sameChart lists same-beat mine & note pairs within one chart;
	// crossChart lists them across different charts.
	sameChart  []pair
	crossChart []pair

	// chartNotes caches each chart's parsed note objects.
	chartNotes [][]notes.Note
}

// buildIndex parses every chart and records all mine/note positions and
// same-beat collisions.
func buildIndex(sim *ssc.Simfile) (*index, error) {
	idx := &index{chartNotes: make([][]notes.Note, len(sim.Charts))}

	for c, chart := range sim.Charts {
		parsed, err := notes.Parse(chart.Notes())
		if err != nil {
			return nil, fmt.Errorf("chart %d: %w", c+1, err)
		}
		idx.chartNotes[c] = parsed

		var chartNotes, chartMines []beatChart
		for _, n := range parsed {
			pos := beatChart{beat: n.Beat, chart: c}
			switch {
			case n.Type == notes.Mine:
				idx.recordCollisions(chartNotes, idx.notePositions, pos, true)
				chartMines = append(chartMines, pos)
			case !n.Type.Hittable():
				// fakes and tails can't collide with anything
			default:
				idx.recordCollisions(chartMines, idx.minePositions, pos, false)
				chartNotes = append(chartNotes, pos)
			}
		}

		idx.notePositions = mergePositions(idx.notePositions, chartNotes)
		idx.minePositions = mergePositions(idx.minePositions, chartMines)
	}

	return idx, nil
}

// recordCollisions looks for an item of the opposite kind on pos's beat, in
// this chart (thisChart, positions seen so far) and in previously indexed
// charts (otherCharts).
func (idx *index) recordCollisions(thisChart, otherCharts []beatChart, pos beatChart, posIsMine bool) {
	if other, ok := chartWithItemOnBeat(otherCharts, pos.beat); ok {
		p := pair{beat: pos.beat, mineChart: pos.chart, noteChart: other}
		if !posIsMine {
			p.mineChart, p.noteChart = other, pos.chart
		}
		idx.crossChart = append(idx.crossChart, p)
	}

	if _, ok := chartWithItemOnBeat(thisChart, pos.beat); ok {
		idx.sameChart = append(idx.sameChart, pair{beat: pos.beat, mineChart: pos.chart, noteChart: pos.chart})
	}
}

// chartWithItemOnBeat finds the first position on the given beat in a
// beat-sorted slice.
func chartWithItemOnBeat(positions []beatChart, beat timing.Beat) (int, bool) {
	i := sort.Search(len(positions), func(i int) bool {
		return positions[i].beat >= beat
	})
	if i < len(positions) && positions[i].beat == beat {
		return positions[i].chart, true
	}
	return 0, false
}

// chartsWithMines returns the indexes of charts containing mines, ascending.
func (idx *index) chartsWithMines() []int {
	seen := make(map[int]bool)
	var out []int
	for _, pos := range idx.minePositions {
		if !seen[pos.chart] {
			seen[pos.chart] = true
			out = append(out, pos.chart)
		}
	}
	sort.Ints(out)
	return out
}

// mergePositions merges two (beat, chart)-sorted slices.
func mergePositions(a, b []beatChart) []beatChart {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]beatChart, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].beat < b[j].beat || (a[i].beat == b[j].beat && a[i].chart <= b[j].chart) {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
