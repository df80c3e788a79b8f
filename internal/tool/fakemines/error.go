package fakemines

import (
	"strings"

	"github.com/stepsmith/stepsmith/internal/ssc"
)

// ConflictError reports mines that share a beat with hittable notes when the
// options don't explicitly allow it. Its message is multi-line and written
// for end users; both the CLI and the web UI show it verbatim.
type ConflictError struct {
	sim *ssc.Simfile

	// Simultaneous are same-chart pairs, fixable with AllowSimultaneous.
	Simultaneous []pair

	// SplitTiming are cross-chart pairs, fixable with AllowSplitTiming.
	SplitTiming []pair
}

func (e *ConflictError) Error() string {
	var sb strings.Builder
	sb.WriteString(
		"ERROR: There are simultaneous mines and notes in your file;\n" +
			"you will have to either update the chart or opt into certain behavior\n" +
			"in order to remedy this error.\n")

	if len(e.Simultaneous) > 0 {
		sb.WriteString("\nSimultaneous mine & note in the same chart (ignore with 'Allow simultaneous note & mine'):\n")
		e.writePairs(&sb, e.Simultaneous)
		sb.WriteString(
			"Ignoring these occurrences will leave the mines on these beats hittable,\n" +
				"which may surprise players. Consider relocating these mines instead.\n")
	}

	if len(e.SplitTiming) > 0 {
		sb.WriteString("\nSimultaneous mine & note in different charts (fix with 'Allow split timing'):\n")
		e.writePairs(&sb, e.SplitTiming)
		sb.WriteString(
			"Note that split timing makes it easy to mess up the timing data if you are\n" +
				"still making changes to the chart. Use this feature with caution.\n")
	}

	return sb.String()
}

func (e *ConflictError) writePairs(sb *strings.Builder, pairs []pair) {
	for _, p := range pairs {
		sb.WriteString("    b")
		sb.WriteString(p.beat.String())
		sb.WriteString(" in ")
		sb.WriteString(describeChart(e.sim, p.mineChart))
		if p.mineChart != p.noteChart {
			sb.WriteString(" and ")
			sb.WriteString(describeChart(e.sim, p.noteChart))
		}
		sb.WriteString("\n")
	}
}

// describeChart identifies a chart by difficulty, prefixed with its steps
// type when the simfile mixes several.
func describeChart(sim *ssc.Simfile, chartIndex int) string {
	chart := sim.Charts[chartIndex]

	stepsTypes := make(map[string]bool)
	for _, c := range sim.Charts {
		stepsTypes[c.StepsType()] = true
	}
	if len(stepsTypes) > 1 {
		return chart.StepsType() + " " + chart.Difficulty()
	}
	return chart.Difficulty()
}
