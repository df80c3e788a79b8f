// Package notes parses a chart's NOTES body into individual note objects
// positioned on the beat axis.
package notes

import (
	"fmt"
	"strings"

	"github.com/stepsmith/stepsmith/internal/timing"
)

// NoteType is the character StepMania uses for a note object.
type NoteType byte

const (
	Tap      NoteType = '1'
	HoldHead NoteType = '2'
	Tail     NoteType = '3' // ends both holds and rolls
	RollHead NoteType = '4'
	Mine     NoteType = 'M'
	Lift     NoteType = 'L'
	Fake     NoteType = 'F'
	KeySound NoteType = 'K'
)

// Hittable reports whether the note type is something the player can hit or
// that scores: everything except mines, fakes and tails.
func (t NoteType) Hittable() bool {
	switch t {
	case Mine, Fake, Tail:
		return false
	}
	return true
}

// Note is a single note object.
type Note struct {
	Beat   timing.Beat
	Column int
	Type   NoteType
}

// ticksPerMeasure is four beats of 48 ticks.
const ticksPerMeasure = 4 * timing.TicksPerBeat

// Parse reads a NOTES body into notes ordered by beat, then column. The
// column count is inferred from the first row. A character outside the known
// note set ('0' means empty) is a parse error naming the character and its
// measure.
func Parse(body string) ([]Note, error) {
	var out []Note

	measures := strings.Split(body, ",")
	for m, measure := range measures {
		rows := measureRows(measure)
		n := len(rows)
		for r, row := range rows {
			// Row r of an n-row measure m sits at measure start plus r/n of
			// four beats, snapped to the tick grid.
			ticks := int64(m)*ticksPerMeasure + roundDiv(int64(r)*ticksPerMeasure, int64(n))
			beat := timing.BeatFromTicks(ticks)

			for col, ch := range []byte(row) {
				switch NoteType(ch) {
				case Tap, HoldHead, Tail, RollHead, Mine, Lift, Fake, KeySound:
					out = append(out, Note{Beat: beat, Column: col, Type: NoteType(ch)})
				case '0':
					// empty position
				default:
					return nil, fmt.Errorf("unrecognized note character %q in measure %d", string(ch), m+1)
				}
			}
		}
	}
	return out, nil
}

// measureRows splits one measure into its non-empty rows.
func measureRows(measure string) []string {
	var rows []string
	for _, line := range strings.Split(measure, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

func roundDiv(a, b int64) int64 {
	return (a + b/2) / b
}
