package notes

import "github.com/stepsmith/stepsmith/internal/timing"

// Group is the set of notes starting on one beat. Tails never start a group:
// they belong to the hold or roll whose head opened them.
type Group struct {
	Beat  timing.Beat
	Notes []Note
}

// AnyMine reports whether the group contains at least one mine.
func (g Group) AnyMine() bool {
	for _, n := range g.Notes {
		if n.Type == Mine {
			return true
		}
	}
	return false
}

// AllMines reports whether every note in the group is a mine.
func (g Group) AllMines() bool {
	for _, n := range g.Notes {
		if n.Type != Mine {
			return false
		}
	}
	return true
}

// GroupByBeat groups notes by their starting beat, in beat order. The input
// must be in parse order (beat, then column), which Parse guarantees.
func GroupByBeat(all []Note) []Group {
	var groups []Group
	for _, n := range all {
		if n.Type == Tail {
			continue
		}
		if len(groups) > 0 && groups[len(groups)-1].Beat == n.Beat {
			last := &groups[len(groups)-1]
			last.Notes = append(last.Notes, n)
			continue
		}
		groups = append(groups, Group{Beat: n.Beat, Notes: []Note{n}})
	}
	return groups
}
