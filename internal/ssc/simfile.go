// Package ssc models StepMania SSC simfiles: a header of song-level
// parameters followed by one NOTEDATA section per chart. Parameters the
// tools never touch are preserved verbatim, so a parse/serialize round trip
// is safe on real files.
package ssc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stepsmith/stepsmith/internal/msd"
)

// Simfile is a parsed SSC file.
type Simfile struct {
	header *msd.Document
	Charts []*Chart

	// Warnings carries recoverable parse oddities from the MSD layer.
	Warnings []string
}

// Chart is a single NOTEDATA section.
type Chart struct {
	doc *msd.Document
}

// Parse reads an SSC simfile from r.
func Parse(r io.Reader) (*Simfile, error) {
	doc, err := msd.Parse(r)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

// ParseString parses an SSC simfile held in memory.
func ParseString(s string) (*Simfile, error) {
	doc, err := msd.ParseString(s)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

// Load reads an SSC simfile from disk. The file is assumed to be UTF-8,
// which holds for virtually all SSC files in the wild.
func Load(path string) (*Simfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open simfile: %w", err)
	}
	defer f.Close()

	sim, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return sim, nil
}

func fromDocument(doc *msd.Document) *Simfile {
	sim := &Simfile{header: &msd.Document{}, Warnings: doc.Warnings}
	var current *msd.Document = sim.header

	for _, p := range doc.Params {
		if strings.EqualFold(p.Key, "NOTEDATA") {
			chart := &Chart{doc: &msd.Document{}}
			sim.Charts = append(sim.Charts, chart)
			current = chart.doc
		}
		current.Params = append(current.Params, p)
	}
	return sim
}

// String serializes the simfile, header first, then each chart.
func (s *Simfile) String() string {
	var sb strings.Builder
	sb.WriteString(s.header.String())
	for _, chart := range s.Charts {
		sb.WriteString(chart.doc.String())
	}
	return sb.String()
}

// Write serializes the simfile to w.
func (s *Simfile) Write(w io.Writer) error {
	_, err := io.WriteString(w, s.String())
	return err
}

// Field returns a header parameter, distinguishing absent from empty.
func (s *Simfile) Field(key string) (string, bool) {
	return s.header.Get(key)
}

// SetField updates or appends a header parameter.
func (s *Simfile) SetField(key, value string) {
	s.header.Set(key, value)
}

// Title returns the song title, or "" when unset.
func (s *Simfile) Title() string {
	v, _ := s.Field("TITLE")
	return v
}

// BPMs returns the header BPMS field, or "" when unset.
func (s *Simfile) BPMs() string {
	v, _ := s.Field("BPMS")
	return v
}

// DisplayBPM returns the DISPLAYBPM field, or "" when unset.
func (s *Simfile) DisplayBPM() string {
	v, _ := s.Field("DISPLAYBPM")
	return v
}

// Fakes returns the header FAKES field, or "" when unset.
func (s *Simfile) Fakes() string {
	v, _ := s.Field("FAKES")
	return v
}

// SetFakes replaces the header FAKES field.
func (s *Simfile) SetFakes(value string) {
	s.SetField("FAKES", value)
}

// SetScrolls replaces the header SCROLLS field.
func (s *Simfile) SetScrolls(value string) {
	s.SetField("SCROLLS", value)
}

// Scrolls returns the header SCROLLS field, or "" when unset.
func (s *Simfile) Scrolls() string {
	v, _ := s.Field("SCROLLS")
	return v
}

// Field returns a chart parameter, distinguishing absent from empty.
func (c *Chart) Field(key string) (string, bool) {
	return c.doc.Get(key)
}

// SetField updates or appends a chart parameter.
func (c *Chart) SetField(key, value string) {
	c.doc.Set(key, value)
}

// Notes returns the chart's NOTES body, or "" when unset.
func (c *Chart) Notes() string {
	v, _ := c.Field("NOTES")
	return v
}

// SetNotes replaces the chart's NOTES body.
func (c *Chart) SetNotes(value string) {
	c.SetField("NOTES", value)
}

// StepsType returns the chart's steps type (e.g. "dance-single").
func (c *Chart) StepsType() string {
	v, _ := c.Field("STEPSTYPE")
	return v
}

// Difficulty returns the chart's difficulty slot (e.g. "Challenge").
func (c *Chart) Difficulty() string {
	v, _ := c.Field("DIFFICULTY")
	return v
}

// HasTiming reports whether the chart carries split timing. StepMania keys
// this off the presence of a chart-level BPMS parameter.
func (c *Chart) HasTiming() bool {
	_, ok := c.Field("BPMS")
	return ok
}

// Fakes returns the chart's FAKES field, or "" when unset.
func (c *Chart) Fakes() string {
	v, _ := c.Field("FAKES")
	return v
}

// SetFakes replaces the chart's FAKES field.
func (c *Chart) SetFakes(value string) {
	c.SetField("FAKES", value)
}

// timingFields are the parameters that constitute a complete set of timing
// data, in the order StepMania writes them.
var timingFields = []string{
	"STOPS",
	"DELAYS",
	"BPMS",
	"OFFSET",
	"WARPS",
	"LABELS",
	"TIMESIGNATURES",
	"TICKCOUNTS",
	"COMBOS",
	"SPEEDS",
	"SCROLLS",
	"FAKES",
}

// CopyTiming copies the simfile's timing data onto a chart, giving it split
// timing. Fields absent from the header are left absent on the chart.
func CopyTiming(sim *Simfile, chart *Chart) {
	for _, key := range timingFields {
		if v, ok := sim.Field(key); ok {
			chart.SetField(key, v)
		}
	}
}
