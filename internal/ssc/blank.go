package ssc

import "github.com/stepsmith/stepsmith/internal/msd"

// Blank returns a minimal valid simfile with the header parameters a fresh
// StepMania save would carry.
func Blank() *Simfile {
	header := &msd.Document{}
	for _, p := range []msd.Param{
		{Key: "VERSION", Value: "0.83"},
		{Key: "TITLE", Value: ""},
		{Key: "SUBTITLE", Value: ""},
		{Key: "ARTIST", Value: ""},
		{Key: "TITLETRANSLIT", Value: ""},
		{Key: "SUBTITLETRANSLIT", Value: ""},
		{Key: "ARTISTTRANSLIT", Value: ""},
		{Key: "GENRE", Value: ""},
		{Key: "CREDIT", Value: ""},
		{Key: "MUSIC", Value: ""},
		{Key: "OFFSET", Value: "0.000000"},
		{Key: "SAMPLESTART", Value: "100.000000"},
		{Key: "SAMPLELENGTH", Value: "12.000000"},
		{Key: "SELECTABLE", Value: "YES"},
		{Key: "BPMS", Value: "0.000=60.000"},
		{Key: "STOPS", Value: ""},
		{Key: "DELAYS", Value: ""},
		{Key: "WARPS", Value: ""},
		{Key: "TIMESIGNATURES", Value: "0.000=4=4"},
		{Key: "TICKCOUNTS", Value: "0.000=4"},
		{Key: "COMBOS", Value: "0.000=1"},
		{Key: "SPEEDS", Value: "0.000=1.000=0.000=0"},
		{Key: "SCROLLS", Value: "0.000=1.000"},
		{Key: "LABELS", Value: "0.000=Song Start"},
		{Key: "BGCHANGES", Value: ""},
		{Key: "KEYSOUNDS", Value: ""},
		{Key: "ATTACKS", Value: ""},
	} {
		header.Params = append(header.Params, p)
	}
	return &Simfile{header: header}
}

// BlankChart returns an empty dance-single chart with one empty measure.
func BlankChart() *Chart {
	doc := &msd.Document{}
	for _, p := range []msd.Param{
		{Key: "NOTEDATA", Value: ""},
		{Key: "CHARTNAME", Value: ""},
		{Key: "STEPSTYPE", Value: "dance-single"},
		{Key: "DESCRIPTION", Value: ""},
		{Key: "CHARTSTYLE", Value: ""},
		{Key: "DIFFICULTY", Value: "Beginner"},
		{Key: "METER", Value: "1"},
		{Key: "RADARVALUES", Value: "0,0,0,0,0"},
		{Key: "CREDIT", Value: ""},
		{Key: "NOTES", Value: "\n0000\n0000\n0000\n0000\n"},
	} {
		doc.Params = append(doc.Params, p)
	}
	return &Chart{doc: doc}
}
