// Package msd implements the MSD key/value container format that underlies
// StepMania's .sm and .ssc simfiles. An MSD document is a sequence of
// parameters of the form `#KEY:VALUE;`, where values may span multiple lines
// and may contain further `:` separators that belong to the value itself.
package msd

import (
	"fmt"
	"io"
	"strings"
)

// Param is a single `#KEY:VALUE;` parameter. The key is stored verbatim;
// lookups are case-insensitive.
type Param struct {
	Key   string
	Value string
}

// Document is an ordered list of MSD parameters.
//
// Warnings collects recoverable oddities found during parsing (a missing
// terminating semicolon, stray text between parameters). StepMania accepts
// such files, so they parse successfully here too.
type Document struct {
	Params   []Param
	Warnings []string
}

// Parse reads an entire MSD document from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read msd input: %w", err)
	}
	return ParseString(string(data))
}

// ParseString parses an MSD document held in memory.
func ParseString(s string) (*Document, error) {
	// A UTF-8 BOM is common in simfiles saved by Windows editors.
	s = strings.TrimPrefix(s, "\ufeff")

	doc := &Document{}

	var (
		inside    bool // between '#' and ';'
		haveKey   bool // seen the first ':' of the current parameter
		key       strings.Builder
		value     strings.Builder
		lineStart = true
	)

	closeParam := func() {
		doc.Params = append(doc.Params, Param{Key: key.String(), Value: value.String()})
		key.Reset()
		value.Reset()
		inside = false
		haveKey = false
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		// Comments run to the end of the line, inside or outside parameters.
		if c == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			i-- // let the loop see the newline
			continue
		}

		if !inside {
			switch {
			case c == '#':
				inside = true
			case c == '\n':
				lineStart = true
			case strings.ContainsRune(" \t\r", c):
				// whitespace between parameters
			default:
				doc.Warnings = append(doc.Warnings, fmt.Sprintf("stray text outside parameter: %q", string(c)))
			}
			if c != '\n' {
				lineStart = false
			}
			continue
		}

		// StepMania recovers from a missing ';' when the next line opens a
		// new parameter.
		if lineStart && c == '#' {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("parameter %q missing terminating semicolon", key.String()))
			closeParam()
			inside = true
			lineStart = false
			continue
		}

		switch {
		case c == '\\' && i+1 < len(runes):
			i++
			if haveKey {
				value.WriteRune(runes[i])
			} else {
				key.WriteRune(runes[i])
			}
		case c == ';':
			closeParam()
		case c == ':' && !haveKey:
			haveKey = true
		default:
			if haveKey {
				value.WriteRune(c)
			} else {
				key.WriteRune(c)
			}
		}
		lineStart = c == '\n'
	}

	if inside {
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("parameter %q unterminated at end of input", key.String()))
		closeParam()
	}

	return doc, nil
}

// Get returns the value for a key, matched case-insensitively. The second
// return value distinguishes an absent parameter from an empty one.
func (d *Document) Get(key string) (string, bool) {
	for _, p := range d.Params {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}

// Set updates the first parameter matching key, or appends a new one. An
// existing parameter keeps its original key casing.
func (d *Document) Set(key, value string) {
	for i := range d.Params {
		if strings.EqualFold(d.Params[i].Key, key) {
			d.Params[i].Value = value
			return
		}
	}
	d.Params = append(d.Params, Param{Key: key, Value: value})
}

// String serializes the document back to MSD, one parameter per line.
func (d *Document) String() string {
	var sb strings.Builder
	for _, p := range d.Params {
		sb.WriteByte('#')
		sb.WriteString(escapeKey(p.Key))
		sb.WriteByte(':')
		sb.WriteString(escapeValue(p.Value))
		sb.WriteString(";\n")
	}
	return sb.String()
}

// escapeValue escapes the characters that would change how the value parses.
// A lone ':' is left alone: only the first unescaped ':' of a parameter
// separates key from value, so later ones round-trip as-is.
func escapeValue(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' || c == ';' || c == '#':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			sb.WriteString(`\/`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func escapeKey(s string) string {
	escaped := escapeValue(s)
	return strings.ReplaceAll(escaped, ":", `\:`)
}
