// Package inspector implements the analyze reader side (SPEC_FULL.md's
// DOMAIN STACK section): it re-parses a finished story file the same
// way the Validator does, plus walks the object tree and dictionary
// for display, and optionally drives an interactive bubbletea browser
// over the result.
package inspector

import (
	"fmt"
	"strings"

	"github.com/alanquatermain/zilc/dictionary"
	"github.com/alanquatermain/zilc/validate"
	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zheader"
	"github.com/alanquatermain/zilc/zobject"
	"github.com/alanquatermain/zilc/zstring"
)

// ObjectSummary is one row of the object tree dump.
type ObjectSummary struct {
	ID                     uint16
	Name                   string
	Parent, Sibling, Child uint16
	Properties             []zobject.Property
}

// Report is everything the analyze subcommand has to show, whether
// printed as plain text or browsed interactively.
type Report struct {
	Header    zheader.Header
	Objects   []ObjectSummary
	Words     []string
	Warnings  []zerrors.Warning
	StoryFile []byte
}

// Analyze parses data as a story file and reports its header, object
// tree, dictionary, and any Validator findings. Objects and
// dictionary entries are best-effort: a malformed table stops that
// section's walk but doesn't abort the rest of the report.
func Analyze(data []byte) (Report, error) {
	h, err := zheader.Load(data)
	if err != nil {
		return Report{}, fmt.Errorf("inspector: %w", err)
	}

	alphabets := zstring.LoadAlphabets(h.Version, data, h.AlphabetTableAddress)

	report := Report{
		Header:    h,
		Warnings:  validate.Image(data, h.Version),
		StoryFile: data,
	}

	report.Objects = walkObjects(data, h, alphabets)

	if int(h.DictionaryAddress) < len(data) {
		d := dictionary.ParseDictionary(data[h.DictionaryAddress:], uint32(h.DictionaryAddress), h.Version, alphabets, h.AbbreviationTableBase)
		report.Words = d.Entries()
	}

	return report, nil
}

func walkObjects(data []byte, h zheader.Header, alphabets *zstring.Alphabets) []ObjectSummary {
	var out []ObjectSummary

	maxID := 255
	if h.Version >= 4 {
		maxID = 65535
	}

	defer func() { recover() }() // a malformed object table stops the walk, not the report

	for id := 1; id <= maxID; id++ {
		func() {
			defer func() {
				if recover() != nil {
					maxID = 0 // stop scanning past a decode failure
				}
			}()
			obj := zobject.GetObject(uint16(id), h.ObjectTableAddress, data, h.Version, alphabets, h.AbbreviationTableBase)
			if obj.Name == "" && obj.Parent == 0 && obj.Sibling == 0 && obj.Child == 0 {
				maxID = 0
				return
			}
			out = append(out, ObjectSummary{
				ID: obj.Id, Name: obj.Name,
				Parent: obj.Parent, Sibling: obj.Sibling, Child: obj.Child,
				Properties: obj.AllProperties(data, h.Version, h.ObjectTableAddress),
			})
		}()
		if maxID == 0 {
			break
		}
	}

	return out
}

// Summary renders the report as plain text, for `analyze` without
// --interactive.
func (r Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "version %d, release %d, serial %s\n", r.Header.Version, r.Header.ReleaseNumber, string(r.Header.Serial[:]))
	fmt.Fprintf(&b, "static base 0x%04x, high base 0x%04x, dictionary 0x%04x, objects 0x%04x, globals 0x%04x\n",
		r.Header.StaticMemoryBase, r.Header.HighMemoryBase, r.Header.DictionaryAddress, r.Header.ObjectTableAddress, r.Header.GlobalVariableAddress)
	fmt.Fprintf(&b, "%d objects, %d dictionary entries\n", len(r.Objects), len(r.Words))

	if len(r.Warnings) == 0 {
		b.WriteString("validator: no findings\n")
	} else {
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "validator: %s\n", w.String())
		}
	}

	return b.String()
}
