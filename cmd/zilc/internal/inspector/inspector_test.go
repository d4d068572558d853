package inspector_test

import (
	"strings"
	"testing"

	"github.com/alanquatermain/zilc/cmd/zilc/internal/inspector"
	"github.com/alanquatermain/zilc/emitter"
	"github.com/alanquatermain/zilc/model"
)

func program() *model.Program {
	return &model.Program{
		Version:       3,
		ReleaseNumber: 1,
		Serial:        [6]byte{'2', '6', '0', '7', '3', '1'},
		Objects: []model.ObjectModel{
			{Id: 1, ShortName: "lantern", Properties: []model.PropertyModel{
				{Number: 1, Data: []byte{0x2a}},
			}},
		},
		DictionaryWords: []model.DictionaryWord{
			{Word: "lantern"},
		},
		PropertyDefaults: map[uint8]uint16{},
		Code: model.CodeImage{
			Bytes: []byte{0x00, 0xb0},
		},
	}
}

func TestAnalyzeReportsHeaderAndObjects(t *testing.T) {
	image, _, err := emitter.Emit(program(), emitter.Options{Validate: true})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	report, err := inspector.Analyze(image)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.Header.Version != 3 {
		t.Errorf("Version = %d, want 3", report.Header.Version)
	}
	if len(report.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(report.Objects))
	}
	if report.Objects[0].Name != "lantern" {
		t.Errorf("object name = %q, want lantern", report.Objects[0].Name)
	}
	if len(report.Objects[0].Properties) != 1 || report.Objects[0].Properties[0].Id != 1 {
		t.Errorf("unexpected properties: %+v", report.Objects[0].Properties)
	}
	if len(report.Words) != 1 || report.Words[0] != "lanter" { // v3 dictionary words keep 6 characters
		t.Errorf("unexpected dictionary words: %v", report.Words)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("unexpected validator warnings: %v", report.Warnings)
	}
}

func TestSummaryMentionsNoFindingsWhenClean(t *testing.T) {
	image, _, err := emitter.Emit(program(), emitter.Options{Validate: true})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	report, err := inspector.Analyze(image)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !strings.Contains(report.Summary(), "no findings") {
		t.Errorf("expected summary to report no findings, got:\n%s", report.Summary())
	}
}
