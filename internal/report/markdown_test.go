package report

import (
	"strings"
	"testing"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

func TestToMarkdown(t *testing.T) {
	md, err := ToMarkdown(`<html><body><h1>Hello</h1><p>World</p></body></html>`)
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	if !strings.Contains(md, "Hello") || !strings.Contains(md, "World") {
		t.Errorf("markdown missing content: %q", md)
	}
}

func TestAssembleMarkdown(t *testing.T) {
	steps := []types.Step{
		{Index: 0, Description: "Left-click", MimeType: "image/png", Image: []byte{0xAA, 0xBB}},
	}

	md, err := AssembleMarkdown(Meta{Title: "Install Guide"}, steps)
	if err != nil {
		t.Fatalf("AssembleMarkdown: %v", err)
	}
	if !strings.Contains(md, "Install Guide") {
		t.Error("markdown should carry the document title")
	}
	if !strings.Contains(md, "Left-click") {
		t.Error("markdown should carry the step description")
	}
	if !strings.Contains(md, "data:image/png") {
		t.Error("markdown should keep the embedded image data")
	}
}
