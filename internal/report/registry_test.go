package report

import (
	"strings"
	"testing"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

func TestRegistry_RenderRoutes(t *testing.T) {
	r := NewRegistry()
	r.Register("plain", func(meta Meta, steps []types.Step) (string, error) {
		return meta.Title, nil
	})

	out, err := r.Render("plain", Meta{Title: "hello"}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "hello" {
		t.Errorf("out = %q, want %q", out, "hello")
	}
}

func TestRegistry_UnknownFormat(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Render("pdf", Meta{}, nil); err == nil {
		t.Fatal("expected error for unregistered format")
	} else if !strings.Contains(err.Error(), "no renderer for format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultRegistry_Formats(t *testing.T) {
	got := DefaultRegistry().Formats()
	want := []string{"html", "markdown"}
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Formats() = %v, want %v", got, want)
		}
	}
}

func TestDefaultRegistry_RendersHTML(t *testing.T) {
	steps := []types.Step{
		{Index: 0, Description: "Left-click", MimeType: "image/png", Image: []byte{1}},
	}
	doc, err := DefaultRegistry().Render("html", Meta{Title: "Steps"}, steps)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
		t.Error("html renderer should emit a full document")
	}
}
