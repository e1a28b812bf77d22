package report

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// AssembleMarkdown renders the steps as Markdown by converting the
// assembled HTML document.
func AssembleMarkdown(meta Meta, steps []types.Step) (string, error) {
	doc, err := AssembleHTML(meta, steps)
	if err != nil {
		return "", err
	}
	return ToMarkdown(doc)
}

// ToMarkdown converts an HTML report into Markdown.
func ToMarkdown(doc string) (string, error) {
	md, err := htmltomarkdown.ConvertString(doc)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return md, nil
}
