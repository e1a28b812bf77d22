package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/SeqLaz/PyXStepRecorder/internal/report"
)

var exportOut string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: input with .md extension)")
}

var exportCmd = &cobra.Command{
	Use:   "export <report.html>",
	Short: "Convert a recorded HTML report to Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(loadConfig())

		in := args[0]
		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("read report: %w", err)
		}

		steps, err := countStepCards(string(data))
		if err != nil {
			return fmt.Errorf("parse report: %w", err)
		}
		if steps == 0 {
			slog.Warn("report contains no step cards", "path", in)
		}

		md, err := report.ToMarkdown(string(data))
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = strings.TrimSuffix(in, filepath.Ext(in)) + ".md"
		}
		if err := report.WriteFile(out, []byte(md)); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Exported %d steps to %s\n", steps, out)
		return nil
	},
}

// countStepCards parses the report and counts its step cards, catching
// inputs that are not xsr reports before conversion.
func countStepCards(doc string) (int, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return 0, err
	}

	var count int
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "class" && strings.Contains(a.Val, "step-card") {
					count++
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return count, nil
}
