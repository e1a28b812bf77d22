package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeqLaz/PyXStepRecorder/internal/config"
	"github.com/SeqLaz/PyXStepRecorder/internal/hook"
	"github.com/SeqLaz/PyXStepRecorder/internal/imaging"
	"github.com/SeqLaz/PyXStepRecorder/internal/recorder"
	"github.com/SeqLaz/PyXStepRecorder/internal/report"
	"github.com/SeqLaz/PyXStepRecorder/internal/scheduler"
	"github.com/SeqLaz/PyXStepRecorder/internal/screen"
	"github.com/SeqLaz/PyXStepRecorder/internal/state"
	"github.com/SeqLaz/PyXStepRecorder/internal/store"
	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

func init() {
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Start recording clicks into a stepped guide",
	Args:  cobra.NoArgs,
	RunE:  runRecord,
}

func writePIDFile(dataDir string) (string, error) {
	pidPath := filepath.Join(dataDir, "xsr.pid")
	pid := os.Getpid()
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(pid)+"\n"), 0644); err != nil {
		return "", fmt.Errorf("write PID file: %w", err)
	}
	return pidPath, nil
}

// outputPath maps a format name to its file path. The primary outfile
// keeps its configured name; other formats swap the extension.
func outputPath(outFile, format string) string {
	if format == "html" {
		return outFile
	}
	base := strings.TrimSuffix(outFile, filepath.Ext(outFile))
	switch format {
	case "markdown":
		return base + ".md"
	default:
		return base + "." + format
	}
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.OutFile), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Write PID file
	pidPath, err := writePIDFile(cfg.DataDir)
	if err != nil {
		return err
	}
	defer os.Remove(pidPath)

	marker, err := imaging.LoadMarker(cfg.Marker.Path, cfg.Marker.Scale, cfg.Marker.AnchorX, cfg.Marker.AnchorY)
	if err != nil {
		return fmt.Errorf("load marker: %w", err)
	}

	grabber, err := screen.NewGrabber(cfg.Capture.Grabber, cfg.Capture.GrabCommand,
		time.Duration(cfg.Capture.GrabTimeoutSeconds)*time.Second)
	if err != nil {
		return err
	}

	source, err := hook.NewSource(cfg.Capture.Source, cfg.Capture.SourceCommand)
	if err != nil {
		return err
	}

	session := types.NewSessionID()
	steps := store.New()

	rec, err := recorder.New(recorder.Options{
		Grabber: grabber,
		Source:  source,
		Marker:  marker,
		Encoding: imaging.Options{
			Format:  config.NormalizeFormat(cfg.Image.Format),
			Quality: cfg.Image.Quality,
		},
		Buttons: cfg.Buttons(),
		Store:   steps,
	})
	if err != nil {
		return err
	}

	meta := report.Meta{Title: cfg.Title(), SessionID: session}
	registry := report.DefaultRegistry()
	primary := cfg.Output.Formats[0]

	// Autosave starts before the recorder so a bad schedule aborts the run
	// before anything is captured.
	var saver *scheduler.Autosave
	if cfg.Autosave.Enabled {
		saver = scheduler.New(cfg.Autosave.Schedule, steps.Snapshot, func(snap []types.Step) error {
			doc, err := registry.Render(primary, meta, snap)
			if err != nil {
				return err
			}
			return report.WriteFile(outputPath(cfg.OutFile, primary), []byte(doc))
		})
		if err := saver.Start(); err != nil {
			return fmt.Errorf("start autosave: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startedAt := time.Now().UTC()
	rec.Start(ctx)

	slog.Info("recording started",
		"session", session,
		"out_file", cfg.OutFile,
		"image_format", cfg.Image.Format,
		"grabber", cfg.Capture.Grabber,
		"source", cfg.Capture.Source,
		"buttons", strings.Join(cfg.Capture.Buttons, ","),
		"pid_file", pidPath,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("shutting down", "signal", sig)
	case <-rec.SourceDone():
		slog.Info("event source finished")
	}

	if !rec.WaitIdle(5 * time.Second) {
		slog.Warn("captures still in flight at shutdown")
	}
	if saver != nil {
		saver.Stop()
	}
	final := rec.Stop()
	cancel()
	finishedAt := time.Now().UTC()

	outputs := make(map[string]string, len(cfg.Output.Formats))
	for _, format := range cfg.Output.Formats {
		doc, err := registry.Render(format, meta, final)
		if err != nil {
			return fmt.Errorf("render %s report: %w", format, err)
		}
		path := outputPath(cfg.OutFile, format)
		if err := report.WriteFile(path, []byte(doc)); err != nil {
			return err
		}
		outputs[format] = path
		slog.Info("wrote report", "format", format, "path", path)
	}

	run := &state.Run{
		SessionID:   session,
		Title:       meta.Title,
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
		Steps:       len(final),
		Dropped:     rec.Dropped(),
		Failed:      rec.Failed(),
		ImageFormat: config.NormalizeFormat(cfg.Image.Format),
		Outputs:     outputs,
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := cfg.OutFile + ".manifest.json"
	if err := report.WriteFile(manifestPath, data); err != nil {
		return err
	}
	if err := state.NewRunStore(cfg.DataDir).Append(context.Background(), run); err != nil {
		slog.Warn("failed to record session history", "error", err)
	}

	fmt.Fprintf(os.Stdout, "Recorded %d steps to %s\n", len(final), outputPath(cfg.OutFile, primary))
	return nil
}
