package hook

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// ExecSource runs a helper command and reads one click event per stdout
// line, encoded as JSON: {"button":"left","x":10,"y":20}. This keeps the
// OS-level input hook out of process; any tool that can print a line per
// click can drive the recorder.
type ExecSource struct {
	Command string
}

// Stream runs the hook command until it exits or ctx is canceled,
// emitting each parsed event. Malformed lines are logged and skipped;
// they must not end the session.
func (s *ExecSource) Stream(ctx context.Context, emit func(types.ClickEvent) error) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", s.Command)
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("open hook stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start hook command: %w", err)
	}

	var emitErr error
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		event, err := parseLine(line)
		if err != nil {
			slog.Warn("ignoring malformed hook line", "line", string(line), "error", err)
			continue
		}
		if emitErr = emit(event); emitErr != nil {
			break
		}
	}
	if emitErr != nil {
		_ = cmd.Process.Kill()
	}

	scanErr := scanner.Err()
	waitErr := cmd.Wait()
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case emitErr != nil:
		return emitErr
	case scanErr != nil:
		return fmt.Errorf("read hook output: %w", scanErr)
	case waitErr != nil:
		return fmt.Errorf("hook command: %w", waitErr)
	}
	return nil
}

func parseLine(line []byte) (types.ClickEvent, error) {
	var raw struct {
		Button string `json:"button"`
		X      int    `json:"x"`
		Y      int    `json:"y"`
	}
	if err := json.Unmarshal(line, &raw); err != nil {
		return types.ClickEvent{}, err
	}
	button, err := types.ParseButton(raw.Button)
	if err != nil {
		return types.ClickEvent{}, err
	}
	return types.ClickEvent{
		Button: button,
		X:      raw.X,
		Y:      raw.Y,
		At:     time.Now().UTC(),
	}, nil
}
