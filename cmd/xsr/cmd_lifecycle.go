package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stopCmd)
}

// readPID reads a PID file and probes the process with signal 0.
func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("no running recorder (PID file not found)")
		}
		return 0, fmt.Errorf("read PID file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file content: %w", err)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("find process %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		return 0, fmt.Errorf("no running recorder (process %d not found)", pid)
	}
	return pid, nil
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running recorder and finalize its report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		pidPath := filepath.Join(cfg.DataDir, "xsr.pid")

		pid, err := readPID(pidPath)
		if err != nil {
			return err
		}
		proc, err := os.FindProcess(pid)
		if err != nil {
			return fmt.Errorf("find process: %w", err)
		}
		if err := proc.Signal(syscall.SIGTERM); err != nil {
			return fmt.Errorf("send SIGTERM: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Stopping recorder (PID %d)...\n", pid)

		// The record process removes its PID file once the report is
		// written, so its disappearance confirms the finalize completed.
		deadline := time.After(30 * time.Second)
		for {
			if _, err := os.Stat(pidPath); os.IsNotExist(err) {
				fmt.Fprintln(os.Stdout, "Recorder stopped; report finalized.")
				return nil
			}
			select {
			case <-deadline:
				fmt.Fprintln(os.Stdout, "Recorder is still finalizing; check its log output.")
				return nil
			case <-time.After(200 * time.Millisecond):
			}
		}
	},
}
