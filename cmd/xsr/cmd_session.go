package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SeqLaz/PyXStepRecorder/internal/state"
	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd, sessionClearCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the recording history",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		runs := state.NewRunStore(cfg.DataDir)

		list, err := runs.List(context.Background())
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTEPS\tRECORDED")
		for _, run := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				run.SessionID,
				run.Title,
				run.Steps,
				run.FinishedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear <id|all>",
	Short: "Clear a session or the whole history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		runs := state.NewRunStore(cfg.DataDir)
		ctx := context.Background()

		if args[0] == "all" {
			if err := runs.Clear(ctx); err != nil {
				return err
			}
			fmt.Println("All sessions cleared.")
			return nil
		}

		if err := runs.Remove(ctx, types.SessionID(args[0])); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Session %s cleared.\n", args[0])
		return nil
	},
}
