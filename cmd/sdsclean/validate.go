package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdstools/sdsclean/internal/config"
	"github.com/sdstools/sdsclean/internal/core"
	"github.com/sdstools/sdsclean/internal/history"
	"github.com/sdstools/sdsclean/internal/schema"
)

func newValidateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <directory>",
		Short: "Validate a roster directory and write cleaned files",
		Long: `Validate runs every check over the CSV files in the given directory,
writes cleaned copies (violating rows removed) to a subdirectory, and
writes a JSON report next to the input files.

The command exits 1 when any violation was found. The run itself still
completes: cleaned files and the report are always written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			pipeline := core.NewPipeline(core.PipelineConfig{
				Dir:            dir,
				OutputDirName:  cfg.Validator.OutputDirName,
				ReportFileName: cfg.Validator.ReportFileName,
			})
			result, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			recordRun(cmd.Context(), cfg, result)

			summary := []any{
				"run_id", result.RunID,
				"errors", len(result.Errors),
				"removed", result.RemovedCount(),
			}
			for _, sch := range schema.Files() {
				if stats, ok := result.Files[sch.Name]; ok && stats.Removed > 0 {
					summary = append(summary, sch.Name, stats.Removed)
				}
			}
			slog.Info("run summary", summary...)

			if result.HasErrors() {
				fmt.Println("Errors detected. See report at:", result.ReportPath)
				printFindingCodes(result.Errors)
			} else {
				fmt.Println("No errors. Report at:", result.ReportPath)
			}
			fmt.Println("Cleaned files in:", result.OutputDir)

			if result.HasErrors() {
				os.Exit(1)
			}
			return nil
		},
	}
	return cmd
}

// printFindingCodes summarizes findings by support code so users can
// quote a code when asking for help.
func printFindingCodes(errs []core.ValidationError) {
	counts := make(map[string]int)
	actions := make(map[string]string)
	var order []string
	for _, e := range errs {
		msg := core.ClassifyFinding(e.Message)
		if counts[msg.Code] == 0 {
			order = append(order, msg.Code)
			actions[msg.Code] = msg.Action
		}
		counts[msg.Code]++
	}
	for _, code := range order {
		fmt.Printf("  %s x%d: %s\n", code, counts[code], actions[code])
	}
}

// recordRun persists the result when history is configured. Persistence
// is best effort: a history failure is logged and never changes the
// command's outcome, which only hasErrors decides.
func recordRun(ctx context.Context, cfg *config.Config, result core.Result) {
	if cfg.History.DatabaseURL == "" {
		return
	}
	store, err := history.Open(ctx, cfg.History.DatabaseURL, cfg.History.MaxConns)
	if err != nil {
		slog.Warn("opening run history failed", "error", err)
		return
	}
	defer store.Close()
	if err := store.Record(ctx, result); err != nil {
		slog.Warn("recording run history failed", "error", err)
	}
}
