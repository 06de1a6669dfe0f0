package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sdstools/sdsclean/internal/config"
	"github.com/sdstools/sdsclean/internal/history"
)

func newRunsCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"runs"},
		Short:   "List persisted validation runs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.History.DatabaseURL == "" {
				return fmt.Errorf("run history requires DATABASE_URL")
			}
			store, err := history.Open(cmd.Context(), cfg.History.DatabaseURL, cfg.History.MaxConns)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tID\tDIRECTORY\tERRORS\tREMOVED\tDURATION")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%dms\n",
					r.StartedAt.Format("2006-01-02 15:04:05"),
					r.ID, r.Directory, r.ErrorCount, r.RemovedCount, r.DurationMS)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
