package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/pipeline"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store/sqlite"
)

var historyFlags struct {
	pipeline string
	show     string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or show recorded runs",
	Long: `History reads the run records written when --history is passed to
analyze or draft:

  legalassist --history=runs.db history
  legalassist --history=runs.db history --pipeline=document_drafting
  legalassist --history=runs.db history --show=<run-id>`,
	RunE: runHistoryCmd,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.pipeline, "pipeline", pipeline.PipelineCaseAnalysis, "Pipeline to list runs for")
	f.StringVar(&historyFlags.show, "show", "", "Show the full outputs of one run by ID")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	if rootFlags.history == "" {
		return fmt.Errorf("no run history configured: pass --history=<path>")
	}
	rs, err := sqlite.NewSqliteRunStore(sqlite.SqliteOptions{Path: rootFlags.history})
	if err != nil {
		return fmt.Errorf("opening run history %s: %w", rootFlags.history, err)
	}
	defer rs.Close()

	if historyFlags.show != "" {
		rec, err := rs.Load(cmd.Context(), historyFlags.show)
		if err != nil {
			return err
		}
		fmt.Println(headerStyle.Render(fmt.Sprintf("Run %s (%s, %s)", rec.RunID, rec.Pipeline, rec.Status)))
		for stage, payload := range rec.Outputs {
			printSection(stage, payload)
		}
		return nil
	}

	records, err := rs.List(cmd.Context(), historyFlags.pipeline)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println(dimStyle.Render("no recorded runs for " + historyFlags.pipeline))
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s  %s  %s  %s\n",
			rec.FinishedAt.Format("2006-01-02 15:04:05"),
			labelStyle.Render(rec.Pipeline),
			rec.RunID,
			rec.Status)
	}
	return nil
}
