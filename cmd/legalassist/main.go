// legalassist is the CLI for the multi-agent legal assistance system.
//
// Usage:
//
//	legalassist analyze --corpus=ipc.json "my landlord refuses to return my deposit"
//	legalassist draft "draft a rental agreement between ..."
//	legalassist history --pipeline=case_analysis
//
// The OpenAI API key is read from the OPENAI_API_KEY environment variable.
// The precedent search key is read from SERPER_API_KEY.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/log"
)

var rootFlags struct {
	verbose bool
	history string
}

var rootCmd = &cobra.Command{
	Use:   "legalassist",
	Short: "AI-assisted legal case analysis and document drafting",
	Long: `legalassist runs multi-agent legal workflows over plain-English input:

  analyze  classify a legal issue, find applicable IPC sections and
           precedent cases, and produce a structured case analysis
  draft    validate a document request and draft the legal document,
           asking for clarification when details are missing
  history  list previously recorded runs`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootFlags.verbose {
			log.SetLogLevel(log.LogLevelDebug)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&rootFlags.history, "history", "", "SQLite database path for run history (optional)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
