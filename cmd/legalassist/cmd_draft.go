package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/pipeline"
)

var draftFlags struct {
	model       string
	temperature float64
	exportFmt   string
	exportDir   string
}

var draftCmd = &cobra.Command{
	Use:   "draft [document request]",
	Short: "Draft a legal document from a plain-English request",
	Long: `Draft validates a document request and, when all required details are
present, produces a formatted legal document. When details are missing the
command prints the clarifying questions instead; rerun with an expanded
request that answers them:

  legalassist draft "draft a rental agreement between Asha Rao (landlord)
    and Vikram Mehta (tenant) for a flat in Pune, rent 25000 INR/month,
    11 month term starting 1 October 2026"

Requires OPENAI_API_KEY.`,
	RunE: runDraftCmd,
}

func init() {
	f := draftCmd.Flags()
	f.StringVar(&draftFlags.model, "model", "gpt-4o-mini", "Chat model name")
	f.Float64Var(&draftFlags.temperature, "temperature", 0.3, "Sampling temperature")
	f.StringVar(&draftFlags.exportFmt, "export", "", "Export the document (text or html)")
	f.StringVar(&draftFlags.exportDir, "export-dir", ".", "Directory for exported files")
}

func runDraftCmd(cmd *cobra.Command, args []string) error {
	request, err := readInput(args)
	if err != nil {
		return err
	}

	completer, err := newCompleter(draftFlags.model, draftFlags.temperature)
	if err != nil {
		return err
	}

	opts, rs, err := storeOptions()
	if err != nil {
		return err
	}
	if rs != nil {
		defer func() {
			if c, ok := rs.(interface{ Close() error }); ok {
				_ = c.Close()
			}
		}()
	}

	assistant, err := pipeline.NewDrafting(completer, opts...)
	if err != nil {
		return err
	}

	fmt.Println(dimStyle.Render("running document drafting..."))
	res, err := assistant.RunDocumentDrafting(cmd.Context(), request)
	if err != nil {
		return err
	}

	if c := res.Clarification; c != nil {
		fmt.Println(warnStyle.Render("More information is needed before drafting."))
		if len(c.Missing) > 0 {
			fmt.Println(labelStyle.Render("Missing:"))
			for _, m := range c.Missing {
				fmt.Println("  - " + m)
			}
		}
		if c.Question != "" {
			fmt.Println(labelStyle.Render("Questions:"))
			fmt.Println("  " + c.Question)
		}
		fmt.Println(dimStyle.Render("run " + res.RunID))
		return nil
	}

	printSection("Drafted Document", res.Document)
	fmt.Println(dimStyle.Render("run " + res.RunID))

	if draftFlags.exportFmt != "" {
		path, err := exportDocument(draftFlags.exportFmt, draftFlags.exportDir, "legal_document", res.Document)
		if err != nil {
			return err
		}
		fmt.Println(labelStyle.Render("exported: ") + path)
	}
	return nil
}
