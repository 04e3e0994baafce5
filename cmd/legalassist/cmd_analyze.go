package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/llm"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/pipeline"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/retrieval"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/tool"
)

var analyzeFlags struct {
	corpus      string
	model       string
	temperature float64
	topK        int
	caseCount   int
	exportFmt   string
	exportDir   string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [legal issue]",
	Short: "Analyze a legal issue: applicable IPC sections, precedents, and next steps",
	Long: `Analyze takes a plain-English description of a legal issue and runs the
case analysis workflow: intake classification, statute research over the
IPC corpus, precedent search, and a synthesized case analysis.

The issue can be passed as arguments or piped on stdin:

  legalassist analyze --corpus=ipc.json "my tenant has not paid rent for 6 months"
  cat issue.txt | legalassist analyze --corpus=ipc.json

Requires OPENAI_API_KEY. Precedent search requires SERPER_API_KEY.`,
	RunE: runAnalyzeCmd,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.corpus, "corpus", "", "Path to the statute corpus JSON (required)")
	f.StringVar(&analyzeFlags.model, "model", "gpt-4o-mini", "Chat model name")
	f.Float64Var(&analyzeFlags.temperature, "temperature", 0.3, "Sampling temperature")
	f.IntVar(&analyzeFlags.topK, "top-k", retrieval.DefaultK, "Statute sections to retrieve per query")
	f.IntVar(&analyzeFlags.caseCount, "cases", 5, "Precedent search results to fetch (1-10)")
	f.StringVar(&analyzeFlags.exportFmt, "export", "", "Export the analysis (text or html)")
	f.StringVar(&analyzeFlags.exportDir, "export-dir", ".", "Directory for exported files")
	_ = analyzeCmd.MarkFlagRequired("corpus")
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	issue, err := readInput(args)
	if err != nil {
		return err
	}

	completer, err := newCompleter(analyzeFlags.model, analyzeFlags.temperature)
	if err != nil {
		return err
	}

	corpus, err := retrieval.LoadCorpus(analyzeFlags.corpus)
	if err != nil {
		return err
	}
	index := retrieval.NewIndex(llm.NewOpenAIEmbedder(os.Getenv("OPENAI_API_KEY"), ""))
	fmt.Println(dimStyle.Render(fmt.Sprintf("indexing %d statute sections...", len(corpus))))
	if err := index.Build(cmd.Context(), corpus); err != nil {
		return fmt.Errorf("building statute index: %w", err)
	}

	caselaw, err := tool.NewCaseLawSearch("", tool.WithCaseLawCount(analyzeFlags.caseCount))
	if err != nil {
		return err
	}
	tools := tool.NewRegistry()
	if err := tools.Register(tool.NewStatuteRetrieval(index, analyzeFlags.topK)); err != nil {
		return err
	}
	if err := tools.Register(caselaw); err != nil {
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

	assistant, err := pipeline.New(completer, tools, opts...)
	if err != nil {
		return err
	}

	fmt.Println(dimStyle.Render("running case analysis..."))
	res, err := assistant.RunCaseAnalysis(cmd.Context(), issue)
	if err != nil {
		return err
	}

	printSection("Case Summary", res.IntakeSummary)
	printSection("Applicable IPC Sections", res.StatuteSections)
	printSection("Relevant Precedents", res.PrecedentCases)
	printSection("Legal Analysis", res.Analysis)
	fmt.Println(dimStyle.Render("run " + res.RunID))

	if analyzeFlags.exportFmt != "" {
		path, err := exportDocument(analyzeFlags.exportFmt, analyzeFlags.exportDir, "case_analysis", res.Analysis)
		if err != nil {
			return err
		}
		fmt.Println(labelStyle.Render("exported: ") + path)
	}
	return nil
}
