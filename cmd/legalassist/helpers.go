package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/export"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/llm"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/pipeline"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store/sqlite"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginTop(1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func printSection(title, body string) {
	fmt.Println(headerStyle.Render(title))
	fmt.Println(strings.TrimSpace(body))
}

// readInput joins positional args, or reads stdin when no args were given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no input: pass the request as an argument or on stdin")
	}
	return text, nil
}

// newCompleter builds the completion adapter for the configured model.
func newCompleter(model string, temperature float64) (llm.Completer, error) {
	chat, err := openai.New(openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("initializing model %s: %w", model, err)
	}
	return llm.NewLangChainCompleter(chat, llm.WithTemperature(temperature)), nil
}

// storeOptions returns the pipeline options for the configured run history
// store, if any.
func storeOptions() ([]pipeline.Option, store.RunStore, error) {
	if rootFlags.history == "" {
		return nil, nil, nil
	}
	rs, err := sqlite.NewSqliteRunStore(sqlite.SqliteOptions{Path: rootFlags.history})
	if err != nil {
		return nil, nil, fmt.Errorf("opening run history %s: %w", rootFlags.history, err)
	}
	return []pipeline.Option{pipeline.WithRunStore(rs)}, rs, nil
}

// exportDocument writes the document in the requested format.
func exportDocument(format, dir, name, content string) (string, error) {
	switch format {
	case "text":
		return export.Text(dir, name, content)
	case "html":
		return export.HTML(dir, name, content)
	default:
		return "", fmt.Errorf("unknown export format %q (want text or html)", format)
	}
}
