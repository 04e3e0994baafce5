// Multi-Agent Legal Assistance System
//
// This module runs legal workflows as graphs of role-specialized agents:
// plain-English input flows through intake, research, validation, and
// drafting stages executed concurrently where their dependencies allow.
//
// # Quick Start
//
// Case analysis over a statute corpus:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"os"
//
//		lcopenai "github.com/tmc/langchaingo/llms/openai"
//
//		"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/llm"
//		"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/pipeline"
//		"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/retrieval"
//		"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/tool"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		chat, _ := lcopenai.New(lcopenai.WithModel("gpt-4o-mini"))
//		completer := llm.NewLangChainCompleter(chat)
//
//		corpus, _ := retrieval.LoadCorpus("ipc.json")
//		index := retrieval.NewIndex(llm.NewOpenAIEmbedder(os.Getenv("OPENAI_API_KEY"), ""))
//		_ = index.Build(ctx, corpus)
//
//		caselaw, _ := tool.NewCaseLawSearch("")
//		tools := tool.NewRegistry()
//		_ = tools.Register(tool.NewStatuteRetrieval(index, retrieval.DefaultK))
//		_ = tools.Register(caselaw)
//
//		assistant, _ := pipeline.New(completer, tools)
//		res, _ := assistant.RunCaseAnalysis(ctx, "my landlord refuses to return my security deposit")
//		fmt.Println(res.Analysis)
//	}
//
// Document drafting needs no tools:
//
//	assistant, _ := pipeline.NewDrafting(completer)
//	res, _ := assistant.RunDocumentDrafting(ctx, "draft a rental agreement between ...")
//	if res.Clarification != nil {
//		fmt.Println(res.Clarification.Question)
//	} else {
//		fmt.Println(res.Document)
//	}
//
// # Packages
//
//   - graph: dependency-resolved concurrent task graph execution
//   - agent: role-specialized stages and validation verdict parsing
//   - retrieval: embedding nearest-neighbor statute search
//   - tool: capability-tagged tool registry, statute and case law tools
//   - llm: completion and embedding adapters with failure classification
//   - pipeline: the case analysis and document drafting workflows
//   - store: run history persistence (memory, redis, postgres, sqlite)
//   - export: text and sanitized HTML document export
//
// # Environment Variables
//
//   - OPENAI_API_KEY: chat completion and embedding credentials
//   - SERPER_API_KEY: precedent case search credentials
//
// The analyses and documents this system produces are informational and
// are not a substitute for professional legal advice.
package legalassist // import "github.com/abhimh33/Multi-Agent-Legal-Assistance-System"
