package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/meysamhadeli/repoctx/constants/lipgloss"
	"github.com/meysamhadeli/repoctx/context_store"
	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
	"github.com/meysamhadeli/repoctx/utils"
	"github.com/spf13/cobra"
)

const topImportsShown = 10

// showCmd: repoctx show
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of a saved context snapshot.",
	Long: `The 'show' subcommand loads the binary snapshot written by 'analyze' and prints a short
summary of it. With --json the JSON context document is rebuilt from the snapshot and printed
with syntax highlighting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return handleShowCommand(rootDependencies, asJSON)
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "Print the JSON context document instead of a summary.")
	rootCmd.AddCommand(showCmd)
}

func handleShowCommand(rootDependencies *RootDependencies, asJSON bool) error {
	cfg := rootDependencies.Config
	store := context_store.NewContextStore(cfg.Snapshot, cfg.Output)

	repoContext, err := store.Load(cfg.Snapshot)
	if err != nil {
		return err
	}

	if asJSON {
		document, err := context_store.MarshalDocument(repoContext)
		if err != nil {
			return err
		}
		if err := utils.HighlightJSON(os.Stdout, document, cfg.Theme); err != nil {
			return err
		}
		fmt.Println()
		return nil
	}

	fmt.Println(lipgloss.BoxStyle.Render(summarize(repoContext)))
	return nil
}

// summarize renders the lines shown inside the summary box.
func summarize(repoContext *models.RepoContext) string {
	var builder strings.Builder

	builder.WriteString(lipgloss.Info.Render(fmt.Sprintf("%s @ %s", repoContext.RepoName, repoContext.Branch)))
	builder.WriteString("\n")
	if repoContext.Commit != "" {
		builder.WriteString(fmt.Sprintf("Commit:    %s\n", repoContext.Commit))
	}
	if !repoContext.GeneratedAt.IsZero() {
		builder.WriteString(fmt.Sprintf("Generated: %s\n", repoContext.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	}
	if metadata := repoContext.Metadata; metadata != nil {
		builder.WriteString(fmt.Sprintf("GitHub:    %s (★ %d)\n", metadata.FullName, metadata.Stars))
		if metadata.Description != "" {
			builder.WriteString(fmt.Sprintf("           %s\n", metadata.Description))
		}
	}
	builder.WriteString(fmt.Sprintf("Files:     %d analyzed, %d in tree\n", len(repoContext.Files), repoContext.Structure.CountFiles()))

	languages := "none"
	if len(repoContext.MainLanguages) > 0 {
		languages = strings.Join(repoContext.MainLanguages, ", ")
	}
	builder.WriteString(fmt.Sprintf("Languages: %s", languages))

	if imports := topImports(repoContext.Files, topImportsShown); len(imports) > 0 {
		builder.WriteString("\n")
		builder.WriteString(lipgloss.BlueSky.Render("Top imports:"))
		for _, imp := range imports {
			builder.WriteString(fmt.Sprintf("\n  %-40s %d", imp.name, imp.count))
		}
	}

	return builder.String()
}

type importCount struct {
	name  string
	count int
}

// topImports counts import names across files and returns the n most frequent, ties by name.
func topImports(files []models.FileContext, n int) []importCount {
	counts := make(map[string]int)
	for _, file := range files {
		for _, imp := range file.Imports {
			counts[imp]++
		}
	}

	result := make([]importCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, importCount{name: name, count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].count != result[j].count {
			return result[i].count > result[j].count
		}
		return result[i].name < result[j].name
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}
