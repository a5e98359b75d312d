package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/meysamhadeli/repoctx/config"
	"github.com/meysamhadeli/repoctx/constants/lipgloss"
	"github.com/meysamhadeli/repoctx/logger"
	"github.com/spf13/cobra"
)

// RootDependencies holds what every subcommand needs once flags are parsed.
type RootDependencies struct {
	Config *config.Config
	Logger *slog.Logger
	Cwd    string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repoctx",
	Short: "Build a structured context snapshot of a git repository.",
	Long: `repoctx clones one branch of a repository into a scratch directory, walks its tree,
classifies source files by language, extracts python imports and writes the aggregated
result as a binary snapshot and a JSON context document. The scratch clone is removed afterwards.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(lipgloss.BlueSky.Render(fmt.Sprintf("repoctx version %s", config.DefaultConfig.Version)))
			return
		}
		_ = cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute adds all child commands to the root command and runs it.
// Any failure ends the process with exit status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(describeError(err)))
		os.Exit(1)
	}
}

// handleRootCommand loads the configuration for cmd and builds the shared dependencies.
func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error getting current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd, cwd)
	if err != nil {
		return nil, err
	}

	return &RootDependencies{
		Config: cfg,
		Logger: logger.New(cfg.Logging),
		Cwd:    cwd,
	}, nil
}
