package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version            string   `mapstructure:"version"`
	RepoURL            string   `mapstructure:"repo_url"`
	Branch             string   `mapstructure:"branch"`
	Output             string   `mapstructure:"output"`
	Snapshot           string   `mapstructure:"snapshot"`
	WorkDir            string   `mapstructure:"workdir"`
	Theme              string   `mapstructure:"theme"`
	RespectGitignore   bool     `mapstructure:"respect_gitignore"`
	FetchMetadata      bool     `mapstructure:"fetch_metadata"`
	AnalyzedExtensions []string `mapstructure:"analyzed_extensions"`
	GithubToken        string   `mapstructure:"github_token"`
	Logging            Logging  `mapstructure:"logging"`

	// ConfigFile is the file the values were read from, empty when only defaults, env and flags apply.
	ConfigFile string `mapstructure:"-"`
}

// Logging configures the structured logger.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:            "1.0.0",
	Branch:             "main",
	Output:             "repo_context.json",
	Snapshot:           "repo_context.gob",
	WorkDir:            ".",
	Theme:              "dracula",
	RespectGitignore:   false,
	FetchMetadata:      false,
	AnalyzedExtensions: []string{".py", ".js", ".java", ".ts", ".go"},
	Logging: Logging{
		Level:  "info",
		Format: "text",
	},
}

const configName = "repoctx-config"

// flagKeys maps configuration keys to the cobra flag that overrides them.
var flagKeys = map[string]string{
	"repo_url":          "repo-url",
	"branch":            "branch",
	"output":            "output",
	"snapshot":          "snapshot",
	"workdir":           "workdir",
	"theme":             "theme",
	"respect_gitignore": "respect-gitignore",
	"fetch_metadata":    "fetch-metadata",
	"logging.level":     "log-level",
	"logging.format":    "log-format",
}

// envKeys maps configuration keys to environment variables.
var envKeys = map[string]string{
	"github_token":      "GITHUB_TOKEN",
	"branch":            "REPOCTX_BRANCH",
	"output":            "REPOCTX_OUTPUT",
	"snapshot":          "REPOCTX_SNAPSHOT",
	"workdir":           "REPOCTX_WORKDIR",
	"theme":             "REPOCTX_THEME",
	"respect_gitignore": "REPOCTX_RESPECT_GITIGNORE",
	"fetch_metadata":    "REPOCTX_FETCH_METADATA",
	"logging.level":     "REPOCTX_LOG_LEVEL",
	"logging.format":    "REPOCTX_LOG_FORMAT",
}

// LoadConfigs builds the configuration from defaults, an optional config file, a .env file,
// environment variables and the flags of cmd, in increasing order of precedence.
func LoadConfigs(cmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Values already present in the environment win over .env
	_ = godotenv.Load(filepath.Join(cwd, ".env"))

	if err := bindEnv(v); err != nil {
		return nil, models.NewError(models.KindConfig, "bind env", err)
	}

	cfgFile := lookupString(cmd, "config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, models.NewError(models.KindConfig, "read config file", err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, models.NewError(models.KindConfig, "read config file", err)
			}
		}
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, models.NewError(models.KindConfig, "bind flags", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, models.NewError(models.KindConfig, "decode config", fmt.Errorf("unable to decode into struct: %w", err))
	}
	config.ConfigFile = v.ConfigFileUsed()

	return &config, nil
}

// RequireToken fails with a credential error when no access token is configured.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.GithubToken) == "" {
		return models.NewError(models.KindCredential, "load token", models.ErrMissingToken)
	}
	return nil
}

// RequireRepoURL fails when no repository URL was given.
func (c *Config) RequireRepoURL() error {
	if strings.TrimSpace(c.RepoURL) == "" {
		return models.NewError(models.KindConfig, "load repo url", errors.New("a repository URL is required (--repo-url)"))
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("branch", DefaultConfig.Branch)
	v.SetDefault("output", DefaultConfig.Output)
	v.SetDefault("snapshot", DefaultConfig.Snapshot)
	v.SetDefault("workdir", DefaultConfig.WorkDir)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("respect_gitignore", DefaultConfig.RespectGitignore)
	v.SetDefault("fetch_metadata", DefaultConfig.FetchMetadata)
	v.SetDefault("analyzed_extensions", DefaultConfig.AnalyzedExtensions)
	v.SetDefault("logging.level", DefaultConfig.Logging.Level)
	v.SetDefault("logging.format", DefaultConfig.Logging.Format)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) error {
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

// bindFlags binds the CLI flags to configuration values. Keys whose flag is not
// registered on cmd are left alone.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	for key, name := range flagKeys {
		flag := lookupFlag(cmd, name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

// InitFlags initializes the persistent flags shared by every subcommand.
func InitFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")
	rootCmd.PersistentFlags().String("workdir", DefaultConfig.WorkDir, "Directory that holds the temporary clone.")
	rootCmd.PersistentFlags().String("snapshot", DefaultConfig.Snapshot, "Path of the binary snapshot file.")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Chroma theme used when printing JSON (e.g., 'dracula', 'monokai').")
	rootCmd.PersistentFlags().String("log-level", DefaultConfig.Logging.Level, "Log level: 'debug', 'info', 'warn' or 'error'.")
	rootCmd.PersistentFlags().String("log-format", DefaultConfig.Logging.Format, "Log format: 'text' or 'json'.")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// InitAnalyzeFlags initializes the flags of the analyze subcommand.
func InitAnalyzeFlags(analyzeCmd *cobra.Command) {
	analyzeCmd.Flags().String("repo-url", "", "Repository URL to analyze.")
	analyzeCmd.Flags().String("branch", DefaultConfig.Branch, "Branch to analyze.")
	analyzeCmd.Flags().StringP("output", "o", DefaultConfig.Output, "Output file for the JSON context document.")
	analyzeCmd.Flags().Bool("respect-gitignore", DefaultConfig.RespectGitignore, "Leave files matched by the repository .gitignore out of the per-file analysis.")
	analyzeCmd.Flags().Bool("fetch-metadata", DefaultConfig.FetchMetadata, "Look up repository metadata through the GitHub API.")
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag
	}
	return cmd.InheritedFlags().Lookup(name)
}

func lookupString(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	flag := lookupFlag(cmd, name)
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}
