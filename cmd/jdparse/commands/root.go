// Package commands implements the CLI commands for jdparse.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdparse/jdparse/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "jdparse",
	Short:   "Extract structured fields from job descriptions",
	Version: version.String(),
	Long: `jdparse extracts structured fields (bill rate, duration, location,
skills, ...) from messy job-description text. Extraction is delegated to a
chain of text-generation backends tried in priority order - a local model
first, then cloud backends - with deterministic pattern recovery for
critical fields the models miss.

Examples:
  # Extract from a single job description
  jdparse extract --file jd.txt

  # Process a spreadsheet column as a batch job
  jdparse batch --input jds.xlsx --column 2 --output results.xlsx

  # Check which backends are reachable
  jdparse health`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.jdparse.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".jdparse")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("JDPARSE")
	viper.AutomaticEnv()

	// Common API key env vars work without the prefix.
	_ = viper.BindEnv("providers.gemini.api_key", "GEMINI_API_KEY")
	_ = viper.BindEnv("providers.openai.api_key", "OPENAI_API_KEY")
	_ = viper.BindEnv("providers.anthropic.api_key", "ANTHROPIC_API_KEY")
	_ = viper.BindEnv("providers.ollama.base_url", "OLLAMA_BASE_URL")

	// Missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
