package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdparse/jdparse/internal/config"
	"github.com/jdparse/jdparse/internal/jd"
	"github.com/jdparse/jdparse/internal/logger"
	"github.com/jdparse/jdparse/internal/output"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured fields from a single job description",
	Long: `Extract structured fields from one job description.

The text is read from --file, or from stdin when no file is given.

Examples:
  jdparse extract --file jd.txt
  cat jd.txt | jdparse extract --format yaml`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()
	flags.StringP("file", "f", "", "file containing the job description (default: stdin)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	jobText, err := readInput(cmd)
	if err != nil {
		logError("failed to read input: %v", err)
		return err
	}

	orch, err := buildOrchestrator()
	if err != nil {
		logError("failed to build providers: %v", err)
		return err
	}

	jobID := uuid.NewString()
	rec, err := orch.Extract(ctx, jobText, jobID)
	if err != nil {
		logError("extraction failed: %v", err)
		return err
	}

	return writeResult(cmd, rec)
}

func readInput(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func buildOrchestrator() (*jd.Orchestrator, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	providers, err := cfg.BuildProviders()
	if err != nil {
		return nil, err
	}
	return jd.NewOrchestrator(providers, jd.NewLogSink(logger.With("component", "audit"))), nil
}

func writeResult(cmd *cobra.Command, data any) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	var dst io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		dst = f
	}

	w, err := output.NewWriter(dst, output.Format(format))
	if err != nil {
		return err
	}
	if err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}
