package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdparse/jdparse/internal/batch"
	"github.com/jdparse/jdparse/internal/config"
	"github.com/jdparse/jdparse/internal/logger"
	"github.com/jdparse/jdparse/internal/progress"
	"github.com/jdparse/jdparse/internal/storage"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract structured fields from a spreadsheet of job descriptions",
	Long: `Run a column of job descriptions through the extraction chain and
write a result workbook.

Every non-empty row becomes one extraction; a row that fails with every
backend is recorded as a failure without stopping the rest of the job.

Examples:
  jdparse batch --input jds.xlsx --column 2 --output results.xlsx
  jdparse batch --input jds.xlsx --sheet "Openings" --column 4 --output results.xlsx`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	flags := batchCmd.Flags()
	flags.StringP("input", "i", "", "input workbook (required)")
	flags.String("sheet", "", "sheet name (default: first sheet)")
	flags.IntP("column", "c", 0, "zero-based column holding the job descriptions")
	flags.StringP("output", "o", "", "result workbook path (required)")
	flags.Duration("job-timeout", 0, "abort the whole job after this duration (0 = no limit)")

	_ = batchCmd.MarkFlagRequired("input")
	_ = batchCmd.MarkFlagRequired("output")
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if jobTimeout, _ := cmd.Flags().GetDuration("job-timeout"); jobTimeout > 0 {
		var tcancel context.CancelFunc
		ctx, tcancel = context.WithTimeout(ctx, jobTimeout)
		defer tcancel()
	}

	inPath, _ := cmd.Flags().GetString("input")
	sheet, _ := cmd.Flags().GetString("sheet")
	column, _ := cmd.Flags().GetInt("column")
	outPath, _ := cmd.Flags().GetString("output")

	rows, err := batch.ReadColumn(inPath, sheet, column)
	if err != nil {
		logError("failed to read input workbook: %v", err)
		return err
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		logError("invalid configuration: %v", err)
		return err
	}

	orch, err := buildOrchestrator()
	if err != nil {
		logError("failed to build providers: %v", err)
		return err
	}

	tracker := progress.NewTracker()
	store := storage.NewMemoryStore()
	runner := batch.NewRunner(orch, tracker, store,
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithRateLimit(cfg.Batch.RateLimit),
	)

	jobID := uuid.NewString()
	logInfo("starting batch job %s with %d rows", jobID, len(rows))

	// The runner blocks; report progress from the tracker while it works,
	// the way a polling client would.
	done := make(chan struct{})
	go reportProgress(tracker, jobID, done)

	summary, err := runner.Run(ctx, jobID, rows)
	close(done)
	tracker.Stop(jobID)
	if err != nil {
		logError("batch job failed: %v", err)
		return err
	}

	if err := batch.WriteResults(outPath, summary); err != nil {
		logError("failed to write result workbook: %v", err)
		return err
	}

	logInfo("done: %d succeeded, %d failed -> %s", summary.SuccessCount, summary.FailureCount, outPath)
	return nil
}

func reportProgress(tracker *progress.Tracker, jobID string, done <-chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			snap, err := tracker.Get(jobID)
			if err != nil {
				return
			}
			logInfo("progress: %d/%d", snap.Processed, snap.Total)
		}
	}
}
