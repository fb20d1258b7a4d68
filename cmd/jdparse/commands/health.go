package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdparse/jdparse/internal/logger"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check which extraction backends are reachable",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	orch, err := buildOrchestrator()
	if err != nil {
		logError("failed to build providers: %v", err)
		return err
	}

	health := orch.HealthCheck(ctx)

	names := make([]string, 0, len(health))
	for name := range health {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		status := "unavailable"
		if health[name] {
			status = "ok"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, status)
	}
	return nil
}
