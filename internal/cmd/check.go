package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/namelens/mcname/internal/config"
	"github.com/namelens/mcname/internal/core"
	"github.com/namelens/mcname/internal/core/checker"
	"github.com/namelens/mcname/internal/observability"
	"github.com/namelens/mcname/internal/output"
	"github.com/namelens/mcname/internal/server"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check name availability",
	Long: `Check whether Minecraft player names are available.

Use --name for a single name or --list for a file with one name per line.
Every line is checked as written; blank or padded lines are reported as illegal.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("name", "n", "", "Name to check")
	checkCmd.Flags().StringP("list", "l", "", "File with names to check, one per line (- for stdin)")
	checkCmd.Flags().StringP("out", "o", "", "Save available names to this file (list mode only)")
	checkCmd.Flags().String("strategy", checker.StrategyBatch, "List strategy: batch, concurrent")
	checkCmd.Flags().String("format", string(output.FormatGrid), "Output format: grid, table, json, yaml")
	checkCmd.Flags().Int("workers", 0, "Concurrent strategy pool size (0 = one per CPU)")
	checkCmd.Flags().String("metrics-addr", "", "Serve /metrics and /health on this address during the run")
	checkCmd.Flags().Bool("no-progress", false, "Disable the progress bar")
	checkCmd.Flags().Bool("no-color", false, "Disable colored labels")

	checkCmd.MarkFlagsMutuallyExclusive("name", "list")
	checkCmd.MarkFlagsOneRequired("name", "list")

	_ = viper.BindPFlag("workers", checkCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("metrics.addr", checkCmd.Flags().Lookup("metrics-addr"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	strategyName, err := cmd.Flags().GetString("strategy")
	if err != nil {
		return err
	}
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	noProgress, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		return err
	}
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(formatValue)
	if err != nil {
		return err
	}

	cfg := config.GetConfig()
	if cfg == nil {
		return errors.New("config not loaded")
	}
	logger := observability.CLILogger

	if noColor || !isTerminal(os.Stdout) {
		text.DisableColors()
	}

	// Input problems are reported before any network activity.
	var names []string
	if listPath != "" {
		names, err = loadNames(listPath, logger)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	registry := observability.NewRegistry()
	metrics := checker.NewMetrics(registry)
	if cfg.Metrics.Addr != "" {
		srv := server.New(cfg.Metrics.Addr, registry, logger)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	single := &checker.SingleChecker{
		Client:  newClient(cfg),
		Logger:  logger,
		Metrics: metrics,
	}

	if name != "" {
		if outPath != "" {
			logger.Warn("--out is only used with --list; nothing will be saved", zap.String("out", outPath))
		}
		startedAt := time.Now()
		availability := single.CheckOne(ctx, name)
		if format == output.FormatGrid {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), output.FormatResult(name, availability))
			return err
		}
		report := core.NewReport(uuid.NewString(), checker.StrategySingle, startedAt, time.Now(),
			[]string{name}, []core.Availability{availability})
		return writeReport(cmd.OutOrStdout(), format, report)
	}

	tracker, stopProgress := startProgress(len(names), !noProgress)
	strategy, err := buildStrategy(strategyName, cfg, single, tracker)
	if err != nil {
		stopProgress()
		return err
	}

	startedAt := time.Now()
	logger.Debug("Checking names",
		zap.Int("count", len(names)),
		zap.String("strategy", strategy.Name()))
	codes := strategy.CheckAll(ctx, names)
	stopProgress()

	report := core.NewReport(uuid.NewString(), strategy.Name(), startedAt, time.Now(), names, codes)
	if err := writeReport(cmd.OutOrStdout(), format, report); err != nil {
		return err
	}

	if outPath != "" {
		written, err := output.SaveAvailable(outPath, names, codes)
		if err != nil {
			return fmt.Errorf("save available names: %w", err)
		}
		logger.Info("Saved available names", zap.String("path", outPath), zap.Int("count", written))
	}

	logThroughput(len(names), startedAt)
	return nil
}

func newClient(cfg *config.Config) *checker.Client {
	return &checker.Client{
		HTTP:      &http.Client{Timeout: cfg.API.RequestTimeout},
		LookupURL: cfg.API.LookupURL,
		BatchURL:  cfg.API.BatchURL,
		UserAgent: cfg.API.UserAgent,
	}
}

func buildStrategy(name string, cfg *config.Config, single *checker.SingleChecker, tracker checker.Progress) (checker.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", checker.StrategyBatch:
		return &checker.BatchChecker{
			Client: single.Client,
			Config: checker.BatchConfig{
				Size:       cfg.Batch.Size,
				MaxRetries: cfg.Batch.MaxRetries,
				BaseWait:   cfg.Batch.BaseWait,
				MaxJitter:  cfg.Batch.MaxJitter,
				Delay:      cfg.Batch.Delay,
			},
			Logger:   single.Logger,
			Metrics:  single.Metrics,
			Progress: tracker,
		}, nil
	case checker.StrategyConcurrent:
		return &checker.ConcurrentChecker{
			Single:   single,
			Workers:  cfg.Workers,
			Progress: tracker,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %s", name)
	}
}

func writeReport(w io.Writer, format output.Format, report *core.Report) error {
	rendered, err := output.NewFormatter(format).FormatReport(report)
	if err != nil {
		return err
	}
	if rendered == "" {
		return nil
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	_, err = io.WriteString(w, rendered)
	return err
}

func logThroughput(count int, startedAt time.Time) {
	if count <= 0 {
		return
	}
	elapsed := time.Since(startedAt)
	if elapsed <= 0 {
		return
	}
	rate := float64(count) / elapsed.Seconds()
	observability.CLILogger.Info(
		"Check throughput",
		zap.Int("checks", count),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rate_per_sec", rate),
	)
}
