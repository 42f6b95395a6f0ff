package cmd

import (
	"fmt"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/namelens/mcname/internal/config"
	"github.com/namelens/mcname/internal/observability"
)

var envInfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Display environment information",
	Long:  "Display runtime, version and effective configuration information.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetConfig()
		if cfg == nil {
			return fmt.Errorf("config not loaded")
		}
		log := observability.CLILogger
		version := crucible.GetVersion()

		log.Info("=== mcname Environment Information ===")
		log.Info("Application:")
		log.Info("  Version:    " + versionInfo.Version)
		log.Info("  Commit:     " + versionInfo.Commit)
		log.Info("  Built:      " + versionInfo.BuildDate)
		log.Info("  Gofulmen:   "+version.Gofulmen, zap.String("gofulmen_version", version.Gofulmen))

		log.Info("Runtime:")
		log.Info("  Go Version: "+runtime.Version(), zap.String("go_version", runtime.Version()))
		log.Info("  GOOS:       "+runtime.GOOS, zap.String("goos", runtime.GOOS))
		log.Info("  GOARCH:     "+runtime.GOARCH, zap.String("goarch", runtime.GOARCH))
		log.Info(fmt.Sprintf("  NumCPU:     %d", runtime.NumCPU()), zap.Int("num_cpu", runtime.NumCPU()))

		log.Info("Configuration:")
		log.Info("  Config File:     "+config.DefaultConfigPath(), zap.String("config_file", config.DefaultConfigPath()))
		log.Info("  Lookup URL:      "+cfg.API.LookupURL, zap.String("lookup_url", cfg.API.LookupURL))
		log.Info("  Batch URL:       "+cfg.API.BatchURL, zap.String("batch_url", cfg.API.BatchURL))
		log.Info("  Request Timeout: "+cfg.API.RequestTimeout.String())
		log.Info(fmt.Sprintf("  Batch Size:      %d", cfg.Batch.Size), zap.Int("batch_size", cfg.Batch.Size))
		log.Info(fmt.Sprintf("  Max Retries:     %d", cfg.Batch.MaxRetries), zap.Int("max_retries", cfg.Batch.MaxRetries))
		log.Info("  Base Wait:       " + cfg.Batch.BaseWait.String())
		log.Info("  Max Jitter:      " + cfg.Batch.MaxJitter.String())
		log.Info("  Batch Delay:     " + cfg.Batch.Delay.String())
		log.Info(fmt.Sprintf("  Workers:         %d", cfg.Workers), zap.Int("workers", cfg.Workers))
		log.Info("  Log Level:       "+cfg.Logging.Level, zap.String("log_level", cfg.Logging.Level))
		if cfg.Metrics.Addr != "" {
			log.Info("  Metrics Addr:    "+cfg.Metrics.Addr, zap.String("metrics_addr", cfg.Metrics.Addr))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envInfoCmd)
}
