package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/simulator"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

var log = logging.MustGetLogger("cafesim")

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cafesim",
	Short: "Generates synthetic cafe sales datasets",
	Long: `cafesim generates a plausible cafe sales dataset (menu, customers, orders, order items
and daily, product and customer segment summaries) for teaching data analysis, and
exports it to CSV, JSON, XLSX, Parquet, PostgreSQL, Kafka or the console.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile, cmd.Flags())
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if err := InitLogger(cfg.Logging.Level); err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		sim := simulator.NewSimulator(cfg)
		if err := sim.Run(ctx); err != nil {
			return err
		}
		log.Infof("done, formats written: %s", strings.Join(cfg.Output.Formats, ", "))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./examples/config.yaml)")

	rootCmd.Flags().Int64("seed", 0, "Random seed for the run (0 picks one from the clock)")
	rootCmd.Flags().String("start-date", "", "First simulated day, YYYY-MM-DD")
	rootCmd.Flags().String("end-date", "", "Last simulated day, YYYY-MM-DD")
	rootCmd.Flags().StringSlice("formats", nil, "Output formats: csv, json, xlsx, parquet, db, kafka, console")
	rootCmd.Flags().String("log-level", "INFO", "Log level: DEBUG, INFO, NOTICE, WARNING, ERROR, CRITICAL")
}

// InitLogger routes every package logger to stderr at the given level.
func InitLogger(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
