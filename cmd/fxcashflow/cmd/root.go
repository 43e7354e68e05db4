package cmd

import (
	"github.com/rs/zerolog"
	"github.com/rustyeddy/fxcashflow/config"
	"github.com/rustyeddy/fxcashflow/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxcashflow",
	Short: "FX cashflow projection and forward points P&L",
	Long: `fxcashflow turns an FX deal blotter into dated cashflows per currency.

It provides tools for:
  - Generating spot, outright forward and FX swap legs
  - Interpolating forward points from a tenor curve
  - Marking swaps and forwards against the curve
  - Aggregating cashflows by date, currency and horizon
  - Exporting CSV, HTML, Org and SQLite reports`,
	SilenceUsage: true,
}

var (
	cfgFile   string
	logLevel  string
	logPretty bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "human readable logs")
}

// loadConfig layers defaults, the config file, FXCASHFLOW_* variables and
// the persistent flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if flagChanged(cmd, "log-level") {
		cfg.Log.Level = logLevel
	}
	if flagChanged(cmd, "log-pretty") {
		cfg.Log.Pretty = logPretty
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Out:    cmd.ErrOrStderr(),
	})
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
