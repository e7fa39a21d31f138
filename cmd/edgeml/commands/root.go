package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/robodu/edgeml/internal/config"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "edgeml",
	Short: "Keyword spotting and transfer learning service",
	Long: `edgeml listens to the microphone for a fixed set of keywords and trains a
small image classifier on samples sent by the host application.

Both models run in a separate runtime process reached over gRPC. Settings
come from defaults, an optional YAML file and the environment, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML config file (env vars override it)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads --config when given, validates the result and installs
// the default logger at the configured level.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if flagConfig != "" {
		var err error
		if cfg, err = config.LoadFile(flagConfig); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
