package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bottleneck-analyzer/simulator"
)

var (
	logLevel   string // Log verbosity level
	configFile string // Optional YAML configuration file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "bottleneck-analyzer",
	Short: "Simulate and classify operating-system resource bottlenecks",
	Long: "Replays synthetic workloads through classic page-replacement and disk-scheduling\n" +
		"algorithms, or samples live /proc metrics, and classifies the dominant bottleneck.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// Execute runs the CLI root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig starts from defaults and overlays the YAML file when one was
// given. Flag overrides are applied by the individual commands afterward.
func loadConfig() (simulator.Config, error) {
	config := simulator.DefaultConfig()
	if configFile == "" {
		return config, nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return config, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config file %s: %w", configFile, err)
	}
	return config, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML configuration file")
}
