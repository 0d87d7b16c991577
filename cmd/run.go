package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bottleneck-analyzer/monitor"
	"bottleneck-analyzer/simulator"
)

var (
	runMode       string  // "simulation" or "realtime"
	runCustom     bool    // Use explicit custom values instead of random draws
	runProcesses  int     // Custom process count
	runFrames     int     // Custom frame count
	runMemoryLoad float64 // Custom memory load percent
	runDiskLoad   float64 // Custom disk I/O load
	runSeed       int64   // Random seed (0 = time-based)
	runSamples    int     // Realtime mode: number of samples to take
	runInterval   float64 // Realtime mode: seconds between samples
	runOutput     string  // Output file (stdout if empty)
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one analysis and emit the report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		if err := applyRunFlags(cmd, &config); err != nil {
			return err
		}
		if err := config.Validate(); err != nil {
			return err
		}

		analyzer, err := simulator.NewAnalyzer(config)
		if err != nil {
			return err
		}
		analyzer.LogEvent = func(msg string) { logrus.Debug(msg) }

		results := map[string]interface{}{"config": config}

		if config.Mode == simulator.ModeRealtime {
			reports, systems, err := runRealtime(analyzer, config)
			if err != nil {
				return err
			}
			if reports != nil {
				results["reports"] = reports
				results["system"] = systems
			}
		}

		// Simulation mode, either requested directly or as the fallback
		// when live sampling is unavailable
		if _, ok := results["reports"]; !ok {
			report, err := analyzer.Run()
			if err != nil {
				return err
			}
			results["report"] = report
		}

		return writeResults(results)
	},
}

// runRealtime samples /proc on the configured interval and classifies each
// snapshot. A nil report slice with nil error means live sampling is
// unavailable and the caller should fall back to simulation.
func runRealtime(analyzer *simulator.Analyzer, config simulator.Config) ([]*simulator.Report, []monitor.SystemMetrics, error) {
	mon, err := monitor.NewMonitor()
	if err != nil {
		logrus.WithError(err).Warn("Live metrics unavailable, falling back to simulation mode")
		return nil, nil, nil
	}

	// First sample only establishes the delta baseline
	if _, err := mon.Sample(); err != nil {
		logrus.WithError(err).Warn("Live sampling failed, falling back to simulation mode")
		return nil, nil, nil
	}

	interval := time.Duration(config.RefreshIntervalSeconds * float64(time.Second))
	logrus.Infof("Sampling live metrics: %d samples at %s intervals", runSamples, interval)

	var reports []*simulator.Report
	var systems []monitor.SystemMetrics
	for i := 0; i < runSamples; i++ {
		time.Sleep(interval)
		record, metrics, err := mon.Record()
		if err != nil {
			return nil, nil, err
		}
		report := analyzer.AnalyzeLive(record)
		logrus.WithFields(logrus.Fields{
			"memoryPercent": fmt.Sprintf("%.1f", record.MemoryLoadPercent),
			"diskIoLoad":    record.DiskIOLoad,
			"diagnosis":     report.Analysis.Diagnosis.String(),
		}).Info("Sample classified")
		reports = append(reports, report)
		systems = append(systems, metrics)
	}
	return reports, systems, nil
}

func applyRunFlags(cmd *cobra.Command, config *simulator.Config) error {
	if cmd.Flags().Changed("mode") {
		mode, err := simulator.ParseMode(runMode)
		if err != nil {
			return err
		}
		config.Mode = mode
	}
	if cmd.Flags().Changed("custom") {
		config.UseCustomValues = runCustom
	}
	if cmd.Flags().Changed("processes") {
		config.ProcessCount = runProcesses
	}
	if cmd.Flags().Changed("frames") {
		config.FrameCount = runFrames
	}
	if cmd.Flags().Changed("memory-load") {
		config.MemoryLoadPercent = runMemoryLoad
	}
	if cmd.Flags().Changed("disk-load") {
		config.DiskIOLoad = runDiskLoad
	}
	if cmd.Flags().Changed("seed") {
		config.RandomSeed = runSeed
	}
	if cmd.Flags().Changed("interval") {
		config.RefreshIntervalSeconds = runInterval
	}
	return nil
}

func writeResults(results map[string]interface{}) error {
	output, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	if runOutput != "" {
		if err := os.WriteFile(runOutput, output, 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		logrus.Infof("Results written to %s", runOutput)
		return nil
	}
	fmt.Println(string(output))
	return nil
}

func init() {
	runCmd.Flags().StringVar(&runMode, "mode", "simulation", "Analysis mode: 'simulation' or 'realtime'")
	runCmd.Flags().BoolVar(&runCustom, "custom", false, "Use explicit custom values instead of random draws")
	runCmd.Flags().IntVar(&runProcesses, "processes", 5, "Number of simulated processes (1-20 in custom mode)")
	runCmd.Flags().IntVar(&runFrames, "frames", 12, "Physical frame count (3-64 in custom mode)")
	runCmd.Flags().Float64Var(&runMemoryLoad, "memory-load", 60, "Custom memory load percent (0-100)")
	runCmd.Flags().Float64Var(&runDiskLoad, "disk-load", 300, "Custom disk I/O load (50-1000)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Random seed for reproducible workloads (0 = time-based)")
	runCmd.Flags().IntVar(&runSamples, "samples", 1, "Realtime mode: number of samples to classify")
	runCmd.Flags().Float64Var(&runInterval, "interval", 2, "Realtime mode: seconds between samples")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Write results to this file instead of stdout")
	rootCmd.AddCommand(runCmd)
}
