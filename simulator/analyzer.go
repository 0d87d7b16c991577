package simulator

import (
	"fmt"
	"time"
)

// Analyzer orchestrates one analysis pipeline: workload generation, the two
// simulators, and classification. Every Run builds fresh inputs and outputs,
// so instances need no locking for sequential use; hosts driving one
// Analyzer from multiple goroutines must serialize access themselves.
type Analyzer struct {
	config     Config
	generator  *WorkloadGenerator
	classifier Classifier

	// LogEvent, when set, receives human-readable progress messages
	LogEvent func(msg string)
}

// NewAnalyzer creates an analyzer, validating the configuration first
func NewAnalyzer(config Config) (*Analyzer, error) {
	gen, err := NewWorkloadGenerator(config)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		config:     config,
		generator:  gen,
		classifier: NewClassifier(config),
	}, nil
}

// Config returns the current configuration
func (a *Analyzer) Config() Config {
	return a.config
}

// UpdateConfig replaces the configuration, rebuilding the generator and
// classifier. Rejected configurations leave the analyzer unchanged.
func (a *Analyzer) UpdateConfig(config Config) error {
	gen, err := NewWorkloadGenerator(config)
	if err != nil {
		return err
	}
	a.config = config
	a.generator = gen
	a.classifier = NewClassifier(config)
	return nil
}

// Run executes one simulation-mode analysis: generate a workload, replay it
// through the paging and disk simulators, and classify the combined metrics
func (a *Analyzer) Run() (*Report, error) {
	workload := a.generator.Generate()
	a.log("generated workload: %d processes, %d frames", len(workload.Processes), workload.FrameCount)

	faults, err := SimulatePaging(workload.ReferenceString(), workload.FrameCount)
	if err != nil {
		return nil, err
	}
	a.log("paging: FIFO=%d LRU=%d Optimal=%d over %d references",
		faults.FIFO, faults.LRU, faults.Optimal, faults.TotalReferences)

	seeks := SimulateDisk(workload.DiskRequestQueue(), workload.HeadStart)
	a.log("disk: FCFS=%d SSTF=%d over %d requests", seeks.FCFS, seeks.SSTF, seeks.RequestCount)

	record := MetricsRecord{
		MemoryLoadPercent: workload.MemoryLoadPercent,
		DiskIOLoad:        workload.DiskIOLoad,
		Faults:            &faults,
		Seeks:             &seeks,
	}
	analysis := a.classifier.Classify(record)
	a.log("diagnosis: %s", analysis.Diagnosis)

	return &Report{
		Mode:      ModeSimulation,
		Timestamp: time.Now(),
		Workload:  summarize(workload),
		Metrics:   record,
		Analysis:  analysis,
	}, nil
}

// AnalyzeLive classifies a record produced by live sampling through the
// identical classifier entry point the simulation path uses
func (a *Analyzer) AnalyzeLive(record MetricsRecord) *Report {
	analysis := a.classifier.Classify(record)
	a.log("live diagnosis: %s (mem=%.1f%%, disk=%.0f)",
		analysis.Diagnosis, record.MemoryLoadPercent, record.DiskIOLoad)

	return &Report{
		Mode:      ModeRealtime,
		Timestamp: time.Now(),
		Metrics:   record,
		Analysis:  analysis,
	}
}

func (a *Analyzer) log(format string, args ...interface{}) {
	if a.LogEvent != nil {
		a.LogEvent(fmt.Sprintf(format, args...))
	}
}
