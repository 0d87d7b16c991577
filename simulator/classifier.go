package simulator

import (
	"encoding/json"
	"fmt"
)

// Diagnosis identifies the dominant resource bottleneck
type Diagnosis int

const (
	DiagnosisBalanced Diagnosis = iota
	DiagnosisRAMBottleneck
	DiagnosisDiskBottleneck
	DiagnosisInefficientPaging
)

// String returns the human-readable diagnosis name
func (d Diagnosis) String() string {
	switch d {
	case DiagnosisBalanced:
		return "Balanced System"
	case DiagnosisRAMBottleneck:
		return "RAM Bottleneck"
	case DiagnosisDiskBottleneck:
		return "Disk I/O Bottleneck"
	case DiagnosisInefficientPaging:
		return "Inefficient Page Replacement"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// MarshalJSON implements json.Marshaler for Diagnosis
func (d Diagnosis) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// MetricsRecord is the unified snapshot the classifier consumes. Live
// sampling and simulation produce the same shape; only simulation attaches
// fault and seek tallies. Created per analysis request, never mutated.
type MetricsRecord struct {
	MemoryLoadPercent float64     `json:"memoryLoadPercent"` // 0-100
	DiskIOLoad        float64     `json:"diskIoLoad"`        // Abstract seek-time/activity score
	Faults            *FaultTally `json:"faults,omitempty"`  // Simulation only
	Seeks             *SeekTally  `json:"seeks,omitempty"`   // Simulation only
}

// Analysis pairs a diagnosis with its recommendation
type Analysis struct {
	Diagnosis      Diagnosis `json:"diagnosis"`
	Recommendation string    `json:"recommendation"`
}

// Recommendation texts per diagnosis
const (
	recommendRAM      = "Increase available RAM or switch to an LRU-based paging strategy."
	recommendDisk     = "Adopt SSTF scheduling or move intensive workloads to SSD storage."
	recommendPaging   = "Replace FIFO with LRU or Optimal where possible."
	recommendBalanced = "System is balanced. Continue monitoring workload trends for emerging bottlenecks."
)

// Classifier applies ordered threshold rules to a MetricsRecord. The rule
// order encodes a severity ranking: memory exhaustion outranks I/O pressure,
// which outranks a sub-optimal-but-functioning paging policy.
type Classifier struct {
	MemoryThresholdPercent float64 // Rule 1 threshold (default 85)
	DiskIOThreshold        float64 // Rule 2 threshold (default 500)
	FaultMargin            float64 // Rule 3 relative margin (default 1.25)
}

// NewClassifier creates a classifier using the configured thresholds
func NewClassifier(config Config) Classifier {
	return Classifier{
		MemoryThresholdPercent: config.MemoryThresholdPercent,
		DiskIOThreshold:        config.DiskIOThreshold,
		FaultMargin:            config.FaultMargin,
	}
}

// DefaultClassifier returns a classifier with the default thresholds
func DefaultClassifier() Classifier {
	return NewClassifier(DefaultConfig())
}

// rule pairs a predicate with its outcome; rules are evaluated in order and
// the first match wins
type rule struct {
	matches        func(MetricsRecord) bool
	diagnosis      Diagnosis
	recommendation string
}

func (c Classifier) rules() []rule {
	return []rule{
		{
			matches:        func(r MetricsRecord) bool { return r.MemoryLoadPercent > c.MemoryThresholdPercent },
			diagnosis:      DiagnosisRAMBottleneck,
			recommendation: recommendRAM,
		},
		{
			matches:        func(r MetricsRecord) bool { return r.DiskIOLoad > c.DiskIOThreshold },
			diagnosis:      DiagnosisDiskBottleneck,
			recommendation: recommendDisk,
		},
		{
			// Only evaluated when simulation tallies are present; live
			// records fall through straight to the balanced outcome
			matches: func(r MetricsRecord) bool {
				return r.Faults != nil && float64(r.Faults.FIFO) > float64(r.Faults.LRU)*c.FaultMargin
			},
			diagnosis:      DiagnosisInefficientPaging,
			recommendation: recommendPaging,
		},
	}
}

// Classify evaluates the rule table against a record. Pure function of its
// input: the same record always yields the same analysis.
func (c Classifier) Classify(record MetricsRecord) Analysis {
	for _, r := range c.rules() {
		if r.matches(record) {
			return Analysis{Diagnosis: r.diagnosis, Recommendation: r.recommendation}
		}
	}
	return Analysis{Diagnosis: DiagnosisBalanced, Recommendation: recommendBalanced}
}
