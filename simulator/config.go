package simulator

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Mode selects where the metrics fed to the classifier come from
type Mode int

const (
	ModeSimulation Mode = iota // Synthetic workload + simulators
	ModeRealtime               // Live /proc sampling
)

// String returns the string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeSimulation:
		return "simulation"
	case ModeRealtime:
		return "realtime"
	default:
		return "simulation"
	}
}

// ParseMode parses a string into Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "simulation":
		return ModeSimulation, nil
	case "realtime":
		return ModeRealtime, nil
	default:
		return ModeSimulation, fmt.Errorf("invalid mode: %s (must be 'simulation' or 'realtime')", s)
	}
}

// MarshalJSON implements json.Marshaler for Mode
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler for Mode
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Mode
func (m Mode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Mode
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Custom-mode input bounds
const (
	MinProcessCount = 1
	MaxProcessCount = 20
	MinFrameCount   = 3
	MaxFrameCount   = 64
	MinDiskIOLoad   = 50.0
	MaxDiskIOLoad   = 1000.0
)

// Config holds all analyzer parameters
type Config struct {
	Mode            Mode `json:"mode" yaml:"mode"`                       // "simulation" or "realtime"
	UseCustomValues bool `json:"useCustomValues" yaml:"useCustomValues"` // Custom inputs below instead of random draws

	// Custom simulation inputs (validated only when UseCustomValues is set)
	ProcessCount      int     `json:"processCount" yaml:"processCount"`           // Number of simulated processes (1-20)
	FrameCount        int     `json:"frameCount" yaml:"frameCount"`               // Physical frames (3-64 custom, >= 1 always)
	MemoryLoadPercent float64 `json:"memoryLoadPercent" yaml:"memoryLoadPercent"` // Memory pressure (0-100)
	DiskIOLoad        float64 `json:"diskIoLoad" yaml:"diskIoLoad"`               // Abstract disk activity score (50-1000)

	// Workload shape
	ReferencesPerProcess int              `json:"referencesPerProcess" yaml:"referencesPerProcess"` // Page touches per process
	RequestsPerProcess   int              `json:"requestsPerProcess" yaml:"requestsPerProcess"`     // Disk requests per process
	MaxTrack             int              `json:"maxTrack" yaml:"maxTrack"`                         // Highest disk track (tracks drawn from [0, MaxTrack])
	HeadStart            int              `json:"headStart" yaml:"headStart"`                       // Initial disk head position
	PageLocality         DistributionType `json:"pageLocality" yaml:"pageLocality"`                 // Page-access locality model

	// Classifier thresholds
	MemoryThresholdPercent float64 `json:"memoryThresholdPercent" yaml:"memoryThresholdPercent"` // Rule 1: memory load above this => RAM bottleneck
	DiskIOThreshold        float64 `json:"diskIoThreshold" yaml:"diskIoThreshold"`               // Rule 2: disk load above this => disk bottleneck
	FaultMargin            float64 `json:"faultMargin" yaml:"faultMargin"`                       // Rule 3: FIFO faults > LRU faults * margin => inefficient paging

	// Live mode
	RefreshIntervalSeconds float64 `json:"refreshIntervalSeconds" yaml:"refreshIntervalSeconds"` // Sampling cadence in realtime mode

	// Reproducibility
	RandomSeed int64 `json:"randomSeed" yaml:"randomSeed"` // Random seed (0 = time-based seed)
}

// DefaultConfig returns sensible defaults matching the interactive analyzer
func DefaultConfig() Config {
	return Config{
		Mode:                   ModeSimulation,
		UseCustomValues:        false,
		ProcessCount:           5,     // 5 simulated processes
		FrameCount:             12,    // 12 physical frames
		MemoryLoadPercent:      60.0,  // Below the 85% RAM threshold
		DiskIOLoad:             300.0, // Below the 500 disk threshold
		ReferencesPerProcess:   30,    // 30 page touches per process
		RequestsPerProcess:     15,    // 15 disk requests per process
		MaxTrack:               199,   // 200-track disk
		HeadStart:              100,   // Head parked mid-disk
		PageLocality:           DistUniform,
		MemoryThresholdPercent: 85.0,
		DiskIOThreshold:        500.0,
		FaultMargin:            1.25, // FIFO 25% worse than LRU flags inefficient paging
		RefreshIntervalSeconds: 2.0,
		RandomSeed:             0, // 0 = use time-based seed
	}
}

// Validate checks configuration values before any simulation runs.
// Custom-mode inputs are range-checked so no partial computation happens
// on bad input.
func (c *Config) Validate() error {
	if c.FrameCount < 1 {
		return ErrInvalidConfig("frameCount must be >= 1")
	}
	if c.ProcessCount < 1 {
		return ErrInvalidConfig("processCount must be >= 1")
	}
	if c.ReferencesPerProcess < 1 {
		return ErrInvalidConfig("referencesPerProcess must be >= 1")
	}
	if c.RequestsPerProcess < 1 {
		return ErrInvalidConfig("requestsPerProcess must be >= 1")
	}
	if c.MaxTrack < 1 {
		return ErrInvalidConfig("maxTrack must be >= 1")
	}
	if c.HeadStart < 0 || c.HeadStart > c.MaxTrack {
		return ErrInvalidConfig(fmt.Sprintf("headStart must be between 0 and maxTrack (%d)", c.MaxTrack))
	}
	if c.MemoryThresholdPercent <= 0 || c.MemoryThresholdPercent > 100 {
		return ErrInvalidConfig("memoryThresholdPercent must be between 0 and 100")
	}
	if c.DiskIOThreshold <= 0 {
		return ErrInvalidConfig("diskIoThreshold must be > 0")
	}
	if c.FaultMargin < 1.0 {
		return ErrInvalidConfig("faultMargin must be >= 1.0")
	}
	if c.Mode == ModeRealtime && c.RefreshIntervalSeconds <= 0 {
		return ErrInvalidConfig("refreshIntervalSeconds must be > 0 in realtime mode")
	}
	if c.UseCustomValues {
		if c.ProcessCount < MinProcessCount || c.ProcessCount > MaxProcessCount {
			return ErrInvalidConfig(fmt.Sprintf("processCount must be between %d and %d", MinProcessCount, MaxProcessCount))
		}
		if c.FrameCount < MinFrameCount || c.FrameCount > MaxFrameCount {
			return ErrInvalidConfig(fmt.Sprintf("frameCount must be between %d and %d", MinFrameCount, MaxFrameCount))
		}
		if c.MemoryLoadPercent < 0 || c.MemoryLoadPercent > 100 {
			return ErrInvalidConfig("memoryLoadPercent must be between 0 and 100")
		}
		if c.DiskIOLoad < MinDiskIOLoad || c.DiskIOLoad > MaxDiskIOLoad {
			return ErrInvalidConfig(fmt.Sprintf("diskIoLoad must be between %.0f and %.0f", MinDiskIOLoad, MaxDiskIOLoad))
		}
	}
	return nil
}
