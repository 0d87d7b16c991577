package simulator

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"gopkg.in/yaml.v3"
)

// DistributionType represents page-access locality models
type DistributionType int

const (
	DistUniform     DistributionType = iota // Every page equally likely
	DistExponential                         // Strong bias toward low page ids
	DistGeometric                           // Geometric bias toward low page ids
	DistHotspot                             // Accesses pinned around a fixed fraction of the range
)

// String returns the string representation of DistributionType
func (dt DistributionType) String() string {
	switch dt {
	case DistUniform:
		return "uniform"
	case DistExponential:
		return "exponential"
	case DistGeometric:
		return "geometric"
	case DistHotspot:
		return "hotspot"
	default:
		return fmt.Sprintf("unknown(%d)", int(dt))
	}
}

// ParseDistributionType parses a string into a DistributionType
func ParseDistributionType(s string) (DistributionType, error) {
	switch s {
	case "uniform":
		return DistUniform, nil
	case "exponential":
		return DistExponential, nil
	case "geometric":
		return DistGeometric, nil
	case "hotspot":
		return DistHotspot, nil
	default:
		return DistUniform, fmt.Errorf("invalid DistributionType: %s (must be 'uniform', 'exponential', 'geometric', or 'hotspot')", s)
	}
}

// MarshalJSON implements json.Marshaler for DistributionType
func (dt DistributionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.String())
}

// UnmarshalJSON implements json.Unmarshaler for DistributionType
func (dt *DistributionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDistributionType(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for DistributionType
func (dt DistributionType) MarshalYAML() (interface{}, error) {
	return dt.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for DistributionType
func (dt *DistributionType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDistributionType(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

// Distribution interface for drawing page identifiers in [min, max]
type Distribution interface {
	Sample(rng *rand.Rand, min, max int) int
}

// UniformDistribution samples uniformly between min and max
type UniformDistribution struct{}

func (d *UniformDistribution) Sample(rng *rand.Rand, min, max int) int {
	if min >= max {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// ExponentialDistribution samples with exponential bias toward min,
// modeling workloads that hammer a small working set of low page ids
type ExponentialDistribution struct {
	Lambda float64 // Rate parameter (higher = more skewed toward min)
}

func (d *ExponentialDistribution) Sample(rng *rand.Rand, min, max int) int {
	if min >= max {
		return min
	}

	// Inverse transform sampling: X = -ln(U) / lambda
	u := rng.Float64()
	if u == 0 {
		u = 1e-10 // Avoid log(0)
	}
	x := -math.Log(u) / d.Lambda

	// Normalize against the ~95th percentile so the tail still reaches max
	maxVal := 6.0 / d.Lambda
	normalized := x / maxVal
	if normalized > 1.0 {
		normalized = 1.0
	}

	return min + int(normalized*float64(max-min))
}

// GeometricDistribution samples with geometric bias toward min
type GeometricDistribution struct {
	P float64 // Success probability (higher = more skewed toward min)
}

func (d *GeometricDistribution) Sample(rng *rand.Rand, min, max int) int {
	if min >= max {
		return min
	}

	u := rng.Float64()
	if u == 0 {
		u = 1e-10 // Avoid log(0)
	}
	if u >= 1.0 {
		u = 0.999999 // Avoid log(1-u) = log(0)
	}

	// Number of failures before first success: floor(log(1-u) / log(1-p))
	trials := 0
	if d.P > 0 && d.P < 1 {
		trials = int(math.Log(1-u) / math.Log(1-d.P))
		if trials < 0 {
			trials = 0
		}
	}

	if trials > max-min {
		trials = max - min
	}
	return min + trials
}

// HotspotDistribution concentrates accesses around a fixed point in the
// page range, with small uniform jitter. Models a single hot page cluster.
type HotspotDistribution struct {
	Center float64 // Position of the hotspot within the range (0.0 to 1.0)
	Spread int     // Max distance from the hotspot
}

func (d *HotspotDistribution) Sample(rng *rand.Rand, min, max int) int {
	if min >= max {
		return min
	}

	center := d.Center
	if center < 0.0 {
		center = 0.0
	}
	if center > 1.0 {
		center = 1.0
	}

	hot := min + int(center*float64(max-min))
	spread := d.Spread
	if spread <= 0 {
		spread = 1
	}

	page := hot + rng.Intn(2*spread+1) - spread
	if page < min {
		return min
	}
	if page > max {
		return max
	}
	return page
}

// NewDistribution creates a distribution based on type
func NewDistribution(distType DistributionType) Distribution {
	switch distType {
	case DistUniform:
		return &UniformDistribution{}
	case DistExponential:
		return &ExponentialDistribution{Lambda: 0.5}
	case DistGeometric:
		return &GeometricDistribution{P: 0.3}
	case DistHotspot:
		return &HotspotDistribution{Center: 0.25, Spread: 2}
	default:
		return &UniformDistribution{}
	}
}
