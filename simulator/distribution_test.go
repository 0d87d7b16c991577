package simulator

import (
	"math/rand"
	"testing"
)

func TestUniformDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	dist := &UniformDistribution{}

	t.Run("single value range", func(t *testing.T) {
		result := dist.Sample(rng, 5, 5)
		if result != 5 {
			t.Errorf("Expected 5, got %d", result)
		}
	})

	t.Run("range 0-9", func(t *testing.T) {
		samples := make(map[int]int)
		iterations := 10000

		for i := 0; i < iterations; i++ {
			result := dist.Sample(rng, 0, 9)
			if result < 0 || result > 9 {
				t.Fatalf("Sample %d out of range [0, 9]", result)
			}
			samples[result]++
		}

		// Every page in the range should be touched over 10k draws
		if len(samples) != 10 {
			t.Errorf("Expected 10 unique values, got %d", len(samples))
		}
	})
}

func TestExponentialDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	dist := &ExponentialDistribution{Lambda: 0.5}

	t.Run("single value range", func(t *testing.T) {
		result := dist.Sample(rng, 5, 5)
		if result != 5 {
			t.Errorf("Expected 5, got %d", result)
		}
	})

	t.Run("skewed toward min", func(t *testing.T) {
		sum := 0
		for i := 0; i < 10000; i++ {
			result := dist.Sample(rng, 0, 99)
			if result < 0 || result > 99 {
				t.Fatalf("Sample %d out of range [0, 99]", result)
			}
			sum += result
		}

		// Mean should sit in the lower half of the range
		mean := float64(sum) / 10000.0
		if mean >= 50.0 {
			t.Errorf("Expected mean below 50 for exponential bias, got %.2f", mean)
		}
	})
}

func TestGeometricDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	dist := &GeometricDistribution{P: 0.3}

	t.Run("bounds", func(t *testing.T) {
		for i := 0; i < 10000; i++ {
			result := dist.Sample(rng, 0, 31)
			if result < 0 || result > 31 {
				t.Fatalf("Sample %d out of range [0, 31]", result)
			}
		}
	})

	t.Run("min is the mode", func(t *testing.T) {
		histogram := make(map[int]int)
		for i := 0; i < 10000; i++ {
			histogram[dist.Sample(rng, 0, 31)]++
		}
		for v, count := range histogram {
			if v != 0 && count > histogram[0] {
				t.Errorf("Value %d sampled more often (%d) than min (%d)", v, count, histogram[0])
			}
		}
	})
}

func TestHotspotDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	dist := &HotspotDistribution{Center: 0.25, Spread: 2}

	t.Run("stays near the hotspot", func(t *testing.T) {
		// Range [0, 99], hotspot at 24, spread 2: every sample in [22, 26]
		for i := 0; i < 1000; i++ {
			result := dist.Sample(rng, 0, 99)
			if result < 22 || result > 26 {
				t.Fatalf("Sample %d strayed from hotspot window [22, 26]", result)
			}
		}
	})

	t.Run("clamps at range edges", func(t *testing.T) {
		edge := &HotspotDistribution{Center: 0.0, Spread: 5}
		for i := 0; i < 1000; i++ {
			result := edge.Sample(rng, 0, 9)
			if result < 0 || result > 9 {
				t.Fatalf("Sample %d out of range [0, 9]", result)
			}
		}
	})
}

func TestNewDistribution(t *testing.T) {
	tests := []struct {
		distType DistributionType
		name     string
	}{
		{DistUniform, "uniform"},
		{DistExponential, "exponential"},
		{DistGeometric, "geometric"},
		{DistHotspot, "hotspot"},
	}

	for _, tt := range tests {
		if got := tt.distType.String(); got != tt.name {
			t.Errorf("String() = %s, want %s", got, tt.name)
		}
		if NewDistribution(tt.distType) == nil {
			t.Errorf("NewDistribution(%s) returned nil", tt.name)
		}
		parsed, err := ParseDistributionType(tt.name)
		if err != nil || parsed != tt.distType {
			t.Errorf("ParseDistributionType(%s) = %v, %v", tt.name, parsed, err)
		}
	}

	if _, err := ParseDistributionType("zipf"); err == nil {
		t.Error("Expected error for unknown distribution type")
	}
}
