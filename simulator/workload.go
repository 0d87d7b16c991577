package simulator

import (
	"math/rand"
	"time"
)

// ProcessWorkload represents the simplified resource needs of one simulated process
type ProcessWorkload struct {
	PID            int   `json:"pid"`
	PageReferences []int `json:"pageReferences"` // Ordered page-access sequence
	DiskRequests   []int `json:"diskRequests"`   // Ordered track positions
}

// Workload is one generated analysis input. Immutable once generated: the
// simulators read it, they never write it, so concurrent analysis requests
// can each hold their own instance.
type Workload struct {
	Processes         []ProcessWorkload `json:"processes"`
	FrameCount        int               `json:"frameCount"`        // Physical frame pool size
	HeadStart         int               `json:"headStart"`         // Initial disk head position
	MemoryLoadPercent float64           `json:"memoryLoadPercent"` // 0-100
	DiskIOLoad        float64           `json:"diskIoLoad"`        // Abstract activity score
}

// ReferenceString returns the page-access sequence flattened across processes
func (w *Workload) ReferenceString() []int {
	var refs []int
	for _, p := range w.Processes {
		refs = append(refs, p.PageReferences...)
	}
	return refs
}

// DiskRequestQueue returns the disk requests flattened across processes
func (w *Workload) DiskRequestQueue() []int {
	var reqs []int
	for _, p := range w.Processes {
		reqs = append(reqs, p.DiskRequests...)
	}
	return reqs
}

// WorkloadGenerator produces synthetic workloads, randomized or from
// user-supplied custom values
type WorkloadGenerator struct {
	config Config
	rng    *rand.Rand
	pages  Distribution
}

// NewWorkloadGenerator creates a generator for the given configuration.
// Configuration is validated up front so no partial generation happens on
// out-of-range custom inputs.
func NewWorkloadGenerator(config Config) (*WorkloadGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano() // Non-reproducible by design
	}

	return &WorkloadGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
		pages:  NewDistribution(config.PageLocality),
	}, nil
}

// Generate produces one workload. Page identifiers are drawn from
// [0, frameCount*2) so faults are possible but not guaranteed on every
// access; disk tracks are uniform over [0, maxTrack].
func (g *WorkloadGenerator) Generate() *Workload {
	cfg := g.config

	memoryLoad := cfg.MemoryLoadPercent
	diskLoad := cfg.DiskIOLoad
	if !cfg.UseCustomValues {
		// Wide enough to land on both sides of each bottleneck threshold
		// across repeated draws
		memoryLoad = 30.0 + g.rng.Float64()*70.0
		diskLoad = MinDiskIOLoad + g.rng.Float64()*(MaxDiskIOLoad-MinDiskIOLoad)
	}

	maxPage := cfg.FrameCount*2 - 1
	processes := make([]ProcessWorkload, 0, cfg.ProcessCount)
	for pid := 1; pid <= cfg.ProcessCount; pid++ {
		pageRefs := make([]int, cfg.ReferencesPerProcess)
		for i := range pageRefs {
			pageRefs[i] = g.pages.Sample(g.rng, 0, maxPage)
		}
		diskReqs := make([]int, cfg.RequestsPerProcess)
		for i := range diskReqs {
			diskReqs[i] = g.rng.Intn(cfg.MaxTrack + 1)
		}
		processes = append(processes, ProcessWorkload{
			PID:            pid,
			PageReferences: pageRefs,
			DiskRequests:   diskReqs,
		})
	}

	headStart := cfg.HeadStart
	if !cfg.UseCustomValues {
		headStart = g.rng.Intn(cfg.MaxTrack + 1)
	}

	return &Workload{
		Processes:         processes,
		FrameCount:        cfg.FrameCount,
		HeadStart:         headStart,
		MemoryLoadPercent: memoryLoad,
		DiskIOLoad:        diskLoad,
	}
}
