package simulator

import "time"

// WorkloadSummary describes the generated workload without dumping every
// access, sized for dashboards and logs
type WorkloadSummary struct {
	ProcessCount      int `json:"processCount"`
	FrameCount        int `json:"frameCount"`
	TotalReferences   int `json:"totalReferences"`
	TotalDiskRequests int `json:"totalDiskRequests"`
	HeadStart         int `json:"headStart"`
}

// Report is the aggregate handed to presentation collaborators: the raw
// tallies and metrics plus the classifier outcome. The core never depends
// on what the consumer does with it.
type Report struct {
	Mode      Mode             `json:"mode"`
	Timestamp time.Time        `json:"timestamp"`
	Workload  *WorkloadSummary `json:"workload,omitempty"` // Simulation only
	Metrics   MetricsRecord    `json:"metrics"`
	Analysis  Analysis         `json:"analysis"`
}

func summarize(w *Workload) *WorkloadSummary {
	refs := 0
	reqs := 0
	for _, p := range w.Processes {
		refs += len(p.PageReferences)
		reqs += len(p.DiskRequests)
	}
	return &WorkloadSummary{
		ProcessCount:      len(w.Processes),
		FrameCount:        w.FrameCount,
		TotalReferences:   refs,
		TotalDiskRequests: reqs,
		HeadStart:         w.HeadStart,
	}
}
