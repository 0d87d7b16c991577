package simulator

// SeekTally holds total seek distance for every scheduling policy, computed
// over the same request queue and starting head position
type SeekTally struct {
	FCFS         int     `json:"fcfs"`
	SSTF         int     `json:"sstf"`
	RequestCount int     `json:"requestCount"`
	AverageSeek  float64 `json:"averageSeek"` // FCFS total / request count
}

// SimulateDisk replays a disk-request queue through FCFS and SSTF ordering
// from the given starting head position. Head position is per-call state.
// An empty queue yields an all-zero tally.
func SimulateDisk(requests []int, headStart int) SeekTally {
	tally := SeekTally{RequestCount: len(requests)}
	if len(requests) == 0 {
		return tally
	}

	tally.FCFS = fcfsSeekTotal(requests, headStart)
	tally.SSTF = sstfSeekTotal(requests, headStart)
	tally.AverageSeek = float64(tally.FCFS) / float64(len(requests))
	return tally
}

// fcfsSeekTotal services requests in arrival order
func fcfsSeekTotal(requests []int, head int) int {
	total := 0
	for _, track := range requests {
		total += absDistance(head, track)
		head = track
	}
	return total
}

// sstfSeekTotal greedily services the pending request closest to the
// current head. Greedy, not globally optimal: the total is not guaranteed
// to beat FCFS.
func sstfSeekTotal(requests []int, head int) int {
	total := 0
	for _, track := range sstfOrder(requests, head) {
		total += absDistance(head, track)
		head = track
	}
	return total
}

// sstfOrder returns the service order under shortest-seek-first selection.
// At each step the pending request with minimum head distance wins; ties
// break toward the lowest track number. Every request is serviced exactly
// once.
func sstfOrder(requests []int, head int) []int {
	pending := make([]int, len(requests))
	copy(pending, requests)

	order := make([]int, 0, len(requests))
	for len(pending) > 0 {
		closest := 0
		for i := 1; i < len(pending); i++ {
			di, dc := absDistance(head, pending[i]), absDistance(head, pending[closest])
			if di < dc || (di == dc && pending[i] < pending[closest]) {
				closest = i
			}
		}
		head = pending[closest]
		order = append(order, head)
		pending = append(pending[:closest], pending[closest+1:]...)
	}
	return order
}

func absDistance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
