package simulator

// FaultTally holds page-fault counts for every replacement policy, all
// computed over the same reference string and frame pool
type FaultTally struct {
	FIFO            int     `json:"fifo"`
	LRU             int     `json:"lru"`
	Optimal         int     `json:"optimal"`
	TotalReferences int     `json:"totalReferences"`
	FaultRate       float64 `json:"faultRate"` // LRU faults / total references
}

// SimulatePaging replays a reference string through FIFO, LRU and Optimal
// replacement over a fixed frame pool. Each policy runs independently with
// its own per-call state, so concurrent invocations cannot interfere.
// An empty reference string yields an all-zero tally.
func SimulatePaging(refs []int, frameCount int) (FaultTally, error) {
	if frameCount < 1 {
		return FaultTally{}, ErrInvalidConfig("frameCount must be >= 1")
	}

	tally := FaultTally{TotalReferences: len(refs)}
	if len(refs) == 0 {
		return tally, nil
	}

	tally.FIFO = fifoFaults(refs, frameCount)
	tally.LRU = lruFaults(refs, frameCount)
	tally.Optimal = optimalFaults(refs, frameCount)
	tally.FaultRate = float64(tally.LRU) / float64(len(refs))
	return tally, nil
}

func resident(frames []int, page int) int {
	for i, p := range frames {
		if p == page {
			return i
		}
	}
	return -1
}

// fifoFaults evicts the page that has been resident longest
func fifoFaults(refs []int, frameCount int) int {
	frames := make([]int, 0, frameCount)
	faults := 0

	for _, page := range refs {
		if resident(frames, page) >= 0 {
			continue
		}
		faults++
		if len(frames) < frameCount {
			frames = append(frames, page)
		} else {
			// Queue head is the oldest resident page
			copy(frames, frames[1:])
			frames[frameCount-1] = page
		}
	}
	return faults
}

// lruFaults evicts the page whose last access is furthest in the past
func lruFaults(refs []int, frameCount int) int {
	frames := make([]int, 0, frameCount)
	lastUsed := make(map[int]int, frameCount)
	faults := 0

	for idx, page := range refs {
		if resident(frames, page) >= 0 {
			lastUsed[page] = idx
			continue
		}

		faults++
		if len(frames) < frameCount {
			frames = append(frames, page)
		} else {
			victim := 0
			for i := 1; i < len(frames); i++ {
				if lastUsed[frames[i]] < lastUsed[frames[victim]] {
					victim = i
				}
			}
			delete(lastUsed, frames[victim])
			frames[victim] = page
		}
		lastUsed[page] = idx
	}
	return faults
}

// optimalFaults evicts the resident page whose next future reference is
// farthest away; a page never referenced again sorts as farthest. Ties
// break toward the lowest page identifier so runs are deterministic.
// The lookahead indexes into the fixed reference string, no copies.
func optimalFaults(refs []int, frameCount int) int {
	frames := make([]int, 0, frameCount)
	faults := 0

	for idx, page := range refs {
		if resident(frames, page) >= 0 {
			continue
		}

		faults++
		if len(frames) < frameCount {
			frames = append(frames, page)
			continue
		}

		victim := -1
		victimNext := -1
		for i, framePage := range frames {
			next := nextUse(refs, idx+1, framePage)
			switch {
			case next > victimNext:
				victim, victimNext = i, next
			case next == victimNext && framePage < frames[victim]:
				victim = i
			}
		}
		frames[victim] = page
	}
	return faults
}

// nextUse returns the index of the next reference to page at or after from,
// or len(refs) if the page is never referenced again
func nextUse(refs []int, from, page int) int {
	for i := from; i < len(refs); i++ {
		if refs[i] == page {
			return i
		}
	}
	return len(refs)
}
