package simulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPaging_ClassicReferenceString pins the fault counts for the classic
// Belady teaching example with 3 frames. These values are fixed golden
// numbers: FIFO=9, LRU=10, Optimal=7.
func TestPaging_ClassicReferenceString(t *testing.T) {
	refs := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

	tally, err := SimulatePaging(refs, 3)
	require.NoError(t, err)

	require.Equal(t, 9, tally.FIFO)
	require.Equal(t, 10, tally.LRU)
	require.Equal(t, 7, tally.Optimal)
	require.Equal(t, 12, tally.TotalReferences)
	require.InDelta(t, 10.0/12.0, tally.FaultRate, 1e-9)
}

func TestPaging_EmptyReferenceString(t *testing.T) {
	tally, err := SimulatePaging(nil, 4)
	require.NoError(t, err)
	require.Equal(t, FaultTally{}, tally)
}

func TestPaging_InvalidFrameCount(t *testing.T) {
	_, err := SimulatePaging([]int{1, 2, 3}, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "frameCount")
}

// TestPaging_ColdStartOnly verifies that a frame pool large enough to hold
// every distinct page faults exactly once per distinct page, for all
// policies.
func TestPaging_ColdStartOnly(t *testing.T) {
	refs := []int{0, 1, 2, 3, 0, 1, 2, 3, 2, 1, 0}

	tally, err := SimulatePaging(refs, 8)
	require.NoError(t, err)

	require.Equal(t, 4, tally.FIFO)
	require.Equal(t, 4, tally.LRU)
	require.Equal(t, 4, tally.Optimal)
}

func TestPaging_SingleFrame(t *testing.T) {
	// With one frame every switch to a different page faults
	refs := []int{7, 7, 7, 3, 7, 3}

	tally, err := SimulatePaging(refs, 1)
	require.NoError(t, err)

	require.Equal(t, 4, tally.FIFO)
	require.Equal(t, 4, tally.LRU)
	require.Equal(t, 4, tally.Optimal)
}

func TestPaging_Deterministic(t *testing.T) {
	refs := []int{5, 1, 5, 2, 3, 5, 1, 4, 2, 5}

	first, err := SimulatePaging(refs, 3)
	require.NoError(t, err)
	second, err := SimulatePaging(refs, 3)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// TestPaging_FaultBounds checks 0 <= faults <= len(refs) for every policy
// across randomized reference strings.
func TestPaging_FaultBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		length := 1 + rng.Intn(200)
		frames := 1 + rng.Intn(16)
		refs := make([]int, length)
		for i := range refs {
			refs[i] = rng.Intn(frames * 2)
		}

		tally, err := SimulatePaging(refs, frames)
		require.NoError(t, err)

		for name, faults := range map[string]int{"FIFO": tally.FIFO, "LRU": tally.LRU, "Optimal": tally.Optimal} {
			require.GreaterOrEqual(t, faults, 0, "%s faults negative (trial %d)", name, trial)
			require.LessOrEqual(t, faults, length, "%s faults exceed reference length (trial %d)", name, trial)
		}
	}
}

// TestPaging_OptimalIsLowerBound checks the optimality property: Optimal
// never faults more than FIFO or LRU on the same input.
func TestPaging_OptimalIsLowerBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		length := 1 + rng.Intn(150)
		frames := 1 + rng.Intn(10)
		refs := make([]int, length)
		for i := range refs {
			refs[i] = rng.Intn(frames * 2)
		}

		tally, err := SimulatePaging(refs, frames)
		require.NoError(t, err)

		require.LessOrEqual(t, tally.Optimal, tally.FIFO, "Optimal beat by FIFO (trial %d, refs %v, frames %d)", trial, refs, frames)
		require.LessOrEqual(t, tally.Optimal, tally.LRU, "Optimal beat by LRU (trial %d, refs %v, frames %d)", trial, refs, frames)
	}
}
