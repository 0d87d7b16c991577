package simulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDisk_ClassicRequestQueue pins the totals for the classic teaching
// example: queue [98,183,37,122,14,124,65,67] from head 53 gives FCFS=640
// and SSTF=236 (65,67,37,14,98,122,124,183).
func TestDisk_ClassicRequestQueue(t *testing.T) {
	requests := []int{98, 183, 37, 122, 14, 124, 65, 67}

	tally := SimulateDisk(requests, 53)

	require.Equal(t, 640, tally.FCFS)
	require.Equal(t, 236, tally.SSTF)
	require.Equal(t, 8, tally.RequestCount)
	require.InDelta(t, 80.0, tally.AverageSeek, 1e-9)

	require.Equal(t, []int{65, 67, 37, 14, 98, 122, 124, 183}, sstfOrder(requests, 53))
}

func TestDisk_EmptyQueue(t *testing.T) {
	tally := SimulateDisk(nil, 100)
	require.Equal(t, SeekTally{}, tally)
}

// TestDisk_SingleRequest: both policies travel the same distance when
// there is nothing to reorder.
func TestDisk_SingleRequest(t *testing.T) {
	tally := SimulateDisk([]int{42}, 100)
	require.Equal(t, 58, tally.FCFS)
	require.Equal(t, 58, tally.SSTF)
}

// TestDisk_SSTFTieBreak: two requests equidistant from the head; the lower
// track must be serviced first.
func TestDisk_SSTFTieBreak(t *testing.T) {
	order := sstfOrder([]int{60, 40, 70}, 50)
	require.Equal(t, []int{40, 60, 70}, order)

	tally := SimulateDisk([]int{60, 40, 70}, 50)
	require.Equal(t, 40, tally.SSTF)
}

// TestDisk_SSTFServicesEachRequestOnce: SSTF must never revisit a serviced
// request and must service the whole queue, duplicates included.
func TestDisk_SSTFServicesEachRequestOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(40)
		requests := make([]int, n)
		for i := range requests {
			requests[i] = rng.Intn(200)
		}
		head := rng.Intn(200)

		order := sstfOrder(requests, head)
		require.Len(t, order, n)

		want := map[int]int{}
		for _, r := range requests {
			want[r]++
		}
		got := map[int]int{}
		for _, r := range order {
			got[r]++
		}
		require.Equal(t, want, got, "SSTF must service exactly the request queue (trial %d)", trial)
	}
}

// TestDisk_TotalsNonNegative: SSTF is greedy, not globally optimal, so
// SSTF <= FCFS is NOT guaranteed; both totals are still never negative.
func TestDisk_TotalsNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(30)
		requests := make([]int, n)
		for i := range requests {
			requests[i] = rng.Intn(500)
		}

		tally := SimulateDisk(requests, rng.Intn(500))
		require.GreaterOrEqual(t, tally.FCFS, 0)
		require.GreaterOrEqual(t, tally.SSTF, 0)
	}
}

func TestDisk_HeadAlreadyOnTrack(t *testing.T) {
	tally := SimulateDisk([]int{100, 100, 100}, 100)
	require.Equal(t, 0, tally.FCFS)
	require.Equal(t, 0, tally.SSTF)
	require.Equal(t, 3, tally.RequestCount)
}
