package memutils_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/memsys/memutils"
)

func TestCheckPow2(t *testing.T) {
	require.NoError(t, memutils.CheckPow2(1, "one"))
	require.NoError(t, memutils.CheckPow2(uint64(1<<40), "large"))
	require.NoError(t, memutils.CheckPow2(int32(4096), "page"))

	for _, value := range []int{0, -8, 3, 6, 1000} {
		err := memutils.CheckPow2(value, "value")
		require.ErrorIs(t, err, memutils.PowerOfTwoError)
	}
}

func TestAlign(t *testing.T) {
	require.Equal(t, 0, memutils.AlignUp(0, 8))
	require.Equal(t, 8, memutils.AlignUp(1, 8))
	require.Equal(t, 8, memutils.AlignUp(8, 8))
	require.Equal(t, 4096, memutils.AlignUp(4000, 4096))

	require.Equal(t, 0, memutils.AlignDown(7, 8))
	require.Equal(t, 16, memutils.AlignDown(23, 8))

	require.Equal(t, 24, memutils.AlignDefault(17))
	require.Equal(t, 16, memutils.AlignDefault(16))
}

func TestDetailedStatistics(t *testing.T) {
	var stats memutils.DetailedStatistics
	stats.Clear()
	stats.BlockCount = 1
	stats.BlockBytes = 1000
	stats.AddAllocation(100)
	stats.AddAllocation(300)
	stats.AddUnusedRange(600)

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      1,
			BlockBytes:      1000,
			AllocationCount: 2,
			AllocationBytes: 400,
		},
		UnusedRangeCount:   1,
		AllocationSizeMin:  100,
		AllocationSizeMax:  300,
		UnusedRangeSizeMin: 600,
		UnusedRangeSizeMax: 600,
	}, stats)

	var other memutils.DetailedStatistics
	other.Clear()
	other.BlockCount = 1
	other.BlockBytes = 64
	other.AddAllocation(8)
	other.AddUnusedRange(56)

	stats.AddDetailedStatistics(&other)
	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      2,
			BlockBytes:      1064,
			AllocationCount: 3,
			AllocationBytes: 408,
		},
		UnusedRangeCount:   2,
		AllocationSizeMin:  8,
		AllocationSizeMax:  300,
		UnusedRangeSizeMin: 56,
		UnusedRangeSizeMax: 600,
	}, stats)

	stats.Clear()
	require.Equal(t, memutils.DetailedStatistics{
		AllocationSizeMin:  math.MaxInt,
		UnusedRangeSizeMin: math.MaxInt,
	}, stats)
}
