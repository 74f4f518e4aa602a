package tracking_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/memsys"
	"github.com/vkngwrapper/memsys/memutils"
	mock_memsys "github.com/vkngwrapper/memsys/mocks"
	"github.com/vkngwrapper/memsys/tracking"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

func readyRoot(t *testing.T) *memsys.MemorySystem {
	root, err := memsys.StdCreate(slog.New(slog.NewTextHandler(os.Stdout)), memsys.StdCreateOptions{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if root.IsLive() {
			require.NoError(t, root.Destroy())
		}
	})
	return root
}

func rootStatistics(t *testing.T, root *memsys.MemorySystem) memutils.Statistics {
	var stats memutils.Statistics
	require.True(t, root.Statistics(&stats))
	return stats
}

func TestNewRequiresParentOrUpstream(t *testing.T) {
	_, err := tracking.New(nil, tracking.CreateOptions{})
	require.ErrorIs(t, err, memsys.ErrInvalidState)
}

func TestNewDetachedRoot(t *testing.T) {
	root := readyRoot(t)
	system, err := tracking.New(nil, tracking.CreateOptions{Identity: "detached", Upstream: root})
	require.NoError(t, err)

	require.Nil(t, system.Parent())
	require.Empty(t, root.Children())
	require.Same(t, root.Logger(), system.Logger())

	require.NotNil(t, system.Malloc(32))
	require.Equal(t, 32, rootStatistics(t, root).AllocationBytes)

	require.NoError(t, system.Destroy())
	require.Zero(t, rootStatistics(t, root).AllocationBytes)
}

func TestAllocateWhileLocked(t *testing.T) {
	root := readyRoot(t)
	system, err := tracking.New(root, tracking.CreateOptions{})
	require.NoError(t, err)

	require.NoError(t, system.Lock())
	mem := system.Malloc(16)
	require.NotNil(t, mem)
	require.True(t, system.Allocator().(memsys.Owner).Owns(mem))
	require.NoError(t, system.Free(mem))
	require.NoError(t, system.Unlock())

	require.NoError(t, system.Validate())
}

func TestNewRequiresLiveUpstream(t *testing.T) {
	root := readyRoot(t)
	other, err := memsys.StdCreate(nil, memsys.StdCreateOptions{})
	require.NoError(t, err)
	require.NoError(t, other.Destroy())

	_, err = tracking.New(root, tracking.CreateOptions{Upstream: other})
	require.ErrorIs(t, err, memsys.ErrInvalidState)
	require.Empty(t, root.Children())
}

func TestTrackingCapabilities(t *testing.T) {
	root := readyRoot(t)
	system, err := tracking.New(root, tracking.CreateOptions{})
	require.NoError(t, err)

	require.Equal(t, tracking.Identity, system.Identity())
	require.True(t, system.Capabilities().Has(memsys.CapabilityCalloc|memsys.CapabilityRealloc|memsys.CapabilityReset|
		memsys.CapabilityLock|memsys.CapabilityOwnership|memsys.CapabilityStatistics))
}

func TestResetReturnsBlocksUpstream(t *testing.T) {
	root := readyRoot(t)
	system, err := tracking.New(root, tracking.CreateOptions{Identity: "scratch"})
	require.NoError(t, err)

	first := system.Malloc(100)
	require.NotNil(t, first)
	second := system.Calloc(50)
	require.Equal(t, make([]byte, 50), second)

	require.Equal(t, 150, rootStatistics(t, root).AllocationBytes)
	require.True(t, system.Allocator().(memsys.Owner).Owns(first))

	require.NoError(t, system.Reset())
	require.Zero(t, rootStatistics(t, root).AllocationBytes)
	require.False(t, system.Allocator().(memsys.Owner).Owns(first))
	require.ErrorIs(t, system.Free(first), memsys.ErrContractViolation)

	require.NoError(t, system.Reset())

	third := system.Malloc(10)
	require.NotNil(t, third)
	require.Equal(t, 10, rootStatistics(t, root).AllocationBytes)
}

func TestDestroyReturnsBlocksUpstream(t *testing.T) {
	root := readyRoot(t)
	system, err := tracking.New(root, tracking.CreateOptions{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NotNil(t, system.Malloc(32))
	}
	require.Equal(t, 10, rootStatistics(t, root).AllocationCount)

	require.NoError(t, system.Destroy())
	require.Zero(t, rootStatistics(t, root).AllocationCount)
	require.Empty(t, root.Children())
}

func TestFreeRejectsForeignBlocks(t *testing.T) {
	root := readyRoot(t)
	system, err := tracking.New(root, tracking.CreateOptions{})
	require.NoError(t, err)

	foreign := root.Malloc(16)
	require.ErrorIs(t, system.Free(foreign), memsys.ErrContractViolation)
	require.Nil(t, system.Realloc(foreign, 32))

	mem := system.Malloc(16)
	require.NoError(t, system.Free(mem))
	require.ErrorIs(t, system.Free(mem), memsys.ErrContractViolation)
}

func TestRealloc(t *testing.T) {
	root := readyRoot(t)
	system, err := tracking.New(root, tracking.CreateOptions{})
	require.NoError(t, err)

	mem := system.Realloc(nil, 100)
	require.Len(t, mem, 100)
	for i := range mem {
		mem[i] = byte(i)
	}

	grown := system.Realloc(mem, 500)
	require.Len(t, grown, 500)
	for i := 0; i < 100; i++ {
		require.Equal(t, byte(i), grown[i])
	}
	require.True(t, system.Allocator().(memsys.Owner).Owns(grown))

	var stats memutils.DetailedStatistics
	stats.Clear()
	require.True(t, system.DetailedStatistics(&stats))
	require.Equal(t, 1, stats.AllocationCount)
	require.Equal(t, 500, stats.AllocationBytes)

	require.Nil(t, system.Realloc(grown, 0))
	require.Zero(t, rootStatistics(t, root).AllocationCount)
}

func TestReallocWithoutUpstreamRealloc(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := readyRoot(t)

	upstreamAlloc := mock_memsys.NewMockAllocator(ctrl)
	upstream := memsys.New(nil, "upstream", upstreamAlloc)
	require.NoError(t, upstream.Init(root))

	system, err := tracking.New(upstream, tracking.CreateOptions{})
	require.NoError(t, err)

	original := make([]byte, 4)
	copy(original, "abcd")
	moved := make([]byte, 8)

	gomock.InOrder(
		upstreamAlloc.EXPECT().Malloc(4).Return(original),
		upstreamAlloc.EXPECT().Malloc(8).Return(moved),
		upstreamAlloc.EXPECT().Free(original).Return(nil),
		upstreamAlloc.EXPECT().Free(moved).Return(nil),
		upstreamAlloc.EXPECT().Destroy().Return(nil),
	)

	mem := system.Malloc(4)
	require.NotNil(t, mem)

	grown := system.Realloc(mem, 8)
	require.Equal(t, []byte("abcd\x00\x00\x00\x00"), grown)

	require.NoError(t, upstream.Destroy())
	require.True(t, system.IsDestroyed())
}

func TestTrackingUpstreamOption(t *testing.T) {
	root := readyRoot(t)
	other, err := memsys.StdCreate(nil, memsys.StdCreateOptions{Identity: "other"})
	require.NoError(t, err)
	defer func() { require.NoError(t, other.Destroy()) }()

	system, err := tracking.New(root, tracking.CreateOptions{Upstream: other})
	require.NoError(t, err)
	require.Same(t, root, system.Parent())

	require.NotNil(t, system.Malloc(64))
	require.Zero(t, rootStatistics(t, root).AllocationBytes)
	require.Equal(t, 64, rootStatistics(t, other).AllocationBytes)

	require.NoError(t, system.Destroy())
	require.Zero(t, rootStatistics(t, other).AllocationBytes)
}

func TestExternallySynchronized(t *testing.T) {
	root := readyRoot(t)
	system, err := tracking.New(root, tracking.CreateOptions{Flags: tracking.CreateExternallySynchronized})
	require.NoError(t, err)

	require.NoError(t, system.Lock())
	require.NoError(t, system.Validate())
	require.NoError(t, system.Unlock())
}
