package memsys_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/memsys"
	"github.com/vkngwrapper/memsys/memutils"
	"github.com/vkngwrapper/memsys/tracking"
)

type structureNode struct {
	Identity     string
	State        string
	Capabilities string
	Cleanups     int
	Accounting   string
	Statistics   map[string]any
	Children     []structureNode
}

func TestBuildStructureString(t *testing.T) {
	root := createRoot(t)
	defer func() { require.NoError(t, root.Destroy()) }()

	first, err := tracking.New(root, tracking.CreateOptions{Identity: "first"})
	require.NoError(t, err)
	_, err = tracking.New(first, tracking.CreateOptions{Identity: "nested"})
	require.NoError(t, err)
	_, err = tracking.New(root, tracking.CreateOptions{Identity: "second"})
	require.NoError(t, err)

	require.NotNil(t, first.Malloc(100))
	require.NoError(t, first.CleanupRegister(memsys.ChildCleanup, nil, func(data any) error { return nil }))

	var node structureNode
	require.NoError(t, json.Unmarshal([]byte(root.BuildStructureString()), &node))

	require.Equal(t, memsys.StdIdentity, node.Identity)
	require.Equal(t, "Live", node.State)
	require.Len(t, node.Children, 2)

	require.Equal(t, "first", node.Children[0].Identity)
	require.Equal(t, 1, node.Children[0].Cleanups)
	require.EqualValues(t, 1, node.Children[0].Statistics["AllocationCount"])
	require.EqualValues(t, 100, node.Children[0].Statistics["AllocationBytes"])
	require.Len(t, node.Children[0].Children, 1)
	require.Equal(t, "nested", node.Children[0].Children[0].Identity)
	require.Empty(t, node.Children[0].Children[0].Children)

	require.Equal(t, "second", node.Children[1].Identity)
}

func TestStatisticsUnsupported(t *testing.T) {
	root := createRoot(t)
	defer func() { require.NoError(t, root.Destroy()) }()

	var detailed memutils.DetailedStatistics
	detailed.Clear()
	require.False(t, root.DetailedStatistics(&detailed))

	var stats memutils.Statistics
	require.True(t, root.Statistics(&stats))
}

func TestBuildAncestryString(t *testing.T) {
	root := createRoot(t)
	defer func() { require.NoError(t, root.Destroy()) }()

	middle, err := tracking.New(root, tracking.CreateOptions{Identity: "middle"})
	require.NoError(t, err)
	leaf, err := tracking.New(middle, tracking.CreateOptions{Identity: "leaf"})
	require.NoError(t, err)
	_, err = tracking.New(leaf, tracking.CreateOptions{Identity: "below"})
	require.NoError(t, err)

	var nodes []structureNode
	require.NoError(t, json.Unmarshal([]byte(leaf.BuildAncestryString()), &nodes))

	require.Len(t, nodes, 3)
	require.Equal(t, "leaf", nodes[0].Identity)
	require.Equal(t, "middle", nodes[1].Identity)
	require.Equal(t, memsys.StdIdentity, nodes[2].Identity)
	for _, node := range nodes {
		require.Empty(t, node.Children)
		require.Equal(t, "Live", node.State)
	}

	require.NoError(t, json.Unmarshal([]byte(root.BuildAncestryString()), &nodes))
	require.Len(t, nodes, 1)
}
