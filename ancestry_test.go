package memsys_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/memsys"
	"github.com/vkngwrapper/memsys/tracking"
)

func TestIsAncestor(t *testing.T) {
	root := createRoot(t)
	defer func() { require.NoError(t, root.Destroy()) }()

	a, err := tracking.New(root, tracking.CreateOptions{Identity: "a"})
	require.NoError(t, err)
	b, err := tracking.New(a, tracking.CreateOptions{Identity: "b"})
	require.NoError(t, err)
	c, err := tracking.New(root, tracking.CreateOptions{Identity: "c"})
	require.NoError(t, err)

	require.True(t, memsys.IsAncestor(root, a))
	require.True(t, memsys.IsAncestor(root, b))
	require.True(t, memsys.IsAncestor(a, b))

	require.False(t, memsys.IsAncestor(b, a))
	require.False(t, memsys.IsAncestor(a, a))
	require.False(t, memsys.IsAncestor(root, root))
	require.False(t, memsys.IsAncestor(c, b))
	require.False(t, memsys.IsAncestor(nil, b))
	require.False(t, memsys.IsAncestor(root, nil))

	require.Same(t, root, b.Root())
	require.Same(t, root, root.Root())
	require.Equal(t, 2, b.Depth())
	require.Equal(t, 0, root.Depth())
}

func TestIsAncestorAfterDestroy(t *testing.T) {
	root := createRoot(t)
	defer func() { require.NoError(t, root.Destroy()) }()

	a, err := tracking.New(root, tracking.CreateOptions{})
	require.NoError(t, err)
	b, err := tracking.New(a, tracking.CreateOptions{})
	require.NoError(t, err)

	require.NoError(t, a.Destroy())
	require.False(t, memsys.IsAncestor(root, a))
	require.False(t, memsys.IsAncestor(root, b))
	require.False(t, memsys.IsAncestor(a, b))
	require.Same(t, b, b.Root())
}

func TestAccounting(t *testing.T) {
	root := createRoot(t)
	defer func() { require.NoError(t, root.Destroy()) }()

	system, err := tracking.New(root, tracking.CreateOptions{Identity: "system"})
	require.NoError(t, err)
	accounting, err := tracking.New(root, tracking.CreateOptions{Identity: "accounting"})
	require.NoError(t, err)

	require.Same(t, system, system.Accounting())

	require.ErrorIs(t, system.SetAccounting(system), memsys.ErrInvalidState)
	require.NoError(t, system.SetAccounting(accounting))
	require.Same(t, accounting, system.Accounting())
	require.NoError(t, root.ValidateTree())

	require.NoError(t, system.SetAccounting(nil))
	require.Same(t, system, system.Accounting())

	require.NoError(t, accounting.Destroy())
	require.ErrorIs(t, system.SetAccounting(accounting), memsys.ErrInvalidState)
}

func TestChildrenSnapshot(t *testing.T) {
	root := createRoot(t)
	defer func() { require.NoError(t, root.Destroy()) }()

	child, err := tracking.New(root, tracking.CreateOptions{})
	require.NoError(t, err)

	children := root.Children()
	children[0] = nil
	require.Equal(t, []*memsys.MemorySystem{child}, root.Children())
}
