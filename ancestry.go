package memsys

import (
	cerrors "github.com/cockroachdb/errors"
)

// IsAncestor returns true if a lies on b's chain of parents. A memory system is never its
// own ancestor.
func IsAncestor(a, b *MemorySystem) bool {
	if a == nil || b == nil {
		return false
	}

	for parent := b.Parent(); parent != nil; parent = parent.Parent() {
		if parent == a {
			return true
		}
	}

	return false
}

// Identity returns the descriptive label the memory system was created with. Identities
// are not unique.
func (m *MemorySystem) Identity() string {
	return m.identity
}

// Parent returns the memory system this one was initialized beneath, or nil for a root
// or a destroyed memory system
func (m *MemorySystem) Parent() *MemorySystem {
	return m.parent
}

// Root returns the root of the tree this memory system belongs to
func (m *MemorySystem) Root() *MemorySystem {
	root := m
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Depth returns the number of ancestors this memory system has
func (m *MemorySystem) Depth() int {
	var depth int
	for parent := m.parent; parent != nil; parent = parent.parent {
		depth++
	}
	return depth
}

// Children returns a snapshot of this memory system's children, oldest first
func (m *MemorySystem) Children() []*MemorySystem {
	var children []*MemorySystem
	err := m.withLock(func() error {
		children = make([]*MemorySystem, len(m.children))
		copy(children, m.children)
		return nil
	})
	if err != nil {
		return nil
	}
	return children
}

// Accounting returns the memory system used for this memory system's bookkeeping allocations.
// Unless SetAccounting has been called, that is the memory system itself.
func (m *MemorySystem) Accounting() *MemorySystem {
	if m.accounting == nil {
		return m
	}
	return m.accounting
}

// SetAccounting designates a separate memory system for bookkeeping allocations. Passing nil
// reverts to the memory system itself.
func (m *MemorySystem) SetAccounting(accounting *MemorySystem) error {
	if !m.IsLive() {
		return cerrors.Wrapf(ErrInvalidState, "attempted to set the accounting system of %q, which is %s",
			m.identity, m.currentState())
	}

	if accounting == m {
		return cerrors.Wrapf(ErrInvalidState, "memory system %q cannot be its own accounting system", m.identity)
	}

	if accounting != nil && !accounting.IsLive() {
		return cerrors.Wrapf(ErrInvalidState, "accounting system %q is %s", accounting.identity, accounting.currentState())
	}

	return m.withLock(func() error {
		m.accounting = accounting
		return nil
	})
}
