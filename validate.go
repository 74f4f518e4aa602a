package memsys

import (
	cerrors "github.com/cockroachdb/errors"
	"github.com/vkngwrapper/memsys/memutils"
)

var _ memutils.Validatable = &MemorySystem{}

// Validate checks the structural invariants of this memory system: that its parent lists it
// exactly once, that each of its children names it as parent, that its allocator is present
// and that its lock is not being held. It is intended for tests and for debug builds, which
// call it through memutils.DebugValidate; it should only be called on a quiescent tree.
func (m *MemorySystem) Validate() error {
	if m.vtable.alloc == nil {
		return cerrors.Wrapf(ErrInvalidState, "memory system %q has no allocator", m.identity)
	}

	state := m.currentState()
	if state == stateUnlinked || state == stateDestroyed {
		if m.parent != nil || len(m.children) > 0 {
			return cerrors.Wrapf(ErrInvalidState, "memory system %q is %s but is still linked into a tree", m.identity, state)
		}
		return nil
	}

	if m.vtable.tryLocker != nil {
		if !m.vtable.tryLocker.TryLock() {
			return cerrors.Newf("the lock of memory system %q is held", m.identity)
		}
		if err := m.vtable.locker.Unlock(); err != nil {
			return err
		}
	}

	if m.parent != nil {
		if !m.parent.usable() {
			return cerrors.Wrapf(ErrInvalidState, "memory system %q has parent %q, which is %s",
				m.identity, m.parent.identity, m.parent.currentState())
		}

		var occurrences int
		for _, sibling := range m.parent.Children() {
			if sibling == m {
				occurrences++
			}
		}
		if occurrences != 1 {
			return cerrors.Newf("memory system %q appears %d times in the children of %q", m.identity, occurrences, m.parent.identity)
		}
	}

	seen := make(map[*MemorySystem]struct{})
	for _, child := range m.Children() {
		if _, duplicate := seen[child]; duplicate {
			return cerrors.Newf("memory system %q lists child %q more than once", m.identity, child.identity)
		}
		seen[child] = struct{}{}

		if child.parent != m {
			return cerrors.Newf("memory system %q lists child %q, which does not name it as parent", m.identity, child.identity)
		}

		if !child.usable() {
			return cerrors.Wrapf(ErrInvalidState, "memory system %q lists child %q, which is %s",
				m.identity, child.identity, child.currentState())
		}
	}

	if m.accounting != nil && m.accounting.currentState() == stateDestroyed {
		return cerrors.Wrapf(ErrInvalidState, "memory system %q uses accounting system %q, which has been destroyed",
			m.identity, m.accounting.identity)
	}

	return nil
}

// ValidateTree runs Validate on this memory system and every descendant
func (m *MemorySystem) ValidateTree() error {
	err := m.Validate()
	if err != nil {
		return err
	}

	for _, child := range m.Children() {
		err = child.ValidateTree()
		if err != nil {
			return err
		}
	}

	return nil
}
