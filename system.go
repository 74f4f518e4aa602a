package memsys

import (
	"sync/atomic"

	cerrors "github.com/cockroachdb/errors"
	"github.com/vkngwrapper/memsys/memutils"
	"golang.org/x/exp/slog"
)

type systemState uint32

const (
	stateUnlinked systemState = iota
	stateLive
	stateDestroying
	stateDestroyed
)

var systemStateMapping = map[systemState]string{
	stateUnlinked:   "Unlinked",
	stateLive:       "Live",
	stateDestroying: "Destroying",
	stateDestroyed:  "Destroyed",
}

func (s systemState) String() string {
	return systemStateMapping[s]
}

// MemorySystem is a single allocation scope within a tree of memory systems. It owns its
// children: destroying a MemorySystem destroys every descendant first.
//
// A MemorySystem pointer is its handle. Destroyed memory systems are never reused, so
// operations on a destroyed handle are reliably reported as errors.
type MemorySystem struct {
	logger   *slog.Logger
	identity string
	vtable   vtable
	state    atomic.Uint32
	postInit atomic.Bool

	parent     *MemorySystem
	children   []*MemorySystem
	accounting *MemorySystem
	cleanups   []cleanup
}

// New creates an unlinked memory system driven by alloc. It must be linked into a tree with
// Init before it can be used. If logger is nil, the memory system uses its parent's logger,
// or slog.Default() for a root.
//
// Only concrete allocator constructors should need to call New.
func New(logger *slog.Logger, identity string, alloc Allocator) *MemorySystem {
	return &MemorySystem{
		logger:   logger,
		identity: identity,
		vtable:   newVTable(alloc),
	}
}

func (m *MemorySystem) log() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Logger returns the logger used by this memory system
func (m *MemorySystem) Logger() *slog.Logger {
	return m.log()
}

func (m *MemorySystem) currentState() systemState {
	return systemState(m.state.Load())
}

// usable returns true while allocation traffic is permitted, which includes the teardown
// window in which pre-destroy hooks and cleanups run
func (m *MemorySystem) usable() bool {
	state := m.currentState()
	return state == stateLive || state == stateDestroying
}

// IsLive returns true if the memory system has been initialized and not yet destroyed
func (m *MemorySystem) IsLive() bool {
	return m.currentState() == stateLive
}

// IsDestroyed returns true once teardown of this memory system has begun
func (m *MemorySystem) IsDestroyed() bool {
	state := m.currentState()
	return state == stateDestroying || state == stateDestroyed
}

// Capabilities reports which optional parts of the Allocator contract this memory system supports
func (m *MemorySystem) Capabilities() Capabilities {
	return m.vtable.capabilities()
}

// Allocator returns the allocator that drives this memory system
func (m *MemorySystem) Allocator() Allocator {
	return m.vtable.alloc
}

// Lock acquires the memory system's lock if its allocator is a Locker. Memory systems
// without a lock succeed immediately, so callers may lock uniformly.
//
// The lock is not reentrant. It guards the memory system's children and cleanups and is
// taken by the methods that touch them (Init of a child, Destroy, Children, SetAccounting,
// Validate and the Cleanup methods), so those must not be called while it is held. Malloc, Calloc,
// Realloc and Free do not take it for any allocator in this module.
func (m *MemorySystem) Lock() error {
	if m.vtable.locker == nil {
		return nil
	}
	return m.vtable.locker.Lock()
}

// Unlock releases a lock acquired with Lock
func (m *MemorySystem) Unlock() error {
	if m.vtable.locker == nil {
		return nil
	}
	return m.vtable.locker.Unlock()
}

// withLock runs fn while holding this memory system's lock. The lock is released on every
// exit path.
func (m *MemorySystem) withLock(fn func() error) (err error) {
	err = m.Lock()
	if err != nil {
		return err
	}
	defer func() {
		err = cerrors.CombineErrors(err, m.Unlock())
	}()

	return fn()
}

// Init links the memory system into a tree as the newest child of parent, or as a root
// if parent is nil. It fails with ErrInvalidState if the memory system has already been
// initialized, has no allocator, or if parent is not live.
func (m *MemorySystem) Init(parent *MemorySystem) error {
	if m.vtable.alloc == nil {
		return cerrors.Wrapf(ErrInvalidState, "memory system %q has no allocator", m.identity)
	}

	if state := m.currentState(); state != stateUnlinked {
		return cerrors.Wrapf(ErrInvalidState, "attempted to initialize memory system %q, which is %s", m.identity, state)
	}

	if parent == m {
		return cerrors.Wrapf(ErrInvalidState, "memory system %q cannot be its own parent", m.identity)
	}

	if m.logger == nil && parent != nil {
		m.logger = parent.logger
	}
	m.log().Debug("MemorySystem::Init", slog.String("Identity", m.identity))

	if parent == nil {
		m.state.Store(uint32(stateLive))
		memutils.DebugValidate(m)
		return nil
	}

	err := parent.withLock(func() error {
		if !parent.IsLive() {
			return cerrors.Wrapf(ErrInvalidState, "attempted to initialize memory system %q beneath %q, which is %s",
				m.identity, parent.identity, parent.currentState())
		}

		m.parent = parent
		parent.children = append(parent.children, m)
		m.state.Store(uint32(stateLive))
		return nil
	})
	if err != nil {
		return err
	}

	memutils.DebugValidate(m)
	return nil
}

// PostInit gives the allocator a chance to finish its setup once the memory system is linked
// into the tree. It may be called at most once.
func (m *MemorySystem) PostInit() error {
	m.log().Debug("MemorySystem::PostInit", slog.String("Identity", m.identity))

	if !m.IsLive() {
		return cerrors.Wrapf(ErrInvalidState, "attempted to post-initialize memory system %q, which is %s",
			m.identity, m.currentState())
	}

	if !m.postInit.CompareAndSwap(false, true) {
		return cerrors.Wrapf(ErrInvalidState, "memory system %q has already been post-initialized", m.identity)
	}

	if m.vtable.postIniter == nil {
		return nil
	}

	return m.vtable.postIniter.PostInit()
}

// Reset runs every registered cleanup in registration order and then asks the allocator to
// release all of its memory for reuse. The memory system keeps its place in the tree and
// its children are not affected. Reset fails with ErrOperationUnsupported, without running
// any cleanups, when the allocator is not a Resetter.
func (m *MemorySystem) Reset() error {
	m.log().Debug("MemorySystem::Reset", slog.String("Identity", m.identity))

	if !m.IsLive() {
		return cerrors.Wrapf(ErrInvalidState, "attempted to reset memory system %q, which is %s",
			m.identity, m.currentState())
	}

	if m.vtable.resetter == nil {
		return cerrors.Wrapf(ErrOperationUnsupported, "memory system %q does not track its allocations and cannot be reset", m.identity)
	}

	err := m.runCleanups(AllCleanups)
	return cerrors.CombineErrors(err, m.vtable.resetter.Reset())
}

// Destroy tears down the memory system: every child is destroyed (most recently created
// first), then the allocator's pre-destroy hook and all cleanups run, the memory system is
// unlinked from its parent and finally the allocator releases its memory.
//
// Teardown always runs to completion. The first error encountered is returned, combined
// with any later ones. Destroying a memory system twice fails with ErrContractViolation.
func (m *MemorySystem) Destroy() error {
	if !m.state.CompareAndSwap(uint32(stateLive), uint32(stateDestroying)) {
		state := m.currentState()
		if state == stateUnlinked {
			return cerrors.Wrapf(ErrInvalidState, "attempted to destroy memory system %q, which was never initialized", m.identity)
		}
		return cerrors.Wrapf(ErrContractViolation, "attempted to destroy memory system %q, which is already %s", m.identity, state)
	}

	m.log().Debug("MemorySystem::Destroy", slog.String("Identity", m.identity))

	var err error
	for {
		child := m.lastChild()
		if child == nil {
			break
		}

		err = cerrors.CombineErrors(err, child.Destroy())
		// A child that could not be torn down must still leave the list
		m.removeChild(child)
	}

	if m.vtable.preDestroy != nil {
		err = cerrors.CombineErrors(err, m.vtable.preDestroy.PreDestroy())
	}

	err = cerrors.CombineErrors(err, m.runCleanups(AllCleanups))

	if m.parent != nil {
		m.parent.removeChild(m)
	}

	m.state.Store(uint32(stateDestroyed))
	m.parent = nil
	m.accounting = nil

	err = cerrors.CombineErrors(err, m.vtable.alloc.Destroy())
	if err != nil {
		m.log().Error("memory system teardown completed with errors", slog.String("Identity", m.identity), slog.Any("Error", err))
	}

	return err
}

func (m *MemorySystem) lastChild() *MemorySystem {
	lockErr := m.Lock()
	var child *MemorySystem
	if len(m.children) > 0 {
		child = m.children[len(m.children)-1]
	}
	m.unlockAfter(lockErr)
	return child
}

// removeChild unlinks child from this memory system. Teardown must make progress, so the
// child is removed even if the lock could not be acquired.
func (m *MemorySystem) removeChild(child *MemorySystem) {
	lockErr := m.Lock()
	for i, candidate := range m.children {
		if candidate == child {
			copy(m.children[i:], m.children[i+1:])
			m.children[len(m.children)-1] = nil
			m.children = m.children[:len(m.children)-1]
			break
		}
	}
	m.unlockAfter(lockErr)
}

func (m *MemorySystem) unlockAfter(lockErr error) {
	if lockErr != nil {
		m.log().Error("failed to lock memory system during teardown", slog.String("Identity", m.identity), slog.Any("Error", lockErr))
		return
	}

	err := m.Unlock()
	if err != nil {
		m.log().Error("failed to unlock memory system during teardown", slog.String("Identity", m.identity), slog.Any("Error", err))
	}
}
