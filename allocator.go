package memsys

import (
	"strings"

	"github.com/vkngwrapper/memsys/memutils"
)

// Allocator is the contract every concrete memory system implements. A memory system
// dispatches its allocation traffic and lifecycle transitions to its Allocator.
//
// Beyond the three mandatory methods, an Allocator may implement any of Callocator, Reallocator,
// Resetter, PreDestroyer, Locker, PostIniter, Owner and StatisticsReporter. The memory system
// discovers these when it is created and falls back to the documented behavior when they are absent.
type Allocator interface {
	// Malloc returns a block of exactly size bytes, or nil if no memory is available. It is never
	// called with a size <= 0.
	Malloc(size int) []byte
	// Free returns a block produced by this allocator. It is never called with a nil block.
	Free(mem []byte) error
	// Destroy releases everything the allocator still holds. It is called once, after the
	// memory system's children have been destroyed and it has been unlinked from its parent.
	Destroy() error
}

// Callocator is implemented by allocators that can produce zeroed memory more cheaply than
// Malloc followed by a clear. Without it, Calloc zeroes the result of Malloc.
type Callocator interface {
	Calloc(size int) []byte
}

// Reallocator is implemented by allocators that can resize a block. Without it, Realloc
// of an existing block always fails.
type Reallocator interface {
	// Realloc returns a block of size bytes whose first min(len(mem), size) bytes match mem,
	// or nil if no memory is available. On success mem must no longer be used.
	Realloc(mem []byte, size int) []byte
}

// Resetter is implemented by tracking allocators, which can release every block they have
// handed out in a single operation. Without it, Reset fails with ErrOperationUnsupported.
type Resetter interface {
	Reset() error
}

// PreDestroyer is implemented by allocators that need a last chance to act while their
// memory system, its cleanups and its parent are still intact.
type PreDestroyer interface {
	PreDestroy() error
}

// Locker is implemented by allocators that are safe for concurrent use. The lock guards the
// memory system's children and cleanups. Allocators must guard their own bookkeeping with a
// separate lock, so that a caller holding this one can still allocate.
// Without it, Lock and Unlock succeed without doing anything.
type Locker interface {
	Lock() error
	Unlock() error
}

// TryLocker is an optional addition to Locker, used by Validate to detect a lock that was
// left held.
type TryLocker interface {
	TryLock() bool
}

// PostIniter is implemented by allocators that need their memory system to be linked into
// the tree before they are usable, for instance to create children of their own.
type PostIniter interface {
	PostInit() error
}

// Owner is implemented by allocators that can tell whether a block came from them. When it is
// present, Free and Realloc reject blocks from other memory systems.
type Owner interface {
	Owns(mem []byte) bool
}

// StatisticsReporter is implemented by allocators that keep track of their live memory
type StatisticsReporter interface {
	AddStatistics(stats *memutils.Statistics)
}

// DetailedStatisticsReporter is implemented by allocators that can also describe the sizes of
// their allocations and of the unused ranges within their blocks
type DetailedStatisticsReporter interface {
	AddDetailedStatistics(stats *memutils.DetailedStatistics)
}

// Capabilities indicates which optional parts of the Allocator contract an allocator provides
type Capabilities uint32

const (
	CapabilityCalloc Capabilities = 1 << iota
	CapabilityRealloc
	CapabilityReset
	CapabilityPreDestroy
	CapabilityLock
	CapabilityPostInit
	CapabilityOwnership
	CapabilityStatistics
)

var capabilitiesMapping = []struct {
	capability Capabilities
	name       string
}{
	{CapabilityCalloc, "Calloc"},
	{CapabilityRealloc, "Realloc"},
	{CapabilityReset, "Reset"},
	{CapabilityPreDestroy, "PreDestroy"},
	{CapabilityLock, "Lock"},
	{CapabilityPostInit, "PostInit"},
	{CapabilityOwnership, "Ownership"},
	{CapabilityStatistics, "Statistics"},
}

// Has returns true if every capability in other is present
func (c Capabilities) Has(other Capabilities) bool {
	return c&other == other
}

func (c Capabilities) String() string {
	if c == 0 {
		return "None"
	}

	var names []string
	for _, mapping := range capabilitiesMapping {
		if c&mapping.capability != 0 {
			names = append(names, mapping.name)
		}
	}

	return strings.Join(names, "|")
}

// vtable holds the optional parts of an Allocator, resolved once when the memory system
// is created. A nil entry means the capability is absent.
type vtable struct {
	alloc       Allocator
	callocator  Callocator
	reallocator Reallocator
	resetter    Resetter
	preDestroy  PreDestroyer
	locker      Locker
	tryLocker   TryLocker
	postIniter  PostIniter
	owner       Owner
	stats       StatisticsReporter
	detailed    DetailedStatisticsReporter
}

func newVTable(alloc Allocator) vtable {
	table := vtable{alloc: alloc}
	if alloc == nil {
		return table
	}

	table.callocator, _ = alloc.(Callocator)
	table.reallocator, _ = alloc.(Reallocator)
	table.resetter, _ = alloc.(Resetter)
	table.preDestroy, _ = alloc.(PreDestroyer)
	table.locker, _ = alloc.(Locker)
	if table.locker != nil {
		table.tryLocker, _ = alloc.(TryLocker)
	}
	table.postIniter, _ = alloc.(PostIniter)
	table.owner, _ = alloc.(Owner)
	table.stats, _ = alloc.(StatisticsReporter)
	table.detailed, _ = alloc.(DetailedStatisticsReporter)

	return table
}

func (t *vtable) capabilities() Capabilities {
	var c Capabilities
	if t.callocator != nil {
		c |= CapabilityCalloc
	}
	if t.reallocator != nil {
		c |= CapabilityRealloc
	}
	if t.resetter != nil {
		c |= CapabilityReset
	}
	if t.preDestroy != nil {
		c |= CapabilityPreDestroy
	}
	if t.locker != nil {
		c |= CapabilityLock
	}
	if t.postIniter != nil {
		c |= CapabilityPostInit
	}
	if t.owner != nil {
		c |= CapabilityOwnership
	}
	if t.stats != nil || t.detailed != nil {
		c |= CapabilityStatistics
	}
	return c
}
