package memsys

import (
	"sync/atomic"

	cerrors "github.com/cockroachdb/errors"
	"github.com/vkngwrapper/memsys/internal/utils"
	"github.com/vkngwrapper/memsys/memutils"
	"golang.org/x/exp/slog"
)

// StdCreateFlags indicate specific behaviors of a standard memory system
type StdCreateFlags int32

const (
	// StdCreateThreadSafe gives the standard memory system a lock, so that its children and
	// cleanups may be modified from multiple goroutines
	StdCreateThreadSafe StdCreateFlags = 1 << iota
)

// StdIdentity is the identity of standard memory systems created without an explicit one
const StdIdentity = "STANDARD"

// StdCreateOptions contains optional settings when creating a standard memory system
type StdCreateOptions struct {
	Flags StdCreateFlags
	// Identity defaults to StdIdentity
	Identity string
	// MaxBytes limits the number of live bytes the memory system will hand out. Requests
	// beyond the limit fail as though the heap were exhausted. 0 means no limit.
	MaxBytes int
}

// stdAllocator passes every request straight through to the Go heap. It does not track
// individual blocks and so cannot be reset.
type stdAllocator struct {
	maxBytes  int64
	liveBytes atomic.Int64
	liveCount atomic.Int64
}

var _ Allocator = &stdAllocator{}
var _ Callocator = &stdAllocator{}
var _ Reallocator = &stdAllocator{}
var _ StatisticsReporter = &stdAllocator{}

// heapAlloc returns nil instead of panicking when the runtime refuses the size
func heapAlloc(size int) (mem []byte) {
	defer func() {
		if recover() != nil {
			mem = nil
		}
	}()

	return make([]byte, size)
}

// reserve adjusts the live byte count by delta, refusing growth past maxBytes
func (a *stdAllocator) reserve(delta int64) bool {
	if a.maxBytes == 0 || delta <= 0 {
		a.liveBytes.Add(delta)
		return true
	}

	for {
		current := a.liveBytes.Load()
		if current+delta > a.maxBytes {
			return false
		}
		if a.liveBytes.CompareAndSwap(current, current+delta) {
			return true
		}
	}
}

func (a *stdAllocator) Malloc(size int) []byte {
	if !a.reserve(int64(size)) {
		return nil
	}

	mem := heapAlloc(size)
	if mem == nil {
		a.reserve(-int64(size))
		return nil
	}

	a.liveCount.Add(1)
	return mem
}

// Calloc is Malloc: the Go heap always hands out zeroed memory
func (a *stdAllocator) Calloc(size int) []byte {
	return a.Malloc(size)
}

func (a *stdAllocator) Realloc(mem []byte, size int) []byte {
	if size == len(mem) {
		return mem
	}

	delta := int64(size - cap(mem))
	if !a.reserve(delta) {
		return nil
	}

	newMem := heapAlloc(size)
	if newMem == nil {
		a.reserve(-delta)
		return nil
	}

	copy(newMem, mem)
	return newMem
}

// Free drops the live accounting for mem; the Go heap reclaims it once it is unreachable
func (a *stdAllocator) Free(mem []byte) error {
	a.reserve(-int64(cap(mem)))
	a.liveCount.Add(-1)
	return nil
}

func (a *stdAllocator) Destroy() error {
	a.liveBytes.Store(0)
	a.liveCount.Store(0)
	return nil
}

func (a *stdAllocator) AddStatistics(stats *memutils.Statistics) {
	count := int(a.liveCount.Load())
	bytes := int(a.liveBytes.Load())

	stats.BlockCount += count
	stats.BlockBytes += bytes
	stats.AllocationCount += count
	stats.AllocationBytes += bytes
}

// lockingStdAllocator is a stdAllocator that declares itself safe for concurrent use
type lockingStdAllocator struct {
	stdAllocator
	mutex utils.OptionalMutex
}

var _ Locker = &lockingStdAllocator{}
var _ TryLocker = &lockingStdAllocator{}

func (a *lockingStdAllocator) Lock() error {
	a.mutex.Lock()
	return nil
}

func (a *lockingStdAllocator) Unlock() error {
	a.mutex.Unlock()
	return nil
}

func (a *lockingStdAllocator) TryLock() bool {
	return a.mutex.TryLock()
}

// StdCreate creates a root memory system that allocates directly from the Go heap.
// Standard memory systems support Calloc and Realloc but cannot be reset.
//
// logger - The logger used by the memory system and inherited by its descendants. If nil,
// slog.Default() is used.
//
// options - Optional parameters: it is valid to leave all the fields blank
func StdCreate(logger *slog.Logger, options StdCreateOptions) (*MemorySystem, error) {
	if options.MaxBytes < 0 {
		return nil, cerrors.Newf("StdCreateOptions.MaxBytes must not be negative, but was %d", options.MaxBytes)
	}

	identity := options.Identity
	if identity == "" {
		identity = StdIdentity
	}

	var alloc Allocator
	if options.Flags&StdCreateThreadSafe != 0 {
		alloc = &lockingStdAllocator{
			stdAllocator: stdAllocator{maxBytes: int64(options.MaxBytes)},
			mutex:        utils.OptionalMutex{UseMutex: true},
		}
	} else {
		alloc = &stdAllocator{maxBytes: int64(options.MaxBytes)}
	}

	system := New(logger, identity, alloc)
	err := system.Init(nil)
	if err != nil {
		return nil, err
	}

	return system, nil
}
