package tracking

import (
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/memsys"
	"github.com/vkngwrapper/memsys/internal/utils"
	"github.com/vkngwrapper/memsys/memutils"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific tracking memory system behaviors to activate or deactivate
type CreateFlags int32

const (
	// CreateExternallySynchronized ensures that the memory system will not be synchronized
	// internally. The consumer must guarantee it is used from only one goroutine at a time.
	CreateExternallySynchronized CreateFlags = 1 << iota
)

// Identity is the identity of tracking memory systems created without an explicit one
const Identity = "TRACKING"

// CreateOptions contains optional settings when creating a tracking memory system
type CreateOptions struct {
	Flags CreateFlags
	// Identity defaults to Identity
	Identity string
	// Upstream is the memory system that blocks are obtained from and returned to. It
	// defaults to the parent, and must outlive the tracking memory system.
	Upstream *memsys.MemorySystem
}

// allocator obtains every block from its upstream memory system and remembers it, so that
// all of them can be returned at once on Reset or Destroy
type allocator struct {
	logger   *slog.Logger
	identity string
	upstream *memsys.MemorySystem

	// nodeMutex backs the memory system's Lock, mutex guards blocks
	nodeMutex utils.OptionalMutex
	mutex     utils.OptionalRWMutex
	blocks    *swiss.Map[uintptr, []byte]
	liveBytes int
}

var _ memsys.Allocator = &allocator{}
var _ memsys.Callocator = &allocator{}
var _ memsys.Reallocator = &allocator{}
var _ memsys.Resetter = &allocator{}
var _ memsys.Locker = &allocator{}
var _ memsys.TryLocker = &allocator{}
var _ memsys.Owner = &allocator{}
var _ memsys.DetailedStatisticsReporter = &allocator{}

func blockKey(mem []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
}

func (a *allocator) track(mem []byte) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.blocks.Put(blockKey(mem), mem[:len(mem):len(mem)])
	a.liveBytes += len(mem)
}

// untrack forgets mem and returns the block as it was handed out
func (a *allocator) untrack(mem []byte) ([]byte, bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	key := blockKey(mem)
	block, ok := a.blocks.Get(key)
	if !ok {
		return nil, false
	}

	a.blocks.Delete(key)
	a.liveBytes -= len(block)
	return block, true
}

func (a *allocator) Malloc(size int) []byte {
	mem := a.upstream.Malloc(size)
	if mem == nil {
		return nil
	}

	a.track(mem)
	return mem
}

func (a *allocator) Calloc(size int) []byte {
	mem := a.upstream.Calloc(size)
	if mem == nil {
		return nil
	}

	a.track(mem)
	return mem
}

func (a *allocator) Realloc(mem []byte, size int) []byte {
	a.mutex.RLock()
	block, ok := a.blocks.Get(blockKey(mem))
	a.mutex.RUnlock()

	if !ok {
		return nil
	}

	var newMem []byte
	if a.upstream.Capabilities().Has(memsys.CapabilityRealloc) {
		newMem = a.upstream.Realloc(block, size)
		if newMem == nil {
			return nil
		}
	} else {
		newMem = a.upstream.Malloc(size)
		if newMem == nil {
			return nil
		}

		copy(newMem, block)
		err := a.upstream.Free(block)
		if err != nil {
			a.logger.Error("tracking memory system failed to release a block after moving it",
				slog.String("Identity", a.identity), slog.Any("Error", err))
		}
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.blocks.Delete(blockKey(block))
	a.liveBytes -= len(block)
	a.blocks.Put(blockKey(newMem), newMem[:len(newMem):len(newMem)])
	a.liveBytes += len(newMem)

	return newMem
}

func (a *allocator) Free(mem []byte) error {
	block, ok := a.untrack(mem)
	if !ok {
		return cerrors.Wrapf(memsys.ErrContractViolation, "attempted to free a block that is not tracked by %q", a.identity)
	}

	return a.upstream.Free(block)
}

func (a *allocator) Owns(mem []byte) bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.blocks.Has(blockKey(mem))
}

// releaseAll returns every tracked block upstream. The blocks are collected under the lock
// but freed after it is released, so the upstream's lock is never taken while this one is held.
func (a *allocator) releaseAll() error {
	a.mutex.Lock()
	blocks := make([][]byte, 0, a.blocks.Count())
	a.blocks.Iter(func(key uintptr, block []byte) (stop bool) {
		blocks = append(blocks, block)
		return false
	})
	a.blocks.Clear()
	a.liveBytes = 0
	a.mutex.Unlock()

	var err error
	for _, block := range blocks {
		err = cerrors.CombineErrors(err, a.upstream.Free(block))
	}

	a.logger.Debug("tracking memory system released blocks", slog.String("Identity", a.identity), slog.Int("Count", len(blocks)))
	return err
}

func (a *allocator) Reset() error {
	return a.releaseAll()
}

func (a *allocator) Destroy() error {
	return a.releaseAll()
}

func (a *allocator) Lock() error {
	a.nodeMutex.Lock()
	return nil
}

func (a *allocator) Unlock() error {
	a.nodeMutex.Unlock()
	return nil
}

func (a *allocator) TryLock() bool {
	return a.nodeMutex.TryLock()
}

func (a *allocator) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	a.blocks.Iter(func(key uintptr, block []byte) (stop bool) {
		stats.BlockCount++
		stats.BlockBytes += len(block)
		stats.AddAllocation(len(block))
		return false
	})
}

// New creates a tracking memory system beneath parent. Tracking memory systems remember
// every block they hand out, so they support Reset and detect blocks freed into the wrong
// memory system.
//
// The memory system's lock only guards its children and cleanups; its block table has a
// lock of its own, so allocating while holding Lock is permitted.
//
// parent - The memory system the new one is linked beneath. If nil, the new memory system
// is a root, and options.Upstream must be provided.
//
// options - Optional parameters: it is valid to leave all the fields blank when parent is set
func New(parent *memsys.MemorySystem, options CreateOptions) (*memsys.MemorySystem, error) {
	upstream := options.Upstream
	if upstream == nil {
		upstream = parent
	}

	if upstream == nil {
		return nil, cerrors.Wrap(memsys.ErrInvalidState, "a tracking memory system requires a parent or an upstream")
	}

	if !upstream.IsLive() {
		return nil, cerrors.Wrapf(memsys.ErrInvalidState, "upstream memory system %q is not live", upstream.Identity())
	}

	identity := options.Identity
	if identity == "" {
		identity = Identity
	}

	synchronized := options.Flags&CreateExternallySynchronized == 0
	alloc := &allocator{
		identity:  identity,
		upstream:  upstream,
		nodeMutex: utils.OptionalMutex{UseMutex: synchronized},
		mutex:     utils.OptionalRWMutex{UseMutex: synchronized},
		blocks:    swiss.NewMap[uintptr, []byte](42),
	}

	var logger *slog.Logger
	if parent == nil {
		logger = upstream.Logger()
	}

	system := memsys.New(logger, identity, alloc)
	err := system.Init(parent)
	if err != nil {
		return nil, err
	}

	alloc.logger = system.Logger()
	return system, nil
}
