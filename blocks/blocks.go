package blocks

import (
	"sort"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"github.com/vkngwrapper/memsys"
	"github.com/vkngwrapper/memsys/memutils"
	"github.com/vkngwrapper/memsys/tracking"
	"golang.org/x/exp/slog"
)

const (
	// DefaultChunkSize is the chunk size used when none is provided via CreateOptions. It is equal to 64KiB.
	DefaultChunkSize int = 64 * 1024
	// Identity is the identity of blocks memory systems created without an explicit one
	Identity = "BLOCKS"
)

// CreateOptions contains optional settings when creating a blocks memory system
type CreateOptions struct {
	// Identity defaults to Identity
	Identity string
	// ChunkSize is the size of the chunks requested from the accounting memory system. It must
	// be a power of two. Requests larger than a chunk receive a chunk of their own.
	ChunkSize int
	// PreallocateChunks is the number of chunks to obtain while the memory system is created
	PreallocateChunks int
}

type allocation struct {
	offset int
	size   int
	freed  bool
}

// chunk is a stack of allocations. Only the top of the stack can be released immediately;
// anything beneath it is marked freed and released once everything above it is gone.
type chunk struct {
	mem         []byte
	offset      int
	allocations []allocation
}

func (c *chunk) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(c.mem)))
}

func (c *chunk) contains(ptr uintptr) bool {
	base := c.base()
	return ptr >= base && ptr < base+uintptr(len(c.mem))
}

func (c *chunk) find(offset int) int {
	index := sort.Search(len(c.allocations), func(i int) bool {
		return c.allocations[i].offset >= offset
	})
	if index < len(c.allocations) && c.allocations[index].offset == offset {
		return index
	}
	return -1
}

func (c *chunk) tryAlloc(size int) ([]byte, bool) {
	start := memutils.AlignDefault(c.offset)
	if start+size > len(c.mem) {
		return nil, false
	}

	c.allocations = append(c.allocations, allocation{offset: start, size: size})
	c.offset = start + size
	return c.mem[start : start+size : start+size], true
}

// collapse pops freed allocations off the top of the stack
func (c *chunk) collapse() {
	for len(c.allocations) > 0 {
		top := c.allocations[len(c.allocations)-1]
		if !top.freed {
			c.offset = top.offset + top.size
			return
		}
		c.allocations = c.allocations[:len(c.allocations)-1]
	}
	c.offset = 0
}

func (c *chunk) rewind() {
	c.offset = 0
	c.allocations = c.allocations[:0]
}

// allocator hands out memory by bumping an offset through chunks obtained from its
// accounting memory system. It is not safe for concurrent use.
type allocator struct {
	logger    *slog.Logger
	identity  string
	system    *memsys.MemorySystem
	chunkSize int
	prealloc  int

	accounting *memsys.MemorySystem
	chunks     []chunk
	current    int
}

var _ memsys.Allocator = &allocator{}
var _ memsys.Resetter = &allocator{}
var _ memsys.PostIniter = &allocator{}
var _ memsys.Owner = &allocator{}
var _ memsys.DetailedStatisticsReporter = &allocator{}

func (a *allocator) newChunk(size int) bool {
	memutils.DebugCheckPow2(a.chunkSize, "chunkSize")

	chunkSize := a.chunkSize
	if size > chunkSize {
		chunkSize = memutils.AlignUp(size, uint(a.chunkSize))
	}

	mem := a.accounting.Malloc(chunkSize)
	if mem == nil {
		a.logger.Debug("blocks memory system could not obtain a chunk", slog.String("Identity", a.identity), slog.Int("Size", chunkSize))
		return false
	}

	a.chunks = append(a.chunks, chunk{mem: mem})
	return true
}

func (a *allocator) Malloc(size int) []byte {
	if a.accounting == nil {
		a.logger.Error("blocks memory system was used before PostInit", slog.String("Identity", a.identity))
		return nil
	}

	for ; a.current < len(a.chunks); a.current++ {
		mem, ok := a.chunks[a.current].tryAlloc(size)
		if ok {
			return mem
		}
	}

	if !a.newChunk(size) {
		// Every chunk was skipped above, so step back to the last one
		a.current = len(a.chunks) - 1
		if a.current < 0 {
			a.current = 0
		}
		return nil
	}

	a.current = len(a.chunks) - 1
	mem, _ := a.chunks[a.current].tryAlloc(size)
	return mem
}

// locate finds the chunk and allocation that mem begins
func (a *allocator) locate(mem []byte) (chunkIndex, allocIndex int) {
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	for i := range a.chunks {
		c := &a.chunks[i]
		if !c.contains(ptr) {
			continue
		}

		return i, c.find(int(ptr - c.base()))
	}

	return -1, -1
}

func (a *allocator) Owns(mem []byte) bool {
	chunkIndex, allocIndex := a.locate(mem)
	if chunkIndex < 0 || allocIndex < 0 {
		return false
	}

	return !a.chunks[chunkIndex].allocations[allocIndex].freed
}

// Free releases mem immediately if it is the most recent live allocation in its chunk.
// Otherwise its space is reclaimed once every later allocation in the chunk is freed, or
// on Reset.
func (a *allocator) Free(mem []byte) error {
	chunkIndex, allocIndex := a.locate(mem)
	if chunkIndex < 0 || allocIndex < 0 {
		return cerrors.Wrapf(memsys.ErrContractViolation, "attempted to free a block that was not allocated by %q", a.identity)
	}

	c := &a.chunks[chunkIndex]
	if c.allocations[allocIndex].freed {
		return cerrors.Wrapf(memsys.ErrContractViolation, "attempted to free a block in %q twice", a.identity)
	}

	c.allocations[allocIndex].freed = true
	c.collapse()

	if chunkIndex < a.current && c.offset == 0 {
		a.current = chunkIndex
	}

	return nil
}

// Reset rewinds every chunk. The chunks are kept for reuse.
func (a *allocator) Reset() error {
	for i := range a.chunks {
		a.chunks[i].rewind()
	}
	a.current = 0

	return nil
}

// PostInit creates the accounting memory system that chunks are drawn from. It is a
// detached root whose upstream is this memory system's parent, so it is not reached by the
// cascade of Destroy and the chunks outlive this memory system's cleanups.
func (a *allocator) PostInit() error {
	accounting, err := tracking.New(nil, tracking.CreateOptions{
		Flags:    tracking.CreateExternallySynchronized,
		Identity: a.identity + " accounting",
		Upstream: a.system.Parent(),
	})
	if err != nil {
		return err
	}
	a.accounting = accounting

	err = a.system.SetAccounting(accounting)
	if err != nil {
		return err
	}

	for i := 0; i < a.prealloc; i++ {
		if !a.newChunk(a.chunkSize) {
			return cerrors.Wrapf(memsys.ErrAllocationFailure, "%q could not preallocate chunk %d of %d",
				a.identity, i+1, a.prealloc)
		}
	}

	return nil
}

// Destroy drops the chunks and destroys the accounting memory system, which returns them
// upstream
func (a *allocator) Destroy() error {
	a.chunks = nil
	a.current = 0

	if a.accounting == nil {
		return nil
	}

	accounting := a.accounting
	a.accounting = nil
	return accounting.Destroy()
}

func (a *allocator) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	for i := range a.chunks {
		c := &a.chunks[i]
		stats.BlockCount++
		stats.BlockBytes += len(c.mem)

		for _, alloc := range c.allocations {
			if !alloc.freed {
				stats.AddAllocation(alloc.size)
			}
		}

		if unused := len(c.mem) - c.offset; unused > 0 {
			stats.AddUnusedRange(unused)
		}
	}
}

// New creates a blocks memory system beneath parent. Blocks memory systems carve allocations
// out of large chunks with a bump pointer, which makes allocation and Reset very cheap at the
// cost of deferring most frees until Reset. They do not support Realloc.
//
// parent - The memory system the new one is linked beneath. Chunks are ultimately obtained from
// it. It must not be nil.
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(parent *memsys.MemorySystem, options CreateOptions) (*memsys.MemorySystem, error) {
	if parent == nil {
		return nil, cerrors.Wrap(memsys.ErrInvalidState, "a blocks memory system requires a parent")
	}

	chunkSize := options.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	err := memutils.CheckPow2(chunkSize, "CreateOptions.ChunkSize")
	if err != nil {
		return nil, err
	}

	if options.PreallocateChunks < 0 {
		return nil, cerrors.Newf("CreateOptions.PreallocateChunks must not be negative, but was %d", options.PreallocateChunks)
	}

	identity := options.Identity
	if identity == "" {
		identity = Identity
	}

	alloc := &allocator{
		identity:  identity,
		chunkSize: chunkSize,
		prealloc:  options.PreallocateChunks,
	}

	system := memsys.New(nil, identity, alloc)
	err = system.Init(parent)
	if err != nil {
		return nil, err
	}

	alloc.system = system
	alloc.logger = system.Logger()

	err = system.PostInit()
	if err != nil {
		return nil, cerrors.CombineErrors(err, system.Destroy())
	}

	return system, nil
}
