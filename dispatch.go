package memsys

import (
	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// Malloc returns a block of size bytes from this memory system, or nil if the memory system
// could not satisfy the request. Every memory system in this module returns nil for a
// size <= 0.
func (m *MemorySystem) Malloc(size int) []byte {
	if size <= 0 || !m.usable() {
		return nil
	}

	return m.vtable.alloc.Malloc(size)
}

// Calloc returns a zeroed block of size bytes, or nil if the memory system could not satisfy
// the request. Allocators that are not Callocators have the result of Malloc cleared.
func (m *MemorySystem) Calloc(size int) []byte {
	if size <= 0 || !m.usable() {
		return nil
	}

	if m.vtable.callocator != nil {
		return m.vtable.callocator.Calloc(size)
	}

	mem := m.vtable.alloc.Malloc(size)
	if mem == nil {
		return nil
	}

	mem = mem[:size]
	for i := range mem {
		mem[i] = 0
	}

	return mem
}

// Realloc resizes a block that was produced by this memory system. A nil block is allocated
// exactly as Malloc would. Resizing to a size <= 0 frees the block and returns nil.
//
// On success the first min(len(mem), size) bytes are preserved and mem must no longer be used.
// On failure nil is returned and mem is left untouched. Realloc always fails for allocators
// that are not Reallocators, including when size <= 0, and for blocks that an Owner reports
// it did not produce.
func (m *MemorySystem) Realloc(mem []byte, size int) []byte {
	if mem == nil {
		return m.Malloc(size)
	}

	if !m.usable() {
		return nil
	}

	if m.vtable.owner != nil && !m.vtable.owner.Owns(mem) {
		m.log().Error("MemorySystem::Realloc received a block from a different memory system", slog.String("Identity", m.identity))
		return nil
	}

	if m.vtable.reallocator == nil {
		m.log().Debug("MemorySystem::Realloc is not supported", slog.String("Identity", m.identity))
		return nil
	}

	if size <= 0 {
		err := m.vtable.alloc.Free(mem)
		if err != nil {
			m.log().Error("MemorySystem::Realloc failed to free block", slog.String("Identity", m.identity), slog.Any("Error", err))
		}
		return nil
	}

	return m.vtable.reallocator.Realloc(mem, size)
}

// Free returns a block to this memory system. Freeing nil does nothing. Freeing a block more
// than once is a contract violation that is only detected by some allocators.
func (m *MemorySystem) Free(mem []byte) error {
	if mem == nil {
		return nil
	}

	if !m.usable() {
		return cerrors.Wrapf(ErrInvalidState, "attempted to free memory into %q, which is %s", m.identity, m.currentState())
	}

	if m.vtable.owner != nil && !m.vtable.owner.Owns(mem) {
		return cerrors.Wrapf(ErrContractViolation, "attempted to free a block into %q that it did not allocate", m.identity)
	}

	return m.vtable.alloc.Free(mem)
}
