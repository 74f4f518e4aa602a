// Package memsys provides a tree of memory systems: independent allocation scopes, each driven by
// its own Allocator, that can be reset or destroyed as a unit.
//
// A memory system is created by a concrete allocator's constructor, which calls New followed by
// MemorySystem.Init to link the new node beneath a parent (or to make it a root). Callers then
// allocate with Malloc, Calloc, Realloc and Free, and may register cleanups that run when the
// memory system is reset or destroyed. Destroy tears down every descendant before the node itself.
//
// StdCreate produces a root memory system backed by the Go heap. The tracking and blocks
// subpackages provide memory systems that are layered beneath a parent.
//
// Memory systems whose allocator implements Locker may be used from multiple goroutines. All
// others must be synchronized externally.
package memsys
