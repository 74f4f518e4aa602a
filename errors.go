package memsys

import "github.com/pkg/errors"

var (
	// ErrAllocationFailure indicates that the upstream source of memory was exhausted. Allocation
	// methods report it by returning a nil slice, constructors return it wrapped.
	ErrAllocationFailure error = errors.New("allocation failure")
	// ErrOperationUnsupported is returned when an operation requires an optional capability that the
	// memory system's allocator does not provide, such as resetting a non-tracking memory system
	ErrOperationUnsupported error = errors.New("operation is not supported by this memory system")
	// ErrNotFound is returned when a cleanup could not be located
	ErrNotFound error = errors.New("not found")
	// ErrInvalidState is returned when a memory system is used before it has been initialized,
	// after it has been destroyed, or when it is initialized twice
	ErrInvalidState error = errors.New("memory system is in an invalid state")
	// ErrContractViolation is returned when a caller breaks the memory system contract: freeing
	// memory into a memory system that did not produce it, or destroying a memory system twice
	ErrContractViolation error = errors.New("memory system contract violation")
)
