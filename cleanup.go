package memsys

import (
	"reflect"

	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// CleanupType categorizes cleanups so that subsets of them can be run or removed together.
// Values may be combined.
type CleanupType uint32

const (
	// AllCleanups selects every cleanup regardless of its type
	AllCleanups CleanupType = 0
	// ChildCleanup marks cleanups that should run on the child side of a fork-like split
	ChildCleanup CleanupType = 1
	// ParentCleanup marks cleanups that should run on the parent side of a fork-like split
	ParentCleanup CleanupType = 2
)

var cleanupTypeMapping = map[CleanupType]string{
	AllCleanups:   "AllCleanups",
	ChildCleanup:  "ChildCleanup",
	ParentCleanup: "ParentCleanup",
}

func (t CleanupType) String() string {
	name, ok := cleanupTypeMapping[t]
	if ok {
		return name
	}
	if t == ChildCleanup|ParentCleanup {
		return "ChildCleanup|ParentCleanup"
	}
	return "unknown"
}

// CleanupFunc is invoked with the data it was registered with
type CleanupFunc func(data any) error

type cleanup struct {
	cleanupType CleanupType
	data        any
	fn          CleanupFunc
	fnPointer   uintptr
}

func (c *cleanup) matchesType(cleanupType CleanupType) bool {
	return cleanupType == AllCleanups || c.cleanupType&cleanupType != 0
}

func (c *cleanup) matches(cleanupType CleanupType, data any, fnPointer uintptr) bool {
	return c.matchesType(cleanupType) && c.fnPointer == fnPointer && sameData(c.data, data)
}

// funcPointer identifies a cleanup function. Closures created from the same function
// literal share an identity.
func funcPointer(fn CleanupFunc) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// sameData compares cleanup data by value where the type allows it, and by reference
// for slices, maps and other non-comparable references
func sameData(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	typeA := reflect.TypeOf(a)
	if typeA != reflect.TypeOf(b) {
		return false
	}

	if typeA.Comparable() {
		// Comparable structs can still hold non-comparable values in interface fields
		defer func() {
			if recover() != nil {
				same = false
			}
		}()
		return a == b
	}

	valueA, valueB := reflect.ValueOf(a), reflect.ValueOf(b)
	switch valueA.Kind() {
	case reflect.Slice:
		return valueA.Pointer() == valueB.Pointer() && valueA.Len() == valueB.Len()
	case reflect.Map, reflect.Func:
		return valueA.Pointer() == valueB.Pointer()
	}

	return false
}

// CleanupRegister registers fn to be called with data when this memory system is reset or
// destroyed, or when cleanups of cleanupType are run explicitly. The same data and function
// may be registered more than once; each registration runs separately.
func (m *MemorySystem) CleanupRegister(cleanupType CleanupType, data any, fn CleanupFunc) error {
	if fn == nil {
		return cerrors.Wrapf(ErrContractViolation, "attempted to register a nil cleanup with %q", m.identity)
	}

	if !m.IsLive() {
		return cerrors.Wrapf(ErrInvalidState, "attempted to register a cleanup with %q, which is %s",
			m.identity, m.currentState())
	}

	return m.withLock(func() error {
		m.cleanups = append(m.cleanups, cleanup{
			cleanupType: cleanupType,
			data:        data,
			fn:          fn,
			fnPointer:   funcPointer(fn),
		})
		return nil
	})
}

// CleanupUnregister removes the oldest cleanup matching cleanupType, data and fn without
// running it. It returns ErrNotFound, which callers may ignore, if nothing matched.
func (m *MemorySystem) CleanupUnregister(cleanupType CleanupType, data any, fn CleanupFunc) error {
	_, err := m.takeCleanup(cleanupType, data, fn)
	return err
}

// CleanupUnregisterType removes every cleanup matching cleanupType without running them.
// AllCleanups empties the registry.
func (m *MemorySystem) CleanupUnregisterType(cleanupType CleanupType) error {
	if !m.usable() {
		return cerrors.Wrapf(ErrInvalidState, "attempted to unregister cleanups from %q, which is %s",
			m.identity, m.currentState())
	}

	_, err := m.takeCleanupsOfType(cleanupType)
	return err
}

// CleanupRun removes the oldest cleanup matching cleanupType, data and fn and runs it
// immediately, returning its error. It returns ErrNotFound if nothing matched.
func (m *MemorySystem) CleanupRun(cleanupType CleanupType, data any, fn CleanupFunc) error {
	entry, err := m.takeCleanup(cleanupType, data, fn)
	if err != nil {
		return err
	}

	return entry.fn(entry.data)
}

// CleanupRunType removes every cleanup matching cleanupType and runs them in registration
// order. Every cleanup runs even if an earlier one fails; the first failure is returned.
func (m *MemorySystem) CleanupRunType(cleanupType CleanupType) error {
	if !m.usable() {
		return cerrors.Wrapf(ErrInvalidState, "attempted to run cleanups of %q, which is %s",
			m.identity, m.currentState())
	}

	return m.runCleanups(cleanupType)
}

// CleanupCount returns the number of registered cleanups matching cleanupType
func (m *MemorySystem) CleanupCount(cleanupType CleanupType) int {
	var count int
	_ = m.withLock(func() error {
		for i := range m.cleanups {
			if m.cleanups[i].matchesType(cleanupType) {
				count++
			}
		}
		return nil
	})
	return count
}

func (m *MemorySystem) takeCleanup(cleanupType CleanupType, data any, fn CleanupFunc) (cleanup, error) {
	if !m.usable() {
		return cleanup{}, cerrors.Wrapf(ErrInvalidState, "attempted to access the cleanups of %q, which is %s",
			m.identity, m.currentState())
	}

	if fn == nil {
		return cleanup{}, cerrors.Wrapf(ErrNotFound, "no nil cleanup can be registered with %q", m.identity)
	}

	fnPointer := funcPointer(fn)
	var entry cleanup
	var found bool

	err := m.withLock(func() error {
		for i := range m.cleanups {
			if m.cleanups[i].matches(cleanupType, data, fnPointer) {
				entry = m.cleanups[i]
				found = true

				copy(m.cleanups[i:], m.cleanups[i+1:])
				m.cleanups[len(m.cleanups)-1] = cleanup{}
				m.cleanups = m.cleanups[:len(m.cleanups)-1]
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return cleanup{}, err
	}

	if !found {
		return cleanup{}, cerrors.Wrapf(ErrNotFound, "no %s cleanup matched in %q", cleanupType, m.identity)
	}

	return entry, nil
}

// takeCleanupsOfType detaches the matching cleanups, preserving the order of both the
// detached and the remaining entries
func (m *MemorySystem) takeCleanupsOfType(cleanupType CleanupType) ([]cleanup, error) {
	var taken []cleanup

	err := m.withLock(func() error {
		if cleanupType == AllCleanups {
			taken = m.cleanups
			m.cleanups = nil
			return nil
		}

		remaining := m.cleanups[:0]
		for _, entry := range m.cleanups {
			if entry.matchesType(cleanupType) {
				taken = append(taken, entry)
			} else {
				remaining = append(remaining, entry)
			}
		}

		for i := len(remaining); i < len(m.cleanups); i++ {
			m.cleanups[i] = cleanup{}
		}
		m.cleanups = remaining
		return nil
	})

	return taken, err
}

// runCleanups runs the matching cleanups without holding the lock, so cleanups may
// call back into this memory system
func (m *MemorySystem) runCleanups(cleanupType CleanupType) error {
	entries, err := m.takeCleanupsOfType(cleanupType)
	if err != nil {
		return err
	}

	var firstErr error
	for _, entry := range entries {
		cleanupErr := entry.fn(entry.data)
		if cleanupErr == nil {
			continue
		}

		m.log().Debug("MemorySystem cleanup failed", slog.String("Identity", m.identity), slog.Any("Error", cleanupErr))
		if firstErr == nil {
			firstErr = cleanupErr
		}
	}

	return firstErr
}
