package memutils

import (
	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// DefaultAlignment is the alignment, in bytes, applied to suballocations when a memory system
// does not request anything stricter
const DefaultAlignment uint = 8

// Number is any integer type that alignment and power-of-two checks can operate on
type Number interface {
	constraints.Integer
}

// CheckPow2 returns PowerOfTwoError, annotated with name, if number is not a power of two
func CheckPow2[T Number](number T, name string) error {
	if number <= 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

func AlignDown(value int, alignment uint) int {
	return value & int(^(alignment - 1))
}

// AlignDefault rounds size up to DefaultAlignment
func AlignDefault(size int) int {
	return AlignUp(size, DefaultAlignment)
}
