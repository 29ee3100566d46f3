package workload

import (
	"math/bits"

	"github.com/pkg/errors"
)

// counterLimit is the 32-bit counting limit of the reporting arithmetic.
// Total operation counts at or above this value are rejected before any
// timed operation executes.
const counterLimit = 1<<32 - 1

// ErrLoopOverflow reports a configuration whose total operation count
// would overflow 32-bit counting. The configuration is skipped; sibling
// configurations are unaffected.
var ErrLoopOverflow = errors.New("workload: loop count too big, would overflow 32-bit counting")

// checkOps verifies that loops iterations at opsPerIter operations each
// stay below counterLimit. The multiply is done in 128 bits so the check
// itself cannot overflow.
func checkOps(loops uint32, opsPerIter uint64) error {
	hi, lo := bits.Mul64(uint64(loops), opsPerIter)
	if hi != 0 || lo >= counterLimit {
		return ErrLoopOverflow
	}
	return nil
}
