// Package checksum validates the trailer field of a memory table dump.
package checksum

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrMismatch = errors.New("memory table checksum mismatch")

// Framing bytes covered by the sign's sum: STX, the echoed "E$" function
// code, and the ETX terminating the record region.
const frameSum = 0x02 + uint16('E') + uint16('$') + 0x03

// Sum computes the 16-bit checksum the sign appends to a memory table dump:
// the byte sum from the STX through the ETX terminator, inclusive.
func Sum(records []byte) uint16 {
	total := uint16(frameSum)
	for _, b := range records {
		total += uint16(b)
	}
	return total
}

// Verify compares the captured checksum field against the sum of the record
// region. Real signs are known to emit inconsistent checksums, so callers
// opt into verification instead of getting it by default.
func Verify(records []byte, sumHex string) error {
	want, err := strconv.ParseUint(sumHex, 16, 16)
	if err != nil {
		return fmt.Errorf("%w: bad checksum field %q", ErrMismatch, sumHex)
	}
	if got := Sum(records); got != uint16(want) {
		return fmt.Errorf("%w: computed %04X, sign sent %04X", ErrMismatch, got, uint16(want))
	}
	return nil
}
