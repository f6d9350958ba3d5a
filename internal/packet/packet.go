// Package packet builds the byte sequences written to an Alpha sign.
package packet

import (
	"fmt"
	"time"
)

// WriteSpecial is the marker byte that precedes every special-function
// command on the wire.
const WriteSpecial = 0x1B

// Build wraps a command payload in the write-special framing. It is a pure
// framing function and performs no validation of the payload.
func Build(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+1)
	out = append(out, WriteSpecial)
	return append(out, payload...)
}

// ReadMemoryTable is the request that asks the sign to dump its memory
// table. Unlike the write commands it carries no write-special marker.
func ReadMemoryTable() []byte {
	return []byte("F$")
}

// SoftReset builds the non-destructive reset command. It does not clear the
// sign's memory.
func SoftReset() []byte {
	return Build([]byte{','})
}

// ClearMemory builds the clear-memory command. The sign needs about a
// second after receiving this before it accepts further commands.
func ClearMemory() []byte {
	return Build([]byte{'$'})
}

// Allocate prefixes concatenated allocation records with the $ function
// code and frames them.
func Allocate(records []byte) []byte {
	payload := make([]byte, 0, len(records)+1)
	payload = append(payload, '$')
	payload = append(payload, records...)
	return Build(payload)
}

// RunSequence builds the .T command that sets the display order. The labels
// are emitted exactly as given; order is meaningful to the device and
// duplicates are preserved.
func RunSequence(labels string, locked bool) []byte {
	flag := byte('U')
	if locked {
		flag = 'L'
	}
	payload := append([]byte(".T"), flag)
	return Build(append(payload, labels...))
}

// Beep builds the beep command. frequency is the sign's unitless pitch
// value, clamped to 0-254. duration is truncated to tenth-second units and
// clamped to 0.1s-1.5s. repeat is clamped to 0-15.
func Beep(frequency int, duration time.Duration, repeat int) []byte {
	if frequency < 0 {
		frequency = 0
	} else if frequency > 254 {
		frequency = 254
	}
	units := int(duration / (100 * time.Millisecond))
	if units < 1 {
		units = 1
	} else if units > 15 {
		units = 15
	}
	if repeat < 0 {
		repeat = 0
	} else if repeat > 15 {
		repeat = 15
	}
	return Build([]byte(fmt.Sprintf("(2%02X%X%X", frequency, units, repeat)))
}
