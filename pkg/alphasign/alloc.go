package alphasign

import (
	"fmt"

	"github.com/Lucretiel/alphasign/internal/memtable"
	"github.com/Lucretiel/alphasign/internal/packet"
)

// FileDescriptor describes one file slot to allocate. Label is the
// single-character device-side identifier; the device requires labels to be
// unique, but this layer does not enforce that.
type FileDescriptor struct {
	Label byte
	Size  uint16

	// IsString selects the locked STRING allocation convention. Unset, the
	// slot is allocated with the variable TEXT/DOTS convention.
	IsString bool
}

// Every allocation ends with five reserved TARGET TEXT slots labeled "1"
// through "5". The sign family requires them; they are not optional.
const (
	targetTextCount = 5
	targetTextSize  = 100
)

// BuildAllocationPacket renders the allocation command for the given slots.
// Caller descriptors are emitted in order, STRING slots as type B, locked,
// Q field 0000 and all others as type A, unlocked, Q field FFFF, followed
// by the five mandatory TARGET TEXT records (type A, unlocked, size 100, Q
// field FEFE).
func BuildAllocationPacket(files []FileDescriptor) []byte {
	records := make([]byte, 0, (len(files)+targetTextCount)*memtable.RecordLen)
	for _, f := range files {
		rec := memtable.Record{Label: f.Label, SizeHex: fmt.Sprintf("%04X", f.Size)}
		if f.IsString {
			rec.TypeChar, rec.LockChar, rec.QHex = 'B', 'L', "0000"
		} else {
			rec.TypeChar, rec.LockChar, rec.QHex = 'A', 'U', "FFFF"
		}
		records = append(records, rec.Encode()...)
	}
	for i := 1; i <= targetTextCount; i++ {
		rec := memtable.Record{
			Label:    byte('0' + i),
			TypeChar: 'A',
			LockChar: 'U',
			SizeHex:  fmt.Sprintf("%04X", targetTextSize),
			QHex:     "FEFE",
		}
		records = append(records, rec.Encode()...)
	}
	return packet.Allocate(records)
}

// BuildRunSequencePacket renders the command controlling which slots the
// sign displays and in what order. Labels are sent exactly as given: the
// order defines the display order, and duplicates are not collapsed.
func BuildRunSequencePacket(labels string, locked bool) []byte {
	return packet.RunSequence(labels, locked)
}
