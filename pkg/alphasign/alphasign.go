// Package alphasign drives Alpha-protocol programmable LED signs over a
// byte transport. It builds the outbound command packets (beep, reset,
// allocation, run sequence) and decodes the memory table the sign returns
// when asked for its current file slot directory.
package alphasign

import (
	"fmt"
	"time"

	"github.com/Lucretiel/alphasign/internal/checksum"
	"github.com/Lucretiel/alphasign/internal/memtable"
	"github.com/Lucretiel/alphasign/internal/packet"
	"github.com/Lucretiel/alphasign/internal/transport"
)

// Transport is the write/read capability a Sign talks through. Concrete
// backends are opened with Open; tests supply fakes.
type Transport = transport.Transport

// Entry is one interpreted memory table record.
type Entry = memtable.Entry

// Record is one memory table record with its raw wire fields split out.
type Record = memtable.Record

// Kind identifies what a file slot holds.
type Kind = memtable.Kind

const (
	KindText   = memtable.KindText
	KindString = memtable.KindString
	KindDots   = memtable.KindDots
)

// Sign drives one Alpha-protocol LED sign through a Transport.
//
// Operations are strictly sequential: each performs one write followed by
// at most one read, and the protocol has no request identifiers to tell
// interleaved responses apart. A Sign must not be used from multiple
// goroutines at once.
type Sign struct {
	t Transport
}

// New returns a Sign speaking through t.
func New(t Transport) *Sign {
	return &Sign{t: t}
}

// Open dials a device URL (serial:///dev/ttyUSB0?baud=9600,
// tcp://10.0.0.5:10001, ...) and returns a Sign for it.
func Open(device string) (*Sign, error) {
	t, err := transport.Open(device)
	if err != nil {
		return nil, err
	}
	return New(t), nil
}

// Close closes the underlying transport.
func (s *Sign) Close() error {
	return s.t.Close()
}

func (s *Sign) write(pkt []byte) error {
	if err := s.t.Write(pkt); err != nil {
		return fmt.Errorf("%w: write: %v", ErrTransport, err)
	}
	return nil
}

// Request writes a packet and reads back the sign's response.
func (s *Sign) Request(pkt []byte) ([]byte, error) {
	if err := s.write(pkt); err != nil {
		return nil, err
	}
	resp, err := s.t.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrTransport, err)
	}
	return resp, nil
}

// Beep makes the sign beep. frequency is the sign's unitless pitch value,
// clamped to 0-254. duration is clamped to 0.1s-1.5s in tenth-second steps
// and repeat to 0-15.
func (s *Sign) Beep(frequency int, duration time.Duration, repeat int) error {
	return s.write(packet.Beep(frequency, duration, repeat))
}

// SoftReset reboots the sign without clearing its memory.
func (s *Sign) SoftReset() error {
	return s.write(packet.SoftReset())
}

// ClearMemory wipes every file slot on the sign. The call blocks for the
// one second the sign needs before it will accept another command.
func (s *Sign) ClearMemory() error {
	if err := s.write(packet.ClearMemory()); err != nil {
		return err
	}
	time.Sleep(time.Second)
	return nil
}

// Allocate reserves a file slot for each descriptor, in order, plus the
// five TARGET TEXT slots the sign family requires. See
// BuildAllocationPacket for the record layout.
func (s *Sign) Allocate(files []FileDescriptor) error {
	return s.write(BuildAllocationPacket(files))
}

// SetRunSequence tells the sign which file slots to display and in what
// order. Labels are sent exactly as given. locked prevents the sequence
// from being changed with the IR keyboard.
func (s *Sign) SetRunSequence(labels string, locked bool) error {
	return s.write(BuildRunSequencePacket(labels, locked))
}

// WriteDots sends a SMALL DOTS picture to the sign.
func (s *Sign) WriteDots(d *Dots) error {
	return s.write(d.Packet())
}

// ReadRawMemoryTable asks the sign for its memory table and returns the
// undecoded record bytes along with the checksum field the sign sent. The
// checksum is captured, not verified.
func (s *Sign) ReadRawMemoryTable() (records []byte, checksumHex string, err error) {
	resp, err := s.Request(packet.ReadMemoryTable())
	if err != nil {
		return nil, "", err
	}
	return memtable.Extract(resp)
}

// ReadMemoryTable reads and fully decodes the sign's memory table with
// default options: fail-fast decoding, checksum captured but unverified.
func (s *Sign) ReadMemoryTable() (MemoryTable, error) {
	return s.ReadMemoryTableWithOptions(ReadOptions{})
}

// ReadMemoryTableWithOptions reads the memory table under explicit decode
// options.
func (s *Sign) ReadMemoryTableWithOptions(opts ReadOptions) (MemoryTable, error) {
	records, sum, err := s.ReadRawMemoryTable()
	if err != nil {
		return nil, err
	}
	if opts.VerifyChecksum {
		if err := checksum.Verify(records, sum); err != nil {
			return nil, err
		}
	}
	entries, err := memtable.Decode(records, opts.Lenient)
	if err != nil {
		return nil, err
	}
	return MemoryTable(entries), nil
}

// ReadMemoryTableEntry reads the table and looks up a single label. Only
// the matching record is decoded, so damage elsewhere in the table does not
// block the lookup. Returns ErrNotFound when no slot carries the label.
func (s *Sign) ReadMemoryTableEntry(label byte) (Entry, error) {
	records, _, err := s.ReadRawMemoryTable()
	if err != nil {
		return Entry{}, err
	}
	rec, err := memtable.FindRecord(records, label)
	if err != nil {
		return Entry{}, err
	}
	return rec.Entry(), nil
}
