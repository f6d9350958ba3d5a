package memtable

import (
	"fmt"
	"strconv"
)

// Kind identifies what a file slot holds.
type Kind int

const (
	KindText Kind = iota
	KindString
	KindDots
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "TEXT"
	case KindString:
		return "STRING"
	case KindDots:
		return "DOTS"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Record is one memory table record with its fixed-width fields split out
// but not yet interpreted. Layout on the wire: label, type character
// (A=TEXT, B=STRING, D=DOTS), lock character (U or L), four hex digits of
// size, four hex digits of device-specific Q field.
type Record struct {
	Label    byte
	TypeChar byte
	LockChar byte
	SizeHex  string
	QHex     string
}

// DecodeRecord validates and splits an 11-byte record. The label must be
// printable ASCII, the type and lock characters must come from their closed
// sets, and both hex fields must be valid hexadecimal; anything else fails
// with ErrInvalidRecord.
func DecodeRecord(raw []byte) (Record, error) {
	if len(raw) != RecordLen {
		return Record{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidRecord, len(raw), RecordLen)
	}
	if raw[0] < 0x20 || raw[0] > 0x7F {
		return Record{}, fmt.Errorf("%w: unprintable label 0x%02X", ErrInvalidRecord, raw[0])
	}
	switch raw[1] {
	case 'A', 'B', 'D':
	default:
		return Record{}, fmt.Errorf("%w: unknown file type %q", ErrInvalidRecord, raw[1])
	}
	switch raw[2] {
	case 'U', 'L':
	default:
		return Record{}, fmt.Errorf("%w: unknown lock flag %q", ErrInvalidRecord, raw[2])
	}
	if !isHex(raw[3:7]) || !isHex(raw[7:11]) {
		return Record{}, fmt.Errorf("%w: non-hex size or Q field", ErrInvalidRecord)
	}
	return Record{
		Label:    raw[0],
		TypeChar: raw[1],
		LockChar: raw[2],
		SizeHex:  string(raw[3:7]),
		QHex:     string(raw[7:11]),
	}, nil
}

// Encode renders the fixed-width wire form of the record.
func (r Record) Encode() []byte {
	out := make([]byte, 0, RecordLen)
	out = append(out, r.Label, r.TypeChar, r.LockChar)
	out = append(out, r.SizeHex...)
	out = append(out, r.QHex...)
	return out
}

// Entry is an interpreted memory table record.
type Entry struct {
	Label  byte
	Kind   Kind
	Locked bool
	Size   uint16
	Q      string
}

// Entry interprets the record's fields. It is total over records produced
// by DecodeRecord, which has already rejected unknown type and lock
// characters and non-hex size fields.
func (r Record) Entry() Entry {
	size, _ := strconv.ParseUint(r.SizeHex, 16, 16)
	e := Entry{
		Label:  r.Label,
		Locked: r.LockChar == 'L',
		Size:   uint16(size),
		Q:      r.QHex,
	}
	switch r.TypeChar {
	case 'A':
		e.Kind = KindText
	case 'B':
		e.Kind = KindString
	case 'D':
		e.Kind = KindDots
	}
	return e
}

// Record converts an entry back into its wire-field form. An empty Q field
// defaults to "0000".
func (e Entry) Record() Record {
	r := Record{
		Label:    e.Label,
		LockChar: 'U',
		SizeHex:  fmt.Sprintf("%04X", e.Size),
		QHex:     e.Q,
	}
	if e.Locked {
		r.LockChar = 'L'
	}
	if r.QHex == "" {
		r.QHex = "0000"
	}
	switch e.Kind {
	case KindText:
		r.TypeChar = 'A'
	case KindString:
		r.TypeChar = 'B'
	case KindDots:
		r.TypeChar = 'D'
	}
	return r
}

// Dimensions returns the height and width packed into a DOTS entry's size
// field: the height is the high byte and the width the low byte of the
// 16-bit size. ok is false for TEXT and STRING entries, whose size is a
// plain byte count.
func (e Entry) Dimensions() (height, width int, ok bool) {
	if e.Kind != KindDots {
		return 0, 0, false
	}
	return int(e.Size / 256), int(e.Size % 256), true
}
