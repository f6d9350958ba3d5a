// Package memtable decodes the memory table an Alpha sign returns when asked
// for its special-function data: a fixed-envelope byte stream listing every
// file slot currently allocated on the device.
package memtable

import (
	"bytes"
	"errors"
	"fmt"
)

// RecordLen is the fixed width of one memory table record on the wire.
const RecordLen = 11

var (
	ErrMalformedResponse = errors.New("malformed memory table response")
	ErrTruncatedTable    = errors.New("memory table truncated")
	ErrInvalidRecord     = errors.New("invalid memory table record")
	ErrNotFound          = errors.New("label not found in memory table")
)

// tableHeader follows the sign's NUL padding: SOH, "000" address field, STX,
// then the echoed write-special function code.
var tableHeader = []byte{0x01, '0', '0', '0', 0x02, 'E', '$'}

const (
	etx = 0x03
	eot = 0x04
)

// Extract strips the framing around a raw memory table response and returns
// the concatenated record bytes together with the four-digit checksum field
// the sign appended. The checksum is captured but not verified here; real
// signs are known to send inconsistent sums, so verification is a separate
// opt-in step (see the checksum package).
//
// A response with zero records is valid and yields an empty record region.
// Anything that does not match the envelope structure, including an empty
// response, fails with ErrMalformedResponse.
func Extract(response []byte) (records []byte, checksumHex string, err error) {
	rest := response
	for len(rest) > 0 && rest[0] == 0x00 {
		rest = rest[1:]
	}
	if !bytes.HasPrefix(rest, tableHeader) {
		return nil, "", fmt.Errorf("%w: missing table header", ErrMalformedResponse)
	}
	rest = rest[len(tableHeader):]
	end := bytes.IndexByte(rest, etx)
	if end < 0 {
		return nil, "", fmt.Errorf("%w: unterminated record region", ErrMalformedResponse)
	}
	records = rest[:end]
	rest = rest[end+1:]
	if len(rest) < 5 || rest[4] != eot || !isHex(rest[:4]) {
		return nil, "", fmt.Errorf("%w: bad checksum trailer", ErrMalformedResponse)
	}
	return records, string(rest[:4]), nil
}

// Chunk splits a raw record region into RecordLen-byte slices. A region
// whose length is not a whole number of records fails with
// ErrTruncatedTable; an empty region yields an empty slice.
func Chunk(records []byte) ([][]byte, error) {
	if len(records)%RecordLen != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of records", ErrTruncatedTable, len(records))
	}
	chunks := make([][]byte, 0, len(records)/RecordLen)
	for i := 0; i < len(records); i += RecordLen {
		chunks = append(chunks, records[i:i+RecordLen])
	}
	return chunks, nil
}

// FindRecord scans the raw record region for the first record carrying the
// label and decodes only that record. The match is an exact byte comparison
// and device table order defines priority. Records before the match are
// never decoded, so a corrupt entry elsewhere in the table cannot block a
// successful lookup. Returns ErrNotFound when no record carries the label.
func FindRecord(records []byte, label byte) (Record, error) {
	chunks, err := Chunk(records)
	if err != nil {
		return Record{}, err
	}
	for _, chunk := range chunks {
		if chunk[0] == label {
			return DecodeRecord(chunk)
		}
	}
	return Record{}, fmt.Errorf("%w: %q", ErrNotFound, label)
}

// Decode turns a raw record region into interpreted entries, preserving the
// device's slot order. By default the first undecodable record fails the
// whole table; with lenient set, bad records are skipped instead.
func Decode(records []byte, lenient bool) ([]Entry, error) {
	chunks, err := Chunk(records)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(chunks))
	for i, chunk := range chunks {
		rec, err := DecodeRecord(chunk)
		if err != nil {
			if lenient {
				continue
			}
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		entries = append(entries, rec.Entry())
	}
	return entries, nil
}

func isHex(b []byte) bool {
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
