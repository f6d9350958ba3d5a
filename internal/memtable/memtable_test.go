package memtable

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExtractEmptyTable(t *testing.T) {
	records, sum, err := Extract([]byte("\x01000\x02E$\x03AB12\x04"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty record region, got %q", records)
	}
	if sum != "AB12" {
		t.Fatalf("checksum mismatch: %q", sum)
	}
}

func TestExtractWithPaddingAndRecords(t *testing.T) {
	response := []byte("\x00\x00\x00\x01000\x02E$AAU0100FFFFBBL00200000\x030000\x04")
	records, _, err := Extract(response)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := string(records); got != "AAU0100FFFFBBL00200000" {
		t.Fatalf("unexpected record region: %q", got)
	}
}

func TestExtractMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
	}{
		{name: "nil", input: nil},
		{name: "empty", input: []byte("")},
		{name: "garbage", input: []byte("garbage")},
		{name: "unterminated records", input: []byte("\x01000\x02E$AAU0100FFFF")},
		{name: "non-hex checksum", input: []byte("\x01000\x02E$\x03XYZW\x04")},
		{name: "missing EOT", input: []byte("\x01000\x02E$\x03AB12")},
		{name: "missing SOH header", input: []byte("\x00\x00\x02E$\x03AB12\x04")},
	}
	for _, tc := range cases {
		if _, _, err := Extract(tc.input); !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("Extract %s: want ErrMalformedResponse, got %v", tc.name, err)
		}
	}
}

func TestChunk(t *testing.T) {
	chunks, err := Chunk([]byte("AAU0100FFFFBBL00200000"))
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if string(chunks[1]) != "BBL00200000" {
		t.Fatalf("unexpected second chunk: %q", chunks[1])
	}
}

func TestChunkEmpty(t *testing.T) {
	chunks, err := Chunk(nil)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}

func TestChunkTruncated(t *testing.T) {
	_, err := Chunk([]byte("AAU0100FFFFBB"))
	if !errors.Is(err, ErrTruncatedTable) {
		t.Fatalf("want ErrTruncatedTable, got %v", err)
	}
}

func TestDecodeRecord(t *testing.T) {
	rec, err := DecodeRecord([]byte("ZDU071Ffefe"))
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.Label != 'Z' || rec.TypeChar != 'D' || rec.LockChar != 'U' {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.SizeHex != "071F" || rec.QHex != "fefe" {
		t.Fatalf("unexpected hex fields: %+v", rec)
	}
}

func TestDecodeRecordInvalid(t *testing.T) {
	bad := [][]byte{
		[]byte("AAU0100FFF"),     // short
		[]byte("\x10AU0100FFFF"), // unprintable label
		[]byte("AXU0100FFFF"),    // unknown type
		[]byte("AAX0100FFFF"),    // unknown lock flag
		[]byte("AAU01G0FFFF"),    // non-hex size
		[]byte("AAU0100FFFG"),    // non-hex Q
	}
	for _, raw := range bad {
		if _, err := DecodeRecord(raw); !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("DecodeRecord(%q): want ErrInvalidRecord, got %v", raw, err)
		}
	}
}

func TestFindRecordFirstMatchWins(t *testing.T) {
	records := []byte("AAU0100FFFFABL00200000")
	rec, err := FindRecord(records, 'A')
	if err != nil {
		t.Fatalf("FindRecord: %v", err)
	}
	if rec.TypeChar != 'A' {
		t.Fatalf("expected first record to win, got type %q", rec.TypeChar)
	}
}

func TestFindRecordNotFound(t *testing.T) {
	_, err := FindRecord([]byte("AAU0100FFFF"), 'Z')
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFindRecordSkipsCorruptNeighbors(t *testing.T) {
	// The first record has an invalid type character, but a lookup for the
	// second must still succeed: only the matching record is decoded.
	records := []byte("AXU0100FFFFBAU00640000")
	rec, err := FindRecord(records, 'B')
	if err != nil {
		t.Fatalf("FindRecord: %v", err)
	}
	if rec.Label != 'B' {
		t.Fatalf("unexpected label %q", rec.Label)
	}
}

func TestDecodeFailFast(t *testing.T) {
	records := []byte("AAU0100FFFFBXU00640000CAU00640000")
	_, err := Decode(records, false)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("want ErrInvalidRecord, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "record 1") {
		t.Fatalf("error should name the failing record: %v", err)
	}
}

func TestDecodeLenient(t *testing.T) {
	records := []byte("AAU0100FFFFBXU00640000CAU00640000")
	entries, err := Decode(records, true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Label != 'A' || entries[1].Label != 'C' {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestDecodePreservesOrderAndDuplicates(t *testing.T) {
	records := []byte("BAU0001FFFFAAU0002FFFFBAU0003FFFF")
	entries, err := Decode(records, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var labels []byte
	var sizes []uint16
	for _, e := range entries {
		labels = append(labels, e.Label)
		sizes = append(sizes, e.Size)
	}
	if string(labels) != "BAB" {
		t.Fatalf("order not preserved: %q", labels)
	}
	if sizes[0] != 1 || sizes[2] != 3 {
		t.Fatalf("duplicate labels must keep their own sizes: %v", sizes)
	}
}

func TestEntryRoundTrip(t *testing.T) {
	entries := []Entry{
		{Label: 'A', Kind: KindText, Locked: false, Size: 256, Q: "FFFF"},
		{Label: 's', Kind: KindString, Locked: true, Size: 32, Q: "0000"},
		{Label: '9', Kind: KindDots, Locked: false, Size: 7*256 + 31, Q: "FEFE"},
	}
	for _, want := range entries {
		rec, err := DecodeRecord(want.Record().Encode())
		if err != nil {
			t.Fatalf("round trip decode for %+v: %v", want, err)
		}
		if got := rec.Entry(); got != want {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestDotsDimensions(t *testing.T) {
	for _, tc := range []struct{ h, w int }{{0, 0}, {7, 31}, {31, 255}, {255, 255}} {
		e := Entry{Label: 'D', Kind: KindDots, Size: uint16(tc.h*256 + tc.w)}
		h, w, ok := e.Dimensions()
		if !ok || h != tc.h || w != tc.w {
			t.Fatalf("Dimensions(%d): got (%d, %d, %v), want (%d, %d)", e.Size, h, w, ok, tc.h, tc.w)
		}
	}
	if _, _, ok := (Entry{Kind: KindText, Size: 300}).Dimensions(); ok {
		t.Fatal("TEXT entries must not report dimensions")
	}
}

func TestExtractThenDecode(t *testing.T) {
	response := []byte("\x00\x01000\x02E$DDU1FFF0000\x030000\x04")
	records, _, err := Extract(response)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	entries, err := Decode(records, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Kind != KindDots {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	h, w, _ := entries[0].Dimensions()
	if h != 0x1F || w != 0xFF {
		t.Fatalf("unexpected dimensions %dx%d", h, w)
	}
	if !bytes.Equal(entries[0].Record().Encode(), []byte("DDU1FFF0000")) {
		t.Fatalf("re-encode mismatch: %q", entries[0].Record().Encode())
	}
}
