package alphasign

import (
	"errors"

	"github.com/Lucretiel/alphasign/internal/checksum"
	"github.com/Lucretiel/alphasign/internal/memtable"
)

// ErrTransport wraps a failed write or read on the underlying transport.
var ErrTransport = errors.New("transport failure")

// Decode and lookup failures surface as wrapped sentinels so callers can
// branch with errors.Is. ErrNotFound is a normal negative result, not a
// decode fault.
var (
	ErrMalformedResponse = memtable.ErrMalformedResponse
	ErrTruncatedTable    = memtable.ErrTruncatedTable
	ErrInvalidRecord     = memtable.ErrInvalidRecord
	ErrNotFound          = memtable.ErrNotFound
	ErrChecksumMismatch  = checksum.ErrMismatch
)
