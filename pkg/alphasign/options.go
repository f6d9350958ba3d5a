package alphasign

// ReadOptions configures how a memory table read is decoded.
type ReadOptions struct {
	// Lenient skips records that fail to decode instead of failing the
	// whole table. The default matches the reference behavior: the first
	// bad record aborts the read.
	Lenient bool

	// VerifyChecksum checks the table checksum against the record bytes.
	// Off by default: real signs are known to send inconsistent checksums,
	// and rejecting those would break devices that otherwise work.
	VerifyChecksum bool
}
