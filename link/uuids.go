package link

// These UUIDs are part of the compatibility surface (§6 "Service
// identifier") and must be preserved bit-exact. They were synthesized
// when this package was written and are fixed from here on.
const (
	ServiceUUID = "59462f12-9543-9999-12c8-58b459a2712d"

	// LatestSampleCharUUID is the read+notify endpoint carrying the most
	// recent composite sample.
	LatestSampleCharUUID = "6a3b2c01-4e5f-6a7b-8c9d-e0f123456789"
	// StoreStatusCharUUID is the read+write endpoint carrying StoreStats.
	StoreStatusCharUUID = "6a3b2c1d-4e5f-6a7b-8c9d-e0f123456790"
	// CommandCharUUID is the write / write-without-response endpoint the
	// protocol engine (C7) dispatches from.
	CommandCharUUID = "6a3b2c1d-4e5f-6a7b-8c9d-e0f123456791"
	// ResponseCharUUID is the read+notify endpoint carrying encoded
	// response frames.
	ResponseCharUUID = "6a3b2c1d-4e5f-6a7b-8c9d-e0f123456792"
	// BulkTransferCharUUID is reserved for future chunked transfer; read,
	// write, and notify capable but unused by any current command.
	BulkTransferCharUUID = "6a3b2c1d-4e5f-6a7b-8c9d-e0f123456793"
)
