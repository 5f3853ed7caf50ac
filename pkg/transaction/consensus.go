package transaction

// Version group identifiers.
const (
	OverwinterVersionGroupID = 0x03C48270
	SaplingVersionGroupID    = 0x892F2085
	V5VersionGroupID         = 0x26A7270A
)

// Consensus branch identifiers of the network upgrades that use v5.
const (
	NU5BranchID = 0xC2D6D0B4
	NU6BranchID = 0xC8E71055
)
