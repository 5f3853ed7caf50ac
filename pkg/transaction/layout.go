package transaction

// layout records which fields a transaction version carries and where.
// Decode and Encode both consult it so the presence rules live in one
// place.
type layout struct {
	version uint32

	versionGroupID bool // nVersionGroupId after the header
	earlyHeader    bool // branch id, lock time and expiry precede the transparent bundle
	expiryHeight   bool // nExpiryHeight is present

	sprout        bool // JoinSplit count, descriptions, pubkey and signature
	sproutGroth16 bool // JoinSplits carry Groth16 rather than BCTV14 proofs

	sapling        bool // Sapling spends, outputs and binding signature
	saplingBatched bool // v5 layout: shared anchor, batched proofs and signatures

	orchard bool
}

// layoutFor returns the layout of a header, rejecting unknown versions and
// overwintered flags that disagree with the version.
func layoutFor(header uint32) (layout, error) {
	version := header &^ OverwinteredFlag
	overwintered := header&OverwinteredFlag != 0

	if version < 1 || version > 5 {
		return layout{}, &UnsupportedVersionError{Version: version}
	}
	if overwintered != (version >= 3) {
		return layout{}, &UnsupportedVersionError{Version: version, Field: "overwintered flag"}
	}

	return layout{
		version:        version,
		versionGroupID: version >= 3,
		earlyHeader:    version >= 5,
		expiryHeight:   version >= 3,
		sprout:         version >= 2 && version <= 4,
		sproutGroth16:  version == 4,
		sapling:        version >= 4,
		saplingBatched: version >= 5,
		orchard:        version >= 5,
	}, nil
}

// Minimum encoded sizes used to bound counts before allocating.
const (
	minTxInLen          = 32 + 4 + 1 + 4
	minTxOutLen         = 8 + 1
	jsDescriptionBCTV14 = 8 + 8 + 32 + 2*32 + 2*32 + 32 + 32 + 2*32 + 296 + 2*601
	jsDescriptionGroth  = jsDescriptionBCTV14 - 296 + 192
	saplingSpendV4Len   = 32 + 32 + 32 + 32 + 192 + 64
	saplingSpendV5Len   = 32 + 32 + 32
	saplingOutputV4Len  = 32 + 32 + 32 + 580 + 80 + 192
	saplingOutputV5Len  = saplingOutputV4Len - 192
	orchardActionLen    = 32*5 + 580 + 80
)
