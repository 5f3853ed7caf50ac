package address

import (
	"fmt"
	"strings"
)

// Network selects the address prefixes of a Zcash network.
type Network int

const (
	MainNet Network = iota
	TestNet
)

type networkParams struct {
	name        string
	p2pkhPrefix [2]byte
	p2shPrefix  [2]byte
	saplingHRP  string
	unifiedHRP  string
	uviewHRP    string
	uivkHRP     string
}

var networks = [...]networkParams{
	MainNet: {
		name:        "main",
		p2pkhPrefix: [2]byte{0x1c, 0xb8},
		p2shPrefix:  [2]byte{0x1c, 0xbd},
		saplingHRP:  "zs",
		unifiedHRP:  "u",
		uviewHRP:    "uview",
		uivkHRP:     "uivk",
	},
	TestNet: {
		name:        "test",
		p2pkhPrefix: [2]byte{0x1d, 0x25},
		p2shPrefix:  [2]byte{0x1c, 0xba},
		saplingHRP:  "ztestsapling",
		unifiedHRP:  "utest",
		uviewHRP:    "uviewtest",
		uivkHRP:     "uivktest",
	},
}

func (n Network) params() networkParams {
	if n < 0 || int(n) >= len(networks) {
		return networks[MainNet]
	}
	return networks[n]
}

// Valid reports whether n is a known network.
// Valid reports whether n is a known network.
func (n Network) Valid() bool {
	return n >= 0 && int(n) < len(networks)
}

// String returns "main" or "test".
func (n Network) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Network(%d)", int(n))
	}
	return networks[n].name
}

// ParseNetwork accepts "main"/"mainnet" and "test"/"testnet".
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(s) {
	case "main", "mainnet":
		return MainNet, nil
	case "test", "testnet":
		return TestNet, nil
	}
	return 0, fmt.Errorf("unknown network %q", s)
}

// networkForHRP finds the network whose selected HRP equals hrp.
func networkForHRP(hrp string, pick func(networkParams) string) (Network, bool) {
	for n, p := range networks {
		if pick(p) == hrp {
			return Network(n), true
		}
	}
	return 0, false
}
