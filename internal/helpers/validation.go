package helpers

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizeAddress renders an address in the canonical stored form:
// lowercase hex with the 0x prefix. Tuple equality in the store depends on
// every write and lookup using this form.
func NormalizeAddress(a common.Address) string {
	return strings.ToLower(a.Hex())
}

// IsAddressValid checks if the provided string is a valid Ethereum address
// It verifies:
// 1. The address is exactly 42 characters long (including 0x prefix)
// 2. The address starts with "0x"
// 3. The remaining 40 characters are valid hexadecimal
func IsAddressValid(address string) bool {
	if len(address) != 42 {
		return false
	}

	if !strings.HasPrefix(address, "0x") {
		return false
	}

	return isHex(address[2:])
}

// IsPrivateKeyValid checks if the provided string is a valid Ethereum private key
// (0x prefix followed by 64 hex characters).
func IsPrivateKeyValid(key string) bool {
	if len(key) != 66 {
		return false
	}

	if !strings.HasPrefix(key, "0x") {
		return false
	}

	return isHex(key[2:])
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
