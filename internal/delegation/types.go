package delegation

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// RootAuthority marks a delegation issued directly by the delegator rather
// than re-delegated from an existing one.
var RootAuthority = common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")

// SpendingScope bounds what a delegate may spend: a per-period cap on a
// single ERC-20 token, with the period anchored at StartDate.
type SpendingScope struct {
	TokenAddress   common.Address
	PeriodAmount   *big.Int // token base units
	PeriodDuration uint64   // seconds
	StartDate      uint64   // unix seconds; zero means "now"
}

// Caveat is an enforcement condition attached to a delegation, interpreted
// on-chain by the enforcer contract it names.
type Caveat struct {
	Enforcer common.Address `json:"enforcer"`
	Terms    hexutil.Bytes  `json:"terms"`
	Args     hexutil.Bytes  `json:"args"`
}

// Delegation is the unsigned permission artifact. The JSON shape matches the
// MetaMask delegation toolkit so encoded delegations interoperate with
// recipients using the toolkit directly.
type Delegation struct {
	Delegate  common.Address `json:"delegate"`
	Delegator common.Address `json:"delegator"`
	Authority common.Hash    `json:"authority"`
	Caveats   []Caveat       `json:"caveats"`
	Salt      *hexutil.Big   `json:"salt"`
}

// SignedDelegation is a Delegation with the delegator's signature attached.
// Immutable once signed: changing any field requires building a fresh
// Delegation with a new salt.
type SignedDelegation struct {
	Delegation
	Signature hexutil.Bytes `json:"signature"`
}
