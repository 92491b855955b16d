package delegation

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Subset of the DelegationManager ABI this service calls.
const delegationManagerABI = `[
  {
    "type": "function",
    "name": "disableDelegation",
    "stateMutability": "nonpayable",
    "inputs": [
      {
        "name": "_delegation",
        "type": "tuple",
        "components": [
          {"name": "delegate", "type": "address"},
          {"name": "delegator", "type": "address"},
          {"name": "authority", "type": "bytes32"},
          {
            "name": "caveats",
            "type": "tuple[]",
            "components": [
              {"name": "enforcer", "type": "address"},
              {"name": "terms", "type": "bytes"},
              {"name": "args", "type": "bytes"}
            ]
          },
          {"name": "salt", "type": "uint256"},
          {"name": "signature", "type": "bytes"}
        ]
      }
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "redeemDelegations",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "_permissionContexts", "type": "bytes[]"},
      {"name": "_modes", "type": "bytes32[]"},
      {"name": "_executionCallDatas", "type": "bytes[]"}
    ],
    "outputs": []
  }
]`

const delegationArrayABI = `[
  {
    "type": "function",
    "name": "encode",
    "stateMutability": "pure",
    "inputs": [
      {
        "name": "_delegations",
        "type": "tuple[]",
        "components": [
          {"name": "delegate", "type": "address"},
          {"name": "delegator", "type": "address"},
          {"name": "authority", "type": "bytes32"},
          {
            "name": "caveats",
            "type": "tuple[]",
            "components": [
              {"name": "enforcer", "type": "address"},
              {"name": "terms", "type": "bytes"},
              {"name": "args", "type": "bytes"}
            ]
          },
          {"name": "salt", "type": "uint256"},
          {"name": "signature", "type": "bytes"}
        ]
      }
    ],
    "outputs": []
  }
]`

// SingleDefaultMode is the ERC-7579 execution mode for one plain call.
var SingleDefaultMode = [32]byte{}

var (
	managerABIOnce sync.Once
	managerABI     abi.ABI
	delegationsABI abi.ABI
	abiParseErr    error
)

func loadABIs() error {
	managerABIOnce.Do(func() {
		managerABI, abiParseErr = abi.JSON(strings.NewReader(delegationManagerABI))
		if abiParseErr != nil {
			return
		}
		delegationsABI, abiParseErr = abi.JSON(strings.NewReader(delegationArrayABI))
	})
	return abiParseErr
}

type abiCaveat struct {
	Enforcer common.Address
	Terms    []byte
	Args     []byte
}

type abiDelegation struct {
	Delegate  common.Address
	Delegator common.Address
	Authority [32]byte
	Caveats   []abiCaveat
	Salt      *big.Int
	Signature []byte
}

func toABIDelegation(signed *SignedDelegation) abiDelegation {
	caveats := make([]abiCaveat, len(signed.Caveats))
	for i, c := range signed.Caveats {
		caveats[i] = abiCaveat{
			Enforcer: c.Enforcer,
			Terms:    c.Terms,
			Args:     c.Args,
		}
	}

	salt := new(big.Int)
	if signed.Salt != nil {
		salt = signed.Salt.ToInt()
	}

	return abiDelegation{
		Delegate:  signed.Delegate,
		Delegator: signed.Delegator,
		Authority: signed.Authority,
		Caveats:   caveats,
		Salt:      salt,
		Signature: signed.Signature,
	}
}

// EncodeDisableDelegation packs the DelegationManager.disableDelegation
// calldata for an on-chain revoke of the given signed delegation.
func EncodeDisableDelegation(signed *SignedDelegation) ([]byte, error) {
	if err := loadABIs(); err != nil {
		return nil, fmt.Errorf("failed to parse delegation manager ABI: %w", err)
	}

	data, err := managerABI.Pack("disableDelegation", toABIDelegation(signed))
	if err != nil {
		return nil, fmt.Errorf("failed to pack disableDelegation calldata: %w", err)
	}
	return data, nil
}

// EncodeRedeemDelegations packs DelegationManager.redeemDelegations calldata
// spending against the given delegation chain with a single plain execution.
func EncodeRedeemDelegations(signed *SignedDelegation, execution ExecutionCall) ([]byte, error) {
	if err := loadABIs(); err != nil {
		return nil, fmt.Errorf("failed to parse delegation manager ABI: %w", err)
	}

	// permissionContext = abi.encode(Delegation[]), leaf first.
	ctxArgs, err := delegationsABI.Methods["encode"].Inputs.Pack([]abiDelegation{toABIDelegation(signed)})
	if err != nil {
		return nil, fmt.Errorf("failed to pack permission context: %w", err)
	}

	data, err := managerABI.Pack(
		"redeemDelegations",
		[][]byte{ctxArgs},
		[][32]byte{SingleDefaultMode},
		[][]byte{execution.EncodeSingle()},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to pack redeemDelegations calldata: %w", err)
	}
	return data, nil
}

// ExecutionCall is one call carried inside a redemption: target contract,
// native value, and calldata.
type ExecutionCall struct {
	Target common.Address
	Value  *big.Int
	Data   []byte
}

// EncodeSingle encodes the execution in the ERC-7579 single-call layout:
// target (20 bytes) || value (32 bytes) || calldata.
func (e ExecutionCall) EncodeSingle() []byte {
	value := e.Value
	if value == nil {
		value = new(big.Int)
	}
	out := make([]byte, 0, 20+32+len(e.Data))
	out = append(out, e.Target.Bytes()...)
	out = append(out, common.LeftPadBytes(value.Bytes(), 32)...)
	out = append(out, e.Data...)
	return out
}

// ERC20TransferCall builds the calldata for transfer(address,uint256)
// against the given token.
func ERC20TransferCall(token, to common.Address, amount *big.Int) ExecutionCall {
	data := make([]byte, 0, 4+64)
	data = append(data, 0xa9, 0x05, 0x9c, 0xbb) // transfer(address,uint256)
	data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), 32)...)
	return ExecutionCall{Target: token, Value: new(big.Int), Data: data}
}
