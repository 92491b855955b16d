package smartaccount

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/atlas-card/atlas-api/internal/delegation"
)

// Call is one call carried inside a user operation.
type Call struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// FeeParams is a gas price quote for user operation submission. Quotes are
// fetched fresh at submission time and never cached.
type FeeParams struct {
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// Receipt is the terminal outcome of a submitted user operation.
type Receipt struct {
	UserOpHash      common.Hash
	TransactionHash common.Hash
	Success         bool
	Reason          string
}

// UserOperation is the v0.7 entry point wire representation.
type UserOperation struct {
	Sender                        common.Address  `json:"sender"`
	Nonce                         *hexutil.Big    `json:"nonce"`
	CallData                      hexutil.Bytes   `json:"callData"`
	CallGasLimit                  *hexutil.Big    `json:"callGasLimit"`
	VerificationGasLimit          *hexutil.Big    `json:"verificationGasLimit"`
	PreVerificationGas            *hexutil.Big    `json:"preVerificationGas"`
	MaxFeePerGas                  *hexutil.Big    `json:"maxFeePerGas"`
	MaxPriorityFeePerGas          *hexutil.Big    `json:"maxPriorityFeePerGas"`
	Factory                       *common.Address `json:"factory,omitempty"`
	FactoryData                   hexutil.Bytes   `json:"factoryData,omitempty"`
	Paymaster                     *common.Address `json:"paymaster,omitempty"`
	PaymasterVerificationGasLimit *hexutil.Big    `json:"paymasterVerificationGasLimit,omitempty"`
	PaymasterPostOpGasLimit       *hexutil.Big    `json:"paymasterPostOpGasLimit,omitempty"`
	PaymasterData                 hexutil.Bytes   `json:"paymasterData,omitempty"`
	Signature                     hexutil.Bytes   `json:"signature"`
}

// Binder is the capability a bound smart account exposes to the core: it can
// sign delegation payloads and push user operations through the bundler
// pipeline. Every method is fallible and potentially slow (block-time
// bound), so callers pass a context and treat errors as first-class.
type Binder interface {
	Address() common.Address
	SignDelegation(ctx context.Context, d *delegation.Delegation) ([]byte, error)
	SubmitUserOperation(ctx context.Context, calls []Call, fee FeeParams) (common.Hash, error)
	AwaitReceipt(ctx context.Context, userOpHash common.Hash, timeout time.Duration) (*Receipt, error)
}

// SigningError reports that the underlying signer declined or failed. No
// state was mutated, so the operation is safe to retry.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("delegation signing failed: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }
