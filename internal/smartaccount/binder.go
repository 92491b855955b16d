package smartaccount

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/atlas-card/atlas-api/internal/delegation"
)

// KeyBinder binds a smart account controlled by a raw secp256k1 signing key.
// It signs delegation payloads with the delegation manager's EIP-712 domain
// and pushes user operations through the bundler pipeline. One binder is
// constructed per request; it holds no shared mutable state.
type KeyBinder struct {
	key     *ecdsa.PrivateKey
	address common.Address
	env     *delegation.Environment
	bundler *BundlerClient
}

// NewKeyBinder constructs a binder for the smart account at address,
// controlled by the given key.
func NewKeyBinder(key *ecdsa.PrivateKey, address common.Address, env *delegation.Environment, bundler *BundlerClient) *KeyBinder {
	return &KeyBinder{
		key:     key,
		address: address,
		env:     env,
		bundler: bundler,
	}
}

// Address returns the smart account address this binder signs for.
func (b *KeyBinder) Address() common.Address {
	return b.address
}

// SignDelegation produces the delegator's signature over the delegation's
// EIP-712 digest in the DelegationManager domain.
func (b *KeyBinder) SignDelegation(ctx context.Context, d *delegation.Delegation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SigningError{Err: err}
	}

	digest, err := delegationDigest(d, b.env)
	if err != nil {
		return nil, &SigningError{Err: err}
	}

	sig, err := ethcrypto.Sign(digest, b.key)
	if err != nil {
		return nil, &SigningError{Err: err}
	}

	// Contracts expect the recovery id offset by 27.
	sig[64] += 27
	return sig, nil
}

// SubmitUserOperation assembles, signs and submits a user operation carrying
// the given calls. It returns as soon as the bundler accepts the operation.
func (b *KeyBinder) SubmitUserOperation(ctx context.Context, calls []Call, fee FeeParams) (common.Hash, error) {
	if len(calls) == 0 {
		return common.Hash{}, fmt.Errorf("user operation needs at least one call")
	}

	nonce, err := b.bundler.GetNonce(ctx, b.address)
	if err != nil {
		return common.Hash{}, err
	}

	op := &UserOperation{
		Sender:               b.address,
		Nonce:                nonce,
		CallData:             encodeExecuteCalls(calls),
		MaxFeePerGas:         (*hexutil.Big)(fee.MaxFeePerGas),
		MaxPriorityFeePerGas: (*hexutil.Big)(fee.MaxPriorityFeePerGas),
		Signature:            dummySignature(),
	}

	estimate, err := b.bundler.EstimateUserOperationGas(ctx, op)
	if err != nil {
		return common.Hash{}, err
	}
	op.CallGasLimit = estimate.CallGasLimit
	op.VerificationGasLimit = estimate.VerificationGasLimit
	op.PreVerificationGas = estimate.PreVerificationGas

	opHash, err := b.userOpHash(op)
	if err != nil {
		return common.Hash{}, err
	}

	sig, err := ethcrypto.Sign(opHash.Bytes(), b.key)
	if err != nil {
		return common.Hash{}, &SigningError{Err: err}
	}
	sig[64] += 27
	op.Signature = sig

	return b.bundler.SendUserOperation(ctx, op)
}

// AwaitReceipt delegates to the bundler client's receipt polling.
func (b *KeyBinder) AwaitReceipt(ctx context.Context, userOpHash common.Hash, timeout time.Duration) (*Receipt, error) {
	return b.bundler.AwaitReceipt(ctx, userOpHash, timeout)
}

var _ Binder = (*KeyBinder)(nil)

// delegationDigest hashes the delegation as EIP-712 typed data in the
// delegation manager's domain. The Caveat typehash covers enforcer and
// terms; args are runtime redemption inputs and stay out of the signature.
func delegationDigest(d *delegation.Delegation, env *delegation.Environment) ([]byte, error) {
	caveats := make([]interface{}, len(d.Caveats))
	for i, c := range d.Caveats {
		caveats[i] = map[string]interface{}{
			"enforcer": c.Enforcer.Hex(),
			"terms":    hexutil.Encode(c.Terms),
		}
	}

	salt := new(big.Int)
	if d.Salt != nil {
		salt = d.Salt.ToInt()
	}

	typed := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Delegation": []apitypes.Type{
				{Name: "delegate", Type: "address"},
				{Name: "delegator", Type: "address"},
				{Name: "authority", Type: "bytes32"},
				{Name: "caveats", Type: "Caveat[]"},
				{Name: "salt", Type: "uint256"},
			},
			"Caveat": []apitypes.Type{
				{Name: "enforcer", Type: "address"},
				{Name: "terms", Type: "bytes"},
			},
		},
		PrimaryType: "Delegation",
		Domain: apitypes.TypedDataDomain{
			Name:              "DelegationManager",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(int64(env.ChainID)),
			VerifyingContract: env.DelegationManager.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"delegate":  d.Delegate.Hex(),
			"delegator": d.Delegator.Hex(),
			"authority": d.Authority.Hex(),
			"caveats":   caveats,
			"salt":      (*math.HexOrDecimal256)(salt),
		},
	}

	digest, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return nil, fmt.Errorf("failed to hash delegation typed data: %w", err)
	}
	return digest, nil
}

// encodeExecuteCalls packs the calls into the account's ERC-7579
// execute(bytes32,bytes) entry: single mode for one call, batch otherwise.
func encodeExecuteCalls(calls []Call) hexutil.Bytes {
	if len(calls) == 1 {
		exec := delegation.ExecutionCall{
			Target: calls[0].To,
			Value:  calls[0].Value,
			Data:   calls[0].Data,
		}
		return encodeExecute(delegation.SingleDefaultMode, exec.EncodeSingle())
	}

	// Batch mode: abi.encode(Execution[]) with the batch mode selector byte.
	mode := delegation.SingleDefaultMode
	mode[0] = 0x01
	return encodeExecute(mode, encodeBatchExecutions(calls))
}

// execute(bytes32 mode, bytes executionCalldata)
func encodeExecute(mode [32]byte, executionCalldata []byte) hexutil.Bytes {
	out := make([]byte, 0, 4+32+32+32+len(executionCalldata))
	out = append(out, 0xe9, 0xae, 0x5c, 0x53)
	out = append(out, mode[:]...)
	out = append(out, common.LeftPadBytes(big.NewInt(64).Bytes(), 32)...)
	out = append(out, common.LeftPadBytes(big.NewInt(int64(len(executionCalldata))).Bytes(), 32)...)
	out = append(out, common.RightPadBytes(executionCalldata, (len(executionCalldata)+31)/32*32)...)
	return out
}

func encodeBatchExecutions(calls []Call) []byte {
	// Offset table followed by (target, value, data) tuples.
	head := make([]byte, 0, 32+32*len(calls))
	tail := make([]byte, 0)
	head = append(head, common.LeftPadBytes(big.NewInt(int64(len(calls))).Bytes(), 32)...)

	offsets := make([]int, len(calls))
	base := 32 * len(calls)
	for i, call := range calls {
		offsets[i] = base + len(tail)
		value := call.Value
		if value == nil {
			value = new(big.Int)
		}
		tuple := make([]byte, 0, 96+len(call.Data))
		tuple = append(tuple, common.LeftPadBytes(call.To.Bytes(), 32)...)
		tuple = append(tuple, common.LeftPadBytes(value.Bytes(), 32)...)
		tuple = append(tuple, common.LeftPadBytes(big.NewInt(96).Bytes(), 32)...)
		tuple = append(tuple, common.LeftPadBytes(big.NewInt(int64(len(call.Data))).Bytes(), 32)...)
		tuple = append(tuple, common.RightPadBytes(call.Data, (len(call.Data)+31)/32*32)...)
		tail = append(tail, tuple...)
	}
	for _, off := range offsets {
		head = append(head, common.LeftPadBytes(big.NewInt(int64(off)).Bytes(), 32)...)
	}

	return append(head, tail...)
}

// userOpHash computes the v0.7 entry point hash the account signs.
func (b *KeyBinder) userOpHash(op *UserOperation) (common.Hash, error) {
	accountGasLimits := packGasPair(op.VerificationGasLimit, op.CallGasLimit)
	gasFees := packGasPair(op.MaxPriorityFeePerGas, op.MaxFeePerGas)

	packed := make([]byte, 0, 9*32)
	packed = append(packed, common.LeftPadBytes(op.Sender.Bytes(), 32)...)
	packed = append(packed, common.LeftPadBytes(bigOrZero(op.Nonce).Bytes(), 32)...)
	packed = append(packed, ethcrypto.Keccak256(nil)...) // initCode
	packed = append(packed, ethcrypto.Keccak256(op.CallData)...)
	packed = append(packed, accountGasLimits[:]...)
	packed = append(packed, common.LeftPadBytes(bigOrZero(op.PreVerificationGas).Bytes(), 32)...)
	packed = append(packed, gasFees[:]...)
	packed = append(packed, ethcrypto.Keccak256(op.PaymasterData)...)

	inner := ethcrypto.Keccak256(packed)

	outer := make([]byte, 0, 3*32)
	outer = append(outer, inner...)
	outer = append(outer, common.LeftPadBytes(b.bundler.entryPoint.Bytes(), 32)...)
	outer = append(outer, common.LeftPadBytes(new(big.Int).SetUint64(b.env.ChainID).Bytes(), 32)...)

	return common.BytesToHash(ethcrypto.Keccak256(outer)), nil
}

func packGasPair(high, low *hexutil.Big) [32]byte {
	var out [32]byte
	copy(out[:16], common.LeftPadBytes(bigOrZero(high).Bytes(), 16))
	copy(out[16:], common.LeftPadBytes(bigOrZero(low).Bytes(), 16))
	return out
}

func bigOrZero(v *hexutil.Big) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v.ToInt()
}

// dummySignature pads estimation requests so gas accounting matches a real
// 65-byte ECDSA signature.
func dummySignature() hexutil.Bytes {
	sig := make([]byte, 65)
	for i := range sig {
		sig[i] = 0xff
	}
	return sig
}
