package redeem

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/atlas-card/atlas-api/internal/delegation"
	"github.com/atlas-card/atlas-api/internal/smartaccount"
)

// ErrEmptyDelegation reports blank delegation input, rejected before any
// decode attempt so the caller gets a clearer diagnostic than a codec
// failure.
var ErrEmptyDelegation = fmt.Errorf("delegation string is empty")

// CorruptDelegationError reports an encoded delegation that does not decode.
type CorruptDelegationError struct {
	Err error
}

func (e *CorruptDelegationError) Error() string {
	return fmt.Sprintf("delegation does not decode: %v", e.Err)
}

func (e *CorruptDelegationError) Unwrap() error { return e.Err }

// RedemptionError wraps an on-chain rejection of a redemption attempt:
// scope exceeded, delegation disabled, or insufficient balance. Not retried
// automatically; the amount or target must change first.
type RedemptionError struct {
	Reason string
	Err    error
}

func (e *RedemptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("redemption failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("redemption failed: %s", e.Reason)
}

func (e *RedemptionError) Unwrap() error { return e.Err }

// FeeSource quotes user operation gas prices.
type FeeSource interface {
	GetUserOperationGasPrice(ctx context.Context) (smartaccount.FeeParams, error)
}

// BinderFactory binds a signing key to a smart account address. Injected so
// tests can substitute a double for the chain boundary.
type BinderFactory func(key *ecdsa.PrivateKey, address common.Address) smartaccount.Binder

// Executor spends against an encoded delegation on behalf of its delegate.
// It is pure transport: scope enforcement stays on chain, so an
// out-of-budget call is built and submitted as-is and rejected there.
type Executor struct {
	env       *delegation.Environment
	codec     *delegation.Codec
	fees      FeeSource
	newBinder BinderFactory
	timeout   time.Duration
	logger    *zap.Logger
}

// NewExecutor creates a redemption executor. timeout bounds the receipt
// wait per redemption.
func NewExecutor(env *delegation.Environment, codec *delegation.Codec, fees FeeSource, newBinder BinderFactory, timeout time.Duration, logger *zap.Logger) *Executor {
	return &Executor{
		env:       env,
		codec:     codec,
		fees:      fees,
		newBinder: newBinder,
		timeout:   timeout,
		logger:    logger,
	}
}

// Redeem decodes the delegation, builds a token transfer within it, submits
// the redemption through the user operation pipeline and waits for the
// receipt. It returns the transaction hash of the included operation.
func (e *Executor) Redeem(ctx context.Context, encodedDelegation string, redeemerKey *ecdsa.PrivateKey, tokenSymbol, amount string) (common.Hash, error) {
	cleaned := strings.TrimSpace(encodedDelegation)
	if cleaned == "" {
		return common.Hash{}, ErrEmptyDelegation
	}

	signed, err := e.codec.Decode(cleaned)
	if err != nil {
		return common.Hash{}, &CorruptDelegationError{Err: err}
	}

	token, err := e.env.Token(tokenSymbol)
	if err != nil {
		return common.Hash{}, err
	}

	units, err := ParseTokenAmount(amount, token.Decimals)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	// The delegate account spends from the delegator's smart account into
	// its own wallet.
	execution := delegation.ERC20TransferCall(token.Address, signed.Delegate, units)
	redeemData, err := delegation.EncodeRedeemDelegations(signed, execution)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to build redemption calldata: %w", err)
	}

	fee, err := e.fees.GetUserOperationGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to quote redemption fees: %w", err)
	}

	binder := e.newBinder(redeemerKey, signed.Delegate)
	opHash, err := binder.SubmitUserOperation(ctx, []smartaccount.Call{
		{To: e.env.DelegationManager, Data: redeemData},
	}, fee)
	if err != nil {
		return common.Hash{}, &RedemptionError{Reason: "submission rejected", Err: err}
	}

	e.logger.Info("Redemption submitted",
		zap.String("delegator", signed.Delegator.Hex()),
		zap.String("delegate", signed.Delegate.Hex()),
		zap.String("user_op_hash", opHash.Hex()))

	receipt, err := binder.AwaitReceipt(ctx, opHash, e.timeout)
	if err != nil {
		return common.Hash{}, err
	}
	if !receipt.Success {
		return common.Hash{}, &RedemptionError{Reason: revertReason(receipt)}
	}

	e.logger.Info("Redemption confirmed",
		zap.String("tx_hash", receipt.TransactionHash.Hex()))

	return receipt.TransactionHash, nil
}

func revertReason(r *smartaccount.Receipt) string {
	if r.Reason != "" {
		return r.Reason
	}
	return "user operation reverted"
}

// ParseTokenAmount converts a decimal amount string ("100.50") into token
// base units for the given decimals. Fractional digits beyond the token's
// precision are rejected rather than truncated.
func ParseTokenAmount(amount string, decimals int32) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("amount is required")
	}

	whole, frac := amount, ""
	if i := strings.IndexByte(amount, '.'); i >= 0 {
		whole, frac = amount[:i], amount[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("more than %d decimal places", decimals)
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	units, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal number")
	}
	if units.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	return units, nil
}
